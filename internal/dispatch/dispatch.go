// Package dispatch routes inbound chat events to poll operations and
// assembles the outbound response. It holds no state of its own: every
// request decodes the snapshot from the event, mutates it, and writes it
// back through the messaging collaborator. Concurrent votes against the
// same stale snapshot are last-write-wins at that boundary.
package dispatch

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tally/internal/models"
	"tally/internal/poll"
	"tally/internal/state"
	"tally/pkg/async"
)

// Messenger is the external message API: create posts a new card into a
// space, update replaces the card of an existing message.
type Messenger interface {
	CreateMessage(ctx context.Context, space string, card models.Card) error
	UpdateMessage(ctx context.Context, message string, card models.Card) error
}

// Renderer turns poll state into card markup. The encoded snapshot is passed
// alongside so interactive widgets can embed it.
type Renderer interface {
	PollCard(p *models.Poll, encoded string) models.Card
	NewPollForm(topic string, choices []string) models.Card
	AddOptionForm(p *models.Poll, encoded string) models.Card
	CloseConfirmation(p *models.Poll, encoded string) models.Card
	PermissionDenied(p *models.Poll) models.Card
}

type Dispatcher struct {
	msg    Messenger
	render Renderer
	now    func() time.Time
}

func New(msg Messenger, render Renderer) *Dispatcher {
	return &Dispatcher{msg: msg, render: render, now: time.Now}
}

// Dispatch handles one event. It never returns an error: unmapped actions
// degrade to an "Unknown action" status instead of faulting at the user.
func (d *Dispatcher) Dispatch(ctx context.Context, ev models.Event) models.Response {
	switch ev.Action {
	case models.ActionShowForm:
		return models.Dialog(d.render.NewPollForm("", nil))
	case models.ActionStartPoll:
		return d.startPoll(ctx, ev)
	case models.ActionVote:
		return d.vote(ctx, ev)
	case models.ActionAddOptionForm:
		return d.addOptionForm(ev)
	case models.ActionAddOption:
		return d.addOption(ctx, ev)
	case models.ActionClosePollForm:
		return d.closePollForm(ev)
	case models.ActionClosePoll:
		return d.closePoll(ctx, ev)
	default:
		log.Warn().Str("action", ev.Action).Msg("未知操作")
		return models.Status(models.CodeUnknown, "Unknown action")
	}
}

func (d *Dispatcher) startPoll(ctx context.Context, ev models.Event) models.Response {
	topic := strings.TrimSpace(ev.Input("topic"))
	choices := collectOptions(&ev)
	anon := ev.Input("anon") != ""
	policy := models.CloseableByAnyone
	if ev.Input("creator_only") != "" {
		policy = models.CloseableByCreatorOnly
	}

	p, err := poll.Create(topic, choices, ev.Actor, anon, policy)
	if err != nil {
		// Recoverable: re-prompt the form with what was typed.
		return models.Dialog(d.render.NewPollForm(topic, choices))
	}

	encoded, err := state.Encode(p)
	if err != nil {
		log.Error().Err(err).Msg("状态序列化失败")
		return models.Status(models.CodeUnknown, "Failed to create poll")
	}
	card := d.render.PollCard(p, encoded)
	err = async.AwaitCtx(ctx, func() error {
		return d.msg.CreateMessage(ctx, ev.SpaceRef, card)
	})
	if err != nil {
		log.Warn().Err(err).Str("space", ev.SpaceRef).Msg("创建消息失败")
		return models.Status(models.CodeUnknown, "Failed to create poll")
	}
	return models.Status(models.CodeOK, "Poll created")
}

func (d *Dispatcher) vote(ctx context.Context, ev models.Event) models.Response {
	p, resp := d.decode(&ev)
	if p == nil {
		return resp
	}
	choice, err := strconv.Atoi(ev.Param("index"))
	if err != nil {
		return models.Status(models.CodeUnknown, "Invalid choice")
	}
	if err := poll.RecordVote(p, choice, ev.Actor); err != nil {
		if errors.Is(err, models.ErrPollClosed) {
			return models.Status(models.CodeUnknown, "Poll is already closed")
		}
		return models.Status(models.CodeUnknown, "Invalid choice")
	}
	return d.updateCard(ctx, &ev, p, "Vote recorded", "Failed to record vote")
}

func (d *Dispatcher) addOptionForm(ev models.Event) models.Response {
	p, resp := d.decode(&ev)
	if p == nil {
		return resp
	}
	encoded, err := state.Encode(p)
	if err != nil {
		log.Error().Err(err).Msg("状态序列化失败")
		return models.Status(models.CodeUnknown, "Failed to open form")
	}
	return models.Dialog(d.render.AddOptionForm(p, encoded))
}

func (d *Dispatcher) addOption(ctx context.Context, ev models.Event) models.Response {
	p, resp := d.decode(&ev)
	if p == nil {
		return resp
	}
	if err := poll.AddOption(p, ev.Input("option"), ev.Actor); err != nil {
		return models.Status(models.CodeUnknown, "Poll is already closed")
	}
	// A blank submission changed nothing but still re-renders the card.
	return d.updateCard(ctx, &ev, p, "Option added", "Failed to add option")
}

func (d *Dispatcher) closePollForm(ev models.Event) models.Response {
	p, resp := d.decode(&ev)
	if p == nil {
		return resp
	}
	if !poll.CanClose(p, ev.Actor) {
		return models.Dialog(d.render.PermissionDenied(p))
	}
	encoded, err := state.Encode(p)
	if err != nil {
		log.Error().Err(err).Msg("状态序列化失败")
		return models.Status(models.CodeUnknown, "Failed to open form")
	}
	return models.Dialog(d.render.CloseConfirmation(p, encoded))
}

func (d *Dispatcher) closePoll(ctx context.Context, ev models.Event) models.Response {
	p, resp := d.decode(&ev)
	if p == nil {
		return resp
	}
	if !poll.CanClose(p, ev.Actor) {
		return models.Dialog(d.render.PermissionDenied(p))
	}
	if err := poll.Close(p, d.now()); err != nil {
		return models.Status(models.CodeUnknown, "Poll is already closed")
	}
	return d.updateCard(ctx, &ev, p, "Poll closed", "Failed to close poll")
}

// decode reconstitutes the poll from the event snapshot. On failure the
// request aborts: nothing has been mutated yet, and without a base state
// there is nothing to recover to.
func (d *Dispatcher) decode(ev *models.Event) (*models.Poll, models.Response) {
	raw := ev.State
	if raw == "" {
		raw = ev.Param("state")
	}
	p, err := state.Decode(raw)
	if err != nil {
		log.Warn().Err(err).Str("action", ev.Action).Msg("状态解析失败")
		return nil, models.Status(models.CodeUnknown, "Poll state is missing or corrupted")
	}
	return p, models.Response{}
}

// updateCard re-encodes, re-renders and pushes the card through the
// messaging collaborator. One awaited call, no retries.
func (d *Dispatcher) updateCard(ctx context.Context, ev *models.Event, p *models.Poll, okText, failText string) models.Response {
	encoded, err := state.Encode(p)
	if err != nil {
		log.Error().Err(err).Msg("状态序列化失败")
		return models.Status(models.CodeUnknown, failText)
	}
	card := d.render.PollCard(p, encoded)
	err = async.AwaitCtx(ctx, func() error {
		return d.msg.UpdateMessage(ctx, ev.MessageRef, card)
	})
	if err != nil {
		log.Warn().Err(err).Str("message", ev.MessageRef).Msg("更新消息失败")
		return models.Status(models.CodeUnknown, failText)
	}
	return models.Status(models.CodeOK, okText)
}

func collectOptions(ev *models.Event) []string {
	var out []string
	for i := 1; i <= 10; i++ {
		value := strings.TrimSpace(ev.Input("option" + strconv.Itoa(i)))
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
