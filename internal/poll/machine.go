// Package poll owns the poll lifecycle and the vote-recording algorithm.
// It never touches transport or rendering; state comes in from the decoded
// card snapshot and goes back out through the codec.
package poll

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tally/internal/models"
)

// Create validates the submitted form and builds a fresh OPEN poll.
// Validation failures are recoverable: the caller re-prompts the form
// instead of surfacing an error to the user.
func Create(topic string, choices []string, author models.Voter, anon bool, policy models.ClosePolicy) (*models.Poll, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, models.ErrEmptyTopic
	}
	if len(choices) == 0 {
		return nil, models.ErrNoChoices
	}
	return &models.Poll{
		Id:          uuid.NewString(),
		Topic:       topic,
		Choices:     choices,
		Author:      author,
		Anon:        anon,
		ClosePolicy: policy,
		Votes:       make(map[int][]models.Voter),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AddOption appends a trimmed choice. A blank submission is a silent no-op:
// the card is re-rendered unchanged rather than erroring at the user.
// Existing vote indices are unaffected since appends never shift positions.
func AddOption(p *models.Poll, raw string, proposer models.Voter) error {
	if p.Closed() {
		return models.ErrPollClosed
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	p.Choices = append(p.Choices, value)
	return nil
}

// Close transitions OPEN -> CLOSED. The transition is one-way: a second
// close fails instead of overwriting the original timestamp.
func Close(p *models.Poll, now time.Time) error {
	if p.Closed() {
		return models.ErrAlreadyClosed
	}
	t := now.UTC()
	p.ClosedAt = &t
	return nil
}

// CanClose 判断是否有权结束投票. Pure predicate, never mutates.
func CanClose(p *models.Poll, actor models.Voter) bool {
	return p.ClosePolicy == models.CloseableByAnyone || actor.Id == p.Author.Id
}
