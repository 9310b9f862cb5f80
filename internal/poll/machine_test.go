package poll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/models"
	"tally/internal/poll"
)

var (
	alice = models.Voter{Id: "u1", Name: "Alice"}
	bob   = models.Voter{Id: "u2", Name: "Bob"}
)

func TestCreate(t *testing.T) {
	t.Run("valid poll starts open", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza", "Tacos"}, alice, false, models.CloseableByAnyone)
		require.NoError(t, err)

		assert.NotEmpty(t, p.Id)
		assert.Equal(t, "Lunch?", p.Topic)
		assert.Equal(t, []string{"Pizza", "Tacos"}, p.Choices)
		assert.Equal(t, alice, p.Author)
		assert.Nil(t, p.ClosedAt)
		assert.False(t, p.Closed())
		assert.Empty(t, p.Votes)
	})

	t.Run("empty topic rejected", func(t *testing.T) {
		_, err := poll.Create("", []string{"A"}, alice, false, models.CloseableByAnyone)
		assert.ErrorIs(t, err, models.ErrEmptyTopic)

		_, err = poll.Create("   ", []string{"A"}, alice, false, models.CloseableByAnyone)
		assert.ErrorIs(t, err, models.ErrEmptyTopic)
	})

	t.Run("no choices rejected", func(t *testing.T) {
		_, err := poll.Create("Topic", nil, alice, false, models.CloseableByAnyone)
		assert.ErrorIs(t, err, models.ErrNoChoices)
	})
}

func TestAddOption(t *testing.T) {
	newPoll := func(t *testing.T) *models.Poll {
		p, err := poll.Create("Lunch?", []string{"Pizza", "Tacos"}, alice, false, models.CloseableByAnyone)
		require.NoError(t, err)
		return p
	}

	t.Run("appends trimmed value", func(t *testing.T) {
		p := newPoll(t)
		require.NoError(t, poll.RecordVote(p, 1, bob))

		require.NoError(t, poll.AddOption(p, "  Sushi ", bob))
		assert.Equal(t, []string{"Pizza", "Tacos", "Sushi"}, p.Choices)
		// existing vote indices untouched
		assert.Equal(t, []models.Voter{bob}, p.Votes[1])
	})

	t.Run("blank submission is a no-op", func(t *testing.T) {
		p := newPoll(t)
		require.NoError(t, poll.AddOption(p, "   ", bob))
		assert.Equal(t, []string{"Pizza", "Tacos"}, p.Choices)
	})

	t.Run("rejected once closed", func(t *testing.T) {
		p := newPoll(t)
		require.NoError(t, poll.Close(p, time.Now()))

		err := poll.AddOption(p, "Sushi", bob)
		assert.ErrorIs(t, err, models.ErrPollClosed)
		assert.Equal(t, []string{"Pizza", "Tacos"}, p.Choices)
	})
}

func TestClose(t *testing.T) {
	t.Run("sets timestamp once", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza"}, alice, false, models.CloseableByAnyone)
		require.NoError(t, err)

		closedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, poll.Close(p, closedAt))
		require.NotNil(t, p.ClosedAt)
		assert.Equal(t, closedAt, *p.ClosedAt)
		assert.True(t, p.Closed())
	})

	t.Run("second close never overwrites", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza"}, alice, false, models.CloseableByAnyone)
		require.NoError(t, err)

		first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, poll.Close(p, first))

		err = poll.Close(p, first.Add(time.Hour))
		assert.ErrorIs(t, err, models.ErrAlreadyClosed)
		assert.Equal(t, first, *p.ClosedAt)
	})
}

func TestCanClose(t *testing.T) {
	t.Run("anyone policy", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza"}, alice, false, models.CloseableByAnyone)
		require.NoError(t, err)

		assert.True(t, poll.CanClose(p, alice))
		assert.True(t, poll.CanClose(p, bob))
	})

	t.Run("creator-only policy", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza"}, alice, false, models.CloseableByCreatorOnly)
		require.NoError(t, err)

		assert.True(t, poll.CanClose(p, alice))
		assert.False(t, poll.CanClose(p, bob))
	})
}
