package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/models"
	"tally/internal/poll"
	"tally/internal/state"
)

var (
	alice = models.Voter{Id: "u1", Name: "Alice"}
	bob   = models.Voter{Id: "u2", Name: "Bob"}
)

func TestRoundTrip(t *testing.T) {
	t.Run("fresh poll", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza", "Tacos"}, alice, false, models.CloseableByAnyone)
		require.NoError(t, err)

		encoded, err := state.Encode(p)
		require.NoError(t, err)

		decoded, err := state.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, p.Id, decoded.Id)
		assert.Equal(t, p.Topic, decoded.Topic)
		assert.Equal(t, p.Choices, decoded.Choices)
		assert.Equal(t, p.Author, decoded.Author)
		assert.Nil(t, decoded.ClosedAt)
	})

	t.Run("votes in every choice and closed timestamp", func(t *testing.T) {
		p, err := poll.Create("Lunch?", []string{"Pizza", "Tacos"}, alice, true, models.CloseableByCreatorOnly)
		require.NoError(t, err)
		require.NoError(t, poll.RecordVote(p, 0, bob))
		require.NoError(t, poll.RecordVote(p, 1, alice))
		require.NoError(t, poll.Close(p, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))

		encoded, err := state.Encode(p)
		require.NoError(t, err)

		decoded, err := state.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, p.Votes, decoded.Votes)
		assert.True(t, decoded.Anon)
		assert.Equal(t, models.CloseableByCreatorOnly, decoded.ClosePolicy)
		require.NotNil(t, decoded.ClosedAt)
		assert.True(t, p.ClosedAt.Equal(*decoded.ClosedAt))
	})
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"absent", ""},
		{"not json", "definitely not json"},
		{"wrong shape", `[1, 2, 3]`},
		{"empty object", `{}`},
		{"poll without choices", `{"topic":"Lunch?","choices":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := state.Decode(tc.raw)
			assert.ErrorIs(t, err, models.ErrMalformedState)
		})
	}
}

// A snapshot written by a newer schema keeps its unknown fields across a
// decode/encode round trip through this binary.
func TestUnknownFieldsPreserved(t *testing.T) {
	raw := `{"topic":"Lunch?","choices":["Pizza"],"author":{"id":"u1","name":"Alice"},"future_field":{"nested":true}}`

	p, err := state.Decode(raw)
	require.NoError(t, err)

	encoded, err := state.Encode(p)
	require.NoError(t, err)
	assert.Contains(t, encoded, `"future_field"`)
	assert.Contains(t, encoded, `"nested":true`)

	again, err := state.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, p.Topic, again.Topic)
	assert.Equal(t, p.Choices, again.Choices)
}
