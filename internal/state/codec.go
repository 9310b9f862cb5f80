// Package state round-trips a poll through the opaque string embedded in the
// rendered card. The card is the only store, so decoding is defensive: any
// input that does not look like a serialized poll is rejected outright.
package state

import (
	"fmt"

	"github.com/goccy/go-json"
	strconv2 "github.com/savsgio/gotils/strconv"

	"tally/internal/models"
)

// Top-level keys owned by the current schema. Anything else found while
// decoding is kept aside and written back on encode, so cards produced by a
// newer schema survive a round trip through this binary.
var knownKeys = map[string]struct{}{
	"id":           {},
	"topic":        {},
	"choices":      {},
	"author":       {},
	"anon":         {},
	"close_policy": {},
	"votes":        {},
	"created_at":   {},
	"closed_at":    {},
}

// Decode parses the embedded snapshot. Fails with models.ErrMalformedState
// when the input is absent, not JSON, or JSON that is not a poll.
func Decode(raw string) (*models.Poll, error) {
	if raw == "" {
		return nil, models.ErrMalformedState
	}

	var p models.Poll
	if err := json.Unmarshal(strconv2.S2B(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrMalformedState, err)
	}
	if p.Topic == "" || len(p.Choices) == 0 {
		return nil, models.ErrMalformedState
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(strconv2.S2B(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrMalformedState, err)
	}
	for key := range knownKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		p.Extra = fields
	}
	return &p, nil
}

// Encode serializes the poll back into the card-embedded form, merging any
// unknown fields captured at decode time.
func Encode(p *models.Poll) (string, error) {
	out, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	if len(p.Extra) == 0 {
		return strconv2.B2S(out), nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(out, &fields); err != nil {
		return "", err
	}
	for key, value := range p.Extra {
		fields[key] = value
	}
	out, err = json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return strconv2.B2S(out), nil
}
