package poll

import (
	"slices"

	"tally/internal/models"
)

// RecordVote applies toggle-replace semantics for a single-choice poll:
//
//   - no active vote        -> add voter under choice
//   - active vote == choice -> retract it
//   - active vote != choice -> move voter to choice
//
// After every call a voter sits under at most one index, never duplicated.
// Per-index order is insertion order, so anonymous counts render stably.
func RecordVote(p *models.Poll, choice int, voter models.Voter) error {
	if p.Closed() {
		return models.ErrPollClosed
	}
	if choice < 0 || choice >= len(p.Choices) {
		return models.ErrChoiceOutOfRange
	}
	if p.Votes == nil {
		p.Votes = make(map[int][]models.Voter)
	}

	prev := p.VoterIndex(voter.Id)
	if prev >= 0 {
		p.Votes[prev] = slices.DeleteFunc(p.Votes[prev], func(v models.Voter) bool {
			return v.Id == voter.Id
		})
	}
	if prev != choice {
		p.Votes[choice] = append(p.Votes[choice], voter)
	}
	return nil
}
