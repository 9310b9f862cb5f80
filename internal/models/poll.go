package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Voter 投票人 — the identity a cast vote is attributed to.
type Voter struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Poll is the aggregate carried inside the rendered card. The card is the
// durable store: every action decodes it, mutates it and writes it back.
type Poll struct {
	Id string `json:"id"`
	// Topic 投票主题外显名称
	Topic string `json:"topic"`
	// Choices in display order, append-only after creation
	Choices []string `json:"choices"`
	// Author 创建者, immutable once set
	Author Voter `json:"author"`
	// Anon hides voter identity in the rendered tally (display only,
	// the ledger still stores identity)
	Anon bool `json:"anon"`
	// ClosePolicy enum
	//
	// CloseableByAnyone CloseableByCreatorOnly
	ClosePolicy ClosePolicy `json:"close_policy"`
	// Votes choice-index -> voters in insertion order
	Votes map[int][]Voter `json:"votes"`
	// CreatedAt 创建时间
	CreatedAt time.Time `json:"created_at"`
	// ClosedAt is nil while the poll is open; set exactly once on close
	ClosedAt *time.Time `json:"closed_at,omitempty"`

	// Extra holds unknown fields found while decoding so newer schema
	// versions survive a round trip through an old binary.
	Extra map[string]json.RawMessage `json:"-"`
}

// Closed reports the poll lifecycle; ClosedAt presence is the sole discriminator.
func (p *Poll) Closed() bool {
	return p.ClosedAt != nil
}

// VoterIndex returns the choice index the voter currently sits under, or -1.
func (p *Poll) VoterIndex(voterId string) int {
	for idx, voters := range p.Votes {
		for _, v := range voters {
			if v.Id == voterId {
				return idx
			}
		}
	}
	return -1
}

// Count 选项票数
func (p *Poll) Count(choice int) int {
	return len(p.Votes[choice])
}

// TotalVotes across all choices.
func (p *Poll) TotalVotes() int {
	n := 0
	for _, voters := range p.Votes {
		n += len(voters)
	}
	return n
}
