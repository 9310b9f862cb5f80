package models

type ClosePolicy uint8
type ResponseKind string
type StatusCode string

const (
	// CloseableByAnyone 任何人可结束投票
	CloseableByAnyone ClosePolicy = iota
	// CloseableByCreatorOnly 仅创建者可结束投票
	CloseableByCreatorOnly
)

const (
	// KindDialog synchronous re-render, never persisted
	KindDialog ResponseKind = "DIALOG"
	// KindStatus result of a state-mutating action
	KindStatus ResponseKind = "STATUS"
)

const (
	CodeOK      StatusCode = "OK"
	CodeUnknown StatusCode = "UNKNOWN"
)

// Recognized action identifiers carried on inbound events.
const (
	ActionStartPoll     = "start_poll"
	ActionVote          = "vote"
	ActionAddOptionForm = "add_option_form"
	ActionAddOption     = "add_option"
	ActionShowForm      = "show_form"
	ActionClosePollForm = "close_poll_form"
	ActionClosePoll     = "close_poll"
)
