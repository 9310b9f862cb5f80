package models

import "errors"

var (
	ErrEmptyTopic       = errors.New("poll topic is empty")
	ErrNoChoices        = errors.New("poll needs at least one choice")
	ErrChoiceOutOfRange = errors.New("choice index out of range")
	ErrMalformedState   = errors.New("malformed poll state")
	ErrPollClosed       = errors.New("poll is closed")
	ErrAlreadyClosed    = errors.New("poll already closed")
	ErrExternalCall     = errors.New("chat backend call failed")
)
