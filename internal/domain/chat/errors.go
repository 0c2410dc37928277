package chat

import "errors"

var (
	ErrNotFound       = errors.New("conversation not found")
	ErrNotParticipant = errors.New("not a participant of the conversation")
	ErrEmptyContent   = errors.New("message content is empty")
)
