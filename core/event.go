package core

import (
	"time"

	"github.com/google/uuid"
)

// Event is the record an agent emits for one completed reply. After emission
// it should be treated as immutable. It captures:
//   - Correlation (ID, SessionID, Author)
//   - The reply content
//   - Which provider/model produced it (empty when every provider failed)
//   - Error metadata when the reply is a fallback message
//
// Timestamp is always UTC.
type Event struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Author       string    `json:"author"`
	Timestamp    time.Time `json:"timestamp"`
	Content      *Content  `json:"content,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	Model        string    `json:"model,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
}

// NewEvent creates a bare event authored by 'author' bound to a session.
func NewEvent(sessionID, author string) Event {
	return Event{
		ID:        NewID(),
		SessionID: sessionID,
		Author:    author,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageEvent creates an assistant message event with a single text part.
func NewMessageEvent(sessionID, author, message string) Event {
	e := NewEvent(sessionID, author)
	c := NewTextContent("assistant", message)
	e.Content = &c
	return e
}

// NewErrorEvent creates an assistant message event carrying a fallback text
// and the error that caused it.
func NewErrorEvent(sessionID, author, message string, err error) Event {
	e := NewMessageEvent(sessionID, author, message)
	if err != nil {
		msg := err.Error()
		e.ErrorMessage = &msg
	}
	return e
}

// NewID generates a new UUID based identifier for events.
func NewID() string { return uuid.NewString() }

// Text returns the concatenated text of the event content, or "" when the
// event carries no content.
func (e Event) Text() string {
	if e.Content == nil {
		return ""
	}
	return e.Content.Text()
}

// Failed reports whether the event is a fallback reply produced after every
// provider failed.
func (e Event) Failed() bool { return e.ErrorMessage != nil }
