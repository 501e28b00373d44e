// Package events publishes survey lifecycle events over watermill.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names an event.
type EventType string

const (
	// EventSurveySubmitted is published when submit is activated on the last
	// page.
	EventSurveySubmitted EventType = "survey.submitted"
	// EventAnswersImported is published after a successful import.
	EventAnswersImported EventType = "survey.imported"
)

// DefaultSource identifies this library in event envelopes.
const DefaultSource = "go-survey"

// Version of the event payload layout.
const Version = "1"

// Event is the envelope of every published message.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Survey    string          `json:"survey"`
	SessionID string          `json:"session_id,omitempty"`
	Answers   json.RawMessage `json:"answers"`
}

// NewEvent builds an event carrying an answers export.
func NewEvent(eventType EventType, survey, sessionID string, answers []byte) *Event {
	if len(answers) == 0 {
		answers = []byte("{}")
	}
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    DefaultSource,
		Version:   Version,
		Survey:    survey,
		SessionID: sessionID,
		Answers:   json.RawMessage(answers),
	}
}

// Submitted builds a survey.submitted event.
func Submitted(survey, sessionID string, answers []byte) *Event {
	return NewEvent(EventSurveySubmitted, survey, sessionID, answers)
}

// Imported builds a survey.imported event.
func Imported(survey, sessionID string, answers []byte) *Event {
	return NewEvent(EventAnswersImported, survey, sessionID, answers)
}
