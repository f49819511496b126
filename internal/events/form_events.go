package events

import "time"

// EventType represents the domain events emitted by the form builder
type EventType string

const (
	EventFormPublished     EventType = "form.published"
	EventFormUnpublished   EventType = "form.unpublished"
	EventResponseSubmitted EventType = "response.submitted"
)

// Event is the envelope shared by all published domain events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// FormPublishedEvent fires whenever a form's publish state changes; the Type
// of the envelope distinguishes publish from unpublish.
type FormPublishedEvent struct {
	FormID        uint   `json:"form_id"`
	FormTitle     string `json:"form_title"`
	QuestionCount int    `json:"question_count"`
}

// ResponseSubmittedEvent fires after a submission is accepted and stored.
type ResponseSubmittedEvent struct {
	FormID        uint      `json:"form_id"`
	ResponseID    uint      `json:"response_id"`
	AnsweredCount int       `json:"answered_count"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
