package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/formcraft/formbuilder-service/internal/models"
)

// ErrEmptySubmission is returned when no answered question remains after the
// per-variant emptiness filter. One answered question is the acceptance floor.
var ErrEmptySubmission = errors.New("submission contains no answered questions")

// MalformedEntryError reports a submitted entry missing a required field,
// identified by its 1-based position in the submitted sequence.
type MalformedEntryError struct {
	Position int
	Field    string
	Reason   string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("response %d: %s %s", e.Position, e.Field, e.Reason)
}

// SubmissionEntry is one candidate per-question answer as it arrives on the
// wire. QuestionID is a pointer so that the literal value 0 — a valid index —
// is distinguishable from an absent field.
type SubmissionEntry struct {
	QuestionID *int            `json:"questionId"`
	Type       string          `json:"type"`
	Answer     json.RawMessage `json:"answer"`
}

// SubmissionValidator is the pure check-and-filter step applied to a
// candidate submission before it is stored.
type SubmissionValidator struct{}

func NewSubmissionValidator() *SubmissionValidator {
	return &SubmissionValidator{}
}

// ValidateEntries filters out unanswered entries, then checks the survivors
// for the required fields. It returns the accepted entries in submitted
// order. The entry's questionId is deliberately not cross-checked against the
// form's question count; stale or out-of-range indices are accepted here and
// resolve to unattempted questions at scoring time.
func (v *SubmissionValidator) ValidateEntries(entries []SubmissionEntry) ([]SubmissionEntry, error) {
	type positioned struct {
		entry    SubmissionEntry
		position int // 1-based position in the submitted sequence
	}

	var answered []positioned
	for i, entry := range entries {
		if isEmptyAnswer(entry.Type, entry.Answer) {
			continue
		}
		answered = append(answered, positioned{entry: entry, position: i + 1})
	}

	if len(answered) == 0 {
		return nil, ErrEmptySubmission
	}

	accepted := make([]SubmissionEntry, 0, len(answered))
	for _, p := range answered {
		if p.entry.QuestionID == nil {
			return nil, &MalformedEntryError{Position: p.position, Field: "questionId", Reason: "is required"}
		}
		if p.entry.Type == "" {
			return nil, &MalformedEntryError{Position: p.position, Field: "type", Reason: "is required"}
		}
		if isNullAnswer(p.entry.Answer) {
			return nil, &MalformedEntryError{Position: p.position, Field: "answer", Reason: "cannot be null"}
		}
		accepted = append(accepted, p.entry)
	}

	return accepted, nil
}

// isEmptyAnswer applies the per-variant emptiness rule: for the three known
// types an answer is empty iff its mapping has zero entries; for anything
// else it is empty iff absent, null, or an empty string.
func isEmptyAnswer(questionType string, answer json.RawMessage) bool {
	if isNullAnswer(answer) {
		return true
	}

	switch models.QuestionType(questionType) {
	case models.Categorize, models.Cloze, models.Comprehension:
		var mapping map[string]json.RawMessage
		if err := json.Unmarshal(answer, &mapping); err != nil {
			// Not an object; whatever it is, it is not empty.
			return false
		}
		return len(mapping) == 0
	default:
		var s string
		if err := json.Unmarshal(answer, &s); err == nil && s == "" {
			return true
		}
		return false
	}
}

func isNullAnswer(answer json.RawMessage) bool {
	return len(answer) == 0 || bytes.Equal(bytes.TrimSpace(answer), []byte("null"))
}
