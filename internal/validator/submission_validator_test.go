package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestValidateEntries_EmptyList(t *testing.T) {
	v := NewSubmissionValidator()

	_, err := v.ValidateEntries(nil)
	assert.ErrorIs(t, err, ErrEmptySubmission)

	_, err = v.ValidateEntries([]SubmissionEntry{})
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestValidateEntries_AllAnswersEmpty(t *testing.T) {
	v := NewSubmissionValidator()

	entries := []SubmissionEntry{
		{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{}`)},
		{QuestionID: intPtr(1), Type: "cloze", Answer: json.RawMessage(`{}`)},
		{QuestionID: intPtr(2), Type: "comprehension", Answer: json.RawMessage(`null`)},
	}

	_, err := v.ValidateEntries(entries)
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestValidateEntries_QuestionIDZeroIsValid(t *testing.T) {
	v := NewSubmissionValidator()

	entries := []SubmissionEntry{
		{QuestionID: intPtr(0), Type: "cloze", Answer: json.RawMessage(`{"0":"Paris"}`)},
	}

	accepted, err := v.ValidateEntries(entries)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, 0, *accepted[0].QuestionID)
}

func TestValidateEntries_MissingQuestionID(t *testing.T) {
	v := NewSubmissionValidator()

	entries := []SubmissionEntry{
		{Type: "cloze", Answer: json.RawMessage(`{"0":"Paris"}`)},
	}

	_, err := v.ValidateEntries(entries)
	var malformed *MalformedEntryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Position)
	assert.Equal(t, "questionId", malformed.Field)
	assert.Equal(t, "response 1: questionId is required", malformed.Error())
}

func TestValidateEntries_MissingType(t *testing.T) {
	v := NewSubmissionValidator()

	entries := []SubmissionEntry{
		{QuestionID: intPtr(0), Answer: json.RawMessage(`"something"`)},
	}

	_, err := v.ValidateEntries(entries)
	var malformed *MalformedEntryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "type", malformed.Field)
}

// Positions in malformed-entry errors refer to the submitted sequence, not the
// filtered one. An empty entry before the broken one must not shift the index.
func TestValidateEntries_PositionSurvivesFiltering(t *testing.T) {
	v := NewSubmissionValidator()

	entries := []SubmissionEntry{
		{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{}`)},
		{Type: "cloze", Answer: json.RawMessage(`{"0":"Paris"}`)},
	}

	_, err := v.ValidateEntries(entries)
	var malformed *MalformedEntryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Position)
}

func TestValidateEntries_FiltersEmptiesKeepsAnswered(t *testing.T) {
	v := NewSubmissionValidator()

	entries := []SubmissionEntry{
		{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{}`)},
		{QuestionID: intPtr(1), Type: "cloze", Answer: json.RawMessage(`{"0":"Paris"}`)},
		{QuestionID: intPtr(2), Type: "comprehension", Answer: json.RawMessage(`{"0":1}`)},
	}

	accepted, err := v.ValidateEntries(entries)
	require.NoError(t, err)
	require.Len(t, accepted, 2)
	assert.Equal(t, 1, *accepted[0].QuestionID)
	assert.Equal(t, 2, *accepted[1].QuestionID)
}

func TestIsEmptyAnswer(t *testing.T) {
	tests := []struct {
		name   string
		qtype  string
		answer string
		empty  bool
	}{
		{"known type empty object", "categorize", `{}`, true},
		{"known type populated object", "categorize", `{"Apple":"Fruit"}`, false},
		{"known type null", "cloze", `null`, true},
		{"unknown type empty string", "text", `""`, true},
		{"unknown type value", "text", `"hello"`, false},
		{"unknown type zero", "rating", `0`, false},
		{"absent payload", "cloze", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var answer json.RawMessage
			if tt.answer != "" {
				answer = json.RawMessage(tt.answer)
			}
			assert.Equal(t, tt.empty, isEmptyAnswer(tt.qtype, answer))
		})
	}
}
