package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Response is one respondent's submission to a form. It is created once and
// never updated; deleting the owning form cascades to its responses.
type Response struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FormID      uint      `json:"formId" gorm:"not null;index"`
	SubmittedAt time.Time `json:"submittedAt" gorm:"not null;index"`

	// Ordered by Position, mirroring the submitted sequence.
	Answers []ResponseAnswer `json:"responses" gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE"`
}

func (Response) TableName() string {
	return "responses"
}

// ResponseAnswer is one per-question entry of a submission. QuestionIndex is
// the zero-based index into the form's question sequence as it stood at
// submission time; it is deliberately not foreign-keyed to a question row.
type ResponseAnswer struct {
	ID            uint           `json:"-" gorm:"primaryKey"`
	ResponseID    uint           `json:"-" gorm:"not null;index"`
	Position      int            `json:"-" gorm:"not null"`
	QuestionIndex int            `json:"questionId" gorm:"not null"`
	Type          QuestionType   `json:"type" gorm:"not null;size:20"`
	Answer        datatypes.JSON `json:"answer" gorm:"type:jsonb"`
}

func (ResponseAnswer) TableName() string {
	return "response_answers"
}

// CategorizeAnswer decodes the payload of a categorize answer: item text to
// chosen category name.
func (a *ResponseAnswer) CategorizeAnswer() (map[string]string, error) {
	return decodeAnswerMap[string](a)
}

// ClozeAnswer decodes the payload of a cloze answer: blank index (as a string
// key) to the respondent's fill.
func (a *ResponseAnswer) ClozeAnswer() (map[string]string, error) {
	return decodeAnswerMap[string](a)
}

// ComprehensionAnswer decodes the payload of a comprehension answer:
// sub-question index (as a string key) to the chosen option index.
func (a *ResponseAnswer) ComprehensionAnswer() (map[string]int, error) {
	return decodeAnswerMap[int](a)
}

func decodeAnswerMap[V any](a *ResponseAnswer) (map[string]V, error) {
	if len(a.Answer) == 0 {
		return nil, fmt.Errorf("answer has no payload")
	}
	var m map[string]V
	if err := json.Unmarshal(a.Answer, &m); err != nil {
		return nil, fmt.Errorf("invalid %s answer payload: %w", a.Type, err)
	}
	return m, nil
}
