package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	Categorize    QuestionType = "categorize"
	Cloze         QuestionType = "cloze"
	Comprehension QuestionType = "comprehension"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case Categorize, Cloze, Comprehension:
		return true
	}
	return false
}

// Question is one entry in a form. The variant payload lives in Content as
// JSONB and is decoded into the typed content struct matching Type.
type Question struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	FormID   uint           `json:"formId" gorm:"not null;index"`
	Position int            `json:"position" gorm:"not null"`
	Type     QuestionType   `json:"type" gorm:"not null;size:20" validate:"required,question_type"`
	Title    string         `json:"title" gorm:"not null;size:500" validate:"required,min=1,max=500"`
	Image    *string        `json:"image,omitempty" gorm:"type:text"`
	Content  datatypes.JSON `json:"content" gorm:"type:jsonb"`
}

func (Question) TableName() string {
	return "form_questions"
}

// Categorize variant: respondents drag items into the declared categories.

type CategorizeItem struct {
	Text            string `json:"text"`
	CorrectCategory string `json:"correctCategory"`
}

type CategorizeContent struct {
	Categories []string         `json:"categories"`
	Items      []CategorizeItem `json:"items"`
}

// Cloze variant: blanks are declared by token text occurring in the source
// sentence. A repeated token always resolves to its first occurrence.

type ClozeBlank struct {
	Text          string `json:"text"`
	CorrectAnswer string `json:"correctAnswer"`
}

type ClozeContent struct {
	Text   string       `json:"text"`
	Blanks []ClozeBlank `json:"blanks"`
}

// Comprehension variant: a paragraph followed by single-choice sub-questions.
// CorrectAnswer is the authoritative key; IsCorrect flags are display hints.

type ComprehensionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type SubQuestion struct {
	Question      string                `json:"question"`
	Options       []ComprehensionOption `json:"options"`
	CorrectAnswer int                   `json:"correctAnswer"`
}

type ComprehensionContent struct {
	Paragraph string        `json:"paragraph"`
	Questions []SubQuestion `json:"questions"`
}

// DecodeContent unmarshals the question's JSONB payload into dst, which must
// be the content struct matching the question's type.
func (q *Question) DecodeContent(dst any) error {
	if len(q.Content) == 0 {
		return fmt.Errorf("question has no content payload")
	}
	if err := json.Unmarshal(q.Content, dst); err != nil {
		return fmt.Errorf("invalid %s content: %w", q.Type, err)
	}
	return nil
}

// CategorizeContent decodes the payload of a categorize question.
func (q *Question) CategorizeContent() (*CategorizeContent, error) {
	var content CategorizeContent
	if err := q.DecodeContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// ClozeContent decodes the payload of a cloze question.
func (q *Question) ClozeContent() (*ClozeContent, error) {
	var content ClozeContent
	if err := q.DecodeContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// ComprehensionContent decodes the payload of a comprehension question.
func (q *Question) ComprehensionContent() (*ComprehensionContent, error) {
	var content ComprehensionContent
	if err := q.DecodeContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// EncodeContent marshals a typed content struct into the JSONB representation
// stored on a question.
func EncodeContent(content any) (datatypes.JSON, error) {
	b, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question content: %w", err)
	}
	return datatypes.JSON(b), nil
}
