package validator

import (
	"fmt"
	"strings"

	"github.com/formcraft/formbuilder-service/internal/models"
)

// QuestionValidator checks that a question's variant payload is well-formed
// for its declared type.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if strings.TrimSpace(question.Title) == "" {
		return fmt.Errorf("question title is required")
	}
	if !question.Type.Valid() {
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}
	return v.ValidateContent(question)
}

// ValidateBatch validates multiple questions, reporting the 1-based position
// of the first failing one.
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateContent validates the variant payload based on question type
func (v *QuestionValidator) ValidateContent(question *models.Question) error {
	switch question.Type {
	case models.Categorize:
		return v.validateCategorizeContent(question)
	case models.Cloze:
		return v.validateClozeContent(question)
	case models.Comprehension:
		return v.validateComprehensionContent(question)
	default:
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}
}

func (v *QuestionValidator) validateCategorizeContent(question *models.Question) error {
	content, err := question.CategorizeContent()
	if err != nil {
		return err
	}

	if len(content.Categories) == 0 {
		return fmt.Errorf("must have at least 1 category")
	}

	declared := make(map[string]bool, len(content.Categories))
	for _, category := range content.Categories {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("category name cannot be empty")
		}
		if declared[category] {
			return fmt.Errorf("duplicate category: %s", category)
		}
		declared[category] = true
	}

	for i, item := range content.Items {
		if item.Text == "" {
			return fmt.Errorf("item %d text cannot be empty", i+1)
		}
		if !declared[item.CorrectCategory] {
			return fmt.Errorf("item %d correct category '%s' does not match any declared category", i+1, item.CorrectCategory)
		}
	}

	return nil
}

// Cloze blanks are matched to tokens by exact string equality, not by
// position. A token that repeats in the text makes every occurrence render as
// the same blank; the first occurrence is the one that counts.
func (v *QuestionValidator) validateClozeContent(question *models.Question) error {
	content, err := question.ClozeContent()
	if err != nil {
		return err
	}

	if strings.TrimSpace(content.Text) == "" {
		return fmt.Errorf("text is required")
	}

	tokens := make(map[string]bool)
	for _, token := range strings.Fields(content.Text) {
		tokens[token] = true
	}

	for i, blank := range content.Blanks {
		if blank.Text == "" {
			return fmt.Errorf("blank %d text cannot be empty", i+1)
		}
		if !tokens[blank.Text] {
			return fmt.Errorf("blank %d text '%s' does not occur in the source text", i+1, blank.Text)
		}
		if blank.CorrectAnswer == "" {
			return fmt.Errorf("blank %d must have a correct answer", i+1)
		}
	}

	return nil
}

// CorrectAnswer is the authoritative key for a sub-question. IsCorrect flags
// that disagree with it are tolerated rather than rejected.
func (v *QuestionValidator) validateComprehensionContent(question *models.Question) error {
	content, err := question.ComprehensionContent()
	if err != nil {
		return err
	}

	for i, sub := range content.Questions {
		if strings.TrimSpace(sub.Question) == "" {
			return fmt.Errorf("sub-question %d text cannot be empty", i+1)
		}
		if len(sub.Options) == 0 {
			return fmt.Errorf("sub-question %d must have at least 1 option", i+1)
		}
		for j, option := range sub.Options {
			if option.Text == "" {
				return fmt.Errorf("sub-question %d option %d text cannot be empty", i+1, j+1)
			}
		}
		if sub.CorrectAnswer < 0 || sub.CorrectAnswer >= len(sub.Options) {
			return fmt.Errorf("sub-question %d correct answer %d does not index an option", i+1, sub.CorrectAnswer)
		}
	}

	return nil
}
