package validator

import (
	"testing"

	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQuestion(t *testing.T, qt models.QuestionType, content any) *models.Question {
	t.Helper()
	payload, err := models.EncodeContent(content)
	require.NoError(t, err)
	return &models.Question{
		Type:    qt,
		Title:   "Test question",
		Content: payload,
	}
}

func TestValidateQuestion_RequiresTitle(t *testing.T) {
	v := NewQuestionValidator()

	q := buildQuestion(t, models.Categorize, models.CategorizeContent{
		Categories: []string{"Fruit"},
	})
	q.Title = "   "

	err := v.ValidateQuestion(q)
	assert.ErrorContains(t, err, "title is required")
}

func TestValidateQuestion_RejectsUnknownType(t *testing.T) {
	v := NewQuestionValidator()

	q := buildQuestion(t, models.Categorize, models.CategorizeContent{
		Categories: []string{"Fruit"},
	})
	q.Type = "ranking"

	err := v.ValidateQuestion(q)
	assert.ErrorContains(t, err, "unsupported question type")
}

func TestValidateCategorize(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name    string
		content models.CategorizeContent
		wantErr string
	}{
		{
			name: "valid",
			content: models.CategorizeContent{
				Categories: []string{"Fruit", "Veg"},
				Items: []models.CategorizeItem{
					{Text: "Apple", CorrectCategory: "Fruit"},
					{Text: "Carrot", CorrectCategory: "Veg"},
				},
			},
		},
		{
			name:    "no categories",
			content: models.CategorizeContent{},
			wantErr: "at least 1 category",
		},
		{
			name: "blank category name",
			content: models.CategorizeContent{
				Categories: []string{"Fruit", "  "},
			},
			wantErr: "category name cannot be empty",
		},
		{
			name: "duplicate category",
			content: models.CategorizeContent{
				Categories: []string{"Fruit", "Fruit"},
			},
			wantErr: "duplicate category",
		},
		{
			name: "item points at undeclared category",
			content: models.CategorizeContent{
				Categories: []string{"Fruit"},
				Items: []models.CategorizeItem{
					{Text: "Carrot", CorrectCategory: "Veg"},
				},
			},
			wantErr: "does not match any declared category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuestion(t, models.Categorize, tt.content)
			err := v.ValidateQuestion(q)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCloze(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name    string
		content models.ClozeContent
		wantErr string
	}{
		{
			name: "valid",
			content: models.ClozeContent{
				Text: "The capital of France is Paris",
				Blanks: []models.ClozeBlank{
					{Text: "Paris", CorrectAnswer: "Paris"},
				},
			},
		},
		{
			name:    "missing text",
			content: models.ClozeContent{Text: "  "},
			wantErr: "text is required",
		},
		{
			name: "blank not a token of the text",
			content: models.ClozeContent{
				Text: "The capital of France is Paris",
				Blanks: []models.ClozeBlank{
					{Text: "London", CorrectAnswer: "London"},
				},
			},
			wantErr: "does not occur in the source text",
		},
		{
			name: "blank missing correct answer",
			content: models.ClozeContent{
				Text: "The capital of France is Paris",
				Blanks: []models.ClozeBlank{
					{Text: "Paris"},
				},
			},
			wantErr: "must have a correct answer",
		},
		{
			name: "repeated token is accepted",
			content: models.ClozeContent{
				Text: "the cat sat on the mat",
				Blanks: []models.ClozeBlank{
					{Text: "the", CorrectAnswer: "the"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuestion(t, models.Cloze, tt.content)
			err := v.ValidateQuestion(q)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateComprehension(t *testing.T) {
	v := NewQuestionValidator()

	options := []models.ComprehensionOption{
		{Text: "Red"},
		{Text: "Blue", IsCorrect: true},
	}

	tests := []struct {
		name    string
		content models.ComprehensionContent
		wantErr string
	}{
		{
			name: "valid",
			content: models.ComprehensionContent{
				Paragraph: "The sky is blue.",
				Questions: []models.SubQuestion{
					{Question: "What color is the sky?", Options: options, CorrectAnswer: 1},
				},
			},
		},
		{
			name: "empty sub-question text",
			content: models.ComprehensionContent{
				Questions: []models.SubQuestion{
					{Question: " ", Options: options, CorrectAnswer: 0},
				},
			},
			wantErr: "text cannot be empty",
		},
		{
			name: "no options",
			content: models.ComprehensionContent{
				Questions: []models.SubQuestion{
					{Question: "Pick one"},
				},
			},
			wantErr: "at least 1 option",
		},
		{
			name: "correct answer out of range",
			content: models.ComprehensionContent{
				Questions: []models.SubQuestion{
					{Question: "Pick one", Options: options, CorrectAnswer: 5},
				},
			},
			wantErr: "does not index an option",
		},
		{
			name: "isCorrect drift is tolerated",
			content: models.ComprehensionContent{
				Questions: []models.SubQuestion{
					// flag says option 1, key says option 0
					{Question: "Pick one", Options: options, CorrectAnswer: 0},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuestion(t, models.Comprehension, tt.content)
			err := v.ValidateQuestion(q)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBatch_ReportsOneBasedPosition(t *testing.T) {
	v := NewQuestionValidator()

	good := buildQuestion(t, models.Cloze, models.ClozeContent{
		Text:   "Go is fun",
		Blanks: []models.ClozeBlank{{Text: "fun", CorrectAnswer: "fun"}},
	})
	bad := buildQuestion(t, models.Categorize, models.CategorizeContent{})

	err := v.ValidateBatch([]*models.Question{good, bad})
	assert.ErrorContains(t, err, "validation failed for question 2")
}
