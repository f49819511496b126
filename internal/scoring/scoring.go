package scoring

import (
	"strconv"
	"strings"

	"github.com/formcraft/formbuilder-service/internal/models"
)

// QuestionScore is the correctness verdict for one submitted answer measured
// against the question's correct-answer key.
type QuestionScore struct {
	QuestionIndex int                 `json:"questionId"`
	Type          models.QuestionType `json:"type"`
	Attempted     bool                `json:"attempted"`
	Correct       bool                `json:"correct"`
	Fraction      float64             `json:"fraction"`
	CorrectParts  int                 `json:"correctParts"`
	AnsweredParts int                 `json:"answeredParts"`
	TotalParts    int                 `json:"totalParts"`
}

// ResponseScore aggregates the per-question verdicts of one response.
// Unattempted questions are excluded from the denominator: the aggregate
// scores what was answered.
type ResponseScore struct {
	FormID     uint            `json:"formId"`
	ResponseID uint            `json:"responseId"`
	Attempted  int             `json:"attempted"`
	Aggregate  float64         `json:"aggregate"`
	Questions  []QuestionScore `json:"questions"`
}

// ScoreResponse compares a stored response against the owning form's
// correct-answer keys. Entries whose questionId does not resolve to a form
// question of the same type count as unattempted; the submission validator
// deliberately lets such indices through.
func ScoreResponse(form *models.Form, response *models.Response) *ResponseScore {
	result := &ResponseScore{
		FormID:     form.ID,
		ResponseID: response.ID,
		Questions:  make([]QuestionScore, 0, len(response.Answers)),
	}

	var fractionSum float64
	for i := range response.Answers {
		answer := &response.Answers[i]
		score := scoreAnswer(form, answer)
		result.Questions = append(result.Questions, score)
		if score.Attempted {
			result.Attempted++
			fractionSum += score.Fraction
		}
	}

	if result.Attempted > 0 {
		result.Aggregate = fractionSum / float64(result.Attempted)
	}

	return result
}

func scoreAnswer(form *models.Form, answer *models.ResponseAnswer) QuestionScore {
	score := QuestionScore{
		QuestionIndex: answer.QuestionIndex,
		Type:          answer.Type,
	}

	question := form.QuestionAt(answer.QuestionIndex)
	if question == nil || question.Type != answer.Type {
		return score
	}

	switch question.Type {
	case models.Categorize:
		scoreCategorize(question, answer, &score)
	case models.Cloze:
		scoreCloze(question, answer, &score)
	case models.Comprehension:
		scoreComprehension(question, answer, &score)
	}

	finalize(&score)
	return score
}

// Correct iff every item was placed and every placement matches the item's
// correct category. The fraction only counts items the respondent placed.
func scoreCategorize(question *models.Question, answer *models.ResponseAnswer, score *QuestionScore) {
	content, err := question.CategorizeContent()
	if err != nil {
		return
	}
	placements, err := answer.CategorizeAnswer()
	if err != nil {
		return
	}

	score.TotalParts = len(content.Items)
	for _, item := range content.Items {
		chosen, ok := placements[item.Text]
		if !ok {
			continue
		}
		score.AnsweredParts++
		if chosen == item.CorrectCategory {
			score.CorrectParts++
		}
	}
}

// Exact-match policy: case-sensitive comparison after trimming surrounding
// whitespace on both sides. No fuzzy matching.
func scoreCloze(question *models.Question, answer *models.ResponseAnswer, score *QuestionScore) {
	content, err := question.ClozeContent()
	if err != nil {
		return
	}
	fills, err := answer.ClozeAnswer()
	if err != nil {
		return
	}

	score.TotalParts = len(content.Blanks)
	for i, blank := range content.Blanks {
		fill, ok := fills[strconv.Itoa(i)]
		if !ok {
			continue
		}
		score.AnsweredParts++
		if strings.TrimSpace(fill) == strings.TrimSpace(blank.CorrectAnswer) {
			score.CorrectParts++
		}
	}
}

func scoreComprehension(question *models.Question, answer *models.ResponseAnswer, score *QuestionScore) {
	content, err := question.ComprehensionContent()
	if err != nil {
		return
	}
	choices, err := answer.ComprehensionAnswer()
	if err != nil {
		return
	}

	score.TotalParts = len(content.Questions)
	for i, sub := range content.Questions {
		chosen, ok := choices[strconv.Itoa(i)]
		if !ok {
			continue
		}
		score.AnsweredParts++
		if chosen == sub.CorrectAnswer {
			score.CorrectParts++
		}
	}
}

func finalize(score *QuestionScore) {
	score.Attempted = score.AnsweredParts > 0
	if score.AnsweredParts > 0 {
		score.Fraction = float64(score.CorrectParts) / float64(score.AnsweredParts)
	}
	score.Correct = score.TotalParts > 0 &&
		score.AnsweredParts == score.TotalParts &&
		score.CorrectParts == score.TotalParts
}
