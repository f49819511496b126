package scoring

import "github.com/formcraft/formbuilder-service/internal/models"

// QuestionStat aggregates the verdicts one question collected across a form's
// responses.
type QuestionStat struct {
	QuestionIndex   int                 `json:"questionId"`
	Type            models.QuestionType `json:"type"`
	Title           string              `json:"title"`
	Attempts        int                 `json:"attempts"`
	CorrectCount    int                 `json:"correctCount"`
	AverageFraction float64             `json:"averageFraction"`
}

// FormStats summarizes all responses collected for a form.
type FormStats struct {
	FormID         uint           `json:"formId"`
	TotalResponses int            `json:"totalResponses"`
	AverageScore   float64        `json:"averageScore"`
	Questions      []QuestionStat `json:"questionStats"`
}

// AggregateForm scores every response against the form and rolls the results
// up per question and for the form as a whole. The average score only spans
// responses that attempted at least one question.
func AggregateForm(form *models.Form, responses []*models.Response) *FormStats {
	stats := &FormStats{
		FormID:         form.ID,
		TotalResponses: len(responses),
		Questions:      make([]QuestionStat, len(form.Questions)),
	}

	for i := range form.Questions {
		stats.Questions[i] = QuestionStat{
			QuestionIndex: i,
			Type:          form.Questions[i].Type,
			Title:         form.Questions[i].Title,
		}
	}

	fractionSums := make([]float64, len(form.Questions))

	var scoreSum float64
	var scored int
	for _, response := range responses {
		result := ScoreResponse(form, response)
		if result.Attempted == 0 {
			continue
		}
		scored++
		scoreSum += result.Aggregate

		for _, qs := range result.Questions {
			if !qs.Attempted || qs.QuestionIndex < 0 || qs.QuestionIndex >= len(stats.Questions) {
				continue
			}
			stat := &stats.Questions[qs.QuestionIndex]
			stat.Attempts++
			fractionSums[qs.QuestionIndex] += qs.Fraction
			if qs.Correct {
				stat.CorrectCount++
			}
		}
	}

	if scored > 0 {
		stats.AverageScore = scoreSum / float64(scored)
	}
	for i := range stats.Questions {
		if stats.Questions[i].Attempts > 0 {
			stats.Questions[i].AverageFraction = fractionSums[i] / float64(stats.Questions[i].Attempts)
		}
	}

	return stats
}
