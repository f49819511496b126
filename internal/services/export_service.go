package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/scoring"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a form's responses as a flat table: one row per
// response, one column per question.
type ExportService interface {
	ExportResponsesCSV(ctx context.Context, formID uint) ([]byte, error)
	ExportResponsesExcel(ctx context.Context, formID uint) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) ExportResponsesCSV(ctx context.Context, formID uint) ([]byte, error) {
	header, rows, err := s.buildTable(ctx, formID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *exportService) ExportResponsesExcel(ctx context.Context, formID uint) ([]byte, error) {
	header, rows, err := s.buildTable(ctx, formID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Responses"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, cell := range header {
		headerRow[i] = cell
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) buildTable(ctx context.Context, formID uint) ([]string, [][]string, error) {
	form, err := s.repo.Form().GetByIDWithQuestions(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrFormNotFound
		}
		return nil, nil, fmt.Errorf("failed to load form: %w", err)
	}

	responses, err := s.repo.Response().ListByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load responses: %w", err)
	}

	header := []string{"Response ID", "Submitted At", "Score"}
	for i := range form.Questions {
		header = append(header, fmt.Sprintf("Q%d: %s", i+1, form.Questions[i].Title))
	}

	rows := make([][]string, 0, len(responses))
	for _, response := range responses {
		score := scoring.ScoreResponse(form, response)

		row := []string{
			strconv.FormatUint(uint64(response.ID), 10),
			response.SubmittedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", score.Aggregate),
		}

		cells := make([]string, len(form.Questions))
		for j := range response.Answers {
			answer := &response.Answers[j]
			question := form.QuestionAt(answer.QuestionIndex)
			if question == nil {
				continue
			}
			cells[answer.QuestionIndex] = formatAnswerCell(question, answer)
		}
		row = append(row, cells...)
		rows = append(rows, row)
	}

	return header, rows, nil
}

// formatAnswerCell renders one answer in the flat "part: value; part: value"
// form, e.g. categorize becomes "Apple: Fruit; Carrot: Veg".
func formatAnswerCell(question *models.Question, answer *models.ResponseAnswer) string {
	switch question.Type {
	case models.Categorize:
		return formatCategorizeCell(question, answer)
	case models.Cloze:
		return formatClozeCell(question, answer)
	case models.Comprehension:
		return formatComprehensionCell(question, answer)
	default:
		return string(answer.Answer)
	}
}

func formatCategorizeCell(question *models.Question, answer *models.ResponseAnswer) string {
	content, err := question.CategorizeContent()
	if err != nil {
		return ""
	}
	placements, err := answer.CategorizeAnswer()
	if err != nil {
		return ""
	}

	parts := make([]string, 0, len(content.Items))
	for _, item := range content.Items {
		if category, ok := placements[item.Text]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", item.Text, category))
		}
	}
	return strings.Join(parts, "; ")
}

func formatClozeCell(question *models.Question, answer *models.ResponseAnswer) string {
	content, err := question.ClozeContent()
	if err != nil {
		return ""
	}
	fills, err := answer.ClozeAnswer()
	if err != nil {
		return ""
	}

	parts := make([]string, 0, len(content.Blanks))
	for i := range content.Blanks {
		if fill, ok := fills[strconv.Itoa(i)]; ok {
			parts = append(parts, fmt.Sprintf("%d: %s", i+1, fill))
		}
	}
	return strings.Join(parts, "; ")
}

func formatComprehensionCell(question *models.Question, answer *models.ResponseAnswer) string {
	content, err := question.ComprehensionContent()
	if err != nil {
		return ""
	}
	choices, err := answer.ComprehensionAnswer()
	if err != nil {
		return ""
	}

	parts := make([]string, 0, len(content.Questions))
	for i, sub := range content.Questions {
		chosen, ok := choices[strconv.Itoa(i)]
		if !ok {
			continue
		}
		label := strconv.Itoa(chosen)
		if chosen >= 0 && chosen < len(sub.Options) {
			label = sub.Options[chosen].Text
		}
		parts = append(parts, fmt.Sprintf("%d: %s", i+1, label))
	}
	return strings.Join(parts, "; ")
}
