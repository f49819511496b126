package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/formcraft/formbuilder-service/internal/events"
	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func intPtr(i int) *int { return &i }

func publishedForm(t *testing.T) *models.Form {
	t.Helper()
	content, err := models.EncodeContent(models.CategorizeContent{
		Categories: []string{"Fruit", "Veg"},
		Items: []models.CategorizeItem{
			{Text: "Apple", CorrectCategory: "Fruit"},
			{Text: "Carrot", CorrectCategory: "Veg"},
		},
	})
	require.NoError(t, err)

	return &models.Form{
		ID:          1,
		Title:       "Food quiz",
		IsPublished: true,
		Questions: []models.Question{
			{Position: 0, Type: models.Categorize, Title: "Sort the food", Content: content},
		},
	}
}

func TestResponseService_Submit(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(publishedForm(t), nil)
	f.repo.response.On("Create", mock.Anything, mock.AnythingOfType("*models.Response")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Response).ID = 42
		}).
		Return(nil)

	req := &SubmitResponseRequest{
		FormID: 1,
		Responses: []validator.SubmissionEntry{
			{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{"Apple":"Fruit"}`)},
		},
	}

	response, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, uint(42), response.ID)
	assert.Equal(t, uint(1), response.FormID)
	require.Len(t, response.Answers, 1)
	assert.Equal(t, 0, response.Answers[0].QuestionIndex)
	assert.False(t, response.SubmittedAt.IsZero())

	published := f.publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResponseSubmitted, published[0].Type)
}

func TestResponseService_Submit_FormNotFound(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(9)).
		Return(nil, gorm.ErrRecordNotFound)

	req := &SubmitResponseRequest{
		FormID: 9,
		Responses: []validator.SubmissionEntry{
			{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{"Apple":"Fruit"}`)},
		},
	}

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestResponseService_Submit_Unpublished(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	form := publishedForm(t)
	form.IsPublished = false
	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(form, nil)

	req := &SubmitResponseRequest{
		FormID: 1,
		Responses: []validator.SubmissionEntry{
			{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{"Apple":"Fruit"}`)},
		},
	}

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrFormNotPublished)
	f.repo.response.AssertNotCalled(t, "Create")
}

func TestResponseService_Submit_EmptySubmission(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(publishedForm(t), nil)

	req := &SubmitResponseRequest{
		FormID: 1,
		Responses: []validator.SubmissionEntry{
			{QuestionID: intPtr(0), Type: "categorize", Answer: json.RawMessage(`{}`)},
		},
	}

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmptySubmission)
	assert.True(t, IsSubmissionRejected(err))
	f.repo.response.AssertNotCalled(t, "Create")
}

func TestResponseService_Submit_MalformedEntry(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(publishedForm(t), nil)

	req := &SubmitResponseRequest{
		FormID: 1,
		Responses: []validator.SubmissionEntry{
			{Type: "categorize", Answer: json.RawMessage(`{"Apple":"Fruit"}`)},
		},
	}

	_, err := svc.Submit(context.Background(), req)
	var malformed *MalformedEntryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Position)
	assert.True(t, IsSubmissionRejected(err))
}

// Out-of-range indices pass validation and are stored; they only surface as
// unattempted at scoring time.
func TestResponseService_Submit_StaleIndexAccepted(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(publishedForm(t), nil)
	f.repo.response.On("Create", mock.Anything, mock.AnythingOfType("*models.Response")).
		Return(nil)

	req := &SubmitResponseRequest{
		FormID: 1,
		Responses: []validator.SubmissionEntry{
			{QuestionID: intPtr(7), Type: "categorize", Answer: json.RawMessage(`{"Apple":"Fruit"}`)},
		},
	}

	response, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 7, response.Answers[0].QuestionIndex)
}

func TestResponseService_Score(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	response := &models.Response{
		ID:     42,
		FormID: 1,
		Answers: []models.ResponseAnswer{
			{
				QuestionIndex: 0,
				Type:          models.Categorize,
				Answer:        datatypes.JSON(`{"Apple":"Fruit","Carrot":"Veg"}`),
			},
		},
	}

	f.repo.response.On("GetByID", mock.Anything, uint(42)).Return(response, nil)
	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(publishedForm(t), nil)

	score, err := svc.Score(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), score.ResponseID)
	assert.Equal(t, 1.0, score.Aggregate)
}

func TestResponseService_Score_ResponseNotFound(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.response.On("GetByID", mock.Anything, uint(7)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Score(context.Background(), 7)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestResponseService_Stats(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	responses := []*models.Response{
		{Answers: []models.ResponseAnswer{
			{QuestionIndex: 0, Type: models.Categorize, Answer: datatypes.JSON(`{"Apple":"Fruit","Carrot":"Veg"}`)},
		}},
	}

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(1)).
		Return(publishedForm(t), nil)
	f.repo.response.On("ListByForm", mock.Anything, uint(1), repositories.ResponseFilters{}).
		Return(responses, nil)

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalResponses)
	assert.Equal(t, 1.0, stats.AverageScore)
}

func TestResponseService_ListByForm_FormNotFound(t *testing.T) {
	f := newServiceFixture()
	svc := f.responseService()

	f.repo.form.On("GetByIDWithQuestions", mock.Anything, uint(9)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ListByForm(context.Background(), 9, repositories.ResponseFilters{})
	assert.ErrorIs(t, err, ErrFormNotFound)
}
