package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/formcraft/formbuilder-service/internal/cache"
	"github.com/formcraft/formbuilder-service/internal/events"
	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/scoring"
	"github.com/formcraft/formbuilder-service/internal/validator"
	"gorm.io/datatypes"
)

const publishedFormCacheTTL = 5 * time.Minute

// SubmitResponseRequest is the submission boundary payload
type SubmitResponseRequest struct {
	FormID    uint                        `json:"formId" validate:"required"`
	Responses []validator.SubmissionEntry `json:"responses"`
}

type ResponseService interface {
	Submit(ctx context.Context, req *SubmitResponseRequest) (*models.Response, error)
	GetByID(ctx context.Context, id uint) (*models.Response, error)
	ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, error)
	Score(ctx context.Context, responseID uint) (*scoring.ResponseScore, error)
	Stats(ctx context.Context, formID uint) (*scoring.FormStats, error)
}

type responseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
}

func NewResponseService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) ResponseService {
	return &responseService{
		repo:      repo,
		logger:    logger,
		validator: v,
		cache:     cacheService,
		publisher: publisher,
	}
}

// Submit runs the validation engine against the target form and stores the
// accepted entries as an immutable response.
func (s *responseService) Submit(ctx context.Context, req *SubmitResponseRequest) (*models.Response, error) {
	form, err := s.loadForm(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	if !form.IsPublished {
		return nil, ErrFormNotPublished
	}

	accepted, err := s.validator.Submission().ValidateEntries(req.Responses)
	if err != nil {
		return nil, err
	}

	response := &models.Response{
		FormID:      form.ID,
		SubmittedAt: time.Now(),
		Answers:     make([]models.ResponseAnswer, 0, len(accepted)),
	}
	for i, entry := range accepted {
		response.Answers = append(response.Answers, models.ResponseAnswer{
			Position:      i,
			QuestionIndex: *entry.QuestionID,
			Type:          models.QuestionType(entry.Type),
			Answer:        datatypes.JSON(entry.Answer),
		})
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	event := events.NewEvent(events.EventResponseSubmitted, events.ResponseSubmittedEvent{
		FormID:        form.ID,
		ResponseID:    response.ID,
		AnsweredCount: len(response.Answers),
		SubmittedAt:   response.SubmittedAt,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish response event", "response_id", response.ID, "error", err)
	}

	s.logger.Info("Response stored",
		"form_id", form.ID,
		"response_id", response.ID,
		"answered", len(response.Answers))

	return response, nil
}

func (s *responseService) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	response, err := s.repo.Response().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return response, nil
}

func (s *responseService) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, error) {
	if _, err := s.loadForm(ctx, formID); err != nil {
		return nil, err
	}

	responses, err := s.repo.Response().ListByForm(ctx, formID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// Score computes the per-question verdicts and aggregate for one response
func (s *responseService) Score(ctx context.Context, responseID uint) (*scoring.ResponseScore, error) {
	response, err := s.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}

	form, err := s.loadForm(ctx, response.FormID)
	if err != nil {
		return nil, err
	}

	return scoring.ScoreResponse(form, response), nil
}

// Stats aggregates all of a form's responses through the scoring engine
func (s *responseService) Stats(ctx context.Context, formID uint) (*scoring.FormStats, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses, err := s.repo.Response().ListByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	return scoring.AggregateForm(form, responses), nil
}

// loadForm fetches the form with questions, going through the cache on the
// submission hot path.
func (s *responseService) loadForm(ctx context.Context, formID uint) (*models.Form, error) {
	key := publishedFormCacheKey(formID)

	var cached models.Form
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Form cache read failed", "form_id", formID, "error", err)
	}

	form, err := s.repo.Form().GetByIDWithQuestions(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to load form: %w", err)
	}

	if err := s.cache.Set(ctx, key, form, publishedFormCacheTTL); err != nil {
		s.logger.Warn("Form cache write failed", "form_id", formID, "error", err)
	}

	return form, nil
}
