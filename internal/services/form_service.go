package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/formcraft/formbuilder-service/internal/cache"
	"github.com/formcraft/formbuilder-service/internal/events"
	apperrors "github.com/formcraft/formbuilder-service/internal/errors"
	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/validator"
	"gorm.io/datatypes"
)

// ===== REQUEST STRUCTURES =====

type QuestionRequest struct {
	Type    models.QuestionType `json:"type" validate:"required,question_type"`
	Title   string              `json:"title" validate:"required,min=1,max=500"`
	Image   *string             `json:"image,omitempty"`
	Content json.RawMessage     `json:"content" validate:"required"`
}

type CreateFormRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=200"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=1000"`
	HeaderImage *string           `json:"headerImage,omitempty"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
}

type UpdateFormRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=200"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=1000"`
	HeaderImage *string           `json:"headerImage,omitempty"`
	IsPublished *bool             `json:"isPublished,omitempty"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
}

type PublishFormRequest struct {
	IsPublished bool `json:"isPublished"`
}

// ===== SERVICE =====

type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error)
	Update(ctx context.Context, id uint, req *UpdateFormRequest) (*models.Form, error)
	SetPublished(ctx context.Context, id uint, published bool) (*models.Form, error)
	Delete(ctx context.Context, id uint) error
}

type formService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
}

func NewFormService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) FormService {
	return &formService{
		repo:      repo,
		logger:    logger,
		validator: v,
		cache:     cacheService,
		publisher: publisher,
	}
}

func publishedFormCacheKey(id uint) string {
	return fmt.Sprintf("form:published:%d", id)
}

func (s *formService) Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error) {
	s.logger.Info("Creating form", "title", req.Title)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	questions, err := s.buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	form := &models.Form{
		Title:       req.Title,
		Description: req.Description,
		HeaderImage: req.HeaderImage,
		IsPublished: false,
		Questions:   questions,
	}

	if err := s.repo.Form().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.logger.Info("Form created", "form_id", form.ID, "questions", len(form.Questions))
	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.Form().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	count, err := s.repo.Response().CountByForm(ctx, id)
	if err == nil {
		form.ResponseCount = count
	}

	return form, nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	forms, total, err := s.repo.Form().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, total, nil
}

// Update replaces the form document wholesale, the way form editors save:
// the client sends the complete form, questions included.
func (s *formService) Update(ctx context.Context, id uint, req *UpdateFormRequest) (*models.Form, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	current, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to load form: %w", err)
	}

	questions, err := s.buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	form := &models.Form{
		ID:          current.ID,
		Title:       req.Title,
		Description: req.Description,
		HeaderImage: req.HeaderImage,
		IsPublished: current.IsPublished,
	}
	if req.IsPublished != nil {
		form.IsPublished = *req.IsPublished
	}

	if err := s.repo.Form().Update(ctx, form, questions); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	s.invalidateFormCache(ctx, id)

	return s.GetByID(ctx, id)
}

// SetPublished toggles the publish flag only; it performs no completeness
// check on the form's questions.
func (s *formService) SetPublished(ctx context.Context, id uint, published bool) (*models.Form, error) {
	if err := s.repo.Form().SetPublished(ctx, id, published); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to set publish state: %w", err)
	}

	s.invalidateFormCache(ctx, id)

	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	eventType := events.EventFormPublished
	if !published {
		eventType = events.EventFormUnpublished
	}
	event := events.NewEvent(eventType, events.FormPublishedEvent{
		FormID:        form.ID,
		FormTitle:     form.Title,
		QuestionCount: len(form.Questions),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Event delivery must not fail the request.
		s.logger.Error("Failed to publish form event", "form_id", form.ID, "error", err)
	}

	return form, nil
}

func (s *formService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Form().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	s.invalidateFormCache(ctx, id)
	s.logger.Info("Form deleted", "form_id", id)
	return nil
}

func (s *formService) buildQuestions(requests []QuestionRequest) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(requests))
	for i, qr := range requests {
		questions = append(questions, models.Question{
			Position: i,
			Type:     qr.Type,
			Title:    qr.Title,
			Image:    qr.Image,
			Content:  datatypes.JSON(qr.Content),
		})
	}

	refs := make([]*models.Question, len(questions))
	for i := range questions {
		refs[i] = &questions[i]
	}
	if err := s.validator.Question().ValidateBatch(refs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestionInvalidContent, err)
	}

	return questions, nil
}

func (s *formService) invalidateFormCache(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, publishedFormCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate form cache", "form_id", id, "error", err)
	}
}
