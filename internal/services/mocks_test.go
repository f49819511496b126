package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/formcraft/formbuilder-service/internal/cache"
	"github.com/formcraft/formbuilder-service/internal/events"
	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/validator"
	"github.com/stretchr/testify/mock"
)

type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Form), args.Error(1)
}

func (m *MockFormRepository) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Form), args.Get(1).(int64), args.Error(2)
}

func (m *MockFormRepository) Update(ctx context.Context, form *models.Form, questions []models.Question) error {
	args := m.Called(ctx, form, questions)
	return args.Error(0)
}

func (m *MockFormRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, error) {
	args := m.Called(ctx, formID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockResponseRepository) CountByForm(ctx context.Context, formID uint) (int64, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRepository struct {
	form     *MockFormRepository
	response *MockResponseRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		form:     &MockFormRepository{},
		response: &MockResponseRepository{},
	}
}

func (m *mockRepository) Form() repositories.FormRepository         { return m.form }
func (m *mockRepository) Response() repositories.ResponseRepository { return m.response }

type serviceFixture struct {
	repo      *mockRepository
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	cache     cache.CacheService
}

func newServiceFixture() *serviceFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &serviceFixture{
		repo:      newMockRepository(),
		publisher: events.NewMockEventPublisher(logger),
		logger:    logger,
		validator: validator.New(),
		cache:     cache.NewNoopCache(),
	}
}

func (f *serviceFixture) formService() FormService {
	return NewFormService(f.repo, f.logger, f.validator, f.cache, f.publisher)
}

func (f *serviceFixture) responseService() ResponseService {
	return NewResponseService(f.repo, f.logger, f.validator, f.cache, f.publisher)
}

func (f *serviceFixture) exportService() ExportService {
	return NewExportService(f.repo, f.logger)
}
