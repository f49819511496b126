package repositories

import (
	"context"
	"errors"

	"github.com/formcraft/formbuilder-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	IsPublished *bool  `json:"is_published"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	SortBy      string `json:"sort_by"`    // "created_at", "updated_at", "title"
	SortOrder   string `json:"sort_order"` // "asc", "desc"
}

type ResponseFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context, filters FormFilters) ([]*models.Form, int64, error)
	Update(ctx context.Context, form *models.Form, questions []models.Question) error
	SetPublished(ctx context.Context, id uint, published bool) error
	Delete(ctx context.Context, id uint) error
}

type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	GetByID(ctx context.Context, id uint) (*models.Response, error)
	ListByForm(ctx context.Context, formID uint, filters ResponseFilters) ([]*models.Response, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
}

// Repository aggregates all entity repositories behind one handle
type Repository interface {
	Form() FormRepository
	Response() ResponseRepository
}

// IsNotFoundError reports whether err is the storage layer's not-found signal
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
