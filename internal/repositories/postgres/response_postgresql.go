package postgres

import (
	"context"
	"fmt"

	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Create persists a response with its answers. Responses are write-once;
// there is no update path.
func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a response with its answers in submitted order
func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	var response models.Response
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByForm retrieves a form's responses, newest submission first
func (r *ResponsePostgreSQL) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) ([]*models.Response, error) {
	query := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("submitted_at DESC")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var responses []*models.Response
	if err := query.Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// CountByForm counts the responses stored for a form
func (r *ResponsePostgreSQL) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
