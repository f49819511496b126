package postgres

import (
	"context"
	"fmt"

	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db *gorm.DB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{db: db}
}

// Create persists a form together with its ordered questions
func (f *FormPostgreSQL) Create(ctx context.Context, form *models.Form) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(form).Error; err != nil {
			return fmt.Errorf("failed to create form: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a form without its questions
func (f *FormPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	err := f.db.WithContext(ctx).First(&form, id).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// GetByIDWithQuestions retrieves a form with its questions in position order
func (f *FormPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	err := f.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&form, id).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// List retrieves forms sorted per filters, newest first by default
func (f *FormPostgreSQL) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	query := f.db.WithContext(ctx).Model(&models.Form{})

	if filters.IsPublished != nil {
		query = query.Where("is_published = ?", *filters.IsPublished)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count forms: %w", err)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var forms []*models.Form
	if err := query.Find(&forms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list forms: %w", err)
	}

	return forms, total, nil
}

// Update replaces the form's fields and its full question sequence in one
// transaction. Edits arrive as whole-form documents, so replacement is the
// update model; gorm refreshes updated_at on save.
func (f *FormPostgreSQL) Update(ctx context.Context, form *models.Form, questions []models.Question) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Form
		if err := tx.First(&current, form.ID).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":        form.Title,
			"description":  form.Description,
			"header_image": form.HeaderImage,
			"is_published": form.IsPublished,
		}
		if err := tx.Model(&current).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update form: %w", err)
		}

		if err := tx.Where("form_id = ?", form.ID).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to clear form questions: %w", err)
		}

		for i := range questions {
			questions[i].ID = 0
			questions[i].FormID = form.ID
			questions[i].Position = i
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to recreate form questions: %w", err)
			}
		}

		return nil
	})
}

// SetPublished toggles only the publish flag
func (f *FormPostgreSQL) SetPublished(ctx context.Context, id uint, published bool) error {
	result := f.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Update("is_published", published)
	if result.Error != nil {
		return fmt.Errorf("failed to update publish state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the form, its questions and its responses
func (f *FormPostgreSQL) Delete(ctx context.Context, id uint) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var form models.Form
		if err := tx.First(&form, id).Error; err != nil {
			return err
		}

		var responseIDs []uint
		if err := tx.Model(&models.Response{}).
			Where("form_id = ?", id).
			Pluck("id", &responseIDs).Error; err != nil {
			return fmt.Errorf("failed to collect responses: %w", err)
		}

		if len(responseIDs) > 0 {
			if err := tx.Where("response_id IN ?", responseIDs).
				Delete(&models.ResponseAnswer{}).Error; err != nil {
				return fmt.Errorf("failed to delete response answers: %w", err)
			}
			if err := tx.Where("form_id = ?", id).Delete(&models.Response{}).Error; err != nil {
				return fmt.Errorf("failed to delete responses: %w", err)
			}
		}

		if err := tx.Where("form_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete form questions: %w", err)
		}

		if err := tx.Delete(&form).Error; err != nil {
			return fmt.Errorf("failed to delete form: %w", err)
		}

		return nil
	})
}
