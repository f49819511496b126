package models

import (
	"time"

	"gorm.io/gorm"
)

// Form is an ordered collection of questions plus publish state. Publishing
// only flips IsPublished; it does not gate on question completeness.
type Form struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" gorm:"type:text" validate:"omitempty,max=1000"`
	HeaderImage *string `json:"headerImage,omitempty" gorm:"type:text"`
	IsPublished bool    `json:"isPublished" gorm:"default:false;index"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Ordered by Position.
	Questions []Question `json:"questions" gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`

	// Computed, not stored.
	ResponseCount int64 `json:"responseCount,omitempty" gorm:"-"`
}

func (Form) TableName() string {
	return "forms"
}

// QuestionAt returns the question at the given zero-based index, or nil when
// the index does not resolve. Submissions may carry stale indices; callers
// treat a nil result as an unattempted question.
func (f *Form) QuestionAt(index int) *Question {
	if index < 0 || index >= len(f.Questions) {
		return nil
	}
	return &f.Questions[index]
}
