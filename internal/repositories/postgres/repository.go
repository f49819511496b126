package postgres

import (
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	form     repositories.FormRepository
	response repositories.ResponseRepository
}

// NewRepository wires the gorm-backed repositories behind the aggregate handle
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		form:     NewFormPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Form() repositories.FormRepository {
	return r.form
}

func (r *repository) Response() repositories.ResponseRepository {
	return r.response
}
