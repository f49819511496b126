package services

import (
	"log/slog"

	"github.com/formcraft/formbuilder-service/internal/cache"
	"github.com/formcraft/formbuilder-service/internal/events"
	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/validator"
)

// ServiceManager exposes all domain services behind one handle
type ServiceManager interface {
	Form() FormService
	Response() ResponseService
	Export() ExportService
	Upload() UploadService
}

type serviceManager struct {
	form     FormService
	response ResponseService
	export   ExportService
	upload   UploadService
}

type ManagerConfig struct {
	Repo           repositories.Repository
	Logger         *slog.Logger
	Validator      *validator.Validator
	Cache          cache.CacheService
	Publisher      events.EventPublisher
	UploadMaxBytes int64
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	return &serviceManager{
		form:     NewFormService(cfg.Repo, cfg.Logger, cfg.Validator, cfg.Cache, cfg.Publisher),
		response: NewResponseService(cfg.Repo, cfg.Logger, cfg.Validator, cfg.Cache, cfg.Publisher),
		export:   NewExportService(cfg.Repo, cfg.Logger),
		upload:   NewUploadService(cfg.Logger, cfg.UploadMaxBytes),
	}
}

func (m *serviceManager) Form() FormService         { return m.form }
func (m *serviceManager) Response() ResponseService { return m.response }
func (m *serviceManager) Export() ExportService     { return m.export }
func (m *serviceManager) Upload() UploadService     { return m.upload }
