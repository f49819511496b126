package handlers

import (
	"net/http"

	"github.com/formcraft/formbuilder-service/internal/services"
	"github.com/formcraft/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// HandlerManager holds all HTTP handlers
type HandlerManager struct {
	Form     *FormHandler
	Response *ResponseHandler
	Upload   *UploadHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		Form:     NewFormHandler(serviceManager.Form(), logger),
		Response: NewResponseHandler(serviceManager.Response(), serviceManager.Export(), logger),
		Upload:   NewUploadHandler(serviceManager.Upload(), logger),
	}
}

// SetupRoutes registers all routes under /api/v1
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "formbuilder-service",
		})
	})

	v1 := router.Group("/api/v1")

	forms := v1.Group("/forms")
	{
		forms.POST("", hm.Form.CreateForm)
		forms.GET("", hm.Form.ListForms)
		forms.GET("/:id", hm.Form.GetForm)
		forms.PUT("/:id", hm.Form.UpdateForm)
		forms.DELETE("/:id", hm.Form.DeleteForm)
		forms.PATCH("/:id/publish", hm.Form.PublishForm)
	}

	responses := v1.Group("/responses")
	{
		responses.POST("", hm.Response.SubmitResponse)
		responses.GET("/:id", hm.Response.GetResponse)
		responses.GET("/:id/score", hm.Response.ScoreResponse)
		responses.GET("/form/:formId", hm.Response.ListResponses)
		responses.GET("/form/:formId/export", hm.Response.ExportResponses)
		responses.GET("/stats/:formId", hm.Response.GetFormStats)
	}

	v1.POST("/upload", hm.Upload.UploadImage)
}
