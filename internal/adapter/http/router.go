package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health       *Handler
	Applications *ApplicationHandler
	Counsels     *CounselHandler
	Terms        *TermsHandler
	Files        *FileHandler
	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

// Register mounts every route on e. mw applies to the API routes only, so
// health checks and scrapes bypass idempotency and access logging.
func Register(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	api := e.Group("", mw...)

	apps := api.Group("/applications")
	apps.POST("", h.Applications.Create)
	apps.POST("/files", h.Files.UploadShared)
	apps.GET("/:application_id", h.Applications.Get)
	apps.PUT("/:application_id", h.Applications.Update)
	apps.DELETE("/:application_id", h.Applications.Delete)
	apps.POST("/:application_id/terms", h.Applications.AcceptTerms)
	apps.POST("/:application_id/files", h.Files.Upload)
	apps.GET("/:application_id/files", h.Files.List)
	apps.GET("/:application_id/files/:filename", h.Files.Download)
	apps.DELETE("/:application_id/files", h.Files.DeleteAll)

	counsels := api.Group("/counsels")
	counsels.POST("", h.Counsels.Create)
	counsels.GET("/:counsel_id", h.Counsels.Get)
	counsels.PUT("/:counsel_id", h.Counsels.Update)
	counsels.DELETE("/:counsel_id", h.Counsels.Delete)

	terms := api.Group("/terms")
	terms.POST("", h.Terms.Create)
	terms.GET("", h.Terms.List)
}
