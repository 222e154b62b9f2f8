package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"hydro_monitor/internal/logger"
	"hydro_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/index.html
var templatesFS embed.FS

const (
	landingTitle        = "Monitor hidropónico"
	landingRefreshMilli = 5000
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	router.GET("/", h.index)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.registerAPIRoutes(router)

	// live view of the in-memory latest reading
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/ingest", h.ingestTokenMiddleware, h.ingest)
		api.GET("/latest", h.latest)
		api.GET("/history", h.history)
		api.GET("/ping", h.ping)
	}
}

// index serves the static landing page.
func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":         landingTitle,
		"RefreshMillis": landingRefreshMilli,
	})
}
