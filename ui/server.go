// Package ui serves the RACI dashboard and its JSON API.
package ui

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"racidash/app"
	"racidash/internal"
	"racidash/internal/config"
	"racidash/web"
)

// Server wires the dataset service into gin routes.
type Server struct {
	router  *gin.Engine
	service *app.DatasetService
	cfg     *config.Config
	logger  *internal.Logger
}

// NewServer creates a server around the shared dataset service.
func NewServer(service *app.DatasetService, cfg *config.Config) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	s := &Server{
		router:  gin.Default(),
		service: service,
		cfg:     cfg,
		logger:  internal.NewDefaultLogger(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(web.Assets, "static")
	if err != nil {
		s.logger.Error("[Server] creating static filesystem: %v", err)
	} else {
		s.router.StaticFS("/static", http.FS(staticFS))
	}

	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/data", s.handleData)
		api.POST("/upload", s.handleUpload)
		api.POST("/export/html", s.handleExportHTML)
		api.POST("/export/powerbi", s.handleExportPowerBI)
		api.PUT("/raci/cell", s.handleUpdateCell)
		api.PUT("/raci/maturity", s.handleUpdateMaturity)
		api.GET("/history", s.handleHistory)
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving on addr and blocks.
func (s *Server) Start(addr string) error {
	s.logger.Info("[Server] RACI dashboard on http://%s", addr)
	return s.router.Run(addr)
}
