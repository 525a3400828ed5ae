package frontend

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikey/llm-fraud-checker/internal/config"
	"github.com/mikey/llm-fraud-checker/internal/core"
	"github.com/mikey/llm-fraud-checker/internal/docs"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTTPServer serves the check page and the JSON API
type HTTPServer struct {
	service *core.FraudCheckService
	logger  *zap.Logger
	cfg     config.ServerConfig
	engine  *gin.Engine
	server  *http.Server
}

// NewHTTPServer builds the gin engine and registers every route
func NewHTTPServer(service *core.FraudCheckService, logger *zap.Logger, cfg config.ServerConfig) (*HTTPServer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"imageSrc": imageSrc,
		"deref":    func(b *bool) bool { return b != nil && *b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &HTTPServer{
		service: service,
		logger:  logger,
		cfg:     cfg,
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		gin.Recovery(),
		requestLogger(logger),
		requestSizeLimiter(cfg.MaxRequestBodySize),
	)

	r.GET("/", s.index)
	r.POST("/", s.index)
	r.GET("/health", healthCheck)

	if cfg.StaticRoot != "" {
		r.Static("/static", cfg.StaticRoot)
	}
	if cfg.Swagger {
		docs.SwaggerInfo.BasePath = "/"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	api := r.Group("/api", errorHandler(logger))
	{
		api.POST("/ocr", s.apiOCR)
		api.POST("/check-url", s.apiCheckURL)
		api.POST("/check-114", s.apiCheck114)
		api.POST("/check-fraud", s.apiCheckFraud)
	}

	s.engine = r
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Start starts listening in the background
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("HTTP frontend starting", zap.String("address", s.cfg.ListenAddress))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests, bounded by the shutdown timeout
func (s *HTTPServer) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// imageSrc maps a stored upload location to something a browser can load
func imageSrc(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return "/static/" + strings.TrimPrefix(path, "/")
}
