package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/predictor"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Predictor is the subset of the prediction service client the web layer
// uses.
type Predictor interface {
	HealthCheck(ctx context.Context) (*model.HealthResponse, error)
	PredictRisk(ctx context.Context, patient model.PatientData) (*model.PredictionResponse, error)
}

type Options struct {
	CORSOrigins  []string
	MaxBodyBytes int64
	SessionTTL   time.Duration
	MaxSessions  int
}

type Server struct {
	predictor Predictor
	sessions  *SessionStore
	logger    zerolog.Logger
	opts      Options
	health    atomic.Pointer[model.HealthResponse]
}

func NewServer(p Predictor, logger zerolog.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 10000
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{
		predictor: p,
		sessions:  NewSessionStore(opts.SessionTTL, opts.MaxSessions),
		logger:    logger,
		opts:      opts,
	}
}

// CheckUpstream polls the prediction service once. The result drives the
// status indicator in the page header; on failure no indicator is shown.
func (s *Server) CheckUpstream(ctx context.Context) {
	h, err := s.predictor.HealthCheck(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("prediction service health check failed")
		return
	}
	s.health.Store(h)
	s.logger.Info().
		Str("status", h.Status).
		Bool("models_loaded", h.ModelsLoaded).
		Msg("prediction service reachable")
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(s.logger),
		gin.Recovery(),
		LimitBodySize(s.opts.MaxBodyBytes),
	)

	router.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl"),
	))
	static, _ := fs.Sub(staticFS, "static")
	router.StaticFS("/static", http.FS(static))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", s.readyz)

	pages := router.Group("/", Sessions(s.sessions))
	pages.GET("/", s.index)
	pages.POST("/assess", s.assess)
	pages.POST("/new", s.newPrediction)
	pages.POST("/retry", s.retry)

	api := router.Group("/api", cors.New(cors.Config{
		AllowOrigins: s.opts.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	api.GET("/health", s.apiHealth)
	api.POST("/predict", s.apiPredict)

	return router
}

// errorMessage extracts the display text of a prediction failure.
func errorMessage(err error) string {
	var perr *predictor.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}
