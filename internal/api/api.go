// Package api exposes the assessment service over HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"PAIBot/internal/advisor"
	"PAIBot/internal/assessment"
	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/session"
)

// AppInfo is the public part of the configuration served by /api/masterdata.
type AppInfo struct {
	MaxRounds           int     `json:"maxRounds"`
	ConfidenceThreshold float64 `json:"confidenceThreshold"`
	SessionTimeout      int     `json:"sessionTimeoutMinutes"`
	CatalogVersion      string  `json:"catalogVersion"`
}

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Advisor       *advisor.Service
	Catalog       *catalog.Catalog
	Info          AppInfo
	DefaultLocale i18n.Locale
	Logger        *zap.Logger
}

// envelope is the response body of every API route.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: msg})
}

// NewRouter wires all routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.DefaultLocale == "" {
		d.DefaultLocale = i18n.Default
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g := r.Group("/api")
	g.POST("/assessment/start", StartAssessment(d))
	g.POST("/assessment/chat", Chat(d))
	g.GET("/assessment/result/:id", GetResult(d))
	g.GET("/tracks", ListTracks(d))
	g.GET("/masterdata", MasterData(d))
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

// locale picks the language from ?language=, then Accept-Language, then the default.
func locale(c *gin.Context, def i18n.Locale) i18n.Locale {
	if v := c.Query("language"); v != "" {
		return i18n.Parse(v)
	}
	return i18n.Negotiate(c.GetHeader("Accept-Language"), def)
}

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, assessment.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, assessment.ErrSessionComplete), errors.Is(err, advisor.ErrNotComplete):
		return http.StatusConflict
	case errors.Is(err, assessment.ErrMalformedResult), errors.Is(err, assessment.ErrInference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func failErr(c *gin.Context, log *zap.Logger, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal error"
	}
	fail(c, status, msg)
}
