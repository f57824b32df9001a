// Package server exposes health, readiness and metrics endpoints for the worker process.
package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"ese-registration-workers/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const checkTimeout = 3 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Server struct {
	engine  *gin.Engine
	http    *http.Server
	checks  map[string]Check
	service string
	version string
	logger  logger.Logger
}

func New(addr, service, version string, checks map[string]Check, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:  engine,
		checks:  checks,
		service: service,
		version: version,
		logger:  log.WithFields(map[string]interface{}{"component": "ops-server"}),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	engine.GET("/health", s.health)
	engine.GET("/ready", s.ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.service,
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) ready(c *gin.Context) {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	status := http.StatusOK
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := s.checks[name](ctx)
		cancel()

		if err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			s.logger.Warn("readiness check failed", map[string]interface{}{
				"check": name,
				"error": err.Error(),
			})
			continue
		}
		results[name] = "ok"
	}

	body := gin.H{"status": "ready", "checks": results}
	if status != http.StatusOK {
		body["status"] = "not_ready"
	}
	c.JSON(status, body)
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("ops server listening", map[string]interface{}{"address": s.http.Addr})
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
