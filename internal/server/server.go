package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ddsimoes/optaplanner/internal/config"
	"github.com/ddsimoes/optaplanner/internal/server/middlewares"
)

// RegisterHandlerFn receives the /api/v1 router group and attaches routes.
type RegisterHandlerFn func(router *gin.RouterGroup)

type Server struct {
	cfg        *config.Configuration
	httpServer *http.Server
	log        *zap.SugaredLogger
}

// NewServer builds the gin engine, middleware stack and API routes.
func NewServer(cfg *config.Configuration, registerFn RegisterHandlerFn) (*Server, error) {
	if cfg.Server.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middlewares.Logger())
	router.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true))

	api := router.Group("/api/v1")
	if cfg.Auth.Enabled {
		api.Use(middlewares.Auth(cfg.Auth.JWTSecret))
	}
	registerFn(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: router,
		},
		log: zap.S().Named("server"),
	}, nil
}

// Start serves HTTP until the server is stopped or fails. It blocks; run it
// in a goroutine and call Stop for a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.log.Infow("starting http server", "addr", s.httpServer.Addr, "mode", s.cfg.Server.Mode)

	s.httpServer.BaseContext = func(_ net.Listener) context.Context { return ctx }
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Stop(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Errorw("http server shutdown failed", "error", err)
	}
}
