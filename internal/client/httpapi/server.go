// Package httpapi serves the animedex screens as JSON over HTTP. Navigation
// follows the same redirect rules as the REPL: without a session every
// screen except the login one redirects to "/", and with a session "/"
// redirects to "/home".
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/dmitrijs2005/animedex/internal/client/services"
	"github.com/dmitrijs2005/animedex/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Session is the part of services.SessionService the server uses.
type Session interface {
	Login(ctx context.Context, username string, password []byte) (bool, error)
	Logout(ctx context.Context) error
	Current() (models.Identity, bool)
}

type Server struct {
	address  string
	session  Session
	loader   services.CharacterLoader
	logger   logging.Logger
	pageSize int

	mu       sync.Mutex
	records  []models.Character
	advisory string
	loaded   bool
}

func NewServer(address string, l logging.Logger, session Session, loader services.CharacterLoader, pageSize int) *Server {
	if l == nil {
		l = logging.Nop()
	}
	return &Server{
		address:  address,
		session:  session,
		loader:   loader,
		logger:   l.With("module", "http_server"),
		pageSize: pageSize,
	}
}

// Handler builds the gin engine with all routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), cors.Default())

	r.GET("/healthz", s.health)
	r.GET("/", s.loginScreen)
	r.POST("/login", s.login)
	r.POST("/logout", s.logout)

	authed := r.Group("/", s.requireSession)
	authed.GET("/home", s.home)
	authed.GET("/characters", s.characters)
	authed.GET("/characters/random", s.random)

	return r
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

// accessLog writes one log line per request through the app logger.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
