// Package api serves access checks, ledgers and financial statements over
// HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/greenacre-dev/farmdesk/internal/ledger"
	"github.com/greenacre-dev/farmdesk/internal/metrics"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

// RoleResolver maps a role name from a request to a permission.Role.
type RoleResolver interface {
	Resolve(ctx context.Context, name string) (permission.Role, error)
}

type parseRoles struct{}

func (parseRoles) Resolve(_ context.Context, name string) (permission.Role, error) {
	return permission.ParseRole(name), nil
}

// Server holds the API's dependencies.
type Server struct {
	books    *ledger.Books
	resolver *permission.Resolver
	roles    RoleResolver
	registry *prometheus.Registry
	logger   *zap.Logger
	metrics  *metrics.HTTPMetrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRegistry exposes reg on /metrics and registers the API's own
// collectors on it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithRoles looks up custom roles by name. Without it role names are
// parsed without consulting the roles table.
func WithRoles(r RoleResolver) Option {
	return func(s *Server) { s.roles = r }
}

// NewServer builds a Server over books and resolver.
func NewServer(books *ledger.Books, resolver *permission.Resolver, opts ...Option) *Server {
	s := &Server{
		books:    books,
		resolver: resolver,
		roles:    parseRoles{},
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = metrics.NewHTTPMetrics(s.registry)
	return s
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(recovery(s.logger))
	router.Use(requestLogger(s.logger, s.metrics))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		access := v1.Group("/access")
		{
			access.GET("/check", s.checkAccess)
			access.GET("/permission", s.checkPermission)
			access.GET("/menu", s.menu)
		}

		v1.GET("/ledger/:code", s.accountLedger)

		reports := v1.Group("/reports")
		{
			reports.GET("/income-statement", s.incomeStatement)
			reports.GET("/balance-sheet", s.balanceSheet)
			reports.GET("/trial-balance", s.trialBalance)
		}
	}

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting farmdesk api", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
