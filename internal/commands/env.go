package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greenacre-dev/farmdesk/internal/auditlog"
	"github.com/greenacre-dev/farmdesk/internal/config"
	"github.com/greenacre-dev/farmdesk/internal/database"
	"github.com/greenacre-dev/farmdesk/internal/database/repository"
	"github.com/greenacre-dev/farmdesk/internal/logging"
	"github.com/greenacre-dev/farmdesk/internal/metrics"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

// env is what every command needs from a farmdesk directory.
type env struct {
	root   string
	actor  string
	cfg    *config.Config
	logger *zap.Logger
}

func rootDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	root, err := rootDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Service:     "farmdesk",
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, err
	}
	actor, _ := cmd.Flags().GetString("actor")
	if actor == "" {
		actor = "farmdesk"
	}
	return &env{root: root, actor: actor, cfg: cfg, logger: logger}, nil
}

// dsn resolves a relative sqlite path against the farmdesk directory.
func (e *env) dsn() string {
	dsn := e.cfg.Database.DSN
	if e.cfg.Database.Driver == database.DriverSQLite && !filepath.IsAbs(dsn) {
		dsn = filepath.Join(e.root, dsn)
	}
	return dsn
}

func (e *env) openDB() (*database.DB, error) {
	return database.Open(e.cfg.Database.Driver, e.dsn())
}

func (e *env) migrate() error {
	return database.Migrate(e.cfg.Database.Driver, e.dsn())
}

// resolver builds a permission resolver over db. m may be nil.
func (e *env) resolver(db *database.DB, m *metrics.PermissionMetrics) *permission.Resolver {
	opts := []permission.Option{
		permission.WithLogger(e.logger),
		permission.WithMetrics(m),
	}
	if ttl := e.cfg.Permissions.CacheTTL; ttl > 0 {
		opts = append(opts, permission.WithCache(permission.NewMemoryCache[permission.Modules](nil), ttl))
	}
	return permission.NewResolver(repository.NewPermissionRepo(db), opts...)
}

// audit records an action. A failed write is logged, not returned; the
// change it describes has already been made.
func (e *env) audit(action, subject, details string) {
	err := auditlog.Append(e.root, auditlog.Entry{
		Timestamp: time.Now(),
		Actor:     e.actor,
		Action:    action,
		Subject:   subject,
		Details:   details,
	})
	if err != nil {
		e.logger.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
