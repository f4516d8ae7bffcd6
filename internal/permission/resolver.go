package permission

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/greenacre-dev/farmdesk/internal/metrics"
)

// Record is one dynamic permission row: whether a role may view a module.
type Record struct {
	RoleName   string `json:"role_name"`
	ModulePath string `json:"module_path"`
	CanView    bool   `json:"can_view"`
}

// Store fetches a role's dynamic permission rows.
type Store interface {
	ListByRole(ctx context.Context, roleName string) ([]Record, error)
}

// Tier names the layer that decided an access check.
type Tier string

const (
	// TierStatic means the static route map granted access.
	TierStatic Tier = "static"
	// TierDynamic means a dynamic permission row decided.
	TierDynamic Tier = "dynamic"
	// TierFallback means no dynamic row applied (or the lookup failed)
	// and the static route map denied.
	TierFallback Tier = "fallback"
)

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool `json:"allowed"`
	Tier    Tier `json:"tier"`
}

// Resolver combines the static route map with dynamic per-role overrides.
// It never returns errors: failed dynamic lookups fall back to the static
// rules.
type Resolver struct {
	store   Store
	cache   Cache
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.PermissionMetrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache caches each role's dynamic rows for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cache = c
		r.ttl = ttl
	}
}

// WithLogger sets the logger used for failed lookups.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithMetrics records decisions on m.
func WithMetrics(m *metrics.PermissionMetrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// NewResolver creates a Resolver over store. A nil store disables the
// dynamic tier.
func NewResolver(store Store, opts ...Option) *Resolver {
	r := &Resolver{store: store, ttl: DefaultCacheTTL, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CanAccessModule returns the role's dynamic can_view flag for
// modulePath when a row exists, even if it is false. Otherwise, and when
// the lookup fails, it returns CanAccessRoute(role, modulePath).
func (r *Resolver) CanAccessModule(ctx context.Context, role Role, modulePath string) bool {
	d := r.dynamic(ctx, role, modulePath)
	r.metrics.Decision(string(d.Tier), d.Allowed)
	return d.Allowed
}

// Allowed checks the static route map first and consults dynamic
// permissions only when it denies, so built-in roles never touch the
// store for pages they can already see.
func (r *Resolver) Allowed(ctx context.Context, role Role, path string) Decision {
	d := Decision{Allowed: true, Tier: TierStatic}
	if !CanAccessRoute(role, path) {
		d = r.dynamic(ctx, role, path)
	}
	r.metrics.Decision(string(d.Tier), d.Allowed)
	return d
}

// VisibleRoutes filters paths down to those role may view. A nil paths
// checks every route in the static map.
func (r *Resolver) VisibleRoutes(ctx context.Context, role Role, paths []string) []string {
	if paths == nil {
		paths = RoutePaths()
	}
	visible := []string{}
	for _, p := range paths {
		if r.Allowed(ctx, role, p).Allowed {
			visible = append(visible, p)
		}
	}
	return visible
}

// Invalidate drops any cached rows for roleName.
func (r *Resolver) Invalidate(roleName string) {
	if r.cache != nil {
		r.cache.Invalidate(roleName)
	}
}

func (r *Resolver) dynamic(ctx context.Context, role Role, path string) Decision {
	fallback := Decision{Allowed: CanAccessRoute(role, path), Tier: TierFallback}

	modules, err := r.modules(ctx, role.Name())
	if err != nil {
		r.metrics.DynamicError()
		r.logger.Warn("dynamic permission lookup failed, using static rules",
			zap.String("role", role.Name()),
			zap.String("module", path),
			zap.Error(err))
		return fallback
	}
	if canView, ok := modules[path]; ok {
		return Decision{Allowed: canView, Tier: TierDynamic}
	}
	return fallback
}

func (r *Resolver) modules(ctx context.Context, roleName string) (Modules, error) {
	if r.store == nil || roleName == "" {
		return nil, nil
	}
	if r.cache != nil {
		m, ok := r.cache.Get(roleName)
		r.metrics.CacheLookup(ok)
		if ok {
			return m, nil
		}
	}

	records, err := r.store.ListByRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	m := make(Modules, len(records))
	for _, rec := range records {
		m[rec.ModulePath] = rec.CanView
	}
	if r.cache != nil {
		r.cache.Set(roleName, m, r.ttl)
	}
	return m, nil
}
