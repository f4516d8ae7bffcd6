package metrics

import "github.com/prometheus/client_golang/prometheus"

// PermissionMetrics counts access decisions. A nil *PermissionMetrics is
// valid and records nothing.
type PermissionMetrics struct {
	checks        *prometheus.CounterVec
	dynamicErrors prometheus.Counter
	cache         *prometheus.CounterVec
}

// NewPermissionMetrics creates the permission collectors and registers
// them on reg. A nil reg leaves them unregistered.
func NewPermissionMetrics(reg prometheus.Registerer) *PermissionMetrics {
	m := &PermissionMetrics{
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmdesk_permission_checks_total",
				Help: "Access decisions by deciding tier and result.",
			},
			[]string{"tier", "result"},
		),
		dynamicErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmdesk_permission_dynamic_errors_total",
			Help: "Dynamic permission lookups that failed and fell back to static rules.",
		}),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmdesk_permission_cache_total",
				Help: "Dynamic permission cache lookups by result.",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.checks, m.dynamicErrors, m.cache)
	}
	return m
}

// Decision records one access decision.
func (m *PermissionMetrics) Decision(tier string, allowed bool) {
	if m == nil {
		return
	}
	result := "deny"
	if allowed {
		result = "allow"
	}
	m.checks.WithLabelValues(tier, result).Inc()
}

// DynamicError records a failed dynamic lookup.
func (m *PermissionMetrics) DynamicError() {
	if m == nil {
		return
	}
	m.dynamicErrors.Inc()
}

// CacheLookup records a cache hit or miss.
func (m *PermissionMetrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}
