package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/greenacre-dev/farmdesk/internal/accounts"
	"github.com/greenacre-dev/farmdesk/internal/journal"
	"github.com/greenacre-dev/farmdesk/internal/ledger"
	"github.com/greenacre-dev/farmdesk/internal/permission"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeStore map[string][]permission.Record

func (f fakeStore) ListByRole(_ context.Context, roleName string) ([]permission.Record, error) {
	return f[roleName], nil
}

type fakeRoles struct {
	ids map[string]uuid.UUID
	err error
}

func (f fakeRoles) Resolve(_ context.Context, name string) (permission.Role, error) {
	if f.err != nil {
		return permission.Role{}, f.err
	}
	if id, ok := f.ids[name]; ok {
		return permission.Custom(id, name), nil
	}
	return permission.ParseRole(name), nil
}

func openBooks(t *testing.T) (string, *ledger.Books) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, accounts.NewService(accounts.DefaultChart(accounts.ProfileMixed)).Save(dir))
	books, err := ledger.OpenBooks(dir)
	require.NoError(t, err)

	post := func(day, dr, cr int, amount string) {
		_, err := books.Journal.AddDouble(journal.AddDoubleParams{
			Date:          time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
			Description:   "test",
			DebitAccount:  dr,
			CreditAccount: cr,
			Amount:        decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}
	post(2, 2, 10, "5000.00") // cash / owner's capital
	post(9, 2, 12, "1000.00") // cash / milk sales
	post(10, 16, 2, "400.00") // feed / cash
	return dir, books
}

func newTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	dir, books := openBooks(t)
	store := fakeStore{
		"Milk Collector": {{RoleName: "Milk Collector", ModulePath: "/dairy/milk-production", CanView: true}},
	}
	return NewServer(books, permission.NewResolver(store), opts...), dir
}

func get(t *testing.T, s *Server, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	w, body := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAccessCheck(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name    string
		target  string
		allowed bool
		tier    string
	}{
		{"builtin static allow", "/v1/access/check?role=Vet&path=/dairy/cattle", true, "static"},
		{"builtin static deny", "/v1/access/check?role=Vet&path=/finance/ledger", false, "fallback"},
		{"custom dynamic allow", "/v1/access/check?role=Milk+Collector&path=/dairy/milk-production", true, "dynamic"},
		{"custom no row", "/v1/access/check?role=Milk+Collector&path=/finance/ledger", false, "fallback"},
		{"super admin", "/v1/access/check?role=super+admin&path=/admin/roles", true, "static"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.allowed, body["allowed"])
			assert.Equal(t, tt.tier, body["tier"])
		})
	}
}

func TestAccessCheck_MissingParams(t *testing.T) {
	s, _ := newTestServer(t)
	for _, target := range []string{
		"/v1/access/check?path=/farms",
		"/v1/access/check?role=Vet",
		"/v1/access/permission?role=Vet&resource=cattle",
		"/v1/access/menu",
	} {
		w, _ := get(t, s, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestAccessCheck_RoleLookupFailureStillAnswers(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, _ := newTestServer(t, WithLogger(zap.New(core)), WithRoles(fakeRoles{err: errors.New("db down")}))

	w, body := get(t, s, "/v1/access/check?role=Milk+Collector&path=/dairy/milk-production")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["allowed"])
	assert.Equal(t, 1, logs.FilterMessage("role lookup failed").Len())
}

func TestAccessPermission(t *testing.T) {
	s, _ := newTestServer(t)

	_, body := get(t, s, "/v1/access/permission?role=Vet&resource=cattle&action=update")
	assert.Equal(t, true, body["allowed"])

	_, body = get(t, s, "/v1/access/permission?role=Vet&resource=cattle&action=delete")
	assert.Equal(t, false, body["allowed"])

	_, body = get(t, s, "/v1/access/permission?role=Super+Admin&resource=anything&action=delete")
	assert.Equal(t, true, body["allowed"])
}

func TestAccessMenu(t *testing.T) {
	s, _ := newTestServer(t, WithRoles(fakeRoles{ids: map[string]uuid.UUID{"Milk Collector": uuid.New()}}))

	_, body := get(t, s, "/v1/access/menu?role=Milk+Collector")
	assert.Equal(t, []any{"/dairy/milk-production"}, body["routes"])

	_, body = get(t, s, "/v1/access/menu?role=Super+Admin")
	assert.Len(t, body["routes"], len(permission.Routes))
}

func TestLedger(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := get(t, s, "/v1/ledger/1010?from=2025-01-05")
	require.Equal(t, http.StatusOK, w.Code)
	l := body["ledger"].(map[string]any)
	assert.Equal(t, "5000", l["opening_balance"])
	assert.Equal(t, "5600", l["closing_balance"])
	assert.Len(t, l["entries"], 2)
	assert.Equal(t, "Cash on Hand", body["account"].(map[string]any)["name"])
}

func TestLedger_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := get(t, s, "/v1/ledger/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = get(t, s, "/v1/ledger/1010?from=05/01/2025")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(t, s, "/v1/reports/trial-balance?from=2025-02-01&to=2025-01-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReports(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := get(t, s, "/v1/reports/income-statement?from=2025-01-01&to=2025-01-31")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "600", body["net_income"])

	w, body = get(t, s, "/v1/reports/balance-sheet")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["balanced"])

	w, body = get(t, s, "/v1/reports/trial-balance")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["balanced"])
}

func TestReports_CorruptJournal(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s, dir := newTestServer(t, WithLogger(zap.New(core)))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024", "12"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024", "12", "journal.csv"), []byte("not,a,journal\n"), 0o644))

	w, _ := get(t, s, "/v1/reports/income-statement")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("failed to generate income statement").Len())
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, _ := newTestServer(t, WithRegistry(reg))

	get(t, s, "/healthz")
	w, _ := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `farmdesk_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}
