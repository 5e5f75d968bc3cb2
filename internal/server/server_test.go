package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/estimator/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/estimator/internal/catalog/service"
	"github.com/smallbiznis/estimator/internal/clock"
	"github.com/smallbiznis/estimator/internal/config"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	estimaterepository "github.com/smallbiznis/estimator/internal/estimate/repository"
	estimateservice "github.com/smallbiznis/estimator/internal/estimate/service"
	"github.com/smallbiznis/estimator/internal/lock"
	"github.com/smallbiznis/estimator/internal/observability"
	obsmetrics "github.com/smallbiznis/estimator/internal/observability/metrics"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	pricingservice "github.com/smallbiznis/estimator/internal/pricing/service"
	"github.com/smallbiznis/estimator/internal/seed"
	"github.com/smallbiznis/estimator/internal/testdb"
	validationservice "github.com/smallbiznis/estimator/internal/validation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, catalogSvc catalogdomain.Service, estimateSvc estimatedomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		DefaultEmployerID:  config.DefaultEmployerID,
		DefaultPlanID:      config.DefaultPlanID,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	httpMetrics, err := obsmetrics.NewHTTPMetricsWithRegisterer(prometheus.NewRegistry())
	require.NoError(t, err)

	srv := NewServer(ServerParams{
		Gin:         NewEngine(observability.Config{}, cfg, httpMetrics),
		Cfg:         cfg,
		Log:         zap.NewNop(),
		CatalogSvc:  catalogSvc,
		EstimateSvc: estimateSvc,
	})
	return srv.Engine()
}

func newSeededServer(t *testing.T) *gin.Engine {
	t.Helper()

	db := testdb.OpenSeeded(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{DefaultEmployerID: config.DefaultEmployerID, DefaultPlanID: config.DefaultPlanID}
	log := zap.NewNop()
	policy := config.NewStaticPricingPolicy(config.DefaultPricingPolicy())
	catalogRepo := catalogrepository.Provide()
	reader := catalogservice.NewDBReader(db, catalogRepo)
	catalogSvc := catalogservice.New(catalogservice.Params{DB: db, Log: log, Config: cfg, Repo: catalogRepo})

	estimateSvc := estimateservice.New(estimateservice.Params{
		DB:         db,
		Log:        log,
		Config:     cfg,
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)),
		Locker:     lock.NewKeyedMutex(),
		Repo:       estimaterepository.Provide(),
		Catalog:    catalogSvc,
		Reader:     reader,
		Pricing:    pricingservice.New(pricingservice.Params{Log: log, Reader: reader, Policy: policy}),
		Validation: validationservice.New(validationservice.Params{Log: log, Reader: reader, Policy: policy}),
	})
	return newTestServer(t, catalogSvc, estimateSvc)
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListProvidersEndpoint(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodGet, "/providers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[catalogdomain.ListProvidersResponse](t, rec)
	assert.Len(t, resp.Items, 4)
	assert.Contains(t, rec.Body.String(), `"logo_url":null`)
}

func TestListPlansEndpoint(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodGet, "/plans?provider_id=prov_b", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[catalogdomain.ListPlansResponse](t, rec)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "plan_b_essentials", resp.Items[0].ID)

	rec = doJSON(t, r, http.MethodGet, "/plans", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"validation_error","message":"provider_id is required"}}`, rec.Body.String())
}

func TestEstimateFlow(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodGet, "/estimate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[estimatedomain.View](t, rec)
	assert.Equal(t, seed.DemoEstimateID, view.ID)

	rec = doJSON(t, r, http.MethodPut, "/estimate", `{
		"plan_id": "plan_a_premium",
		"selections": {"seating_type": "reserved", "food_package": "full", "addons": ["addon_av", "addon_photo"]}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = decode[estimatedomain.View](t, rec)
	assert.Equal(t, int64(118000), view.Pricing.Total)
	assert.Equal(t, "Venue A - Premium", view.Plan.Name)
	assert.Equal(t, []string{}, view.BlockingReasons)

	rec = doJSON(t, r, http.MethodPost, "/estimate/finalise", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"est_demo","status":"pending_approval"}`, rec.Body.String())
}

func TestUpdateEstimateReturnsBlockersAsData(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodPut, "/estimate", `{"plan_id":"plan_b_essentials","selections":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[estimatedomain.View](t, rec)
	assert.Equal(t, []string{"Missing required field: seating_type"}, view.BlockingReasons)

	rec = doJSON(t, r, http.MethodPost, "/estimate/finalise", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"error":{"code":"validation_error","message":"Cannot finalise estimate: Missing required field: seating_type"}}`,
		rec.Body.String(),
	)
}

func TestUpdateEstimateRejectsBadRequests(t *testing.T) {
	r := newSeededServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed", `{"plan_id":`, "invalid request"},
		{"blank plan", `{"plan_id":"  ","selections":{}}`, "plan_id is required"},
		{"missing selections", `{"plan_id":"plan_a_standard"}`, "selections must be an object"},
		{"array selections", `{"plan_id":"plan_a_standard","selections":[]}`, "selections must be an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPut, "/estimate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[errorResponse](t, rec)
			assert.Equal(t, "validation_error", resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

func TestUpdateEstimateUnknownPlan(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodPut, "/estimate", `{"plan_id":"plan_gone","selections":{}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"Plan plan_gone not found"}}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := newSeededServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/estimate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	r := newSeededServer(t)

	rec := doJSON(t, r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"not found"}}`, rec.Body.String())
}

type fakeEstimateService struct {
	err error
}

func (f *fakeEstimateService) Get(ctx context.Context) (*estimatedomain.View, error) {
	_ = ctx
	return nil, f.err
}

func (f *fakeEstimateService) Update(ctx context.Context, req estimatedomain.UpdateRequest) (*estimatedomain.View, error) {
	_ = ctx
	_ = req
	return nil, f.err
}

func (f *fakeEstimateService) Finalise(ctx context.Context) (*estimatedomain.FinaliseResult, error) {
	_ = ctx
	return nil, f.err
}

func TestFinaliseErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "not found",
			err:    estimatedomain.ErrEstimateNotFound,
			status: http.StatusNotFound,
			body:   `{"error":{"code":"not_found","message":"No estimate found"}}`,
		},
		{
			name: "currency mismatch",
			err: &pricingdomain.CurrencyMismatchError{
				ItemID: "add-on addon_av", Currency: "USD", PlanCurrency: "EUR",
			},
			status: http.StatusBadRequest,
			body:   `{"error":{"code":"validation_error","message":"Currency mismatch for add-on addon_av: USD (plan uses EUR)"}}`,
		},
		{
			name:   "lock timeout",
			err:    lock.ErrLockTimeout,
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"code":"service_unavailable","message":"estimate is being updated, retry shortly"}}`,
		},
		{
			name:   "unexpected",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			body:   `{"error":{"code":"internal_error","message":"internal server error"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestServer(t, nil, &fakeEstimateService{err: tt.err})
			rec := doJSON(t, r, http.MethodPost, "/estimate/finalise", "")
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
