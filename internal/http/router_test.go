package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crmkit/go-crm-backend/internal/config"
	"github.com/crmkit/go-crm-backend/internal/domain"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:routerdb_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// schema so handlers don't explode on list endpoints
	if err := db.AutoMigrate(&domain.Organization{}, &domain.Contact{}, &domain.Opportunity{}, &domain.Interaction{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig(base string) config.Config {
	return config.Config{
		APIBasePath:       base,
		RateRPS:           100,
		RateBurst:         10,
		CORS:              config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:          config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:              config.OTELConfig{ServiceName: "test-svc"},
		AnalyticsCacheTTL: time.Minute,
		TrendPeriod:       "month",
	}
}

func seedInteractions(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now().UTC()
	rows := []domain.Interaction{
		{ID: "i-1", Type: domain.InteractionEmail, Date: now.Add(-24 * time.Hour), Subject: "Quarterly pricing recap", CreatedBy: "alex", CreatedAt: now, UpdatedAt: now},
		{ID: "i-2", Type: domain.InteractionCall, Date: now.Add(-48 * time.Hour), Subject: "Intro call", Notes: "asked for a demo", CreatedBy: "alex", CreatedAt: now, UpdatedAt: now},
		{ID: "i-3", Type: domain.InteractionDemo, Date: now.Add(-72 * time.Hour), Subject: "Platform walkthrough", CreatedBy: "maria", CreatedAt: now, UpdatedAt: now},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed interaction %s: %v", rows[i].ID, err)
		}
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig("/api/v1")
	db := newTestDB(t)

	RegisterRoutes(r, db, cfg)

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || len(w.Body.Bytes()) == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig("/api/v2")
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	db := newTestDB(t)

	RegisterRoutes(r, db, cfg)

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	// Hit all three
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/one", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "one" {
		t.Fatalf("GET /one got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/two", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "two" {
		t.Fatalf("GET /two got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("GET /api/ping got %d %q", rec.Code, rec.Body.String())
	}
}

// Smoke test that a request traverses ratelimit + otel + security headers pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig("/api/v1")
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour} // enabled (but only set on https)
	db := newTestDB(t)
	RegisterRoutes(r, db, cfg)

	// Any request goes through the middleware stack
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	// simulate https so HSTS could be eligible if middleware checks scheme
	req.URL.Scheme = "https"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	// RequestID header should be present (from RequestID middleware)
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func Test_interactionSourceShim_Proxies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	seedInteractions(t, db)

	shim := interactionSourceShim{}
	ctx := context.Background()

	all, err := shim.ListInteractions(ctx, db, domain.InteractionFilter{})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListInteractions expected 3, got %d", len(all))
	}

	// Type filter narrows the result
	byType, err := shim.ListInteractions(ctx, db, domain.InteractionFilter{
		Types: []domain.InteractionType{domain.InteractionCall},
	})
	if err != nil {
		t.Fatalf("ListInteractions (typed): %v", err)
	}
	if len(byType) != 1 || byType[0].Type != domain.InteractionCall {
		t.Fatalf("type filter expected 1 CALL, got %+v", byType)
	}
}

func TestRegisterRoutes_AnalyticsEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig("/api/v1")
	db := newTestDB(t)
	seedInteractions(t, db)
	RegisterRoutes(r, db, cfg)

	// KPIs over the seeded rows
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/kpis", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /analytics/kpis = %d body=%s", w.Code, w.Body.String())
	}
	var kpi struct {
		Data struct {
			Totals struct {
				TotalInteractions int `json:"total_interactions"`
			} `json:"totals"`
		} `json:"data"`
		Degradation domain.Degradation `json:"degradation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &kpi); err != nil {
		t.Fatalf("decode kpis: %v", err)
	}
	if kpi.Data.Totals.TotalInteractions != 3 {
		t.Fatalf("total_interactions = %d, want 3", kpi.Data.Totals.TotalInteractions)
	}
	if kpi.Degradation.Degraded {
		t.Fatalf("unexpected degradation: %+v", kpi.Degradation)
	}

	// Paginated list with ETag on the unfiltered path
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/interactions", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /interactions = %d body=%s", w.Code, w.Body.String())
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag on unfiltered list")
	}
	var list struct {
		Interactions []json.RawMessage `json:"interactions"`
		Pagination   struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Pagination.Total != 3 || len(list.Interactions) != 3 {
		t.Fatalf("list total=%d len=%d, want 3/3", list.Pagination.Total, len(list.Interactions))
	}

	// Replaying the ETag should short-circuit with 304
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/interactions", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("If-None-Match replay = %d, want 304", w.Code)
	}

	// Cache clear is a 204
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/analytics/cache/clear", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("POST /analytics/cache/clear = %d", w.Code)
	}

	// Status endpoint reports a clean engine
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/status", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /analytics/status = %d", w.Code)
	}
	var status domain.CalculationStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.IsCalculating {
		t.Fatalf("status should not be calculating: %+v", status)
	}
}
