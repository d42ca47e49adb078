package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-menu-service/config"
	"github.com/fekuna/omnipos-menu-service/internal/auth"
	"github.com/fekuna/omnipos-menu-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{AppEnv: "test"},
		JWT:      config.JWTConfig{SecretKey: testSecret, TTL: time.Hour},
		Admin:    config.AdminConfig{Email: "admin@example.com"},
		WhatsApp: config.WhatsAppConfig{Number: "5511999999999", BaseURL: "https://wa.me/", CurrencySymbol: "R$"},
		CORS:     config.CORSConfig{AllowOrigins: []string{"*"}},
	}
}

func newTestServer(t *testing.T) (*Server, *sqlx.DB) {
	db := dbtest.New(t)
	srv := New(&Deps{
		Config:   testConfig(),
		DB:       db,
		Registry: prometheus.NewRegistry(),
		Logger:   logger.NewNop(),
	})
	return srv, db
}

func adminToken(t *testing.T) string {
	token, _, err := auth.NewTokenManager(testSecret, time.Hour).Issue("admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, srv *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func orderBody(productID int64, qty int) map[string]any {
	return map[string]any{
		"customer": map[string]any{"name": "Maria", "phone": "11988887777"},
		"items":    []map[string]any{{"productId": productID, "quantity": qty}},
		"notes":    "sem cebola",
	}
}

func TestPlaceOrderEndpoint(t *testing.T) {
	srv, db := newTestServer(t)
	id := dbtest.InsertProduct(t, db, "X-Burger", "10.50", nil, true)

	w := do(t, srv, http.MethodPost, "/api/orders", orderBody(id, 2), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		OrderID  int64       `json:"orderId"`
		Total    json.Number `json:"total"`
		DeepLink string      `json:"deepLink"`
		Message  string      `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	assert.NotZero(t, res.OrderID)
	assert.Equal(t, "21.00", res.Total.String())
	assert.True(t, strings.HasPrefix(res.DeepLink, "https://wa.me/5511999999999?text="))
	assert.Contains(t, res.Message, "Maria")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, 1, dbtest.Count(t, db, "orders"))
	assert.Equal(t, 1, dbtest.Count(t, db, "order_items"))
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	srv, db := newTestServer(t)
	id := dbtest.InsertProduct(t, db, "X-Burger", "10.50", nil, true)

	w := do(t, srv, http.MethodPost, "/api/orders", map[string]any{
		"customer": map[string]any{"name": "Maria"},
		"items":    []any{},
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "items")

	blank := orderBody(id, 1)
	blank["customer"] = map[string]any{"name": "   "}
	w = do(t, srv, http.MethodPost, "/api/orders", blank, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/orders", orderBody(id, 0), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/orders", orderBody(999, 1), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "999")

	assert.Equal(t, 0, dbtest.Count(t, db, "orders"))
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/orders", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodPost, "/api/categories", map[string]any{"name": "X"}, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/orders", nil, "forged").Code)

	w := do(t, srv, http.MethodGet, "/api/orders", nil, adminToken(t))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesDisabledWithDefaultSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Server.AppEnv = "production"
	cfg.JWT.SecretKey = config.DefaultJWTSecret
	srv := New(&Deps{
		Config:   cfg,
		DB:       dbtest.New(t),
		Registry: prometheus.NewRegistry(),
		Logger:   logger.NewNop(),
	})

	forged, _, err := auth.NewTokenManager(config.DefaultJWTSecret, time.Hour).Issue("admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/orders", nil, forged).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/menu", nil, "").Code)
}

func TestOrderStatusWorkflow(t *testing.T) {
	srv, db := newTestServer(t)
	token := adminToken(t)
	id := dbtest.InsertProduct(t, db, "Pastel", "7.00", nil, true)

	w := do(t, srv, http.MethodPost, "/api/orders", orderBody(id, 1), "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		OrderID int64 `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/orders/" + strconv.FormatInt(created.OrderID, 10)

	w = do(t, srv, http.MethodPut, path+"/status", map[string]string{"status": "shipped"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPut, path+"/status", map[string]string{"status": "confirmed"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodGet, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestOrderMoneyHasTwoDecimals(t *testing.T) {
	srv, db := newTestServer(t)
	id := dbtest.InsertProduct(t, db, "X-Burger", "10.50", nil, true)

	w := do(t, srv, http.MethodPost, "/api/orders", orderBody(id, 2), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":21.00`)
	assert.Contains(t, w.Body.String(), `"unitPrice":10.50`)

	var created struct {
		OrderID int64 `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, srv, http.MethodGet, "/api/orders/"+strconv.FormatInt(created.OrderID, 10), nil, adminToken(t))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"total":21.00`)
	assert.Contains(t, body, `"unitPrice":10.50`)
	assert.Contains(t, body, `"subtotal":21.00`)
}

func TestDeleteCategoryWithSubcategoryConflicts(t *testing.T) {
	srv, db := newTestServer(t)
	parent := dbtest.InsertCategory(t, db, "Bebidas", nil)
	dbtest.InsertCategory(t, db, "Sucos", &parent)

	w := do(t, srv, http.MethodDelete, "/api/categories/"+strconv.FormatInt(parent, 10), nil, adminToken(t))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 2, dbtest.Count(t, db, "categories"))
}

func TestUpdateCategoryParentPresence(t *testing.T) {
	srv, db := newTestServer(t)
	token := adminToken(t)
	parent := dbtest.InsertCategory(t, db, "Bebidas", nil)
	child := dbtest.InsertCategory(t, db, "Sucos", &parent)
	path := "/api/categories/" + strconv.FormatInt(child, 10)

	var res struct {
		Name     string `json:"name"`
		ParentID *int64 `json:"parentId"`
	}

	w := do(t, srv, http.MethodPut, path, map[string]any{"name": "Sucos naturais"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Sucos naturais", res.Name)
	require.NotNil(t, res.ParentID)
	assert.Equal(t, parent, *res.ParentID)

	res.ParentID = nil
	w = do(t, srv, http.MethodPut, path, map[string]any{"name": "Sucos naturais", "parentId": nil}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Nil(t, res.ParentID)

	w = do(t, srv, http.MethodPut, path, map[string]any{"name": "Sucos", "parentId": 0}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuAndCatalogReads(t *testing.T) {
	srv, db := newTestServer(t)
	cat := dbtest.InsertCategory(t, db, "Lanches", nil)
	dbtest.InsertProduct(t, db, "X-Burger", "22.00", &cat, true)
	dbtest.InsertProduct(t, db, "X-Salada", "24.00", &cat, false)

	w := do(t, srv, http.MethodGet, "/api/menu", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "X-Burger")
	assert.NotContains(t, w.Body.String(), "X-Salada")

	w = do(t, srv, http.MethodGet, "/api/products?available=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "X-Salada")

	w = do(t, srv, http.MethodGet, "/api/products?available=maybe", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionVoteEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/suggestions", map[string]any{"title": "Modo escuro"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var s struct {
		ID       int64  `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "Sugestão", s.Category)

	path := "/api/suggestions/" + strconv.FormatInt(s.ID, 10) + "/vote"
	w = do(t, srv, http.MethodPost, path, map[string]int{"delta": 1}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"votes":1`)

	w = do(t, srv, http.MethodPost, path, map[string]int{"delta": 3}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	w = do(t, srv, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "omnipos_menu_http_requests_total")
}

func TestWatchHealthReportsDatabase(t *testing.T) {
	db := dbtest.New(t)
	_, hs := NewGRPCServer(logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go WatchHealth(ctx, db, hs, 10*time.Millisecond, logger.NewNop())

	require.Eventually(t, func() bool {
		return servingStatus(hs, GRPCServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, db.Close())
	require.Eventually(t, func() bool {
		return servingStatus(hs, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 10*time.Millisecond)
}

func servingStatus(hs *health.Server, service string) healthpb.HealthCheckResponse_ServingStatus {
	res, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return res.Status
}
