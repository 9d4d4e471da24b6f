package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/restoflow/restoflow/internal/notify"
	"github.com/restoflow/restoflow/internal/server/http/dto"
	facade "github.com/restoflow/restoflow/internal/test/facade"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	hub := notify.NewHub(logger)
	return Setup(facade.MarketplaceFacadeStub{}, hub, logger)
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any, token bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Encoding", "identity")
	if token {
		req.Header.Set("Authorization", "Bearer token")
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestPublicRoutes(t *testing.T) {
	engine := newEngine()

	if resp := do(t, engine, http.MethodGet, "/api/restaurants", nil, false); resp.Code != http.StatusOK {
		t.Fatalf("restaurants list: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodGet, "/api/restaurants/1", nil, false); resp.Code != http.StatusOK {
		t.Fatalf("restaurant detail: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodGet, "/api/restaurants/1/menu", nil, false); resp.Code != http.StatusOK {
		t.Fatalf("menu: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodGet, "/api/track/tok-1", nil, false); resp.Code != http.StatusOK {
		t.Fatalf("tracking: expected 200, got %d", resp.Code)
	}
}

func TestAuthRoutes(t *testing.T) {
	engine := newEngine()

	payload := dto.AuthRequest{Login: "alice", Password: "secret"}
	if resp := do(t, engine, http.MethodPost, "/api/user/register", payload, false); resp.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodPost, "/api/user/login", payload, false); resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.Code)
	}
}

func TestGuestCheckoutAllowed(t *testing.T) {
	engine := newEngine()

	payload := dto.CreateOrderRequest{
		RestaurantID: 1,
		Items:        []dto.OrderLineRequest{{DishID: 1, Quantity: 1}},
		Phone:        "0600000000",
	}
	if resp := do(t, engine, http.MethodPost, "/api/orders", payload, false); resp.Code != http.StatusCreated {
		t.Fatalf("guest order: expected 201, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodPost, "/api/orders", payload, true); resp.Code != http.StatusCreated {
		t.Fatalf("authenticated order: expected 201, got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newEngine()

	protected := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/user/orders", nil},
		{http.MethodPost, "/api/orders/5/status", dto.StatusRequest{Status: "confirmee"}},
		{http.MethodPost, "/api/orders/5/cancel", nil},
		{http.MethodGet, "/api/restaurants/1/orders", nil},
		{http.MethodPut, "/api/restaurants/1/schedule", dto.ScheduleRequest{}},
		{http.MethodPost, "/api/restaurants/1/closure", dto.ClosureRequest{}},
		{http.MethodPatch, "/api/restaurants/1/dishes/4", dto.DishAvailabilityRequest{}},
		{http.MethodGet, "/ws/restaurants/1", nil},
		{http.MethodGet, "/ws/user", nil},
	}
	for _, r := range protected {
		if resp := do(t, engine, r.method, r.path, r.body, false); resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", r.method, r.path, resp.Code)
		}
	}
}

func TestProtectedRoutesWithToken(t *testing.T) {
	engine := newEngine()

	if resp := do(t, engine, http.MethodGet, "/api/user/orders", nil, true); resp.Code != http.StatusOK {
		t.Fatalf("user orders: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodPost, "/api/orders/5/status", dto.StatusRequest{Status: "confirmee"}, true); resp.Code != http.StatusOK {
		t.Fatalf("status update: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodPost, "/api/orders/5/cancel", nil, true); resp.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodGet, "/api/restaurants/1/orders", nil, true); resp.Code != http.StatusOK {
		t.Fatalf("restaurant orders: expected 200, got %d", resp.Code)
	}
	if resp := do(t, engine, http.MethodPost, "/api/restaurants/1/closure", dto.ClosureRequest{Closed: true}, true); resp.Code != http.StatusOK {
		t.Fatalf("closure: expected 200, got %d", resp.Code)
	}
}
