package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/domain/model"
	testhelpers "github.com/atelierhq/atelier/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.StorefrontFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(context.Context, int64) ([]model.Order, error) {
				return []model.Order{{Number: "ATL-A", Total: 40, PlacedAt: time.Unix(0, 0)}}, nil
			},
		},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.Code)
	}

	checkout, _ := json.Marshal(map[string]any{
		"email": "ada@example.com",
		"items": []map[string]any{{"sku": "TOTE-01", "name": "Canvas tote", "quantity": 1, "price": 40}},
	})
	req = httptest.NewRequest(http.MethodPost, "/api/checkout/orders", bytes.NewReader(checkout))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/checkout/orders/ATL-A", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("order tracking: expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("orders without token: expected 401, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("orders with token: expected 200, got %d", resp.Code)
	}

	transition, _ := json.Marshal(map[string]string{"status": "used"})
	req = httptest.NewRequest(http.MethodPatch, "/api/admin/rewards/1/status", bytes.NewReader(transition))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("reward transition: expected 200, got %d", resp.Code)
	}

	contract, _ := json.Marshal(map[string]string{"designer_name": "Mara Ellis", "designer_email": "mara@atelier.studio"})
	req = httptest.NewRequest(http.MethodPost, "/api/admin/contracts", bytes.NewReader(contract))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("contract create: expected 201, got %d", resp.Code)
	}
}
