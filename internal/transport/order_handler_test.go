package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sanjuan-construye/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newOrderRouter() chi.Router {
	svc := service.NewOrderService("5491145678900", "San Juan Construye")

	router := chi.NewRouter()
	NewOrderHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func validOrderPayload() map[string]any {
	return map[string]any{
		"customer": map[string]any{
			"name":    "Juan Pérez",
			"phone":   "2644556677",
			"address": "Av. Libertador 1500",
			"city":    "San Juan",
		},
		"items": []map[string]any{
			{"id": 1, "name": "Taladro", "price": 8500, "discount": 15, "quantity": 2, "sku": "TAL001"},
		},
	}
}

func postOrder(t *testing.T, router chi.Router, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	router := newOrderRouter()

	w := postOrder(t, router, validOrderPayload())

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp PlaceOrderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Order == nil || resp.Order.Total != 14450 {
		t.Errorf("unexpected order %+v", resp.Order)
	}
	if !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/5491145678900?text=") {
		t.Errorf("unexpected WhatsApp URL %q", resp.WhatsAppURL)
	}
}

func TestOrderHandler_ValidationFailures(t *testing.T) {
	router := newOrderRouter()

	tests := []struct {
		name   string
		mutate func(p map[string]any)
	}{
		{"missing customer name", func(p map[string]any) {
			p["customer"].(map[string]any)["name"] = ""
		}},
		{"bad email", func(p map[string]any) {
			p["customer"].(map[string]any)["email"] = "not-an-email"
		}},
		{"no items", func(p map[string]any) {
			p["items"] = []map[string]any{}
		}},
		{"zero quantity", func(p map[string]any) {
			p["items"].([]map[string]any)[0]["quantity"] = 0
		}},
		{"negative price", func(p map[string]any) {
			p["items"].([]map[string]any)[0]["price"] = -10
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validOrderPayload()
			tt.mutate(payload)

			w := postOrder(t, router, payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestOrderHandler_MalformedBody(t *testing.T) {
	router := newOrderRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
