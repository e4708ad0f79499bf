package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agrihub/internal/domain"
)

func TestCheckout_Created(t *testing.T) {
	auth := &stubAuthService{profile: &domain.Profile{ID: "u1", Role: domain.RoleBuyer}}
	deps := testDeps(auth)
	deps.OrderSvc.(*stubOrderService).orders = []domain.Order{
		{ID: "o1", BuyerID: "u1", SellerID: "s1", Status: domain.OrderStatusPending, TotalCents: 700},
	}
	router := newTestRouter(t, deps)

	body := `{"shippingAddress":"Main road 1","paymentMethod":"cash_on_delivery"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"o1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSetOrderStatus_BuyerForbidden(t *testing.T) {
	auth := &stubAuthService{profile: &domain.Profile{ID: "u1", Role: domain.RoleBuyer}}
	router := newTestRouter(t, testDeps(auth))

	body := `{"status":"confirmed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/o1/status", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSetOrderStatus_FarmerAllowed(t *testing.T) {
	auth := &stubAuthService{profile: &domain.Profile{ID: "s1", Role: domain.RoleFarmer}}
	deps := testDeps(auth)
	deps.OrderSvc.(*stubOrderService).order = &domain.Order{ID: "o1", SellerID: "s1", Status: domain.OrderStatusConfirmed}
	router := newTestRouter(t, deps)

	body := `{"status":"confirmed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/o1/status", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"confirmed"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	auth := &stubAuthService{profile: &domain.Profile{ID: "u1", Role: domain.RoleBuyer}}
	router := newTestRouter(t, testDeps(auth))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
