package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/events"
	"github.com/chic-classics/checkout-service/internal/gateway"
	"github.com/chic-classics/checkout-service/internal/mail"
	"github.com/chic-classics/checkout-service/internal/middleware"
	"github.com/chic-classics/checkout-service/internal/models"
	"github.com/chic-classics/checkout-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGateway struct {
	sess *models.CheckoutSession
	err  error
}

func (g *stubGateway) CreateSession(ctx context.Context, req *gateway.SessionRequest) (*models.CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.sess, nil
}

type stubRepo struct {
	orders map[string]*models.Order
	err    error
}

func (r *stubRepo) Create(ctx context.Context, order *models.Order) error { return r.err }

func (r *stubRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if order, ok := r.orders[id]; ok {
		return order, nil
	}
	return nil, models.ErrNotFound
}

func (r *stubRepo) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Order, int, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	return []*models.Order{}, 0, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, id string) (*models.Order, error)  { return nil, nil }
func (noopCache) Set(ctx context.Context, order *models.Order) error         { return nil }
func (noopCache) GetByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	return nil, nil
}
func (noopCache) SetByUserID(ctx context.Context, userID string, orders []*models.Order) error {
	return nil
}
func (noopCache) InvalidateByUserID(ctx context.Context, userID string) error { return nil }

type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, msg *mail.Message) error { return nil }

func newTestRouter(gw *stubGateway, repo *stubRepo) *gin.Engine {
	logger := zap.NewNop()
	shop := config.ShopConfig{Name: "Alison's Chic & Classics", OwnerEmail: "owner@example.com"}
	notifier := service.NewNotifier(noopMailer{}, shop, logger)
	svc := service.NewCheckoutService(gw, repo, noopCache{}, events.NewMockEventPublisher(), notifier, logger)
	h := NewHandlers(svc, &config.Config{}, logger, nil)

	router := gin.New()
	authed := router.Group("/", middleware.RequireUser())
	authed.POST("/checkout", h.Checkout)
	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:id", h.GetOrder)
	return router
}

func checkoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "Dress", "variant": "Red", "price": "49.99", "quantity": 2},
		},
		"customerInfo": map[string]string{
			"name":    "Jane",
			"email":   "jane@example.com",
			"phone":   "555-1234",
			"address": "1 Main St",
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	gw := &stubGateway{sess: &models.CheckoutSession{ID: "cs_123", URL: "https://pay.example.com/cs_123"}}
	router := newTestRouter(gw, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "user_1")
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["url"] != "https://pay.example.com/cs_123" {
		t.Errorf("url = %q, want session URL", resp["url"])
	}
}

func TestCheckoutHandlerGatewayFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("create checkout session: card declined")}
	router := newTestRouter(gw, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "user_1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected non-empty error message")
	}
}

func TestCheckoutHandlerPersistenceFailure(t *testing.T) {
	gw := &stubGateway{sess: &models.CheckoutSession{ID: "cs_1", URL: "u"}}
	router := newTestRouter(gw, &stubRepo{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "user_1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckoutHandlerInvalidBody(t *testing.T) {
	router := newTestRouter(&stubGateway{}, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "user_1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["error"] != "invalid request body" {
		t.Errorf("error = %q, want invalid request body", resp["error"])
	}
}

func TestCheckoutHandlerRequiresUser(t *testing.T) {
	router := newTestRouter(&stubGateway{}, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(checkoutBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	router := newTestRouter(&stubGateway{}, &stubRepo{orders: map[string]*models.Order{}})

	req := httptest.NewRequest(http.MethodGet, "/orders/ord_missing", nil)
	req.Header.Set(middleware.HeaderUserID, "user_1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetOrderHandlerOtherUser(t *testing.T) {
	repo := &stubRepo{orders: map[string]*models.Order{
		"ord_1": {ID: "ord_1", UserID: "user_1"},
	}}
	router := newTestRouter(&stubGateway{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/orders/ord_1", nil)
	req.Header.Set(middleware.HeaderUserID, "user_2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListOrdersHandlerClampsLimit(t *testing.T) {
	router := newTestRouter(&stubGateway{}, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/orders?limit=5000&offset=-3", nil)
	req.Header.Set(middleware.HeaderUserID, "user_1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Total  int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Limit != service.MaxListLimit {
		t.Errorf("limit = %d, want %d", resp.Limit, service.MaxListLimit)
	}
	if resp.Offset != 0 {
		t.Errorf("offset = %d, want 0", resp.Offset)
	}
}
