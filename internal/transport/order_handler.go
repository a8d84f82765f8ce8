package transport

import (
	"errors"
	"net/http"

	"sanjuan-construye/internal/domain"
	"sanjuan-construye/internal/middleware"
	"sanjuan-construye/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderItemRequest is one cart line as submitted by the storefront.
type OrderItemRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Discount int     `json:"discount" validate:"gte=0,lte=100"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	SKU      string  `json:"sku"`
}

// CustomerRequest is the checkout form payload.
type CustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=8"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Comments string `json:"comments"`
}

// PlaceOrderRequest represents the order submission payload
type PlaceOrderRequest struct {
	Customer CustomerRequest    `json:"customer" validate:"required"`
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PlaceOrderResponse carries the confirmed order and the WhatsApp link the
// storefront opens to hand it off.
type PlaceOrderResponse struct {
	Order       *domain.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// OrderHandler handles HTTP requests for order submission
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/orders", h.PlaceOrder)
}

// PlaceOrder validates the cart and returns the order with its WhatsApp
// handoff link.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer := domain.Customer{
		Name:     req.Customer.Name,
		Phone:    req.Customer.Phone,
		Email:    req.Customer.Email,
		Address:  req.Customer.Address,
		City:     req.Customer.City,
		Comments: req.Customer.Comments,
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.CartItem{
			Product: domain.Product{
				ID:       it.ID,
				Name:     it.Name,
				Price:    it.Price,
				Discount: it.Discount,
				SKU:      it.SKU,
			},
			Quantity: it.Quantity,
		})
	}

	order, waURL, err := h.orderService.PlaceOrder(customer, items)
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			middleware.RespondWithError(w, http.StatusBadRequest, "order has no items")
			return
		}

		h.logger.Error("Order placement failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total),
	)

	middleware.RespondWithJSON(w, http.StatusCreated, PlaceOrderResponse{
		Order:       order,
		WhatsAppURL: waURL,
	})
}
