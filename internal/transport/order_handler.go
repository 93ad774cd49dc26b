package transport

import (
	"net/http"

	"nova-commerce/internal/middleware"
	"nova-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateOrderRequest represents the public checkout payload
type CreateOrderRequest struct {
	CustomerName string          `json:"customerName" validate:"required"`
	Phone        string          `json:"phone" validate:"required"`
	AddressLine  string          `json:"addressLine" validate:"required"`
	City         string          `json:"city" validate:"required"`
	Total        decimal.Decimal `json:"total"`
}

// UpdateOrderStatusRequest represents the admin status change payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderHandler handles HTTP requests for orders
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

// RegisterRoutes registers all order routes. Checkout and the customer
// self-service lookup are public; everything else is admin-only.
func (h *OrderHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/customer", h.ListForCustomer)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/{id}/status", h.UpdateStatus)
			r.Delete("/{id}", h.Delete)
			r.Delete("/", h.DeleteAll)
		})
	})
}

// Create records a new order from the public checkout form
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.Create(r.Context(), service.OrderInput{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		AddressLine:  req.AddressLine,
		City:         req.City,
		Total:        req.Total,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("customer", order.CustomerName))
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// ListForCustomer returns the orders matching a customer name and phone
// pair, the unauthenticated self-service lookup
func (h *OrderHandler) ListForCustomer(w http.ResponseWriter, r *http.Request) {
	customerName := r.URL.Query().Get("customerName")
	phone := r.URL.Query().Get("phone")

	orders, err := h.orderService.ListForCustomer(r.Context(), customerName, phone)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// List returns all orders, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get returns a single order by id
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus moves an order to any of the known statuses
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Order status updated",
		zap.Int64("order_id", id),
		zap.String("status", order.Status))
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Delete removes one order
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll clears every order and reports how many were removed
func (h *OrderHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.orderService.DeleteAll(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("All orders deleted", zap.Int64("count", count))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]int64{"deleted": count})
}
