package handler

import (
	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the order state machine.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// Transition handles POST /api/v1/orders/:id/transitions.
func (h *OrderHandler) Transition(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	order, err := h.orderSvc.RequestTransition(c.Request.Context(), id, a, domain.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// Advance handles POST /api/v1/orders/:id/advance.
func (h *OrderHandler) Advance(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderSvc.Advance(c.Request.Context(), id, a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderSvc.GetOrder(c.Request.Context(), id, a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// History handles GET /api/v1/orders/:id/history.
func (h *OrderHandler) History(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	events, err := h.orderSvc.History(c.Request.Context(), id, a)
	if err != nil {
		response.Error(c, err)
		return
	}
	if events == nil {
		events = []domain.OrderEvent{}
	}
	response.OK(c, events)
}

// Actionable handles GET /api/v1/orders/actionable.
func (h *OrderHandler) Actionable(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	orders, err := h.orderSvc.ListActionable(c.Request.Context(), a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderList(orders))
}
