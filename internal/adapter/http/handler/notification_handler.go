package handler

import (
	"time"

	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler is the polling fallback for order arrivals.
type NotificationHandler struct {
	arrivalSvc ports.ArrivalService
	sessions   ports.ArrivalSessions
}

// NewNotificationHandler creates a new NotificationHandler. sessions may be nil.
func NewNotificationHandler(arrivalSvc ports.ArrivalService, sessions ports.ArrivalSessions) *NotificationHandler {
	return &NotificationHandler{arrivalSvc: arrivalSvc, sessions: sessions}
}

// Poll handles GET /api/v1/notifications. It runs one tick immediately and
// keeps the caller's background session alive.
func (h *NotificationHandler) Poll(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	snap, err := h.arrivalSvc.Tick(c.Request.Context(), a)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.sessions != nil {
		h.sessions.Touch(a)
	}

	response.OK(c, dto.ArrivalResponse{
		Pending:   dto.NewOrderList(snap.Pending),
		Escalated: snap.Escalated,
		PolledAt:  snap.PolledAt.UTC().Format(time.RFC3339),
	})
}

// Accept handles POST /api/v1/notifications/:order_id/accept.
func (h *NotificationHandler) Accept(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "order_id")
	if !ok {
		return
	}

	order, err := h.arrivalSvc.Accept(c.Request.Context(), a, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderResponse(order))
}

// Dismiss handles POST /api/v1/notifications/:order_id/dismiss.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "order_id")
	if !ok {
		return
	}

	if err := h.arrivalSvc.Dismiss(c.Request.Context(), a, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"order_id": id.String(), "dismissed": true})
}
