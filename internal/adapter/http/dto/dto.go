package dto

import (
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// TransitionRequest is the request body for an explicit status change.
type TransitionRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// Amounts are capped at 10^14 paise (₹1 lakh crore) per request.

// AdjustRequest is the request body for an admin wallet adjustment.
type AdjustRequest struct {
	WalletKind  string  `json:"wallet_kind" binding:"required,wallet_kind"`
	OwnerID     string  `json:"owner_id" binding:"required,uuid"`
	Type        string  `json:"type" binding:"required,oneof=credit debit"`
	Amount      int64   `json:"amount" binding:"required,gt=0,lte=100000000000000"`
	Description string  `json:"description" binding:"max=255"`
	ReferenceID *string `json:"reference_id,omitempty" binding:"omitempty,max=100,safe_id"`
}

// SettleRequest is the request body for a wallet settlement.
type SettleRequest struct {
	WalletKind    string `json:"wallet_kind" binding:"required,wallet_kind"`
	OwnerID       string `json:"owner_id" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"gte=0,lte=100000000000000"`
	EarningAmount int64  `json:"earning_amount" binding:"gte=0,lte=100000000000000"`
	Description   string `json:"description" binding:"max=255"`
}

// MinUsageRequest is the request body for setting a customer wallet threshold.
type MinUsageRequest struct {
	Amount *int64 `json:"amount" binding:"required,gte=0,lte=100000000000000"`
}

// TransactionListQuery holds the query string of a transaction listing.
type TransactionListQuery struct {
	OwnerID  string     `form:"owner_id" binding:"omitempty,uuid"`
	Types    []string   `form:"type" binding:"dive,tx_type"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page     int        `form:"page" binding:"omitempty,gte=1"`
	PageSize int        `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// SummaryQuery holds the query string of a wallet summary.
type SummaryQuery struct {
	OwnerID string     `form:"owner_id" binding:"omitempty,uuid"`
	From    *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// OrderResponse is an order as returned to clients.
type OrderResponse struct {
	ID                      string            `json:"id"`
	Status                  string            `json:"status"`
	Total                   int64             `json:"total"`
	SellerMediated          bool              `json:"seller_mediated"`
	CustomerID              string            `json:"customer_id"`
	SellerID                *string           `json:"seller_id,omitempty"`
	AssignedDeliveryStaffID *string           `json:"assigned_delivery_staff_id,omitempty"`
	Items                   []domain.LineItem `json:"items"`
	Version                 int64             `json:"version"`
	UpdatedAt               string            `json:"updated_at"`
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return OrderResponse{
		ID:                      o.ID.String(),
		Status:                  string(o.Status),
		Total:                   o.Total,
		SellerMediated:          o.IsSellerMediated(),
		CustomerID:              o.CustomerID.String(),
		SellerID:                idString(o.SellerID),
		AssignedDeliveryStaffID: idString(o.AssignedDeliveryStaffID),
		Items:                   items,
		Version:                 o.Version,
		UpdatedAt:               o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// NewOrderList converts a slice of domain orders.
func NewOrderList(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

// ArrivalResponse is one arrival poll.
type ArrivalResponse struct {
	Pending   []OrderResponse `json:"pending"`
	Escalated bool            `json:"escalated"`
	PolledAt  string          `json:"polled_at"`
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
