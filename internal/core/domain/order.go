package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is a position in the fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending                   OrderStatus = "pending"
	OrderStatusConfirmed                 OrderStatus = "confirmed"
	OrderStatusPacked                    OrderStatus = "packed"
	OrderStatusSellerConfirmationPending OrderStatus = "seller_confirmation_pending"
	OrderStatusSellerAccepted            OrderStatus = "seller_accepted"
	OrderStatusAccepted                  OrderStatus = "accepted"
	OrderStatusPickup                    OrderStatus = "pickup"
	OrderStatusShipped                   OrderStatus = "shipped"
	OrderStatusDelivered                 OrderStatus = "delivered"
	OrderStatusCancelled                 OrderStatus = "cancelled"
	OrderStatusReturnRequested           OrderStatus = "return_requested"
	OrderStatusReturnConfirmed           OrderStatus = "return_confirmed"
)

var knownStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:                   {},
	OrderStatusConfirmed:                 {},
	OrderStatusPacked:                    {},
	OrderStatusSellerConfirmationPending: {},
	OrderStatusSellerAccepted:            {},
	OrderStatusAccepted:                  {},
	OrderStatusPickup:                    {},
	OrderStatusShipped:                   {},
	OrderStatusDelivered:                 {},
	OrderStatusCancelled:                 {},
	OrderStatusReturnRequested:           {},
	OrderStatusReturnConfirmed:           {},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturnConfirmed
}

// IsSideState reports whether s sits outside the forward fulfillment graphs.
func (s OrderStatus) IsSideState() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturnRequested || s == OrderStatusReturnConfirmed
}

// Cancellable reports whether the owning customer may still cancel.
func (s OrderStatus) Cancellable() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPacked, OrderStatusSellerConfirmationPending:
		return true
	}
	return false
}

// Flow is an ordered forward transition graph.
type Flow []OrderStatus

var (
	// DirectFlow is walked by orders fulfilled from the central catalog.
	DirectFlow = Flow{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusPickup,
		OrderStatusShipped,
		OrderStatusDelivered,
	}

	// SellerFlow is walked by orders that need a seller to confirm first.
	SellerFlow = Flow{
		OrderStatusSellerConfirmationPending,
		OrderStatusSellerAccepted,
		OrderStatusAccepted,
		OrderStatusPickup,
		OrderStatusShipped,
		OrderStatusDelivered,
	}
)

// Contains reports whether s is a node of the flow.
func (f Flow) Contains(s OrderStatus) bool {
	for _, st := range f {
		if st == s {
			return true
		}
	}
	return false
}

// After returns the successor of s. ok is false when s is the last node or not in the flow.
func (f Flow) After(s OrderStatus) (next OrderStatus, ok bool) {
	for i, st := range f {
		if st == s {
			if i+1 < len(f) {
				return f[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// SourceTag marks where a line item is fulfilled from.
type SourceTag string

const (
	SourceCatalog SourceTag = "catalog"
	SourceSeller  SourceTag = "seller"
)

// LineItem is one ordered product. Price is captured at checkout.
type LineItem struct {
	ProductID uuid.UUID  `json:"product_id"`
	Name      string     `json:"name"`
	Quantity  int64      `json:"quantity"`
	UnitPrice int64      `json:"unit_price"` // paise
	Source    SourceTag  `json:"source"`
	SellerID  *uuid.UUID `json:"seller_id,omitempty"`
}

// Subtotal returns UnitPrice * Quantity.
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * li.Quantity
}

// Order is a customer order as seen by fulfillment.
type Order struct {
	ID                      uuid.UUID   `json:"id"`
	CustomerID              uuid.UUID   `json:"customer_id"`
	Status                  OrderStatus `json:"status"`
	Total                   int64       `json:"total"` // paise, fixed at checkout
	Items                   []LineItem  `json:"items"`
	ShippingAddress         *string     `json:"shipping_address,omitempty"`
	SellerID                *uuid.UUID  `json:"seller_id,omitempty"`
	AssignedDeliveryStaffID *uuid.UUID  `json:"assigned_delivery_staff_id,omitempty"`
	SelfDelivery            bool        `json:"self_delivery"`
	Version                 int64       `json:"version"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// IsSellerMediated classifies the order on every call; it is never stored.
// An order is seller-mediated when it names a seller, when its status belongs
// to the seller-only part of the graph, or when any item ships from a seller.
func (o *Order) IsSellerMediated() bool {
	if o.SellerID != nil {
		return true
	}
	if o.Status == OrderStatusSellerConfirmationPending || o.Status == OrderStatusSellerAccepted {
		return true
	}
	for _, it := range o.Items {
		if it.Source == SourceSeller {
			return true
		}
	}
	return false
}

// Flow returns the transition graph the order currently follows.
func (o *Order) Flow() Flow {
	if o.IsSellerMediated() {
		return SellerFlow
	}
	return DirectFlow
}

// ItemsTotal sums the line item subtotals.
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}

// SellerOf returns the seller responsible for a seller-sourced item.
func (o *Order) SellerOf(it LineItem) (uuid.UUID, bool) {
	if it.SellerID != nil {
		return *it.SellerID, true
	}
	if o.SellerID != nil {
		return *o.SellerID, true
	}
	return uuid.Nil, false
}

// OwnedBySeller reports whether sellerID is responsible for the order.
func (o *Order) OwnedBySeller(sellerID uuid.UUID) bool {
	if o.SellerID != nil && *o.SellerID == sellerID {
		return true
	}
	for _, it := range o.Items {
		if it.SellerID != nil && *it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// AssignedTo reports whether staffID is the assigned delivery staff member.
func (o *Order) AssignedTo(staffID uuid.UUID) bool {
	return o.AssignedDeliveryStaffID != nil && *o.AssignedDeliveryStaffID == staffID
}

// ShortID is the human-facing order reference used in ledger descriptions.
func (o *Order) ShortID() string {
	return o.ID.String()[:8]
}
