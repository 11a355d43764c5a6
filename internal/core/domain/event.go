package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderEvent records one applied status transition.
type OrderEvent struct {
	ID        uuid.UUID   `json:"id"`
	OrderID   uuid.UUID   `json:"order_id"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ActorID   uuid.UUID   `json:"actor_id"`
	ActorRole Role        `json:"actor_role"`
	CreatedAt time.Time   `json:"created_at"`
}

// SideEffect names a once-per-order mutation guarded by a claim row.
type SideEffect string

const (
	EffectDeliverySettlement SideEffect = "delivery_settlement"
	EffectReturnRestock      SideEffect = "return_restock"
)
