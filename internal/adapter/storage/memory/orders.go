package memory

import (
	"context"
	"sort"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultActionableLimit = 200

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct{ s *Store }

// GetByID returns a copy of the order, nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

// ListActionable returns the actor's orders in one of q.Statuses, oldest first.
func (r *OrderRepo) ListActionable(ctx context.Context, q ports.ActionableQuery) ([]domain.Order, error) {
	if len(q.Statuses) == 0 {
		return nil, nil
	}
	statuses := make(map[domain.OrderStatus]struct{}, len(q.Statuses))
	for _, s := range q.Statuses {
		statuses[s] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Order
	for _, o := range r.s.orders {
		if _, ok := statuses[o.Status]; !ok {
			continue
		}
		if !relatedTo(o, q.Role, q.ActorID) {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	limit := q.Limit
	if limit <= 0 {
		limit = defaultActionableLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func relatedTo(o *domain.Order, role domain.Role, actorID uuid.UUID) bool {
	switch role {
	case domain.RoleDeliveryStaff:
		return o.AssignedTo(actorID)
	case domain.RoleSeller:
		return o.OwnedBySeller(actorID)
	case domain.RoleCustomer:
		return o.CustomerID == actorID
	}
	return false
}

// UpdateStatus conditionally moves the order to status and bumps its version.
func (r *OrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, status domain.OrderStatus) error {
	t, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	o, ok := r.s.orders[id]
	if !ok || o.Version != expectedVersion {
		return ports.ErrVersionConflict
	}

	prev := *o
	t.onRollback(func() { *o = prev })

	o.Status = status
	o.Version++
	o.UpdatedAt = r.s.now()
	return nil
}

// EventRepo implements ports.OrderEventRepository.
type EventRepo struct{ s *Store }

// Create appends a status event.
func (r *EventRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.OrderEvent) error {
	t, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	n := len(r.s.events)
	r.s.events = append(r.s.events, *e)
	t.onRollback(func() { r.s.events = r.s.events[:n] })
	return nil
}

// ListByOrder returns an order's history, oldest first.
func (r *EventRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.OrderEvent
	for _, e := range r.s.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// EffectRepo implements ports.EffectRepository.
type EffectRepo struct{ s *Store }

// Claim records the marker, returning false when it already exists.
func (r *EffectRepo) Claim(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, effect domain.SideEffect) (bool, error) {
	t, err := r.s.tx(tx)
	if err != nil {
		return false, err
	}
	key := effectKey{orderID: orderID, effect: effect}
	if _, ok := r.s.effects[key]; ok {
		return false, nil
	}
	r.s.effects[key] = struct{}{}
	t.onRollback(func() { delete(r.s.effects, key) })
	return true, nil
}

// StaffRepo implements ports.StaffDirectory.
type StaffRepo struct{ s *Store }

// CompensationMode returns the recorded pay mode, fixed when unknown.
func (r *StaffRepo) CompensationMode(ctx context.Context, staffID uuid.UUID) (domain.CompensationMode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.staff[staffID].Normalize(), nil
}
