package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, customer_id, status, total, items, shipping_address, seller_id,
		assigned_delivery_staff_id, self_delivery, version, created_at, updated_at`

const defaultActionableLimit = 200

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// GetByID fetches an order by id. Returns nil, nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// ListActionable returns the actor's orders in one of q.Statuses, oldest first.
func (r *OrderRepo) ListActionable(ctx context.Context, q ports.ActionableQuery) ([]domain.Order, error) {
	if len(q.Statuses) == 0 {
		return nil, nil
	}

	var relation string
	switch q.Role {
	case domain.RoleDeliveryStaff:
		relation = "assigned_delivery_staff_id = $1"
	case domain.RoleSeller:
		relation = "(seller_id = $1 OR items @> jsonb_build_array(jsonb_build_object('seller_id', $1::text)))"
	case domain.RoleCustomer:
		relation = "customer_id = $1"
	default:
		return nil, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultActionableLimit
	}

	statuses := make([]string, len(q.Statuses))
	for i, s := range q.Statuses {
		statuses[i] = string(s)
	}

	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ` + relation + ` AND status = ANY($2)
		ORDER BY created_at ASC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, q.ActorID, statuses, limit)
	if err != nil {
		return nil, fmt.Errorf("list actionable orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus conditionally moves the order to status and bumps its version.
func (r *OrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3`

	tag, err := tx.Exec(ctx, query, status, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrVersionConflict
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	var items []byte
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.Total, &items, &o.ShippingAddress, &o.SellerID,
		&o.AssignedDeliveryStaffID, &o.SelfDelivery, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return o, nil
}
