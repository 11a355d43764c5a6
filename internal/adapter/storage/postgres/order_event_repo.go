package postgres

import (
	"context"
	"fmt"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderEventRepo implements ports.OrderEventRepository.
type OrderEventRepo struct {
	pool Pool
}

// NewOrderEventRepo creates a new OrderEventRepo.
func NewOrderEventRepo(pool Pool) *OrderEventRepo {
	return &OrderEventRepo{pool: pool}
}

// Create appends a status event within a database transaction.
func (r *OrderEventRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.OrderEvent) error {
	query := `INSERT INTO order_events (id, order_id, from_status, to_status, actor_id, actor_role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query, e.ID, e.OrderID, e.From, e.To, e.ActorID, e.ActorRole, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// ListByOrder returns an order's history, oldest first.
func (r *OrderEventRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderEvent, error) {
	query := `SELECT id, order_id, from_status, to_status, actor_id, actor_role, created_at
		FROM order_events WHERE order_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	defer rows.Close()

	var events []domain.OrderEvent
	for rows.Next() {
		var e domain.OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.From, &e.To, &e.ActorID, &e.ActorRole, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order events: %w", err)
	}
	return events, nil
}
