package postgres

import (
	"context"
	"errors"
	"fmt"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StockRepo implements ports.StockRepository.
type StockRepo struct {
	pool Pool
}

// NewStockRepo creates a new StockRepo.
func NewStockRepo(pool Pool) *StockRepo {
	return &StockRepo{pool: pool}
}

// GetForUpdate locks a seller's stock row. Returns nil, nil when the seller
// does not track stock for the product.
func (r *StockRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, key domain.StockKey) (*domain.StockRecord, error) {
	query := `SELECT id, seller_id, product_id, quantity, version, updated_at
		FROM seller_stock WHERE seller_id = $1 AND product_id = $2 FOR UPDATE`

	s := &domain.StockRecord{}
	err := tx.QueryRow(ctx, query, key.SellerID, key.ProductID).Scan(
		&s.ID, &s.SellerID, &s.ProductID, &s.Quantity, &s.Version, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock seller stock: %w", err)
	}
	return s, nil
}

// UpdateQuantity writes the quantity iff the version still matches.
func (r *StockRepo) UpdateQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, quantity int64) error {
	query := `UPDATE seller_stock SET quantity = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3`

	tag, err := tx.Exec(ctx, query, quantity, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update seller stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrVersionConflict
	}
	return nil
}
