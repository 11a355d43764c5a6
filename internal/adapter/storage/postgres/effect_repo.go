package postgres

import (
	"context"
	"fmt"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EffectRepo implements ports.EffectRepository.
type EffectRepo struct {
	pool Pool
}

// NewEffectRepo creates a new EffectRepo.
func NewEffectRepo(pool Pool) *EffectRepo {
	return &EffectRepo{pool: pool}
}

// Claim inserts the marker row; false means another transaction already ran the effect.
func (r *EffectRepo) Claim(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, effect domain.SideEffect) (bool, error) {
	query := `INSERT INTO order_effects (order_id, effect, created_at) VALUES ($1, $2, NOW())
		ON CONFLICT (order_id, effect) DO NOTHING`

	tag, err := tx.Exec(ctx, query, orderID, effect)
	if err != nil {
		return false, fmt.Errorf("claim order effect: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
