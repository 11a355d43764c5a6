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

const walletColumns = `id, kind, owner_id, balance, earning_balance, min_usage_amount, version, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// GetByKey fetches a wallet without locking. Returns nil, nil when the
// wallet has not been created yet.
func (r *WalletRepo) GetByKey(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE kind = $1 AND owner_id = $2`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, key.Kind, key.OwnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by key: %w", err)
	}
	return w, nil
}

// GetOrCreateForUpdate lazily creates the wallet and locks its row.
// This MUST be called within a transaction.
func (r *WalletRepo) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, key domain.WalletKey) (*domain.Wallet, error) {
	insert := `INSERT INTO wallets (id, kind, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (kind, owner_id) DO NOTHING`

	if _, err := tx.Exec(ctx, insert, uuid.New(), key.Kind, key.OwnerID); err != nil {
		return nil, fmt.Errorf("ensure wallet: %w", err)
	}

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE kind = $1 AND owner_id = $2 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, key.Kind, key.OwnerID))
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	return w, nil
}

// UpdateBalances writes both cached balances iff the version still matches.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, balance, earning int64) error {
	query := `UPDATE wallets SET balance = $1, earning_balance = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4`

	tag, err := tx.Exec(ctx, query, balance, earning, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrVersionConflict
	}
	return nil
}

// UpdateMinUsage sets a customer wallet's minimum usage amount.
func (r *WalletRepo) UpdateMinUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, amount int64) error {
	query := `UPDATE wallets SET min_usage_amount = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3`

	tag, err := tx.Exec(ctx, query, amount, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update wallet min usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrVersionConflict
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.Kind, &w.OwnerID, &w.Balance, &w.EarningBalance,
		&w.MinUsageAmount, &w.Version, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}
