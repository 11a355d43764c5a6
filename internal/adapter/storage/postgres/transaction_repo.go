package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const txColumnList = `id, wallet_id, wallet_kind, owner_id, type, amount, description,
		order_id, reference_id, created_by, created_at`

const uniqueViolation = "23505"

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (` + txColumnList + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.WalletKind, t.OwnerID, t.Type, t.Amount, t.Description,
		t.OrderID, t.ReferenceID, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicateReference
		}
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

// GetByReference fetches the entry carrying an admin reference id.
func (r *TransactionRepo) GetByReference(ctx context.Context, referenceID string) (*domain.WalletTransaction, error) {
	query := `SELECT ` + txColumnList + ` FROM wallet_transactions WHERE reference_id = $1`

	t, err := scanWalletTransaction(r.pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by reference: %w", err)
	}
	return t, nil
}

// List fetches a wallet's entries with filtering and pagination, newest first.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.WalletTransaction, int64, error) {
	where, args := walletFilter(params.WalletID, params.From, params.To)
	argIdx := len(args) + 1

	if len(params.Types) > 0 {
		types := make([]string, len(params.Types))
		for i, t := range params.Types {
			types[i] = string(t)
		}
		where += fmt.Sprintf(" AND type = ANY($%d)", argIdx)
		args = append(args, types)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM wallet_transactions " + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wallet transactions: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT `+txColumnList+` FROM wallet_transactions %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		t, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan wallet transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wallet transaction rows: %w", err)
	}
	return txns, total, nil
}

// Totals sums entry amounts per type.
func (r *TransactionRepo) Totals(ctx context.Context, walletID uuid.UUID, from, to *time.Time) (domain.TypeTotals, error) {
	where, args := walletFilter(walletID, from, to)
	query := `SELECT type, COALESCE(SUM(amount), 0) FROM wallet_transactions ` + where + ` GROUP BY type`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum wallet transactions: %w", err)
	}
	defer rows.Close()

	totals := make(domain.TypeTotals)
	for rows.Next() {
		var (
			t   domain.TxType
			sum int64
		)
		if err := rows.Scan(&t, &sum); err != nil {
			return nil, fmt.Errorf("scan wallet totals: %w", err)
		}
		totals[t] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet totals: %w", err)
	}
	return totals, nil
}

func walletFilter(walletID uuid.UUID, from, to *time.Time) (string, []any) {
	conditions := []string{"wallet_id = $1"}
	args := []any{walletID}

	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanWalletTransaction(row pgx.Row) (*domain.WalletTransaction, error) {
	t := &domain.WalletTransaction{}
	err := row.Scan(
		&t.ID, &t.WalletID, &t.WalletKind, &t.OwnerID, &t.Type, &t.Amount, &t.Description,
		&t.OrderID, &t.ReferenceID, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
