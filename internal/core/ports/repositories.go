package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrVersionConflict is returned by conditional writes whose expected version
// no longer matches the stored row.
var ErrVersionConflict = errors.New("version conflict")

// ErrDuplicateReference is returned when a transaction reference id is reused.
var ErrDuplicateReference = errors.New("duplicate transaction reference")

// OrderRepository reads orders and applies conditional status writes.
// Orders are created by checkout; this service never inserts or deletes them.
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListActionable(ctx context.Context, q ActionableQuery) ([]domain.Order, error)
	// UpdateStatus moves the order to status iff its version still equals
	// expectedVersion, bumping the version. Returns ErrVersionConflict otherwise.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, status domain.OrderStatus) error
}

// ActionableQuery selects orders in Statuses that are related to an actor.
type ActionableQuery struct {
	Role     domain.Role
	ActorID  uuid.UUID
	Statuses []domain.OrderStatus
	Limit    int
}

// OrderEventRepository stores the append-only status history.
type OrderEventRepository interface {
	Create(ctx context.Context, tx pgx.Tx, event *domain.OrderEvent) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderEvent, error)
}

// WalletRepository persists wallets. Methods accepting pgx.Tx run inside a
// transaction and lock the row they return.
type WalletRepository interface {
	GetByKey(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error)
	// GetOrCreateForUpdate returns the wallet for key, creating an empty one
	// on first use, and locks it for the rest of tx.
	GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, key domain.WalletKey) (*domain.Wallet, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, balance, earning int64) error
	UpdateMinUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, amount int64) error
}

// TransactionRepository stores the append-only wallet ledger. It offers no
// update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.WalletTransaction) error
	GetByReference(ctx context.Context, referenceID string) (*domain.WalletTransaction, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.WalletTransaction, int64, error)
	// Totals returns the signed sum per type for a wallet, optionally bounded by time.
	Totals(ctx context.Context, walletID uuid.UUID, from, to *time.Time) (domain.TypeTotals, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	WalletID uuid.UUID
	Types    []domain.TxType
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// StockRepository persists seller stock. Methods run inside a transaction.
type StockRepository interface {
	GetForUpdate(ctx context.Context, tx pgx.Tx, key domain.StockKey) (*domain.StockRecord, error)
	UpdateQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, quantity int64) error
}

// EffectRepository records which once-per-order side effects have run.
type EffectRepository interface {
	// Claim inserts the (order, effect) marker. It returns false when the
	// marker already exists, in which case the effect must not run again.
	Claim(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, effect domain.SideEffect) (bool, error)
}

// StaffDirectory exposes delivery staff reference data.
type StaffDirectory interface {
	// CompensationMode returns the staff member's pay mode, fixed when unknown.
	CompensationMode(ctx context.Context, staffID uuid.UUID) (domain.CompensationMode, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
