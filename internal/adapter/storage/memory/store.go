// Package memory is a process-local storage backend implementing the same
// repository ports as the postgres adapter. A transaction holds the store's
// write lock until it commits or rolls back, so transactions are serialized
// and readers never observe a partial write.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errForeignTx = errors.New("memory: transaction does not belong to this store")
	errTxDone    = errors.New("memory: transaction already closed")
	errNoSQL     = errors.New("memory: SQL is not supported")
)

type effectKey struct {
	orderID uuid.UUID
	effect  domain.SideEffect
}

// Store holds all tables. Use the accessor methods to obtain port implementations.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	orders   map[uuid.UUID]*domain.Order
	events   []domain.OrderEvent
	effects  map[effectKey]struct{}
	wallets  map[uuid.UUID]*domain.Wallet
	walletBy map[domain.WalletKey]uuid.UUID
	txns     []domain.WalletTransaction
	refs     map[string]int
	stock    map[domain.StockKey]*domain.StockRecord
	staff    map[uuid.UUID]domain.CompensationMode
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		orders:   make(map[uuid.UUID]*domain.Order),
		effects:  make(map[effectKey]struct{}),
		wallets:  make(map[uuid.UUID]*domain.Wallet),
		walletBy: make(map[domain.WalletKey]uuid.UUID),
		refs:     make(map[string]int),
		stock:    make(map[domain.StockKey]*domain.StockRecord),
		staff:    make(map[uuid.UUID]domain.CompensationMode),
	}
}

// Begin implements ports.DBTransactor.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{store: s}, nil
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

// PutOrder inserts or replaces an order. Orders are owned by checkout, so
// this is the only way to seed them.
func (s *Store) PutOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	s.orders[o.ID] = cloneOrder(&o)
}

// PutStock sets a seller's on-hand quantity for a product.
func (s *Store) PutStock(sellerID, productID uuid.UUID, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.StockKey{SellerID: sellerID, ProductID: productID}
	if rec, ok := s.stock[key]; ok {
		rec.Quantity = quantity
		rec.Version++
		rec.UpdatedAt = s.now()
		return
	}
	s.stock[key] = &domain.StockRecord{
		ID:        uuid.New(),
		SellerID:  sellerID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: s.now(),
	}
}

// StockQuantity returns the on-hand quantity, false when untracked.
func (s *Store) StockQuantity(sellerID, productID uuid.UUID) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.stock[domain.StockKey{SellerID: sellerID, ProductID: productID}]
	if !ok {
		return 0, false
	}
	return rec.Quantity, true
}

// SetCompensation records a delivery staff member's pay mode.
func (s *Store) SetCompensation(staffID uuid.UUID, mode domain.CompensationMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[staffID] = mode
}

// Orders returns the order repository.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Events returns the order event repository.
func (s *Store) Events() *EventRepo { return &EventRepo{s: s} }

// Effects returns the side effect claim repository.
func (s *Store) Effects() *EffectRepo { return &EffectRepo{s: s} }

// Staff returns the staff directory.
func (s *Store) Staff() *StaffRepo { return &StaffRepo{s: s} }

// Wallets returns the wallet repository.
func (s *Store) Wallets() *WalletRepo { return &WalletRepo{s: s} }

// Transactions returns the wallet ledger repository.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Stock returns the seller stock repository.
func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }

// Tx is a store transaction. Writes are applied in place and undone on rollback.
type Tx struct {
	store *Store
	undo  []func()
	done  bool
}

func (s *Store) tx(tx pgx.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, errForeignTx
	}
	if t.done {
		return nil, errTxDone
	}
	return t, nil
}

func (t *Tx) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

// Commit keeps the writes and releases the store.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.undo = nil
	t.store.mu.Unlock()
	return nil
}

// Rollback reverts the writes and releases the store. It is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.undo = nil
	t.store.mu.Unlock()
	return nil
}

// Begin would start a savepoint; nested transactions are not supported.
func (t *Tx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, errNoSQL }

func (t *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errNoSQL
}

func (t *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *Tx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errNoSQL
}

func (t *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoSQL
}

func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errNoSQL
}

func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return errRow{} }

func (t *Tx) Conn() *pgx.Conn { return nil }

type errRow struct{}

func (errRow) Scan(dest ...any) error { return errNoSQL }

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.LineItem(nil), o.Items...)
	return &c
}
