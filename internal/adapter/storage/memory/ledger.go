package memory

import (
	"context"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct{ s *Store }

// GetByKey returns a copy of the wallet, nil when it has not been created.
func (r *WalletRepo) GetByKey(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.walletBy[key]
	if !ok {
		return nil, nil
	}
	w := *r.s.wallets[id]
	return &w, nil
}

// GetOrCreateForUpdate returns the wallet for key, creating it on first use.
func (r *WalletRepo) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, key domain.WalletKey) (*domain.Wallet, error) {
	t, err := r.s.tx(tx)
	if err != nil {
		return nil, err
	}
	if id, ok := r.s.walletBy[key]; ok {
		w := *r.s.wallets[id]
		return &w, nil
	}

	now := r.s.now()
	w := &domain.Wallet{
		ID:        uuid.New(),
		Kind:      key.Kind,
		OwnerID:   key.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.wallets[w.ID] = w
	r.s.walletBy[key] = w.ID
	t.onRollback(func() {
		delete(r.s.wallets, w.ID)
		delete(r.s.walletBy, key)
	})

	out := *w
	return &out, nil
}

// UpdateBalances writes both cached balances iff the version still matches.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, balance, earning int64) error {
	return r.update(tx, id, expectedVersion, func(w *domain.Wallet) {
		w.Balance = balance
		w.EarningBalance = earning
	})
}

// UpdateMinUsage writes the minimum usage amount iff the version still matches.
func (r *WalletRepo) UpdateMinUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, amount int64) error {
	return r.update(tx, id, expectedVersion, func(w *domain.Wallet) {
		w.MinUsageAmount = amount
	})
}

func (r *WalletRepo) update(tx pgx.Tx, id uuid.UUID, expectedVersion int64, apply func(*domain.Wallet)) error {
	t, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	w, ok := r.s.wallets[id]
	if !ok || w.Version != expectedVersion {
		return ports.ErrVersionConflict
	}
	prev := *w
	t.onRollback(func() { *w = prev })

	apply(w)
	w.Version++
	w.UpdatedAt = r.s.now()
	return nil
}

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct{ s *Store }

// Create appends a ledger entry. A reused reference id is rejected.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	t, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	if txn.ReferenceID != nil {
		if _, dup := r.s.refs[*txn.ReferenceID]; dup {
			return ports.ErrDuplicateReference
		}
	}

	n := len(r.s.txns)
	r.s.txns = append(r.s.txns, *txn)
	if txn.ReferenceID != nil {
		ref := *txn.ReferenceID
		r.s.refs[ref] = n
		t.onRollback(func() { delete(r.s.refs, ref) })
	}
	t.onRollback(func() { r.s.txns = r.s.txns[:n] })
	return nil
}

// GetByReference returns the entry carrying referenceID, nil when absent.
func (r *TransactionRepo) GetByReference(ctx context.Context, referenceID string) (*domain.WalletTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.refs[referenceID]
	if !ok {
		return nil, nil
	}
	txn := r.s.txns[i]
	return &txn, nil
}

// List returns a wallet's entries newest first with pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.WalletTransaction, int64, error) {
	types := make(map[domain.TxType]struct{}, len(params.Types))
	for _, t := range params.Types {
		types[t] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []domain.WalletTransaction
	for i := len(r.s.txns) - 1; i >= 0; i-- {
		txn := r.s.txns[i]
		if txn.WalletID != params.WalletID || !within(txn.CreatedAt, params.From, params.To) {
			continue
		}
		if len(types) > 0 {
			if _, ok := types[txn.Type]; !ok {
				continue
			}
		}
		matched = append(matched, txn)
	}

	total := int64(len(matched))
	start := (params.Page - 1) * params.PageSize
	if start < 0 || start >= len(matched) {
		return nil, total, nil
	}
	end := min(start+params.PageSize, len(matched))
	return matched[start:end], total, nil
}

// Totals sums entry amounts per type.
func (r *TransactionRepo) Totals(ctx context.Context, walletID uuid.UUID, from, to *time.Time) (domain.TypeTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := make(domain.TypeTotals)
	for _, txn := range r.s.txns {
		if txn.WalletID == walletID && within(txn.CreatedAt, from, to) {
			totals[txn.Type] += txn.Amount
		}
	}
	return totals, nil
}

func within(at time.Time, from, to *time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && at.After(*to) {
		return false
	}
	return true
}

// StockRepo implements ports.StockRepository.
type StockRepo struct{ s *Store }

// GetForUpdate returns a copy of the stock record, nil when untracked.
func (r *StockRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, key domain.StockKey) (*domain.StockRecord, error) {
	if _, err := r.s.tx(tx); err != nil {
		return nil, err
	}
	rec, ok := r.s.stock[key]
	if !ok {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

// UpdateQuantity writes the quantity iff the version still matches.
func (r *StockRepo) UpdateQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedVersion int64, quantity int64) error {
	t, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	for _, rec := range r.s.stock {
		if rec.ID != id {
			continue
		}
		if rec.Version != expectedVersion {
			return ports.ErrVersionConflict
		}
		prev := *rec
		t.onRollback(func() { *rec = prev })
		rec.Quantity = quantity
		rec.Version++
		rec.UpdatedAt = r.s.now()
		return nil
	}
	return ports.ErrVersionConflict
}
