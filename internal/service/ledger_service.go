package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// LedgerOptions tunes the ledger service.
type LedgerOptions struct {
	OperationTimeout time.Duration
	ConflictRetries  int
	Read             ReadPolicy
	AdjustmentTTL    time.Duration
}

// LedgerServiceImpl implements ports.LedgerService and ports.LedgerPoster.
// It is the only writer of wallets and wallet transactions.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	cache      ports.IdempotencyCache
	metrics    ports.Metrics
	opts       LedgerOptions
	log        zerolog.Logger
	now        func() time.Time
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	cache ports.IdempotencyCache,
	metrics ports.Metrics,
	opts LedgerOptions,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		cache:      cache,
		metrics:    metrics,
		opts:       opts,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// PostInTx applies postings in order inside tx. Each posting locks its
// wallet (creating it on first use), checks that neither balance goes
// negative, writes the new balances conditionally on the wallet version and
// appends the transaction. A reused reference id surfaces as
// ports.ErrDuplicateReference.
func (s *LedgerServiceImpl) PostInTx(ctx context.Context, tx pgx.Tx, postings ...ports.Posting) ([]domain.WalletTransaction, error) {
	out := make([]domain.WalletTransaction, 0, len(postings))
	for _, p := range postings {
		if err := validatePosting(p); err != nil {
			return nil, err
		}

		wallet, err := s.walletRepo.GetOrCreateForUpdate(ctx, tx, p.Key)
		if err != nil {
			return nil, storeError(fmt.Errorf("lock wallet %s: %w", p.Key, err))
		}

		signed := p.Type.Sign() * p.Amount
		if wallet.Overflows(p.Type, signed) {
			return nil, apperror.ErrInvalidAmount()
		}
		balance, earning, ok := wallet.Apply(p.Type, signed)
		if !ok {
			return nil, apperror.ErrInsufficientBalance()
		}

		if err := s.walletRepo.UpdateBalances(ctx, tx, wallet.ID, wallet.Version, balance, earning); err != nil {
			return nil, storeError(fmt.Errorf("update wallet %s: %w", p.Key, err))
		}

		txn := domain.WalletTransaction{
			ID:          uuid.New(),
			WalletID:    wallet.ID,
			WalletKind:  wallet.Kind,
			OwnerID:     wallet.OwnerID,
			Type:        p.Type,
			Amount:      signed,
			Description: p.Description,
			OrderID:     p.OrderID,
			ReferenceID: p.ReferenceID,
			CreatedBy:   p.CreatedBy,
			CreatedAt:   s.now(),
		}
		if err := s.txRepo.Create(ctx, tx, &txn); err != nil {
			if errors.Is(err, ports.ErrDuplicateReference) {
				return nil, err
			}
			return nil, storeError(fmt.Errorf("append transaction: %w", err))
		}
		out = append(out, txn)
	}
	return out, nil
}

func validatePosting(p ports.Posting) error {
	if p.Amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if !p.Type.Valid() {
		return apperror.Validation(fmt.Sprintf("unknown transaction type %q", p.Type))
	}
	if !p.Key.Kind.Valid() || p.Key.OwnerID == uuid.Nil {
		return apperror.Validation("wallet kind and owner are required")
	}
	if p.Type.Bucket() == domain.BucketEarning && p.Key.Kind != domain.WalletKindDeliveryStaff {
		return apperror.Validation("earning transactions apply to delivery staff wallets only")
	}
	return nil
}

// Credit adds p.Amount to the wallet balance.
func (s *LedgerServiceImpl) Credit(ctx context.Context, p ports.Posting) (*domain.WalletTransaction, error) {
	p.Type = domain.TxCredit
	txns, err := s.post(ctx, p)
	if err != nil {
		return nil, err
	}
	return &txns[0], nil
}

// Debit removes p.Amount from the wallet balance. It fails with
// InsufficientBalance rather than go negative.
func (s *LedgerServiceImpl) Debit(ctx context.Context, p ports.Posting) (*domain.WalletTransaction, error) {
	p.Type = domain.TxDebit
	txns, err := s.post(ctx, p)
	if err != nil {
		return nil, err
	}
	return &txns[0], nil
}

// Settle pays out collected cash and, for delivery staff, earned wages.
// Both legs commit together or not at all.
func (s *LedgerServiceImpl) Settle(ctx context.Context, req ports.SettleRequest) ([]domain.WalletTransaction, error) {
	if req.Actor.Role != domain.RoleAdmin {
		return nil, apperror.ErrForbidden()
	}
	if req.Amount < 0 || req.EarningAmount < 0 || req.Amount+req.EarningAmount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.EarningAmount > 0 && req.Key.Kind != domain.WalletKindDeliveryStaff {
		return nil, apperror.Validation("earning settlement applies to delivery staff wallets only")
	}

	createdBy := req.Actor.ID
	var postings []ports.Posting
	if req.Amount > 0 {
		postings = append(postings, ports.Posting{
			Key:         req.Key,
			Type:        domain.TxSettlement,
			Amount:      req.Amount,
			Description: describe(req.Description, "Settlement"),
			CreatedBy:   &createdBy,
		})
	}
	if req.EarningAmount > 0 {
		postings = append(postings, ports.Posting{
			Key:         req.Key,
			Type:        domain.TxEarningSettlement,
			Amount:      req.EarningAmount,
			Description: describe(req.Description, "Earning settlement"),
			CreatedBy:   &createdBy,
		})
	}

	txns, err := s.post(ctx, postings...)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet", req.Key.String()).
		Int64("amount", req.Amount).
		Int64("earning_amount", req.EarningAmount).
		Str("admin_id", req.Actor.ID.String()).
		Msg("wallet settled")
	return txns, nil
}

// AdminAdjustWallet credits or debits any wallet on behalf of an admin.
// With a reference id the call is idempotent: a repeat with the same
// parameters returns the original transaction, a repeat with different
// parameters fails with DuplicateAdjustment.
func (s *LedgerServiceImpl) AdminAdjustWallet(ctx context.Context, req ports.AdjustRequest) (*domain.WalletTransaction, error) {
	if req.Actor.Role != domain.RoleAdmin {
		return nil, apperror.ErrForbidden()
	}
	if req.Type != domain.TxCredit && req.Type != domain.TxDebit {
		return nil, apperror.Validation("adjustment type must be credit or debit")
	}
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !req.Key.Kind.Valid() {
		return nil, apperror.Validation("unknown wallet kind")
	}

	if req.ReferenceID != nil {
		prior, err := s.priorAdjustment(ctx, *req.ReferenceID)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			return matchAdjustment(prior, req)
		}
	}

	fallback := "Admin credit"
	if req.Type == domain.TxDebit {
		fallback = "Admin debit"
	}
	createdBy := req.Actor.ID
	txns, err := s.post(ctx, ports.Posting{
		Key:         req.Key,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: describe(req.Description, fallback),
		ReferenceID: req.ReferenceID,
		CreatedBy:   &createdBy,
	})
	if errors.Is(err, ports.ErrDuplicateReference) {
		// Lost a race with a concurrent call using the same reference.
		prior, lookupErr := s.lookupReference(ctx, *req.ReferenceID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if prior == nil {
			return nil, apperror.ErrConflict("Adjustment reference is being recorded, retry")
		}
		return matchAdjustment(prior, req)
	}
	if err != nil {
		return nil, err
	}
	txn := txns[0]

	if req.ReferenceID != nil {
		s.cacheAdjustment(ctx, &txn)
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("wallet", req.Key.String()).
		Str("type", string(req.Type)).
		Int64("amount", req.Amount).
		Str("admin_id", req.Actor.ID.String()).
		Msg("admin wallet adjustment recorded")
	return &txn, nil
}

// priorAdjustment checks Redis first, then the ledger itself.
func (s *LedgerServiceImpl) priorAdjustment(ctx context.Context, ref string) (*domain.WalletTransaction, error) {
	cached, err := s.cache.Get(ctx, ref)
	if err != nil {
		s.log.Warn().Err(err).Str("reference_id", ref).Msg("redis adjustment lookup failed, falling through to DB")
	}
	if cached != nil {
		var txn domain.WalletTransaction
		if err := json.Unmarshal(cached, &txn); err == nil {
			return &txn, nil
		}
		s.log.Warn().Str("reference_id", ref).Msg("discarding undecodable cached adjustment")
	}
	return s.lookupReference(ctx, ref)
}

func (s *LedgerServiceImpl) lookupReference(ctx context.Context, ref string) (*domain.WalletTransaction, error) {
	txn, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) (*domain.WalletTransaction, error) {
		txn, err := s.txRepo.GetByReference(ctx, ref)
		return txn, storeError(err)
	})
	if err != nil {
		return nil, err
	}
	if txn != nil {
		s.cacheAdjustment(ctx, txn)
	}
	return txn, nil
}

func (s *LedgerServiceImpl) cacheAdjustment(ctx context.Context, txn *domain.WalletTransaction) {
	if txn.ReferenceID == nil {
		return
	}
	data, err := json.Marshal(txn)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, *txn.ReferenceID, data, s.opts.AdjustmentTTL); err != nil {
		s.log.Warn().Err(err).Str("reference_id", *txn.ReferenceID).Msg("failed to cache adjustment in redis")
	}
}

func matchAdjustment(prior *domain.WalletTransaction, req ports.AdjustRequest) (*domain.WalletTransaction, error) {
	amount := prior.Amount
	if amount < 0 {
		amount = -amount
	}
	if prior.WalletKind != req.Key.Kind || prior.OwnerID != req.Key.OwnerID ||
		prior.Type != req.Type || amount != req.Amount {
		return nil, apperror.ErrDuplicateAdjustment()
	}
	return prior, nil
}

// SetMinUsageAmount sets the threshold a customer wallet must hold before use.
func (s *LedgerServiceImpl) SetMinUsageAmount(ctx context.Context, actor domain.Actor, customerID uuid.UUID, amount int64) (*domain.Wallet, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperror.ErrForbidden()
	}
	if amount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	key := domain.WalletKey{Kind: domain.WalletKindCustomer, OwnerID: customerID}

	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	var updated *domain.Wallet
	err := s.withConflictRetry(ctx, "set_min_usage", func(tx pgx.Tx) error {
		w, err := s.walletRepo.GetOrCreateForUpdate(ctx, tx, key)
		if err != nil {
			return storeError(fmt.Errorf("lock wallet %s: %w", key, err))
		}
		if err := s.walletRepo.UpdateMinUsage(ctx, tx, w.ID, w.Version, amount); err != nil {
			return storeError(fmt.Errorf("update min usage: %w", err))
		}
		w.MinUsageAmount = amount
		w.Version++
		w.UpdatedAt = s.now()
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetWalletSummary returns a wallet with its per-type totals over [from, to].
func (s *LedgerServiceImpl) GetWalletSummary(ctx context.Context, key domain.WalletKey, from, to *time.Time) (*domain.WalletSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	w, err := s.wallet(ctx, key)
	if err != nil {
		return nil, err
	}
	totals, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) (domain.TypeTotals, error) {
		t, err := s.txRepo.Totals(ctx, w.ID, from, to)
		return t, storeError(err)
	})
	if err != nil {
		return nil, err
	}

	summary := domain.NewWalletSummary(*w, totals, from, to)
	return &summary, nil
}

// ListTransactions pages through a wallet's history, newest first.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, key domain.WalletKey, q ports.TransactionQuery) ([]domain.WalletTransaction, int64, error) {
	if err := validateRange(q.From, q.To); err != nil {
		return nil, 0, err
	}
	for _, t := range q.Types {
		if !t.Valid() {
			return nil, 0, apperror.Validation(fmt.Sprintf("unknown transaction type %q", t))
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	q.PageSize = min(q.PageSize, maxPageSize)

	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	w, err := s.wallet(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	type page struct {
		txns  []domain.WalletTransaction
		total int64
	}
	p, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) (page, error) {
		txns, total, err := s.txRepo.List(ctx, ports.TransactionListParams{
			WalletID: w.ID,
			Types:    q.Types,
			From:     q.From,
			To:       q.To,
			Page:     q.Page,
			PageSize: q.PageSize,
		})
		return page{txns: txns, total: total}, storeError(err)
	})
	if err != nil {
		return nil, 0, err
	}
	return p.txns, p.total, nil
}

// Reconcile recomputes a wallet's transaction sums and compares them with
// the cached balances.
func (s *LedgerServiceImpl) Reconcile(ctx context.Context, key domain.WalletKey) (*domain.Drift, error) {
	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	w, err := s.wallet(ctx, key)
	if err != nil {
		return nil, err
	}
	totals, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) (domain.TypeTotals, error) {
		t, err := s.txRepo.Totals(ctx, w.ID, nil, nil)
		return t, storeError(err)
	})
	if err != nil {
		return nil, err
	}

	drift := &domain.Drift{Key: key, Balance: w.Balance, EarningBalance: w.EarningBalance}
	for t, sum := range totals {
		if t.Bucket() == domain.BucketEarning {
			drift.EarningSum += sum
		} else {
			drift.BalanceSum += sum
		}
	}
	if !drift.Consistent() {
		s.log.Error().
			Str("wallet", key.String()).
			Int64("balance", drift.Balance).
			Int64("balance_sum", drift.BalanceSum).
			Int64("earning_balance", drift.EarningBalance).
			Int64("earning_sum", drift.EarningSum).
			Msg("wallet balance drift detected")
	}
	return drift, nil
}

func (s *LedgerServiceImpl) wallet(ctx context.Context, key domain.WalletKey) (*domain.Wallet, error) {
	if !key.Kind.Valid() {
		return nil, apperror.Validation("unknown wallet kind")
	}
	w, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) (*domain.Wallet, error) {
		w, err := s.walletRepo.GetByKey(ctx, key)
		return w, storeError(err)
	})
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return w, nil
}

// post applies postings in a transaction of their own, retrying on Conflict.
func (s *LedgerServiceImpl) post(ctx context.Context, postings ...ports.Posting) ([]domain.WalletTransaction, error) {
	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	var txns []domain.WalletTransaction
	err := s.withConflictRetry(ctx, "post", func(tx pgx.Tx) error {
		var err error
		txns, err = s.PostInTx(ctx, tx, postings...)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		s.metrics.LedgerPosted(t.WalletKind, t.Type, t.Amount)
	}
	return txns, nil
}

// withConflictRetry runs fn in a fresh transaction, starting over when a
// version check fails. Every attempt re-reads and re-validates.
func (s *LedgerServiceImpl) withConflictRetry(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt <= s.opts.ConflictRetries; attempt++ {
		err = s.inTx(ctx, fn)
		if !apperror.Is(err, apperror.CodeConflict) {
			return err
		}
		s.log.Debug().Str("op", op).Int("attempt", attempt+1).Msg("ledger version conflict, retrying")
	}
	return err
}

func (s *LedgerServiceImpl) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return storeError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return apperror.Validation("from must not be after to")
	}
	return nil
}

func describe(desc, fallback string) string {
	if desc == "" {
		return fallback
	}
	return desc
}
