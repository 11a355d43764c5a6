package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.DBTransactor          = (*Store)(nil)
	_ ports.HealthChecker         = (*Store)(nil)
	_ ports.OrderRepository       = (*OrderRepo)(nil)
	_ ports.OrderEventRepository  = (*EventRepo)(nil)
	_ ports.EffectRepository      = (*EffectRepo)(nil)
	_ ports.StaffDirectory        = (*StaffRepo)(nil)
	_ ports.WalletRepository      = (*WalletRepo)(nil)
	_ ports.TransactionRepository = (*TransactionRepo)(nil)
	_ ports.StockRepository       = (*StockRepo)(nil)
)

func seedOrder(s *Store, status domain.OrderStatus) domain.Order {
	staff := uuid.New()
	o := domain.Order{
		ID:                      uuid.New(),
		CustomerID:              uuid.New(),
		Status:                  status,
		Total:                   40000,
		AssignedDeliveryStaffID: &staff,
	}
	s.PutOrder(o)
	return o
}

func TestStore_CommitKeepsWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	o := seedOrder(s, domain.OrderStatusPending)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Orders().UpdateStatus(ctx, tx, o.ID, 0, domain.OrderStatusAccepted))
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, tx.Rollback(ctx), "rollback after commit is a no-op")

	got, err := s.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, got.Status)
	assert.Equal(t, int64(1), got.Version)
}

func TestStore_RollbackRevertsEverything(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	o := seedOrder(s, domain.OrderStatusShipped)
	key := domain.WalletKey{Kind: domain.WalletKindDeliveryStaff, OwnerID: *o.AssignedDeliveryStaffID}
	ref := "ref-1"

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Orders().UpdateStatus(ctx, tx, o.ID, 0, domain.OrderStatusDelivered))
	claimed, err := s.Effects().Claim(ctx, tx, o.ID, domain.EffectDeliverySettlement)
	require.NoError(t, err)
	require.True(t, claimed)

	w, err := s.Wallets().GetOrCreateForUpdate(ctx, tx, key)
	require.NoError(t, err)
	require.NoError(t, s.Wallets().UpdateBalances(ctx, tx, w.ID, w.Version, 40000, 0))
	require.NoError(t, s.Transactions().Create(ctx, tx, &domain.WalletTransaction{
		ID: uuid.New(), WalletID: w.ID, Type: domain.TxCredit, Amount: 40000, ReferenceID: &ref,
	}))
	require.NoError(t, s.Events().Create(ctx, tx, &domain.OrderEvent{ID: uuid.New(), OrderID: o.ID}))

	require.NoError(t, tx.Rollback(ctx))

	got, _ := s.Orders().GetByID(ctx, o.ID)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)
	assert.Equal(t, int64(0), got.Version)

	wallet, _ := s.Wallets().GetByKey(ctx, key)
	assert.Nil(t, wallet)

	byRef, _ := s.Transactions().GetByReference(ctx, ref)
	assert.Nil(t, byRef)

	events, _ := s.Events().ListByOrder(ctx, o.ID)
	assert.Empty(t, events)

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	claimed, err = s.Effects().Claim(ctx, tx, o.ID, domain.EffectDeliverySettlement)
	require.NoError(t, err)
	assert.True(t, claimed, "claim is released by rollback")
	require.NoError(t, tx.Rollback(ctx))
}

func TestStore_VersionConflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	o := seedOrder(s, domain.OrderStatusPending)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = s.Orders().UpdateStatus(ctx, tx, o.ID, 7, domain.OrderStatusAccepted)
	assert.True(t, errors.Is(err, ports.ErrVersionConflict))
}

func TestStore_DuplicateReference(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ref := "adj-7"

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Transactions().Create(ctx, tx, &domain.WalletTransaction{ID: uuid.New(), ReferenceID: &ref}))
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	err = s.Transactions().Create(ctx, tx, &domain.WalletTransaction{ID: uuid.New(), ReferenceID: &ref})
	assert.True(t, errors.Is(err, ports.ErrDuplicateReference))
	require.NoError(t, tx.Rollback(ctx))
}

func TestStore_ForeignOrClosedTx(t *testing.T) {
	s, other := NewStore(), NewStore()
	ctx := context.Background()

	tx, err := other.Begin(ctx)
	require.NoError(t, err)
	_, err = s.Effects().Claim(ctx, tx, uuid.New(), domain.EffectReturnRestock)
	assert.ErrorIs(t, err, errForeignTx)
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	_, err = s.Effects().Claim(ctx, tx, uuid.New(), domain.EffectReturnRestock)
	assert.ErrorIs(t, err, errTxDone)
	assert.ErrorIs(t, tx.Commit(ctx), errTxDone)
}

func TestOrderRepo_ListActionable(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller := uuid.New()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	newer := domain.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: domain.OrderStatusSellerConfirmationPending, SellerID: &seller, CreatedAt: base.Add(time.Minute)}
	older := domain.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: domain.OrderStatusPending, CreatedAt: base,
		Items: []domain.LineItem{{ProductID: uuid.New(), Quantity: 1, Source: domain.SourceSeller, SellerID: &seller}}}
	unrelated := domain.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: domain.OrderStatusPending, CreatedAt: base}
	delivered := domain.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: domain.OrderStatusDelivered, SellerID: &seller, CreatedAt: base}
	for _, o := range []domain.Order{newer, older, unrelated, delivered} {
		s.PutOrder(o)
	}

	orders, err := s.Orders().ListActionable(ctx, ports.ActionableQuery{
		Role:     domain.RoleSeller,
		ActorID:  seller,
		Statuses: []domain.OrderStatus{domain.OrderStatusSellerConfirmationPending, domain.OrderStatusPending},
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, older.ID, orders[0].ID)
	assert.Equal(t, newer.ID, orders[1].ID)

	orders, err = s.Orders().ListActionable(ctx, ports.ActionableQuery{
		Role: domain.RoleAdmin, ActorID: seller, Statuses: []domain.OrderStatus{domain.OrderStatusPending},
	})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTransactionRepo_ListAndTotals(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	walletID := uuid.New()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	for i, e := range []struct {
		typ    domain.TxType
		amount int64
	}{
		{domain.TxCredit, 10000},
		{domain.TxCredit, 20000},
		{domain.TxSettlement, -25000},
		{domain.TxEarningCredit, 3000},
	} {
		require.NoError(t, s.Transactions().Create(ctx, tx, &domain.WalletTransaction{
			ID: uuid.New(), WalletID: walletID, Type: e.typ, Amount: e.amount, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.Transactions().Create(ctx, tx, &domain.WalletTransaction{ID: uuid.New(), WalletID: uuid.New(), Type: domain.TxCredit, Amount: 1}))
	require.NoError(t, tx.Commit(ctx))

	txns, total, err := s.Transactions().List(ctx, ports.TransactionListParams{WalletID: walletID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TxEarningCredit, txns[0].Type, "newest first")

	txns, total, err = s.Transactions().List(ctx, ports.TransactionListParams{
		WalletID: walletID, Types: []domain.TxType{domain.TxCredit}, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, txns, 2)

	txns, _, err = s.Transactions().List(ctx, ports.TransactionListParams{WalletID: walletID, Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, txns)

	from := base.Add(time.Hour)
	totals, err := s.Transactions().Totals(ctx, walletID, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeTotals{
		domain.TxCredit:        20000,
		domain.TxSettlement:    -25000,
		domain.TxEarningCredit: 3000,
	}, totals)
}

func TestStockRepo(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller, product := uuid.New(), uuid.New()
	s.PutStock(seller, product, 9)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	rec, err := s.Stock().GetForUpdate(ctx, tx, domain.StockKey{SellerID: seller, ProductID: product})
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NoError(t, s.Stock().UpdateQuantity(ctx, tx, rec.ID, rec.Version, 4))
	assert.ErrorIs(t, s.Stock().UpdateQuantity(ctx, tx, rec.ID, rec.Version, 1), ports.ErrVersionConflict)

	missing, err := s.Stock().GetForUpdate(ctx, tx, domain.StockKey{SellerID: seller, ProductID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, missing)
	require.NoError(t, tx.Commit(ctx))

	qty, ok := s.StockQuantity(seller, product)
	assert.True(t, ok)
	assert.Equal(t, int64(4), qty)
}

func TestStaffRepo_CompensationMode(t *testing.T) {
	s := NewStore()
	staff := uuid.New()
	s.SetCompensation(staff, domain.CompensationPartTime)

	mode, err := s.Staff().CompensationMode(context.Background(), staff)
	require.NoError(t, err)
	assert.Equal(t, domain.CompensationPartTime, mode)

	mode, err = s.Staff().CompensationMode(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.CompensationFixed, mode)
}
