package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment-ledger/internal/adapter/metrics"
	"fulfillment-ledger/internal/adapter/storage/memory"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const earningPerDelivery = 3000

// mapCache is a process-local ports.IdempotencyCache.
type mapCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[key], nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[key]; !ok {
		c.m[key] = value
	}
	return nil
}

type system struct {
	store  *memory.Store
	ledger *LedgerServiceImpl
	orders *OrderServiceImpl
	p      parties
	admin  domain.Actor
}

func newSystem(t *testing.T) *system {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	read := ReadPolicy{Attempts: 2, Backoff: time.Millisecond}

	ledger := NewLedgerService(
		store.Wallets(), store.Transactions(), store, &mapCache{m: map[string][]byte{}}, metrics.Nop{},
		LedgerOptions{OperationTimeout: 5 * time.Second, ConflictRetries: 3, Read: read, AdjustmentTTL: time.Hour},
		log,
	)
	orders := NewOrderService(
		store.Orders(), store.Events(), store.Effects(), store.Staff(), store,
		ledger, NewStockReconciler(store.Stock(), log), metrics.Nop{},
		OrderOptions{EarningPerDelivery: earningPerDelivery, OperationTimeout: 5 * time.Second, Read: read},
		log,
	)
	return &system{
		store:  store,
		ledger: ledger,
		orders: orders,
		p:      newParties(),
		admin:  domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
	}
}

func (s *system) staffWallet(t *testing.T) *domain.Wallet {
	t.Helper()
	w, err := s.store.Wallets().GetByKey(context.Background(), domain.WalletKey{Kind: domain.WalletKindDeliveryStaff, OwnerID: s.p.staff.ID})
	require.NoError(t, err)
	require.NotNil(t, w)
	return w
}

func (s *system) assertConsistent(t *testing.T, key domain.WalletKey) {
	t.Helper()
	drift, err := s.ledger.Reconcile(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, drift.Consistent(), "cached balances drifted: %+v", drift)
}

func TestScenario_DeliveryCreditsStaff(t *testing.T) {
	for _, mode := range []domain.CompensationMode{domain.CompensationFixed, domain.CompensationPartTime} {
		t.Run(string(mode), func(t *testing.T) {
			s := newSystem(t)
			ctx := context.Background()
			s.store.SetCompensation(s.p.staff.ID, mode)

			order := s.p.directOrder(domain.OrderStatusShipped)
			order.Total = 25000
			s.store.PutOrder(*order)

			got, err := s.orders.Advance(ctx, order.ID, s.p.staff)
			require.NoError(t, err)
			assert.Equal(t, domain.OrderStatusDelivered, got.Status)

			w := s.staffWallet(t)
			assert.Equal(t, int64(25000), w.Balance)

			txns, _, err := s.ledger.ListTransactions(ctx, w.Key(), ports.TransactionQuery{Types: []domain.TxType{domain.TxCredit}})
			require.NoError(t, err)
			require.Len(t, txns, 1)
			assert.Equal(t, "Collection for order "+order.ShortID(), txns[0].Description)
			assert.Equal(t, order.ID, *txns[0].OrderID)

			if mode == domain.CompensationPartTime {
				assert.Equal(t, int64(earningPerDelivery), w.EarningBalance)
			} else {
				assert.Zero(t, w.EarningBalance)
			}
			s.assertConsistent(t, w.Key())
		})
	}
}

func TestScenario_SellerConfirmsBeforeDelivery(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	order := s.p.sellerOrder(domain.OrderStatusSellerConfirmationPending)
	s.store.PutOrder(*order)

	_, err := s.orders.RequestTransition(ctx, order.ID, s.p.staff, domain.OrderStatusAccepted)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidTransition))

	_, err = s.orders.Advance(ctx, order.ID, s.p.staff)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidTransition))

	got, err := s.orders.SellerAccept(ctx, order.ID, s.p.seller)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSellerAccepted, got.Status)

	got, err = s.orders.Advance(ctx, order.ID, s.p.staff)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, got.Status)
}

func TestScenario_CancelledIsTerminal(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	order := s.p.directOrder(domain.OrderStatusPacked)
	s.store.PutOrder(*order)

	got, err := s.orders.Cancel(ctx, order.ID, s.p.customer)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)

	for _, next := range []domain.OrderStatus{domain.OrderStatusAccepted, domain.OrderStatusDelivered, domain.OrderStatusPending} {
		_, err := s.orders.RequestTransition(ctx, order.ID, s.p.staff, next)
		assert.True(t, apperror.Is(err, apperror.CodeTerminalState), "to %s", next)
	}
	_, err = s.orders.Advance(ctx, order.ID, s.p.staff)
	assert.True(t, apperror.Is(err, apperror.CodeTerminalState))
}

func TestScenario_ReturnRestoresStock(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	product := uuid.New()
	order := s.p.sellerOrder(domain.OrderStatusDelivered)
	order.Items = []domain.LineItem{{ProductID: product, Quantity: 2, UnitPrice: 5000, Source: domain.SourceSeller}}
	s.store.PutOrder(*order)
	s.store.PutStock(s.p.seller.ID, product, 5)

	got, err := s.orders.RequestReturn(ctx, order.ID, s.p.customer)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturnRequested, got.Status)

	got, err = s.orders.ConfirmReturn(ctx, order.ID, s.p.staff)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturnConfirmed, got.Status)

	qty, ok := s.store.StockQuantity(s.p.seller.ID, product)
	require.True(t, ok)
	assert.Equal(t, int64(7), qty)

	history, err := s.orders.History(ctx, order.ID, s.p.customer)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.OrderStatusReturnRequested, history[0].To)
	assert.Equal(t, domain.OrderStatusReturnConfirmed, history[1].To)
}

func TestScenario_OverdraftRejected(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	key := domain.WalletKey{Kind: domain.WalletKindSeller, OwnerID: s.p.seller.ID}

	_, err := s.ledger.AdminAdjustWallet(ctx, ports.AdjustRequest{Key: key, Type: domain.TxCredit, Amount: 10000, Actor: s.admin})
	require.NoError(t, err)

	_, err = s.ledger.AdminAdjustWallet(ctx, ports.AdjustRequest{Key: key, Type: domain.TxDebit, Amount: 15000, Actor: s.admin})
	assert.True(t, apperror.Is(err, apperror.CodeInsufficientBalance))

	w, err := s.store.Wallets().GetByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), w.Balance)
	s.assertConsistent(t, key)
}

func TestScenario_FullFlowDeductsSellerStock(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	product := uuid.New()
	order := s.p.sellerOrder(domain.OrderStatusSellerConfirmationPending)
	order.Items = []domain.LineItem{{ProductID: product, Quantity: 3, UnitPrice: 5000, Source: domain.SourceSeller}}
	order.Total = 15000
	s.store.PutOrder(*order)
	s.store.PutStock(s.p.seller.ID, product, 2)

	_, err := s.orders.SellerAccept(ctx, order.ID, s.p.seller)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err = s.orders.Advance(ctx, order.ID, s.p.staff)
		require.NoError(t, err)
	}

	final, err := s.orders.GetOrder(ctx, order.ID, s.p.customer)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, final.Status)

	qty, _ := s.store.StockQuantity(s.p.seller.ID, product)
	assert.Zero(t, qty, "stock floors at zero")

	history, err := s.orders.History(ctx, order.ID, s.p.staff)
	require.NoError(t, err)
	require.Len(t, history, 5)
	for _, e := range history[1:] {
		next, ok := domain.SellerFlow.After(e.From)
		require.True(t, ok)
		assert.Equal(t, next, e.To)
	}
}

func TestScenario_DoubleDeliveryCreditsOnce(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	order := s.p.directOrder(domain.OrderStatusShipped)
	s.store.PutOrder(*order)

	_, err := s.orders.Advance(ctx, order.ID, s.p.staff)
	require.NoError(t, err)

	_, err = s.orders.RequestTransition(ctx, order.ID, s.p.staff, domain.OrderStatusDelivered)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))

	assert.Equal(t, order.Total, s.staffWallet(t).Balance)
}

func TestScenario_ConcurrentDeliveryCreditsOnce(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	s.store.SetCompensation(s.p.staff.ID, domain.CompensationPartTime)
	order := s.p.directOrder(domain.OrderStatusShipped)
	s.store.PutOrder(*order)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.orders.RequestTransition(ctx, order.ID, s.p.staff, domain.OrderStatusDelivered)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperror.Is(err, apperror.CodeConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	w := s.staffWallet(t)
	assert.Equal(t, order.Total, w.Balance)
	assert.Equal(t, int64(earningPerDelivery), w.EarningBalance)

	txns, total, err := s.ledger.ListTransactions(ctx, w.Key(), ports.TransactionQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, txns, 2)
	s.assertConsistent(t, w.Key())
}

func TestScenario_ConcurrentLedgerPostingsStayConsistent(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	key := domain.WalletKey{Kind: domain.WalletKindDeliveryStaff, OwnerID: s.p.staff.ID}

	_, err := s.ledger.Credit(ctx, ports.Posting{Key: key, Amount: 1000})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.ledger.Credit(ctx, ports.Posting{Key: key, Amount: 100})
				return
			}
			_, _ = s.ledger.Debit(ctx, ports.Posting{Key: key, Amount: 150})
		}(i)
	}
	wg.Wait()

	w, err := s.store.Wallets().GetByKey(ctx, key)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, w.Balance, int64(0))
	s.assertConsistent(t, key)
}

func TestScenario_AdjustmentReferenceIsIdempotent(t *testing.T) {
	s := newSystem(t)
	ctx := context.Background()
	key := domain.WalletKey{Kind: domain.WalletKindCustomer, OwnerID: s.p.customer.ID}
	ref := "refund-42"
	req := ports.AdjustRequest{Key: key, Type: domain.TxCredit, Amount: 500, ReferenceID: &ref, Actor: s.admin}

	first, err := s.ledger.AdminAdjustWallet(ctx, req)
	require.NoError(t, err)
	second, err := s.ledger.AdminAdjustWallet(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	req.Amount = 600
	_, err = s.ledger.AdminAdjustWallet(ctx, req)
	assert.True(t, apperror.Is(err, apperror.CodeDuplicateAdjustment))

	w, err := s.store.Wallets().GetByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(500), w.Balance)
}
