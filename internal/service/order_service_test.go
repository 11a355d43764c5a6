package service

import (
	"context"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/internal/core/ports/mocks"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type orderTestDeps struct {
	svc        *OrderServiceImpl
	orders     *mocks.MockOrderRepository
	events     *mocks.MockOrderEventRepository
	effects    *mocks.MockEffectRepository
	staff      *mocks.MockStaffDirectory
	transactor *mocks.MockDBTransactor
	ledger     *mocks.MockLedgerPoster
	stock      *mocks.MockStockAdjuster
	metrics    *mocks.MockMetrics
}

func setupOrderService(t *testing.T) *orderTestDeps {
	ctrl := gomock.NewController(t)
	d := &orderTestDeps{
		orders:     mocks.NewMockOrderRepository(ctrl),
		events:     mocks.NewMockOrderEventRepository(ctrl),
		effects:    mocks.NewMockEffectRepository(ctrl),
		staff:      mocks.NewMockStaffDirectory(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ledger:     mocks.NewMockLedgerPoster(ctrl),
		stock:      mocks.NewMockStockAdjuster(ctrl),
		metrics:    mocks.NewMockMetrics(ctrl),
	}
	d.svc = NewOrderService(
		d.orders, d.events, d.effects, d.staff, d.transactor, d.ledger, d.stock, d.metrics,
		OrderOptions{EarningPerDelivery: 3000, OperationTimeout: time.Second, Read: ReadPolicy{Attempts: 1}},
		zerolog.Nop(),
	)
	return d
}

type parties struct {
	customer domain.Actor
	seller   domain.Actor
	staff    domain.Actor
	stranger domain.Actor
}

func newParties() parties {
	return parties{
		customer: domain.Actor{ID: uuid.New(), Role: domain.RoleCustomer},
		seller:   domain.Actor{ID: uuid.New(), Role: domain.RoleSeller},
		staff:    domain.Actor{ID: uuid.New(), Role: domain.RoleDeliveryStaff},
		stranger: domain.Actor{ID: uuid.New(), Role: domain.RoleDeliveryStaff},
	}
}

func (p parties) directOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:                      uuid.New(),
		CustomerID:              p.customer.ID,
		Status:                  status,
		Total:                   150000,
		AssignedDeliveryStaffID: &p.staff.ID,
		Version:                 5,
		Items:                   []domain.LineItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: 150000, Source: domain.SourceCatalog}},
	}
}

func (p parties) sellerOrder(status domain.OrderStatus) *domain.Order {
	o := p.directOrder(status)
	o.SellerID = &p.seller.ID
	o.Items[0].Source = domain.SourceSeller
	return o
}

func TestOrderService_RequestTransition_Rejections(t *testing.T) {
	p := newParties()
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name  string
		order *domain.Order
		actor domain.Actor
		next  domain.OrderStatus
		code  string
	}{
		{"skip a step", p.directOrder(domain.OrderStatusPending), p.staff, domain.OrderStatusShipped, apperror.CodeInvalidTransition},
		{"unassigned staff", p.directOrder(domain.OrderStatusPending), p.stranger, domain.OrderStatusAccepted, apperror.CodeForbidden},
		{"customer advances", p.directOrder(domain.OrderStatusPending), p.customer, domain.OrderStatusAccepted, apperror.CodeInvalidTransition},
		{"staff before seller confirms", p.sellerOrder(domain.OrderStatusSellerConfirmationPending), p.staff, domain.OrderStatusAccepted, apperror.CodeInvalidTransition},
		{"seller accepts foreign order", p.sellerOrder(domain.OrderStatusSellerConfirmationPending), domain.Actor{ID: uuid.New(), Role: domain.RoleSeller}, domain.OrderStatusSellerAccepted, apperror.CodeForbidden},
		{"seller accepts twice", p.sellerOrder(domain.OrderStatusSellerAccepted), p.seller, domain.OrderStatusSellerAccepted, apperror.CodeConflict},
		{"deliver twice", p.directOrder(domain.OrderStatusDelivered), p.staff, domain.OrderStatusDelivered, apperror.CodeConflict},
		{"cancel after pickup", p.directOrder(domain.OrderStatusPickup), p.customer, domain.OrderStatusCancelled, apperror.CodeInvalidTransition},
		{"cancel someone else's", p.directOrder(domain.OrderStatusPending), domain.Actor{ID: uuid.New(), Role: domain.RoleCustomer}, domain.OrderStatusCancelled, apperror.CodeForbidden},
		{"move a cancelled order", p.directOrder(domain.OrderStatusCancelled), p.staff, domain.OrderStatusAccepted, apperror.CodeTerminalState},
		{"return before delivery", p.directOrder(domain.OrderStatusShipped), p.customer, domain.OrderStatusReturnRequested, apperror.CodeInvalidTransition},
		{"confirm unrequested return", p.directOrder(domain.OrderStatusDelivered), p.staff, domain.OrderStatusReturnConfirmed, apperror.CodeInvalidTransition},
		{"admin has no edges", p.directOrder(domain.OrderStatusPending), admin, domain.OrderStatusAccepted, apperror.CodeInvalidTransition},
		{"unknown status", p.directOrder(domain.OrderStatusPending), p.staff, "lost", apperror.CodeInvalidTransition},
		{"back to pending", p.directOrder(domain.OrderStatusAccepted), p.staff, domain.OrderStatusPending, apperror.CodeInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupOrderService(t)
			d.orders.EXPECT().GetByID(gomock.Any(), tt.order.ID).Return(tt.order, nil)
			d.metrics.EXPECT().TransitionRejected(tt.next, tt.code)

			_, err := d.svc.RequestTransition(context.Background(), tt.order.ID, tt.actor, tt.next)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}
}

func TestOrderService_RequestTransition_NotFound(t *testing.T) {
	d := setupOrderService(t)
	id := uuid.New()
	d.orders.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	_, err := d.svc.RequestTransition(context.Background(), id, newParties().staff, domain.OrderStatusAccepted)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestOrderService_Advance_Pickup(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()
	order := p.directOrder(domain.OrderStatusAccepted)
	tx := &mockTx{}

	d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.orders.EXPECT().UpdateStatus(gomock.Any(), tx, order.ID, int64(5), domain.OrderStatusPickup).Return(nil)
	d.events.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, e *domain.OrderEvent) error {
			assert.Equal(t, domain.OrderStatusAccepted, e.From)
			assert.Equal(t, domain.OrderStatusPickup, e.To)
			assert.Equal(t, p.staff.ID, e.ActorID)
			return nil
		})
	d.metrics.EXPECT().TransitionApplied(domain.OrderStatusAccepted, domain.OrderStatusPickup)

	got, err := d.svc.Advance(context.Background(), order.ID, p.staff)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPickup, got.Status)
	assert.Equal(t, int64(6), got.Version)
	assert.Equal(t, domain.OrderStatusAccepted, order.Status, "loaded order must not be mutated")
}

func TestOrderService_Advance_Rejections(t *testing.T) {
	p := newParties()
	tests := []struct {
		name  string
		order *domain.Order
		actor domain.Actor
		code  string
	}{
		{"delivered has no successor", p.directOrder(domain.OrderStatusDelivered), p.staff, apperror.CodeTerminalState},
		{"return requested is off the flow", p.directOrder(domain.OrderStatusReturnRequested), p.staff, apperror.CodeTerminalState},
		{"staff on seller pending", p.sellerOrder(domain.OrderStatusSellerConfirmationPending), p.staff, apperror.CodeInvalidTransition},
		{"confirmed is not a flow node", p.directOrder(domain.OrderStatusConfirmed), p.staff, apperror.CodeTerminalState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupOrderService(t)
			d.orders.EXPECT().GetByID(gomock.Any(), tt.order.ID).Return(tt.order, nil)
			d.metrics.EXPECT().TransitionRejected(gomock.Any(), tt.code)

			_, err := d.svc.Advance(context.Background(), tt.order.ID, tt.actor)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}
}

func TestOrderService_Deliver_PartTimeStaff(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()
	order := p.sellerOrder(domain.OrderStatusShipped)
	tx := &mockTx{}
	wallet := domain.WalletKey{Kind: domain.WalletKindDeliveryStaff, OwnerID: p.staff.ID}

	d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	d.staff.EXPECT().CompensationMode(gomock.Any(), p.staff.ID).Return(domain.CompensationPartTime, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.orders.EXPECT().UpdateStatus(gomock.Any(), tx, order.ID, int64(5), domain.OrderStatusDelivered).Return(nil)
	d.effects.EXPECT().Claim(gomock.Any(), tx, order.ID, domain.EffectDeliverySettlement).Return(true, nil)
	d.ledger.EXPECT().PostInTx(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, postings ...ports.Posting) ([]domain.WalletTransaction, error) {
			require.Len(t, postings, 2)
			assert.Equal(t, wallet, postings[0].Key)
			assert.Equal(t, domain.TxCredit, postings[0].Type)
			assert.Equal(t, int64(150000), postings[0].Amount)
			assert.Equal(t, "Collection for order "+order.ShortID(), postings[0].Description)
			assert.Equal(t, domain.TxEarningCredit, postings[1].Type)
			assert.Equal(t, int64(3000), postings[1].Amount)
			assert.Equal(t, "Delivery earning for order "+order.ShortID(), postings[1].Description)
			return []domain.WalletTransaction{
				{WalletKind: domain.WalletKindDeliveryStaff, Type: domain.TxCredit, Amount: 150000},
				{WalletKind: domain.WalletKindDeliveryStaff, Type: domain.TxEarningCredit, Amount: 3000},
			}, nil
		})
	d.stock.EXPECT().DeductInTx(gomock.Any(), tx, order).Return(nil)
	d.events.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)
	d.metrics.EXPECT().TransitionApplied(domain.OrderStatusShipped, domain.OrderStatusDelivered)
	d.metrics.EXPECT().LedgerPosted(domain.WalletKindDeliveryStaff, domain.TxCredit, int64(150000))
	d.metrics.EXPECT().LedgerPosted(domain.WalletKindDeliveryStaff, domain.TxEarningCredit, int64(3000))

	got, err := d.svc.Advance(context.Background(), order.ID, p.staff)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)
}

func TestOrderService_Deliver_FixedStaffZeroTotal(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()
	order := p.directOrder(domain.OrderStatusShipped)
	order.Total = 0
	tx := &mockTx{}

	d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	d.staff.EXPECT().CompensationMode(gomock.Any(), p.staff.ID).Return(domain.CompensationMode(""), nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.orders.EXPECT().UpdateStatus(gomock.Any(), tx, order.ID, int64(5), domain.OrderStatusDelivered).Return(nil)
	d.effects.EXPECT().Claim(gomock.Any(), tx, order.ID, domain.EffectDeliverySettlement).Return(true, nil)
	d.stock.EXPECT().DeductInTx(gomock.Any(), tx, order).Return(nil)
	d.events.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)
	d.metrics.EXPECT().TransitionApplied(domain.OrderStatusShipped, domain.OrderStatusDelivered)

	_, err := d.svc.RequestTransition(context.Background(), order.ID, p.staff, domain.OrderStatusDelivered)
	require.NoError(t, err)
}

func TestOrderService_Deliver_StaleVersion(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()
	order := p.directOrder(domain.OrderStatusShipped)
	tx := &mockTx{}

	d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	d.staff.EXPECT().CompensationMode(gomock.Any(), p.staff.ID).Return(domain.CompensationFixed, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.orders.EXPECT().UpdateStatus(gomock.Any(), tx, order.ID, int64(5), domain.OrderStatusDelivered).Return(ports.ErrVersionConflict)
	d.metrics.EXPECT().TransitionRejected(domain.OrderStatusDelivered, apperror.CodeConflict)

	_, err := d.svc.Advance(context.Background(), order.ID, p.staff)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestOrderService_Deliver_EffectAlreadyClaimed(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()
	order := p.directOrder(domain.OrderStatusShipped)
	tx := &mockTx{}

	d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	d.staff.EXPECT().CompensationMode(gomock.Any(), p.staff.ID).Return(domain.CompensationFixed, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.orders.EXPECT().UpdateStatus(gomock.Any(), tx, order.ID, int64(5), domain.OrderStatusDelivered).Return(nil)
	d.effects.EXPECT().Claim(gomock.Any(), tx, order.ID, domain.EffectDeliverySettlement).Return(false, nil)
	d.metrics.EXPECT().TransitionRejected(domain.OrderStatusDelivered, apperror.CodeConflict)

	_, err := d.svc.Advance(context.Background(), order.ID, p.staff)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestOrderService_ConfirmReturn_RestoresStock(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()
	order := p.sellerOrder(domain.OrderStatusReturnRequested)
	tx := &mockTx{}

	d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.orders.EXPECT().UpdateStatus(gomock.Any(), tx, order.ID, int64(5), domain.OrderStatusReturnConfirmed).Return(nil)
	d.effects.EXPECT().Claim(gomock.Any(), tx, order.ID, domain.EffectReturnRestock).Return(true, nil)
	d.stock.EXPECT().RestoreInTx(gomock.Any(), tx, order).Return(nil)
	d.events.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)
	d.metrics.EXPECT().TransitionApplied(domain.OrderStatusReturnRequested, domain.OrderStatusReturnConfirmed)

	got, err := d.svc.ConfirmReturn(context.Background(), order.ID, p.staff)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturnConfirmed, got.Status)
}

func TestOrderService_GetOrder_Visibility(t *testing.T) {
	p := newParties()
	order := p.sellerOrder(domain.OrderStatusPending)

	tests := []struct {
		name    string
		actor   domain.Actor
		allowed bool
	}{
		{"customer", p.customer, true},
		{"seller", p.seller, true},
		{"assigned staff", p.staff, true},
		{"admin", domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}, true},
		{"other staff", p.stranger, false},
		{"other customer", domain.Actor{ID: uuid.New(), Role: domain.RoleCustomer}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupOrderService(t)
			d.orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)

			_, err := d.svc.GetOrder(context.Background(), order.ID, tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.Is(err, apperror.CodeForbidden))
			}
		})
	}
}

func TestOrderService_ListActionable(t *testing.T) {
	d := setupOrderService(t)
	p := newParties()

	d.orders.EXPECT().ListActionable(gomock.Any(), ports.ActionableQuery{
		Role:     domain.RoleSeller,
		ActorID:  p.seller.ID,
		Statuses: []domain.OrderStatus{domain.OrderStatusSellerConfirmationPending},
	}).Return(nil, nil)

	got, err := d.svc.ListActionable(context.Background(), p.seller)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	admin, err := d.svc.ListActionable(context.Background(), domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, admin)
}
