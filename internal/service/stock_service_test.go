package service

import (
	"context"
	"errors"
	"testing"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sellerOrder(sellerID uuid.UUID, items ...domain.LineItem) *domain.Order {
	return &domain.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     domain.OrderStatusShipped,
		SellerID:   &sellerID,
		Items:      items,
	}
}

func TestStockReconciler_DeductInTx_AggregatesAndFloors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	r := NewStockReconciler(repo, zerolog.Nop())

	ctx := context.Background()
	tx := &mockTx{}
	seller := uuid.New()
	apple, pear := uuid.New(), uuid.New()
	order := sellerOrder(seller,
		domain.LineItem{ProductID: apple, Quantity: 2, Source: domain.SourceSeller},
		domain.LineItem{ProductID: uuid.New(), Quantity: 9, Source: domain.SourceCatalog},
		domain.LineItem{ProductID: apple, Quantity: 1, Source: domain.SourceSeller},
		domain.LineItem{ProductID: pear, Quantity: 5, Source: domain.SourceSeller},
	)

	appleRec := &domain.StockRecord{ID: uuid.New(), SellerID: seller, ProductID: apple, Quantity: 10, Version: 1}
	pearRec := &domain.StockRecord{ID: uuid.New(), SellerID: seller, ProductID: pear, Quantity: 3, Version: 7}

	gomock.InOrder(
		repo.EXPECT().GetForUpdate(ctx, tx, domain.StockKey{SellerID: seller, ProductID: apple}).Return(appleRec, nil),
		repo.EXPECT().UpdateQuantity(ctx, tx, appleRec.ID, int64(1), int64(7)).Return(nil),
		repo.EXPECT().GetForUpdate(ctx, tx, domain.StockKey{SellerID: seller, ProductID: pear}).Return(pearRec, nil),
		repo.EXPECT().UpdateQuantity(ctx, tx, pearRec.ID, int64(7), int64(0)).Return(nil),
	)

	require.NoError(t, r.DeductInTx(ctx, tx, order))
}

func TestStockReconciler_DeductInTx_MissingRecordSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	r := NewStockReconciler(repo, zerolog.Nop())

	ctx := context.Background()
	tx := &mockTx{}
	seller := uuid.New()
	order := sellerOrder(seller, domain.LineItem{ProductID: uuid.New(), Quantity: 1, Source: domain.SourceSeller})

	repo.EXPECT().GetForUpdate(ctx, tx, gomock.Any()).Return(nil, nil)

	require.NoError(t, r.DeductInTx(ctx, tx, order))
}

func TestStockReconciler_DeductInTx_AlreadyZeroSkipsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	r := NewStockReconciler(repo, zerolog.Nop())

	ctx := context.Background()
	tx := &mockTx{}
	seller := uuid.New()
	order := sellerOrder(seller, domain.LineItem{ProductID: uuid.New(), Quantity: 4, Source: domain.SourceSeller})

	repo.EXPECT().GetForUpdate(ctx, tx, gomock.Any()).Return(&domain.StockRecord{ID: uuid.New(), Quantity: 0}, nil)

	require.NoError(t, r.DeductInTx(ctx, tx, order))
}

func TestStockReconciler_RestoreInTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	r := NewStockReconciler(repo, zerolog.Nop())

	ctx := context.Background()
	tx := &mockTx{}
	seller := uuid.New()
	product := uuid.New()
	order := sellerOrder(seller, domain.LineItem{ProductID: product, Quantity: 3, Source: domain.SourceSeller})
	rec := &domain.StockRecord{ID: uuid.New(), SellerID: seller, ProductID: product, Quantity: 1, Version: 2}

	repo.EXPECT().GetForUpdate(ctx, tx, domain.StockKey{SellerID: seller, ProductID: product}).Return(rec, nil)
	repo.EXPECT().UpdateQuantity(ctx, tx, rec.ID, int64(2), int64(4)).Return(nil)

	require.NoError(t, r.RestoreInTx(ctx, tx, order))
}

func TestStockReconciler_CatalogOrderUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	r := NewStockReconciler(repo, zerolog.Nop())

	order := &domain.Order{
		ID:    uuid.New(),
		Items: []domain.LineItem{{ProductID: uuid.New(), Quantity: 2, Source: domain.SourceCatalog}},
	}
	require.NoError(t, r.DeductInTx(context.Background(), &mockTx{}, order))
}

func TestStockReconciler_ConflictIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	r := NewStockReconciler(repo, zerolog.Nop())

	ctx := context.Background()
	tx := &mockTx{}
	seller := uuid.New()
	order := sellerOrder(seller, domain.LineItem{ProductID: uuid.New(), Quantity: 1, Source: domain.SourceSeller})

	repo.EXPECT().GetForUpdate(ctx, tx, gomock.Any()).Return(&domain.StockRecord{ID: uuid.New(), Quantity: 5, Version: 1}, nil)
	repo.EXPECT().UpdateQuantity(ctx, tx, gomock.Any(), int64(1), int64(4)).Return(ports.ErrVersionConflict)

	err := r.DeductInTx(ctx, tx, order)
	assert.True(t, errors.Is(err, ports.ErrVersionConflict))
}
