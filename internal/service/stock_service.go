package service

import (
	"context"
	"fmt"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// StockReconciler implements ports.StockAdjuster for seller stock.
// Catalog items are never touched.
type StockReconciler struct {
	stockRepo ports.StockRepository
	log       zerolog.Logger
}

// NewStockReconciler creates a new StockReconciler.
func NewStockReconciler(stockRepo ports.StockRepository, log zerolog.Logger) *StockReconciler {
	return &StockReconciler{stockRepo: stockRepo, log: log}
}

// DeductInTx removes delivered seller quantities, flooring each record at zero.
func (r *StockReconciler) DeductInTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	for _, line := range domain.SellerStockLines(order) {
		if err := r.adjust(ctx, tx, order, line, -line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// RestoreInTx puts returned seller quantities back.
func (r *StockReconciler) RestoreInTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	for _, line := range domain.SellerStockLines(order) {
		if err := r.adjust(ctx, tx, order, line, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *StockReconciler) adjust(ctx context.Context, tx pgx.Tx, order *domain.Order, line domain.StockLine, delta int64) error {
	rec, err := r.stockRepo.GetForUpdate(ctx, tx, line.StockKey)
	if err != nil {
		return fmt.Errorf("lock stock %s/%s: %w", line.SellerID, line.ProductID, err)
	}
	if rec == nil {
		r.log.Warn().
			Str("order_id", order.ID.String()).
			Str("seller_id", line.SellerID.String()).
			Str("product_id", line.ProductID.String()).
			Msg("no stock record for seller product, skipping")
		return nil
	}

	qty := rec.Quantity + delta
	if qty < 0 {
		r.log.Warn().
			Str("order_id", order.ID.String()).
			Str("product_id", line.ProductID.String()).
			Int64("on_hand", rec.Quantity).
			Int64("requested", -delta).
			Msg("stock below delivered quantity, flooring at zero")
		qty = 0
	}
	if qty == rec.Quantity {
		return nil
	}

	if err := r.stockRepo.UpdateQuantity(ctx, tx, rec.ID, rec.Version, qty); err != nil {
		return fmt.Errorf("update stock %s/%s: %w", line.SellerID, line.ProductID, err)
	}
	return nil
}
