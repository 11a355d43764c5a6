package domain

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord is a seller's on-hand quantity for one product.
type StockRecord struct {
	ID        uuid.UUID `json:"id"`
	SellerID  uuid.UUID `json:"seller_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockKey identifies a stock record.
type StockKey struct {
	SellerID  uuid.UUID
	ProductID uuid.UUID
}

// StockLine is a quantity to move for one seller product.
type StockLine struct {
	StockKey
	Quantity int64
}

// SellerStockLines aggregates seller-sourced items per seller product,
// keeping first-seen order. Catalog items and items with no resolvable
// seller are left out.
func SellerStockLines(o *Order) []StockLine {
	var lines []StockLine
	idx := make(map[StockKey]int)
	for _, it := range o.Items {
		if it.Source != SourceSeller || it.Quantity <= 0 {
			continue
		}
		sellerID, ok := o.SellerOf(it)
		if !ok {
			continue
		}
		key := StockKey{SellerID: sellerID, ProductID: it.ProductID}
		if i, seen := idx[key]; seen {
			lines[i].Quantity += it.Quantity
			continue
		}
		idx[key] = len(lines)
		lines = append(lines, StockLine{StockKey: key, Quantity: it.Quantity})
	}
	return lines
}
