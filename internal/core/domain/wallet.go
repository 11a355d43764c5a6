package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// WalletKind identifies which party a wallet belongs to.
type WalletKind string

const (
	WalletKindCustomer      WalletKind = "customer"
	WalletKindSeller        WalletKind = "seller"
	WalletKindDeliveryStaff WalletKind = "delivery_staff"
)

// Valid reports whether k is a known wallet kind.
func (k WalletKind) Valid() bool {
	switch k {
	case WalletKindCustomer, WalletKindSeller, WalletKindDeliveryStaff:
		return true
	}
	return false
}

// WalletKey identifies a wallet. There is exactly one wallet per key.
type WalletKey struct {
	Kind    WalletKind `json:"kind"`
	OwnerID uuid.UUID  `json:"owner_id"`
}

func (k WalletKey) String() string {
	return string(k.Kind) + ":" + k.OwnerID.String()
}

// Wallet caches the running sums of its transactions.
// Balance always equals the sum of balance-bucket amounts and EarningBalance
// the sum of earning-bucket amounts.
type Wallet struct {
	ID             uuid.UUID  `json:"id"`
	Kind           WalletKind `json:"kind"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Balance        int64      `json:"balance"`         // paise
	EarningBalance int64      `json:"earning_balance"` // delivery staff only
	MinUsageAmount int64      `json:"min_usage_amount"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Key returns the wallet's identity.
func (w *Wallet) Key() WalletKey {
	return WalletKey{Kind: w.Kind, OwnerID: w.OwnerID}
}

// Apply returns the balances after posting amount of type t.
// ok is false if either balance would go negative.
func (w *Wallet) Apply(t TxType, amount int64) (balance, earning int64, ok bool) {
	balance, earning = w.Balance, w.EarningBalance
	if t.Bucket() == BucketEarning {
		earning += amount
	} else {
		balance += amount
	}
	return balance, earning, balance >= 0 && earning >= 0
}

// Overflows reports whether adding amount of type t would overflow the
// balance it moves.
func (w *Wallet) Overflows(t TxType, amount int64) bool {
	cur := w.Balance
	if t.Bucket() == BucketEarning {
		cur = w.EarningBalance
	}
	if amount > 0 {
		return cur > math.MaxInt64-amount
	}
	return cur < math.MinInt64-amount
}

// CompensationMode is how a delivery staff member is paid.
type CompensationMode string

const (
	CompensationFixed    CompensationMode = "fixed"
	CompensationPartTime CompensationMode = "part_time"
)

// Normalize maps unknown or empty modes to fixed.
func (m CompensationMode) Normalize() CompensationMode {
	if m == CompensationPartTime {
		return CompensationPartTime
	}
	return CompensationFixed
}
