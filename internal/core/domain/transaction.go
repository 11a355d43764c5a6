package domain

import (
	"time"

	"github.com/google/uuid"
)

// TxType is the kind of wallet ledger entry.
type TxType string

const (
	TxCredit            TxType = "credit"
	TxDebit             TxType = "debit"
	TxEarningCredit     TxType = "earning_credit"
	TxSettlement        TxType = "settlement"
	TxEarningSettlement TxType = "earning_settlement"
)

// Bucket selects which cached wallet balance a transaction type moves.
type Bucket int

const (
	BucketBalance Bucket = iota
	BucketEarning
)

// Bucket returns the balance t is summed into.
func (t TxType) Bucket() Bucket {
	if t == TxEarningCredit || t == TxEarningSettlement {
		return BucketEarning
	}
	return BucketBalance
}

// Valid reports whether t is a known type.
func (t TxType) Valid() bool {
	switch t {
	case TxCredit, TxDebit, TxEarningCredit, TxSettlement, TxEarningSettlement:
		return true
	}
	return false
}

// Sign is +1 for inflows and -1 for outflows.
func (t TxType) Sign() int64 {
	switch t {
	case TxDebit, TxSettlement, TxEarningSettlement:
		return -1
	}
	return 1
}

// WalletTransaction is an append-only ledger entry. Amount is signed:
// credits are positive, debits and settlements negative.
type WalletTransaction struct {
	ID          uuid.UUID  `json:"id"`
	WalletID    uuid.UUID  `json:"wallet_id"`
	WalletKind  WalletKind `json:"wallet_kind"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Type        TxType     `json:"type"`
	Amount      int64      `json:"amount"` // paise, signed
	Description string     `json:"description"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ReferenceID *string    `json:"reference_id,omitempty"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SumBuckets folds transactions into the balance and earning sums.
func SumBuckets(txns []WalletTransaction) (balance, earning int64) {
	for _, t := range txns {
		if t.Type.Bucket() == BucketEarning {
			earning += t.Amount
		} else {
			balance += t.Amount
		}
	}
	return balance, earning
}

// TypeTotals holds the signed sum per transaction type.
type TypeTotals map[TxType]int64

// WalletSummary is a wallet plus its activity over a period.
type WalletSummary struct {
	Wallet           Wallet     `json:"wallet"`
	Collections      int64      `json:"collections"`       // credit
	Debits           int64      `json:"debits"`            // |debit|
	Settled          int64      `json:"settled"`           // |settlement|
	Earnings         int64      `json:"earnings"`          // earning_credit
	EarningsReceived int64      `json:"earnings_received"` // |earning_settlement|
	From             *time.Time `json:"from,omitempty"`
	To               *time.Time `json:"to,omitempty"`
}

// NewWalletSummary builds a summary from per-type totals.
func NewWalletSummary(w Wallet, totals TypeTotals, from, to *time.Time) WalletSummary {
	return WalletSummary{
		Wallet:           w,
		Collections:      totals[TxCredit],
		Debits:           -totals[TxDebit],
		Settled:          -totals[TxSettlement],
		Earnings:         totals[TxEarningCredit],
		EarningsReceived: -totals[TxEarningSettlement],
		From:             from,
		To:               to,
	}
}

// Drift reports a mismatch between cached balances and transaction sums.
type Drift struct {
	Key            WalletKey `json:"key"`
	Balance        int64     `json:"balance"`
	BalanceSum     int64     `json:"balance_sum"`
	EarningBalance int64     `json:"earning_balance"`
	EarningSum     int64     `json:"earning_sum"`
}

// Consistent reports whether the cached balances match the sums.
func (d Drift) Consistent() bool {
	return d.Balance == d.BalanceSum && d.EarningBalance == d.EarningSum
}
