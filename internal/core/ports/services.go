package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TokenService validates actor identity tokens issued by the identity provider.
type TokenService interface {
	Generate(actor domain.Actor) (string, time.Time, error)
	Validate(tokenString string) (*domain.Actor, error)
}

// IdempotencyCache provides fast-path idempotency lookups (Redis).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ArrivalChannel names who consumes an actor's arrival counts. Each channel
// keeps its own previous count so one consumer never hides an increase from
// another.
type ArrivalChannel string

const (
	// ChannelPoll is the actor's own poll over HTTP.
	ChannelPoll ArrivalChannel = "poll"
	// ChannelWatch is the background session kept by the hub.
	ChannelWatch ArrivalChannel = "watch"
)

// AckStore keeps per-actor arrival acknowledgments server side.
type AckStore interface {
	Acked(ctx context.Context, actor domain.Actor) (map[uuid.UUID]struct{}, error)
	Ack(ctx context.Context, actor domain.Actor, orderID uuid.UUID) error
	PrevCount(ctx context.Context, actor domain.Actor, ch ArrivalChannel) (int, error)
	SetPrevCount(ctx context.Context, actor domain.Actor, ch ArrivalChannel, n int) error
}

// Alerter escalates newly arrived orders to an actor.
type Alerter interface {
	Alert(ctx context.Context, actor domain.Actor, orders []domain.Order) error
}

// Metrics records business counters.
type Metrics interface {
	TransitionApplied(from, to domain.OrderStatus)
	TransitionRejected(to domain.OrderStatus, code string)
	LedgerPosted(kind domain.WalletKind, txType domain.TxType, amount int64)
	ArrivalEscalated(role domain.Role, count int)
}

// ---- Ledger ----

// Posting is one ledger entry to apply. Amount is the unsigned magnitude;
// the sign follows Type.
type Posting struct {
	Key         domain.WalletKey
	Type        domain.TxType
	Amount      int64
	Description string
	OrderID     *uuid.UUID
	ReferenceID *string
	CreatedBy   *uuid.UUID
}

// LedgerPoster applies postings inside a caller-owned transaction.
type LedgerPoster interface {
	PostInTx(ctx context.Context, tx pgx.Tx, postings ...Posting) ([]domain.WalletTransaction, error)
}

// SettleRequest pays out a wallet. EarningAmount applies to delivery staff only.
type SettleRequest struct {
	Key           domain.WalletKey
	Amount        int64
	EarningAmount int64
	Description   string
	Actor         domain.Actor
}

// AdjustRequest is an admin credit or debit.
type AdjustRequest struct {
	Key         domain.WalletKey
	Type        domain.TxType // credit or debit
	Amount      int64
	Description string
	ReferenceID *string
	Actor       domain.Actor
}

// TransactionQuery filters a wallet's history.
type TransactionQuery struct {
	Types    []domain.TxType
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// LedgerService is the wallet ledger's public surface.
type LedgerService interface {
	Credit(ctx context.Context, p Posting) (*domain.WalletTransaction, error)
	Debit(ctx context.Context, p Posting) (*domain.WalletTransaction, error)
	Settle(ctx context.Context, req SettleRequest) ([]domain.WalletTransaction, error)
	AdminAdjustWallet(ctx context.Context, req AdjustRequest) (*domain.WalletTransaction, error)
	SetMinUsageAmount(ctx context.Context, actor domain.Actor, customerID uuid.UUID, amount int64) (*domain.Wallet, error)
	GetWalletSummary(ctx context.Context, key domain.WalletKey, from, to *time.Time) (*domain.WalletSummary, error)
	ListTransactions(ctx context.Context, key domain.WalletKey, q TransactionQuery) ([]domain.WalletTransaction, int64, error)
	Reconcile(ctx context.Context, key domain.WalletKey) (*domain.Drift, error)
}

// ---- Stock ----

// StockAdjuster moves seller stock for an order inside a caller-owned transaction.
type StockAdjuster interface {
	DeductInTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	RestoreInTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error
}

// ---- Orders ----

// OrderService drives the order state machine.
type OrderService interface {
	RequestTransition(ctx context.Context, orderID uuid.UUID, actor domain.Actor, next domain.OrderStatus) (*domain.Order, error)
	Advance(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error)
	SellerAccept(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error)
	RequestReturn(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error)
	ConfirmReturn(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error)
	ListActionable(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
	History(ctx context.Context, orderID uuid.UUID, actor domain.Actor) ([]domain.OrderEvent, error)
}

// ---- Arrival notifications ----

// ArrivalSnapshot is the outcome of one poll for an actor.
type ArrivalSnapshot struct {
	Pending   []domain.Order `json:"pending"`
	Escalated bool           `json:"escalated"`
	PolledAt  time.Time      `json:"polled_at"`
}

// ArrivalService polls for orders awaiting an actor.
type ArrivalService interface {
	Tick(ctx context.Context, actor domain.Actor) (*ArrivalSnapshot, error)
	Watch(ctx context.Context, actor domain.Actor) error
	Accept(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (*domain.Order, error)
	Dismiss(ctx context.Context, actor domain.Actor, orderID uuid.UUID) error
}

// ArrivalSessions keeps a background poller alive per active actor.
type ArrivalSessions interface {
	Touch(actor domain.Actor)
}
