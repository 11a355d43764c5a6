package service

import (
	"context"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// OrderOptions tunes the order state machine.
type OrderOptions struct {
	// EarningPerDelivery is credited to part-time staff per delivered order, in paise.
	EarningPerDelivery int64
	OperationTimeout   time.Duration
	Read               ReadPolicy
}

// actionableStatuses lists, per role, the statuses in which an order waits on that actor.
var actionableStatuses = map[domain.Role][]domain.OrderStatus{
	domain.RoleDeliveryStaff: {
		domain.OrderStatusPending,
		domain.OrderStatusSellerAccepted,
		domain.OrderStatusAccepted,
		domain.OrderStatusPickup,
		domain.OrderStatusShipped,
		domain.OrderStatusReturnRequested,
	},
	domain.RoleSeller: {
		domain.OrderStatusSellerConfirmationPending,
	},
	domain.RoleCustomer: {
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
		domain.OrderStatusPacked,
		domain.OrderStatusSellerConfirmationPending,
		domain.OrderStatusDelivered,
	},
}

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	orders     ports.OrderRepository
	events     ports.OrderEventRepository
	effects    ports.EffectRepository
	staff      ports.StaffDirectory
	transactor ports.DBTransactor
	ledger     ports.LedgerPoster
	stock      ports.StockAdjuster
	metrics    ports.Metrics
	opts       OrderOptions
	log        zerolog.Logger
	now        func() time.Time
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	orders ports.OrderRepository,
	events ports.OrderEventRepository,
	effects ports.EffectRepository,
	staff ports.StaffDirectory,
	transactor ports.DBTransactor,
	ledger ports.LedgerPoster,
	stock ports.StockAdjuster,
	metrics ports.Metrics,
	opts OrderOptions,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orders:     orders,
		events:     events,
		effects:    effects,
		staff:      staff,
		transactor: transactor,
		ledger:     ledger,
		stock:      stock,
		metrics:    metrics,
		opts:       opts,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RequestTransition moves an order to next if the actor is allowed to.
// Nothing is written unless validation passes.
func (s *OrderServiceImpl) RequestTransition(ctx context.Context, orderID uuid.UUID, actor domain.Actor, next domain.OrderStatus) (*domain.Order, error) {
	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTransition(order, actor, next); err != nil {
		s.reject(order, actor, next, err)
		return nil, err
	}
	return s.apply(ctx, order, actor, next)
}

// Advance moves an order to its successor in the flow it currently follows.
func (s *OrderServiceImpl) Advance(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error) {
	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := successor(order, actor)
	if err == nil {
		err = authorizeTransition(order, actor, next)
	}
	if err != nil {
		s.reject(order, actor, next, err)
		return nil, err
	}
	return s.apply(ctx, order, actor, next)
}

// SellerAccept confirms a seller-mediated order.
func (s *OrderServiceImpl) SellerAccept(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error) {
	return s.RequestTransition(ctx, orderID, actor, domain.OrderStatusSellerAccepted)
}

// Cancel cancels an order that has not entered fulfillment.
func (s *OrderServiceImpl) Cancel(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error) {
	return s.RequestTransition(ctx, orderID, actor, domain.OrderStatusCancelled)
}

// RequestReturn opens a return on a delivered order.
func (s *OrderServiceImpl) RequestReturn(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error) {
	return s.RequestTransition(ctx, orderID, actor, domain.OrderStatusReturnRequested)
}

// ConfirmReturn closes a return and restores seller stock.
func (s *OrderServiceImpl) ConfirmReturn(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error) {
	return s.RequestTransition(ctx, orderID, actor, domain.OrderStatusReturnConfirmed)
}

// successor computes the Advance target. Delivery staff are refused on
// orders still waiting for the seller before any successor is computed.
func successor(order *domain.Order, actor domain.Actor) (domain.OrderStatus, error) {
	if order.Status.IsTerminal() {
		return "", apperror.ErrTerminalState(string(order.Status))
	}
	if actor.Role == domain.RoleDeliveryStaff && order.Status == domain.OrderStatusSellerConfirmationPending {
		return "", apperror.ErrInvalidTransition(string(order.Status), string(domain.OrderStatusAccepted))
	}
	if order.Status.IsSideState() {
		return "", apperror.ErrTerminalState(string(order.Status))
	}
	next, ok := order.Flow().After(order.Status)
	if !ok {
		return "", apperror.ErrTerminalState(string(order.Status))
	}
	return next, nil
}

// authorizeTransition checks, in order: terminal status, already applied,
// then the actor and edge against the transition table.
func authorizeTransition(order *domain.Order, actor domain.Actor, next domain.OrderStatus) error {
	from := order.Status
	if from.IsTerminal() {
		return apperror.ErrTerminalState(string(from))
	}
	if from == next {
		return apperror.ErrConflict(fmt.Sprintf("Order is already %s", next))
	}

	invalid := apperror.ErrInvalidTransition(string(from), string(next))

	switch next {
	case domain.OrderStatusSellerAccepted:
		if actor.Role != domain.RoleSeller {
			return invalid
		}
		if !order.OwnedBySeller(actor.ID) {
			return apperror.ErrForbidden()
		}
		if from != domain.OrderStatusSellerConfirmationPending {
			return invalid
		}
		return nil

	case domain.OrderStatusAccepted, domain.OrderStatusPickup, domain.OrderStatusShipped, domain.OrderStatusDelivered:
		if actor.Role != domain.RoleDeliveryStaff {
			return invalid
		}
		if !order.AssignedTo(actor.ID) {
			return apperror.ErrForbidden()
		}
		if from == domain.OrderStatusSellerConfirmationPending {
			return invalid
		}
		flow := order.Flow()
		if !flow.Contains(from) {
			return invalid
		}
		succ, ok := flow.After(from)
		if !ok {
			return apperror.ErrTerminalState(string(from))
		}
		if succ != next {
			return invalid
		}
		return nil

	case domain.OrderStatusCancelled:
		if actor.Role != domain.RoleCustomer {
			return invalid
		}
		if order.CustomerID != actor.ID {
			return apperror.ErrForbidden()
		}
		if !from.Cancellable() {
			return invalid
		}
		return nil

	case domain.OrderStatusReturnRequested:
		if actor.Role != domain.RoleCustomer {
			return invalid
		}
		if order.CustomerID != actor.ID {
			return apperror.ErrForbidden()
		}
		if from != domain.OrderStatusDelivered {
			return invalid
		}
		return nil

	case domain.OrderStatusReturnConfirmed:
		if actor.Role != domain.RoleDeliveryStaff {
			return invalid
		}
		if !order.AssignedTo(actor.ID) {
			return apperror.ErrForbidden()
		}
		if from != domain.OrderStatusReturnRequested {
			return invalid
		}
		return nil
	}
	return invalid
}

// apply writes a validated transition and its side effects in one
// transaction. The order write is conditional on the version read in load,
// and each once-per-order side effect is additionally guarded by a claim row.
func (s *OrderServiceImpl) apply(ctx context.Context, order *domain.Order, actor domain.Actor, next domain.OrderStatus) (*domain.Order, error) {
	mode := domain.CompensationFixed
	if next == domain.OrderStatusDelivered {
		m, err := s.staff.CompensationMode(ctx, *order.AssignedDeliveryStaffID)
		if err != nil {
			return nil, storeError(fmt.Errorf("get compensation mode: %w", err))
		}
		mode = m.Normalize()
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, storeError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.orders.UpdateStatus(ctx, tx, order.ID, order.Version, next); err != nil {
		return nil, s.failed(order, actor, next, storeError(fmt.Errorf("update order status: %w", err)))
	}

	var posted []domain.WalletTransaction
	switch next {
	case domain.OrderStatusDelivered:
		if err := s.claim(ctx, tx, order, domain.EffectDeliverySettlement); err != nil {
			return nil, s.failed(order, actor, next, err)
		}
		if postings := s.deliveryPostings(order, actor, mode); len(postings) > 0 {
			posted, err = s.ledger.PostInTx(ctx, tx, postings...)
			if err != nil {
				return nil, s.failed(order, actor, next, storeError(err))
			}
		}
		if err := s.stock.DeductInTx(ctx, tx, order); err != nil {
			return nil, s.failed(order, actor, next, storeError(err))
		}

	case domain.OrderStatusReturnConfirmed:
		if err := s.claim(ctx, tx, order, domain.EffectReturnRestock); err != nil {
			return nil, s.failed(order, actor, next, err)
		}
		if err := s.stock.RestoreInTx(ctx, tx, order); err != nil {
			return nil, s.failed(order, actor, next, storeError(err))
		}
	}

	now := s.now()
	event := &domain.OrderEvent{
		ID:        uuid.New(),
		OrderID:   order.ID,
		From:      order.Status,
		To:        next,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		CreatedAt: now,
	}
	if err := s.events.Create(ctx, tx, event); err != nil {
		return nil, s.failed(order, actor, next, storeError(fmt.Errorf("record order event: %w", err)))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.failed(order, actor, next, storeError(fmt.Errorf("commit tx: %w", err)))
	}

	s.metrics.TransitionApplied(order.Status, next)
	for _, t := range posted {
		s.metrics.LedgerPosted(t.WalletKind, t.Type, t.Amount)
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Str("actor", actor.String()).
		Int("postings", len(posted)).
		Msg("order transitioned")

	updated := *order
	updated.Status = next
	updated.Version++
	updated.UpdatedAt = now
	return &updated, nil
}

// claim records that effect is running for order. A second claim means the
// effect already ran, which is reported as Conflict.
func (s *OrderServiceImpl) claim(ctx context.Context, tx pgx.Tx, order *domain.Order, effect domain.SideEffect) error {
	claimed, err := s.effects.Claim(ctx, tx, order.ID, effect)
	if err != nil {
		return storeError(fmt.Errorf("claim %s: %w", effect, err))
	}
	if !claimed {
		return apperror.ErrConflict(fmt.Sprintf("Side effect %s already applied to order", effect))
	}
	return nil
}

// deliveryPostings credits the collected total to the delivery wallet and,
// for part-time staff, the per-delivery earning.
func (s *OrderServiceImpl) deliveryPostings(order *domain.Order, actor domain.Actor, mode domain.CompensationMode) []ports.Posting {
	key := domain.WalletKey{Kind: domain.WalletKindDeliveryStaff, OwnerID: *order.AssignedDeliveryStaffID}
	orderID := order.ID
	createdBy := actor.ID

	var postings []ports.Posting
	if order.Total > 0 {
		postings = append(postings, ports.Posting{
			Key:         key,
			Type:        domain.TxCredit,
			Amount:      order.Total,
			Description: "Collection for order " + order.ShortID(),
			OrderID:     &orderID,
			CreatedBy:   &createdBy,
		})
	}
	if mode == domain.CompensationPartTime && s.opts.EarningPerDelivery > 0 {
		postings = append(postings, ports.Posting{
			Key:         key,
			Type:        domain.TxEarningCredit,
			Amount:      s.opts.EarningPerDelivery,
			Description: "Delivery earning for order " + order.ShortID(),
			OrderID:     &orderID,
			CreatedBy:   &createdBy,
		})
	}
	return postings
}

func (s *OrderServiceImpl) reject(order *domain.Order, actor domain.Actor, next domain.OrderStatus, err error) {
	code := apperror.CodeOf(err)
	s.metrics.TransitionRejected(next, code)
	s.log.Debug().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Str("requested", string(next)).
		Str("actor", actor.String()).
		Str("code", code).
		Msg("transition rejected")
}

func (s *OrderServiceImpl) failed(order *domain.Order, actor domain.Actor, next domain.OrderStatus, err error) error {
	s.reject(order, actor, next, err)
	if !apperror.Is(err, apperror.CodeConflict) {
		s.log.Error().Err(err).Str("order_id", order.ID.String()).Str("to", string(next)).Msg("transition failed")
	}
	return err
}

// GetOrder returns an order visible to the actor.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderID uuid.UUID, actor domain.Actor) (*domain.Order, error) {
	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(order, actor) {
		return nil, apperror.ErrForbidden()
	}
	return order, nil
}

// History returns the applied transitions of an order, oldest first.
func (s *OrderServiceImpl) History(ctx context.Context, orderID uuid.UUID, actor domain.Actor) ([]domain.OrderEvent, error) {
	order, err := s.GetOrder(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()
	return retryRead(ctx, s.opts.Read, func(ctx context.Context) ([]domain.OrderEvent, error) {
		events, err := s.events.ListByOrder(ctx, order.ID)
		return events, storeError(err)
	})
}

// ListActionable returns the orders currently waiting on the actor.
func (s *OrderServiceImpl) ListActionable(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	statuses, ok := actionableStatuses[actor.Role]
	if !ok {
		return []domain.Order{}, nil
	}

	ctx, cancel := withTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	orders, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) ([]domain.Order, error) {
		orders, err := s.orders.ListActionable(ctx, ports.ActionableQuery{
			Role:     actor.Role,
			ActorID:  actor.ID,
			Statuses: statuses,
		})
		return orders, storeError(err)
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderServiceImpl) load(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := retryRead(ctx, s.opts.Read, func(ctx context.Context) (*domain.Order, error) {
		o, err := s.orders.GetByID(ctx, orderID)
		return o, storeError(err)
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}
	return order, nil
}

func visibleTo(order *domain.Order, actor domain.Actor) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCustomer:
		return order.CustomerID == actor.ID
	case domain.RoleSeller:
		return order.OwnedBySeller(actor.ID)
	case domain.RoleDeliveryStaff:
		return order.AssignedTo(actor.ID)
	}
	return false
}
