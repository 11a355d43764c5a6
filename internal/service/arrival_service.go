package service

import (
	"context"
	"sync"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// arrivalStatuses are the statuses in which a new order is waiting on the role.
var arrivalStatuses = map[domain.Role][]domain.OrderStatus{
	domain.RoleDeliveryStaff: {domain.OrderStatusPending, domain.OrderStatusSellerAccepted},
	domain.RoleSeller:        {domain.OrderStatusSellerConfirmationPending, domain.OrderStatusPending},
}

// acceptStatus is the transition Accept runs for each role.
var acceptStatus = map[domain.Role]domain.OrderStatus{
	domain.RoleDeliveryStaff: domain.OrderStatusAccepted,
	domain.RoleSeller:        domain.OrderStatusSellerAccepted,
}

// ArrivalOptions tunes the arrival listing fetch.
type ArrivalOptions struct {
	FetchTimeout time.Duration
	Read         ReadPolicy
}

// ArrivalServiceImpl implements ports.ArrivalService.
type ArrivalServiceImpl struct {
	orders   ports.OrderRepository
	orderSvc ports.OrderService
	acks     ports.AckStore
	alerter  ports.Alerter
	metrics  ports.Metrics
	log      zerolog.Logger
	opts     ArrivalOptions
	now      func() time.Time

	mu    sync.Mutex
	locks map[domain.Actor]*actorLock
}

// actorLock serializes ticks for one actor. It lives in the map only while
// some tick holds or waits on it.
type actorLock struct {
	mu   sync.Mutex
	refs int
}

// NewArrivalService creates a new ArrivalServiceImpl.
func NewArrivalService(
	orders ports.OrderRepository,
	orderSvc ports.OrderService,
	acks ports.AckStore,
	alerter ports.Alerter,
	metrics ports.Metrics,
	opts ArrivalOptions,
	log zerolog.Logger,
) *ArrivalServiceImpl {
	return &ArrivalServiceImpl{
		orders:   orders,
		orderSvc: orderSvc,
		acks:     acks,
		alerter:  alerter,
		metrics:  metrics,
		log:      log,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
		locks:    make(map[domain.Actor]*actorLock),
	}
}

// Tick polls once on the actor's own channel. Orders the actor has
// acknowledged are left out. The snapshot is escalated only when the number
// of unacknowledged orders grew since the actor's previous poll.
func (s *ArrivalServiceImpl) Tick(ctx context.Context, actor domain.Actor) (*ports.ArrivalSnapshot, error) {
	statuses, ok := arrivalStatuses[actor.Role]
	if !ok {
		return nil, apperror.ErrForbidden()
	}

	release := s.acquire(actor)
	defer release()

	pending, prev, err := s.scan(ctx, actor, statuses, ports.ChannelPoll)
	if err != nil {
		return nil, err
	}

	snap := &ports.ArrivalSnapshot{Pending: pending, PolledAt: s.now()}
	if n := len(pending); n > 0 && n > prev {
		s.metrics.ArrivalEscalated(actor.Role, n-prev)
		snap.Escalated = true
	}

	if err := s.acks.SetPrevCount(ctx, actor, ports.ChannelPoll, len(pending)); err != nil {
		return nil, apperror.ErrUnavailable(err)
	}
	return snap, nil
}

// Watch runs one background check for the actor and raises an alert when
// the unacknowledged count grew since the previous background check. It
// keeps its own count, so it never hides an increase from Tick.
func (s *ArrivalServiceImpl) Watch(ctx context.Context, actor domain.Actor) error {
	statuses, ok := arrivalStatuses[actor.Role]
	if !ok {
		return apperror.ErrForbidden()
	}

	release := s.acquire(actor)
	defer release()

	pending, prev, err := s.scan(ctx, actor, statuses, ports.ChannelWatch)
	if err != nil {
		return err
	}

	if n := len(pending); n > 0 && n > prev {
		if err := s.alerter.Alert(ctx, actor, pending); err != nil {
			s.log.Warn().Err(err).Str("actor", actor.String()).Msg("arrival alert failed")
		}
	}

	if err := s.acks.SetPrevCount(ctx, actor, ports.ChannelWatch, len(pending)); err != nil {
		return apperror.ErrUnavailable(err)
	}
	return nil
}

// scan returns the actor's unacknowledged orders and the count ch saw last.
func (s *ArrivalServiceImpl) scan(
	ctx context.Context,
	actor domain.Actor,
	statuses []domain.OrderStatus,
	ch ports.ArrivalChannel,
) ([]domain.Order, int, error) {
	fetchCtx, cancel := withTimeout(ctx, s.opts.FetchTimeout)
	orders, err := retryRead(fetchCtx, s.opts.Read, func(ctx context.Context) ([]domain.Order, error) {
		orders, err := s.orders.ListActionable(ctx, ports.ActionableQuery{
			Role:     actor.Role,
			ActorID:  actor.ID,
			Statuses: statuses,
		})
		return orders, storeError(err)
	})
	cancel()
	if err != nil {
		return nil, 0, err
	}

	acked, err := s.acks.Acked(ctx, actor)
	if err != nil {
		return nil, 0, apperror.ErrUnavailable(err)
	}
	pending := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if _, seen := acked[o.ID]; !seen {
			pending = append(pending, o)
		}
	}

	prev, err := s.acks.PrevCount(ctx, actor, ch)
	if err != nil {
		return nil, 0, apperror.ErrUnavailable(err)
	}
	return pending, prev, nil
}

// Accept runs the actor's accept transition and acknowledges the order.
// The order stays unacknowledged if the transition fails.
func (s *ArrivalServiceImpl) Accept(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (*domain.Order, error) {
	next, ok := acceptStatus[actor.Role]
	if !ok {
		return nil, apperror.ErrForbidden()
	}

	order, err := s.orderSvc.RequestTransition(ctx, orderID, actor, next)
	if err != nil {
		return nil, err
	}
	if err := s.acks.Ack(ctx, actor, orderID); err != nil {
		s.log.Warn().Err(err).Str("actor", actor.String()).Str("order_id", orderID.String()).Msg("ack after accept failed")
	}
	return order, nil
}

// Dismiss acknowledges the order without changing it.
func (s *ArrivalServiceImpl) Dismiss(ctx context.Context, actor domain.Actor, orderID uuid.UUID) error {
	if _, ok := arrivalStatuses[actor.Role]; !ok {
		return apperror.ErrForbidden()
	}
	if err := s.acks.Ack(ctx, actor, orderID); err != nil {
		return apperror.ErrUnavailable(err)
	}
	return nil
}

// acquire locks the actor's tick lock and returns its release. The entry is
// dropped once no tick references it.
func (s *ArrivalServiceImpl) acquire(actor domain.Actor) func() {
	s.mu.Lock()
	l, ok := s.locks[actor]
	if !ok {
		l = &actorLock{}
		s.locks[actor] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, actor)
		}
		s.mu.Unlock()
	}
}
