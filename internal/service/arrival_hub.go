package service

import (
	"context"
	"sync"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// ArrivalHub keeps one polling goroutine per recently active actor.
// A session ends when the actor has not touched it for the idle period or
// when the hub's context is cancelled.
type ArrivalHub struct {
	svc      ports.ArrivalService
	interval time.Duration
	idle     time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	base     context.Context
	sessions map[domain.Actor]*session
	wg       sync.WaitGroup
}

type session struct {
	mu       sync.Mutex
	lastSeen time.Time
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// NewArrivalHub creates a hub. Sessions start once Run has been called.
func NewArrivalHub(svc ports.ArrivalService, interval, idle time.Duration, log zerolog.Logger) *ArrivalHub {
	return &ArrivalHub{
		svc:      svc,
		interval: interval,
		idle:     idle,
		log:      log,
		sessions: make(map[domain.Actor]*session),
	}
}

// Run serves sessions until ctx is cancelled, then waits for them to stop.
func (h *ArrivalHub) Run(ctx context.Context) error {
	h.mu.Lock()
	h.base = ctx
	h.mu.Unlock()

	<-ctx.Done()
	h.wg.Wait()
	return nil
}

// Touch marks the actor active, starting its session if none is running.
// Roles that receive no arrivals are ignored.
func (h *ArrivalHub) Touch(actor domain.Actor) {
	if _, ok := arrivalStatuses[actor.Role]; !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.base == nil || h.base.Err() != nil {
		return
	}
	now := time.Now()
	if sess, ok := h.sessions[actor]; ok {
		sess.touch(now)
		return
	}

	sess := &session{lastSeen: now}
	h.sessions[actor] = sess
	h.wg.Add(1)
	go h.poll(h.base, actor, sess)
}

// Active reports how many sessions are running.
func (h *ArrivalHub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *ArrivalHub) poll(ctx context.Context, actor domain.Actor, sess *session) {
	defer h.wg.Done()
	defer func() {
		h.mu.Lock()
		delete(h.sessions, actor)
		h.mu.Unlock()
	}()

	log := h.log.With().Str("actor", actor.String()).Logger()
	log.Debug().Msg("arrival session started")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.svc.Watch(ctx, actor); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("arrival watch failed")
		}

		select {
		case <-ctx.Done():
			log.Debug().Msg("arrival session cancelled")
			return
		case now := <-ticker.C:
			if h.idle > 0 && sess.idleSince(now) > h.idle {
				log.Debug().Msg("arrival session idle")
				return
			}
		}
	}
}
