package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// AckStore implements ports.AckStore. Each actor owns a set of acknowledged
// order ids and, per channel, a counter of how many undismissed orders the
// last poll on that channel saw. All keys slide forward on every write.
type AckStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewAckStore creates a Redis-backed acknowledgment store.
func NewAckStore(client goredis.UniversalClient, ttl time.Duration) *AckStore {
	return &AckStore{client: client, ttl: ttl}
}

func ackKey(actor domain.Actor) string {
	return fmt.Sprintf("arrival:ack:%s:%s", actor.Role, actor.ID)
}

func prevKey(actor domain.Actor, ch ports.ArrivalChannel) string {
	return fmt.Sprintf("arrival:prev:%s:%s:%s", ch, actor.Role, actor.ID)
}

// Acked returns the order ids the actor has accepted or dismissed.
func (s *AckStore) Acked(ctx context.Context, actor domain.Actor) (map[uuid.UUID]struct{}, error) {
	members, err := s.client.SMembers(ctx, ackKey(actor)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ack members: %w", err)
	}

	acked := make(map[uuid.UUID]struct{}, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		acked[id] = struct{}{}
	}
	return acked, nil
}

// Ack marks an order as handled for the actor.
func (s *AckStore) Ack(ctx context.Context, actor domain.Actor, orderID uuid.UUID) error {
	key := ackKey(actor)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.SAdd(ctx, key, orderID.String())
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis ack add: %w", err)
	}
	return nil
}

// PrevCount returns the undismissed count seen by the previous poll on ch,
// zero if none.
func (s *AckStore) PrevCount(ctx context.Context, actor domain.Actor, ch ports.ArrivalChannel) (int, error) {
	n, err := s.client.Get(ctx, prevKey(actor, ch)).Int()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis prev count get: %w", err)
	}
	return n, nil
}

// SetPrevCount stores the undismissed count seen by the current poll on ch.
func (s *AckStore) SetPrevCount(ctx context.Context, actor domain.Actor, ch ports.ArrivalChannel, n int) error {
	if err := s.client.Set(ctx, prevKey(actor, ch), n, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis prev count set: %w", err)
	}
	return nil
}
