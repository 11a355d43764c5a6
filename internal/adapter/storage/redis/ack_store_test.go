package redis

import (
	"context"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAckStore_AckAndList(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewAckStore(client, time.Hour)
	ctx := context.Background()

	staff := domain.Actor{ID: uuid.New(), Role: domain.RoleDeliveryStaff}
	other := domain.Actor{ID: uuid.New(), Role: domain.RoleSeller}
	o1, o2 := uuid.New(), uuid.New()

	acked, err := store.Acked(ctx, staff)
	require.NoError(t, err)
	assert.Empty(t, acked)

	require.NoError(t, store.Ack(ctx, staff, o1))
	require.NoError(t, store.Ack(ctx, staff, o2))
	require.NoError(t, store.Ack(ctx, staff, o1))

	acked, err = store.Acked(ctx, staff)
	require.NoError(t, err)
	assert.Len(t, acked, 2)
	assert.Contains(t, acked, o1)
	assert.Contains(t, acked, o2)

	acked, err = store.Acked(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, acked, "acks are per actor")

	assert.Equal(t, time.Hour, mr.TTL(ackKey(staff)))
}

func TestAckStore_IgnoresMalformedMembers(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewAckStore(client, time.Hour)
	ctx := context.Background()

	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleSeller}
	id := uuid.New()
	_, err := mr.SAdd(ackKey(actor), "not-a-uuid", id.String())
	require.NoError(t, err)

	acked, err := store.Acked(ctx, actor)
	require.NoError(t, err)
	assert.Len(t, acked, 1)
	assert.Contains(t, acked, id)
}

func TestAckStore_PrevCount(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewAckStore(client, 30*time.Minute)
	ctx := context.Background()

	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleDeliveryStaff}

	n, err := store.PrevCount(ctx, actor, ports.ChannelPoll)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.SetPrevCount(ctx, actor, ports.ChannelPoll, 3))
	n, err = store.PrevCount(ctx, actor, ports.ChannelPoll)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mr.FastForward(31 * time.Minute)
	n, err = store.PrevCount(ctx, actor, ports.ChannelPoll)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAckStore_PrevCountPerChannel(t *testing.T) {
	_, client := newTestClient(t)
	store := NewAckStore(client, time.Hour)
	ctx := context.Background()

	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleSeller}

	require.NoError(t, store.SetPrevCount(ctx, actor, ports.ChannelWatch, 4))

	n, err := store.PrevCount(ctx, actor, ports.ChannelPoll)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "watch count must not leak into the poll channel")

	n, err = store.PrevCount(ctx, actor, ports.ChannelWatch)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
