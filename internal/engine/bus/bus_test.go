package bus_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/anymon/internal/engine/bus"
)

func drain[T any](t *testing.T, sub *bus.Subscription[T]) []T {
	t.Helper()
	var got []T
	for {
		v, err := sub.TryRecv()
		if err != nil {
			require.ErrorIs(t, err, bus.ErrEmpty)
			return got
		}
		got = append(got, v)
	}
}

func TestBus_FanOutPreservesOrder(t *testing.T) {
	b := bus.New[int](8)
	a := b.Subscribe()
	c := b.Subscribe()

	for i := range 5 {
		assert.Equal(t, 2, b.Send(i))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, drain(t, a))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, drain(t, c))
}

func TestBus_LateSubscriberSeesOnlyNewMessages(t *testing.T) {
	b := bus.New[string](4)
	b.Send("before")

	sub := b.Subscribe()
	b.Send("after")

	assert.Equal(t, []string{"after"}, drain(t, sub))
}

func TestBus_SendWithoutSubscribers(t *testing.T) {
	b := bus.New[int](2)
	assert.Equal(t, 0, b.Send(1))
}

func TestBus_LagReportsSkippedCount(t *testing.T) {
	b := bus.New[int](4)
	sub := b.Subscribe()

	for i := range 10 {
		b.Send(i)
	}

	_, err := sub.TryRecv()
	skipped, ok := bus.IsLagged(err)
	require.True(t, ok, "expected lag, got %v", err)
	assert.Equal(t, uint64(6), skipped)

	assert.Equal(t, []int{6, 7, 8, 9}, drain(t, sub))
}

func TestBus_SlowSubscriberDoesNotAffectOthers(t *testing.T) {
	b := bus.New[int](2)
	slow := b.Subscribe()
	fast := b.Subscribe()

	for i := range 6 {
		b.Send(i)
		v, err := fast.TryRecv()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	_, err := slow.TryRecv()
	skipped, ok := bus.IsLagged(err)
	require.True(t, ok)
	assert.Equal(t, uint64(4), skipped)
}

func TestBus_CloseDrainsThenReportsClosed(t *testing.T) {
	b := bus.New[int](4)
	sub := b.Subscribe()
	b.Send(1)
	b.Send(2)
	b.Close()

	assert.Equal(t, 0, b.Send(3), "send after close is dropped")

	v, err := sub.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = sub.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = sub.TryRecv()
	require.ErrorIs(t, err, bus.ErrClosed)

	late := b.Subscribe()
	_, err = late.TryRecv()
	require.ErrorIs(t, err, bus.ErrClosed)
}

func TestBus_SubscriptionClose(t *testing.T) {
	b := bus.New[int](4)
	sub := b.Subscribe()
	other := b.Subscribe()
	sub.Close()

	assert.Equal(t, 1, b.Send(1))

	_, err := sub.TryRecv()
	require.ErrorIs(t, err, bus.ErrClosed)

	v, err := other.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestBus_ReadySignalsPendingMessages(t *testing.T) {
	b := bus.New[int](4)
	sub := b.Subscribe()

	select {
	case <-sub.Ready():
		t.Fatal("ready before any send")
	default:
	}

	b.Send(1)
	b.Send(2)

	select {
	case <-sub.Ready():
	default:
		t.Fatal("not ready after send")
	}

	_, err := sub.TryRecv()
	require.NoError(t, err)

	select {
	case <-sub.Ready():
	default:
		t.Fatal("not re-armed while a message is still pending")
	}
}

func TestBus_RecvBlocksUntilSend(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := bus.New[string](4)
		sub := b.Subscribe()

		var wg sync.WaitGroup
		var got string
		var gotErr error
		wg.Go(func() {
			got, gotErr = sub.Recv(context.Background())
		})

		time.Sleep(10 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, got)

		b.Send("hello")
		wg.Wait()

		require.NoError(t, gotErr)
		assert.Equal(t, "hello", got)
	})
}

func TestBus_RecvHonoursContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := bus.New[int](4)
		sub := b.Subscribe()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := sub.Recv(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestBus_ConcurrentSenders(t *testing.T) {
	b := bus.New[int](1024)
	sub := b.Subscribe()

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for i := range 100 {
				b.Send(i)
			}
		})
	}
	wg.Wait()

	assert.Len(t, drain(t, sub), 800)
}
