package bus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ time.Duration) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		_, err := b.Subscribe("bullet.spawned", func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, b.Publish(NewEvent("bullet.spawned", "world", 7, nil)))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPublish_OnlyMatchingTypeAndWildcard(t *testing.T) {
	b := New()
	var typed, all int
	_, _ = b.Subscribe("bullet.stopped", func(Event) error { typed++; return nil })
	_, _ = b.Subscribe(Wildcard, func(Event) error { all++; return nil })

	require.NoError(t, b.Publish(NewEvent("bullet.stopped", "world", 1, nil)))
	require.NoError(t, b.Publish(NewEvent("bullet.ricochet", "world", 1, nil)))

	assert.Equal(t, 1, typed)
	assert.Equal(t, 2, all)
}

func TestSubscribe_Rejects(t *testing.T) {
	b := New()
	_, err := b.Subscribe("", func(Event) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyEventType)
	_, err = b.Subscribe("x", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("x", func(Event) error { calls++; return nil })
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())
	assert.Equal(t, "x", sub.EventType())

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Unsubscribe(nil))
	assert.False(t, sub.IsActive())

	require.NoError(t, b.Publish(NewEvent("x", "t", 0, nil)))
	assert.Zero(t, calls)
}

func TestPublishBatch_JoinsErrors(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("a", func(Event) error { return errA })
	_, _ = b.Subscribe("b", func(Event) error { return errB })

	err := b.PublishBatch(NewEvent("a", "t", 0, nil), NewEvent("b", "t", 0, nil), NewEvent("c", "t", 0, nil))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	assert.Equal(t, EventBusMetrics{}, b.GetMetrics())

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.Publish(NewEvent("e", "s", 0, nil))

	m := b.GetMetrics()
	assert.EqualValues(t, 1, m.Published)
	assert.EqualValues(t, 1, m.DeliveredHandlers)
	assert.EqualValues(t, 1, m.SubscribersActive)
	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	assert.Equal(t, 1, obs.publishCount)
}

func TestConcurrentSubscribePublish(t *testing.T) {
	b := New()
	var mu sync.Mutex
	seen := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := b.Subscribe("tick", func(Event) error {
				mu.Lock()
				seen++
				mu.Unlock()
				return nil
			})
			if err != nil {
				return
			}
			_ = b.Publish(NewEvent("tick", "t", 0, nil))
			_ = sub.Cancel()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, seen, 8)
}
