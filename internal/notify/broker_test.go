package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func TestBroker_EverySubscriberGetsEveryChange(t *testing.T) {
	b := NewBroker(nil)
	s1 := b.Subscribe()
	s2 := b.Subscribe()
	defer s1.Close()
	defer s2.Close()

	for i := int64(1); i <= 3; i++ {
		assert.Equal(t, 2, b.Publish(Change{Revision: i}))
	}

	ctx := context.Background()
	for _, sub := range []*Subscription{s1, s2} {
		for i := int64(1); i <= 3; i++ {
			c, err := sub.Next(ctx)
			require.NoError(t, err)
			assert.Equal(t, i, c.Revision)
		}
		assert.Zero(t, sub.Pending())
	}
}

func TestBroker_LateSubscriberMissesEarlierChanges(t *testing.T) {
	b := NewBroker(nil)
	b.Publish(Change{Revision: 1})

	sub := b.Subscribe()
	defer sub.Close()

	_, ok := sub.TryNext()
	assert.False(t, ok)
}

func TestSubscription_CloseUnregisters(t *testing.T) {
	b := NewBroker(nil)
	sub := b.Subscribe()
	assert.Equal(t, 1, b.Len())

	sub.Close()
	sub.Close()
	assert.Zero(t, b.Len())
	assert.Zero(t, b.Publish(Change{Revision: 1}))

	_, err := sub.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSubscription_NextHonorsContext(t *testing.T) {
	b := NewBroker(nil)
	sub := b.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubscription_NextWakesOnPublish(t *testing.T) {
	b := NewBroker(nil)
	sub := b.Subscribe()
	defer sub.Close()

	var (
		wg  sync.WaitGroup
		got Change
		err error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		got, err = sub.Next(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	b.Publish(Change{Revision: 7, Collections: []model.Collection{model.CollectionEvents}})
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Revision)
	assert.True(t, got.Touches(model.CollectionEvents))
	assert.False(t, got.Touches(model.CollectionUsers))
}

func TestBroker_CloseEndsSubscriptions(t *testing.T) {
	b := NewBroker(nil)
	sub := b.Subscribe()
	b.Publish(Change{Revision: 1})
	b.Close()

	c, err := sub.Next(context.Background())
	require.NoError(t, err, "buffered change is still delivered")
	assert.Equal(t, int64(1), c.Revision)

	_, err = sub.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	sub.Close()
}
