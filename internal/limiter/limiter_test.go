package limiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireReleaseTracksInUse(t *testing.T) {
	l := New(2)
	assert.Equal(t, 2, l.Capacity())
	assert.Equal(t, 0, l.InUse())

	require.NoError(t, l.Acquire(context.Background()))
	assert.Equal(t, 1, l.InUse())

	l.Release()
	assert.Equal(t, 0, l.InUse())
}

func TestAcquireSerializesAtCapacity(t *testing.T) {
	l := New(1)
	require.NoError(t, l.Acquire(context.Background()))

	var secondAcquired sync.WaitGroup
	secondAcquired.Add(1)
	go func() {
		require.NoError(t, l.Acquire(context.Background()))
		secondAcquired.Done()
		l.Release()
	}()

	// The second Acquire must not have completed while the first permit
	// is held.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, l.InUse())

	l.Release()
	secondAcquired.Wait()
}

func TestAcquireRespectsContextCancellation(t *testing.T) {
	l := New(1)
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
