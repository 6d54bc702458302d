package query

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

func TestMutation_SuccessInvalidates(t *testing.T) {
	c := NewCache(nil)
	ctx := context.Background()
	users := []string{"a", "b"}
	var fetches atomic.Int32

	q := NewQuery(c, "admin-users", func(context.Context) ([]string, error) {
		fetches.Add(1)
		return append([]string(nil), users...), nil
	})
	unsubscribe := q.Subscribe()
	defer unsubscribe()

	_, err := q.Get(ctx)
	require.NoError(t, err)

	var notified string
	del := NewMutation(
		func(_ context.Context, id string) (struct{}, error) {
			users = users[:1]
			return struct{}{}, nil
		},
		OnSuccess(func(ctx context.Context, id string, _ struct{}) {
			require.NoError(t, c.Invalidate(ctx, "admin-users"))
			notified = "deleted " + id
		}),
	)

	_, err = del.Mutate(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, "deleted b", notified)
	assert.EqualValues(t, 2, fetches.Load())
	assert.Equal(t, []string{"a"}, q.Peek().Data)
	assert.Equal(t, MutationState[struct{}]{}, del.State())
}

func TestMutation_FailureLeavesCacheUnchanged(t *testing.T) {
	c := NewCache(nil)
	ctx := context.Background()
	var fetches atomic.Int32

	q := NewQuery(c, "admin-users", func(context.Context) ([]string, error) {
		fetches.Add(1)
		return []string{"a", "b"}, nil
	})
	unsubscribe := q.Subscribe()
	defer unsubscribe()
	_, err := q.Get(ctx)
	require.NoError(t, err)

	boom := errors.New("forbidden")
	var successCalled bool
	var surfaced error
	del := NewMutation(
		func(context.Context, string) (struct{}, error) { return struct{}{}, boom },
		OnSuccess(func(ctx context.Context, _ string, _ struct{}) {
			successCalled = true
			_ = c.Invalidate(ctx, "admin-users")
		}),
		OnError[string, struct{}](func(_ context.Context, _ string, err error) {
			surfaced = err
		}),
	)

	_, err = del.Mutate(ctx, "b")
	require.ErrorIs(t, err, boom)

	assert.False(t, successCalled)
	assert.ErrorIs(t, surfaced, boom)
	assert.ErrorIs(t, del.State().Err, boom)
	assert.False(t, del.State().Pending)

	assert.EqualValues(t, 1, fetches.Load())
	s := q.Peek()
	assert.Equal(t, StatusSuccess, s.Status)
	assert.Equal(t, []string{"a", "b"}, s.Data)
}

func TestMutation_PendingWhileRunning(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := NewMutation(func(context.Context, int) (int, error) {
		close(started)
		<-release
		return 42, nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Mutate(context.Background(), 1)
	}()
	<-started
	assert.True(t, m.State().Pending)

	close(release)
	<-done

	s := m.State()
	assert.False(t, s.Pending)
	assert.NoError(t, s.Err)
	assert.Equal(t, 42, s.Data)
}

func TestMutation_ErrorClearedOnNextCall(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	m := NewMutation(func(context.Context, int) (int, error) {
		if fail.Load() {
			return 0, errors.New("nope")
		}
		return 1, nil
	})

	_, err := m.Mutate(context.Background(), 0)
	require.Error(t, err)
	require.Error(t, m.State().Err)

	fail.Store(false)
	_, err = m.Mutate(context.Background(), 0)
	require.NoError(t, err)
	assert.NoError(t, m.State().Err)

	m.Reset()
	assert.Equal(t, MutationState[int]{}, m.State())
}
