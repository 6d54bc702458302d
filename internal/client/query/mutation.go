package query

import (
	"context"
	"sync"
)

// MutationState is the observable state of a Mutation's last call.
type MutationState[Out any] struct {
	Pending bool
	Err     error
	Data    Out
}

type MutationOption[In, Out any] func(*Mutation[In, Out])

// OnSuccess runs fn after a successful call, typically to invalidate keys
// and notify the user.
func OnSuccess[In, Out any](fn func(ctx context.Context, in In, out Out)) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) { m.onSuccess = append(m.onSuccess, fn) }
}

// OnError runs fn after a failed call.
func OnError[In, Out any](fn func(ctx context.Context, in In, err error)) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) { m.onError = append(m.onError, fn) }
}

// Mutation tracks a state-changing call. It never retries and never touches
// cached data itself; callers invalidate keys from OnSuccess.
type Mutation[In, Out any] struct {
	fn        func(ctx context.Context, in In) (Out, error)
	onSuccess []func(ctx context.Context, in In, out Out)
	onError   []func(ctx context.Context, in In, err error)

	mu    sync.Mutex
	state MutationState[Out]
}

func NewMutation[In, Out any](fn func(ctx context.Context, in In) (Out, error), opts ...MutationOption[In, Out]) *Mutation[In, Out] {
	m := &Mutation[In, Out]{fn: fn}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Mutate runs the call and then the matching callbacks.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.state.Pending = true
	m.state.Err = nil
	m.mu.Unlock()

	out, err := m.fn(ctx, in)

	m.mu.Lock()
	m.state.Pending = false
	m.state.Err = err
	if err == nil {
		m.state.Data = out
	}
	m.mu.Unlock()

	if err != nil {
		for _, f := range m.onError {
			f(ctx, in, err)
		}
		return out, err
	}
	for _, f := range m.onSuccess {
		f(ctx, in, out)
	}
	return out, nil
}

func (m *Mutation[In, Out]) State() MutationState[Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset clears the last error and result.
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero MutationState[Out]
	m.state = zero
}
