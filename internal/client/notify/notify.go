// Package notify shows transient user notifications.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Notifier reports the outcome of a user action.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Console writes one line per notification.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(_ context.Context, msg string) {
	c.write("OK", msg)
}

func (c *Console) Error(_ context.Context, msg string) {
	c.write("ERROR", msg)
}

func (c *Console) write(level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "[%s] %s\n", level, msg)
}
