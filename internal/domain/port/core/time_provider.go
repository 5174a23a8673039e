package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
	// WithTimeout returns a context that will be canceled after the timeout
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
