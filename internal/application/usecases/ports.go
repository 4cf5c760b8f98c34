package usecases

import (
	"context"
	"time"
)

// Clock supplies current time so usecases stay testable.
type Clock interface {
	Now() time.Time
}

// IDSource supplies reservation identifiers.
type IDSource interface {
	NewID() string
}

// EventPublisher emits domain events to interested collaborators
// (notifications, analytics). Publishing is best-effort; usecases never
// fail a committed operation over a publish error.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
