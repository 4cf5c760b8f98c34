// Package identity provides the default clock and id source.
package identity

import (
	"time"

	"github.com/google/uuid"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }
