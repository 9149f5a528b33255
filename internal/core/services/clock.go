package services

import (
	"time"

	"github.com/lorrc/support-dashboard/internal/core/ports"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

var _ ports.Clock = SystemClock{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
