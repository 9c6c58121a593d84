// Package clock provides the wall clock used by services.
package clock

import (
	"time"

	"medico/internal/domain/service"
)

type systemClock struct{}

// NewSystemClock returns a clock reporting the current UTC time.
func NewSystemClock() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a clock that always reports the same instant. Tests move it by assigning T.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}
