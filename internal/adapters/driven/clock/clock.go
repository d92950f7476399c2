// Package clock provides driven.Clock implementations.
package clock

import (
	"fmt"
	"time"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Layout is the timestamp form written into documents: RFC3339 with milliseconds.
const Layout = "2006-01-02T15:04:05.000Z07:00"

var (
	_ driven.Clock = (*System)(nil)
	_ driven.Clock = (*Fixed)(nil)
)

// System reads the wall clock.
type System struct {
	now func() time.Time
}

// NewSystem creates a wall clock.
func NewSystem() *System {
	return &System{now: time.Now}
}

// Now returns the current local time.
func (c *System) Now() string {
	return c.now().Format(Layout)
}

// Fixed always returns the same instant. It makes output reproducible.
type Fixed struct {
	stamp string
}

// NewFixed parses an RFC3339 timestamp and pins the clock to it.
func NewFixed(value string) (*Fixed, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%w: fixed clock %q: %w", domain.ErrInvalidInput, value, err)
	}
	return &Fixed{stamp: t.Format(Layout)}, nil
}

// Now returns the pinned instant.
func (c *Fixed) Now() string {
	return c.stamp
}

// New returns a Fixed clock when fixed is set, otherwise the system clock.
func New(fixed string) (driven.Clock, error) {
	if fixed == "" {
		return NewSystem(), nil
	}
	return NewFixed(fixed)
}
