package driven

// Clock supplies timestamps for header creation time and last-change stamps.
type Clock interface {
	// Now returns the current time in RFC3339 form with milliseconds.
	Now() string
}

// ClockProvider returns the clock for one export. A non-empty fixed value
// is an RFC3339 instant every timestamp is pinned to; empty means the
// system clock.
type ClockProvider func(fixed string) (Clock, error)
