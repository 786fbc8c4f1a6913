// Package internal provides internal utilities for the navcheck package.
package internal

import "time"

// Clock is an interface for obtaining monotonic time.
// Runner uses it to stamp reports and time cases.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StepClock advances by a fixed step on every call to Now.
// It is not safe for concurrent use.
type StepClock struct {
	current time.Time
	step    time.Duration
}

// NewStepClock returns a StepClock starting at t.
// If t is zero, it starts at 2001-09-09 to avoid zero-time edge cases.
func NewStepClock(t time.Time, step time.Duration) *StepClock {
	if t.IsZero() {
		t = time.Unix(1000000000, 0)
	}
	if step < 0 {
		panic("StepClock: step must be non-negative")
	}
	return &StepClock{current: t, step: step}
}

// Now returns the current time and then advances the clock by one step.
func (c *StepClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}
