package clock

import "time"

// Clock abstracts the time source so OTP expiry, token lifetimes and
// ledger timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock only moves when told to.
type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}

func (c *MockClock) Add(d time.Duration) {
	c.current = c.current.Add(d)
}
