package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

var (
	_ Clocker = (*TimeClocker)(nil)
	_ Clocker = (*Manual)(nil)
)

// TimeClocker is the production clock backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time, including its monotonic reading.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}
