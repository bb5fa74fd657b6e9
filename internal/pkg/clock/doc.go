// Package clock provides a tiny time abstraction.
//
// Production code depends on the Clocker interface instead of calling
// time.Now() directly, so expiry logic can be driven by a Manual clock in
// tests.
package clock
