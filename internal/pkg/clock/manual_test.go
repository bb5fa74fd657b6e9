package clock

import (
	"testing"
	"time"
)

func TestManual(t *testing.T) {

	// Arrange
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewManual(start)

	// Act
	c.Advance(90 * time.Second)

	// Assert
	if got := c.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("now = %s", got)
	}

	c.Set(start)
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("after set now = %s", got)
	}
}
