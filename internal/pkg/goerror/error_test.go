package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Server", err: NewServer(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "InvalidFormat", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "InvalidInput", err: NewInvalidInput(nil, "phone", "phone is required"), want: http.StatusUnprocessableEntity},
		{name: "OddPairsIsFormat", err: NewInvalidInput(nil, "phone"), want: http.StatusBadRequest},
		{name: "NotFound", err: NewBusiness("missing", CodeNotFound), want: http.StatusNotFound},
		{name: "Unavailable", err: NewBusiness("broker down", CodeUnavailable), want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			// Arrange
			var gerr *Error

			// Act
			ok := errors.As(tt.err, &gerr)

			// Assert
			if !ok {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if got := gerr.StatusCode(); got != tt.want {
				t.Fatalf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("WrapsUnderlying", func(t *testing.T) {

		// Arrange
		cause := errors.New("otp must be 6 digits")

		// Act
		err := NewInvalidInput(cause)

		// Assert
		if !errors.Is(err, cause) {
			t.Fatalf("expected wrapped cause")
		}
		if err.Error() != cause.Error() {
			t.Fatalf("message = %q", err.Error())
		}
	})

	t.Run("Fields", func(t *testing.T) {

		// Act
		err := NewInvalidInput(nil, "phone", "invalid phone number")

		// Assert
		var gerr *Error
		if !errors.As(err, &gerr) {
			t.Fatalf("expected *Error")
		}
		if gerr.Fields()["phone"] != "invalid phone number" {
			t.Fatalf("fields = %#v", gerr.Fields())
		}
		if gerr.Type() != TypeValidation || gerr.Code() != CodeInvalidInput {
			t.Fatalf("unexpected classification: %s", gerr.String())
		}
	})
}
