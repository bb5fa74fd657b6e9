package validator

import (
	"errors"
	"testing"
)

type pairingInput struct {
	Phone string `validate:"required,phone"`
	OTP   string `validate:"required,otp"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	tests := []struct {
		name       string
		in         pairingInput
		wantFields []string
	}{
		{name: "Valid", in: pairingInput{Phone: "081234567890", OTP: "482913"}},
		{name: "ValidInternational", in: pairingInput{Phone: "+62 812-3456-7890", OTP: "000000"}},
		{name: "MissingBoth", in: pairingInput{}, wantFields: []string{"phone", "otp"}},
		{name: "LettersInPhone", in: pairingInput{Phone: "08abc", OTP: "482913"}, wantFields: []string{"phone"}},
		{name: "ShortOTP", in: pairingInput{Phone: "0812", OTP: "12345"}, wantFields: []string{"otp"}},
		{name: "LongOTP", in: pairingInput{Phone: "0812", OTP: "1234567"}, wantFields: []string{"otp"}},
		{name: "NonASCIIDigitsOTP", in: pairingInput{Phone: "0812", OTP: "١٢٣٤٥٦"}, wantFields: []string{"otp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			// Act
			err := v.Validate(tt.in)

			// Assert
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}

			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected V10ValidationError, got %T (%v)", err, err)
			}
			if len(verr.Values()) != len(tt.wantFields) {
				t.Fatalf("expected fields %v, got %v", tt.wantFields, verr.Values())
			}
			for _, f := range tt.wantFields {
				if verr.Values()[f] == "" {
					t.Fatalf("expected message for field %q, got %v", f, verr.Values())
				}
			}
		})
	}
}

func TestV10ValidationErrorString(t *testing.T) {

	// Arrange
	empty := V10ValidationError{}
	filled := V10ValidationError{"otp": "otp must be exactly 6 digits"}

	// Act & Assert
	if empty.Error() != "validation error" {
		t.Fatalf("empty error = %q", empty.Error())
	}
	if filled.Error() != `{"otp":"otp must be exactly 6 digits"}` {
		t.Fatalf("filled error = %q", filled.Error())
	}
}
