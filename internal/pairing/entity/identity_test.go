package entity

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		want    Identity
		wantErr error
	}{
		{name: "NationalLeadingZero", phone: "081234567890", want: "6281234567890@c.us"},
		{name: "AlreadyInternational", phone: "6281234567890", want: "6281234567890@c.us"},
		{name: "PlusAndSeparators", phone: " +62 812-3456.7890 ", want: "6281234567890@c.us"},
		{name: "Parentheses", phone: "(0812) 3456 7890", want: "6281234567890@c.us"},
		{name: "OtherCountryKept", phone: "+14155550100", want: "14155550100@c.us"},
		{name: "Empty", phone: "   ", wantErr: ErrInvalidPhone},
		{name: "Letters", phone: "0812abc", wantErr: ErrInvalidPhone},
		{name: "OnlyPlus", phone: "+", wantErr: ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			// Act
			got, err := NormalizePhone(tt.phone)

			// Assert
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("identity = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPhoneNormalizerCustom(t *testing.T) {

	// Arrange
	n := PhoneNormalizer{CountryCode: "60", Suffix: "@s.whatsapp.net"}

	// Act
	got, err := n.Normalize("0123456789")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "60123456789@s.whatsapp.net" {
		t.Fatalf("identity = %q", got)
	}
}

func TestCredentialLive(t *testing.T) {

	// Arrange
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := Credential{CreatedAt: now, ExpiresAt: now.Add(5 * time.Minute)}

	// Act & Assert
	if !c.Live(now.Add(5*time.Minute - time.Nanosecond)) {
		t.Fatal("expected live just before expiry")
	}
	if c.Live(now.Add(5 * time.Minute)) {
		t.Fatal("expected expired exactly at expiresAt")
	}
}
