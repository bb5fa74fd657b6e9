package entity

import (
	"errors"
	"strings"
)

const (
	DefaultCountryCode    = "62"
	DefaultIdentitySuffix = "@c.us"
)

var ErrInvalidPhone = errors.New("pairing: phone number is invalid")

// Identity is the chat-platform address of a user, e.g. 6281234567890@c.us.
type Identity string

func (i Identity) String() string {
	return string(i)
}

// PhoneNormalizer turns user-entered phone numbers into identities.
type PhoneNormalizer struct {
	CountryCode string
	Suffix      string
}

// NormalizePhone normalizes with the default country code and suffix.
func NormalizePhone(phone string) (Identity, error) {
	return PhoneNormalizer{}.Normalize(phone)
}

// Normalize strips separators and a leading plus, rewrites a national
// leading 0 to the country code and appends the platform suffix.
func (n PhoneNormalizer) Normalize(phone string) (Identity, error) {
	cc := n.CountryCode
	if cc == "" {
		cc = DefaultCountryCode
	}
	suffix := n.Suffix
	if suffix == "" {
		suffix = DefaultIdentitySuffix
	}

	digits := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	digits = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, digits)

	if digits == "" {
		return "", ErrInvalidPhone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}

	switch {
	case strings.HasPrefix(digits, cc):
	case strings.HasPrefix(digits, "0"):
		digits = cc + digits[1:]
	}

	return Identity(digits + suffix), nil
}
