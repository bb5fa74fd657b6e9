package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving duration values stored as integers.
type TimeConfig interface {
	// GetSecond retrieves the value associated with key as a number of seconds.
	// A missing or non-numeric value yields zero.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value associated with key as a number of minutes.
	// A missing or non-numeric value yields zero.
	GetMinute(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Implementations handle the retrieval and type conversion of configuration data and
// fall back to the zero value when a key is absent.
type Config interface {
	io.Closer
	TimeConfig

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetUint16 retrieves the value associated with key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetBinary retrieves the value associated with key decoded from base64.
	GetBinary(key string) []byte

	// GetArray retrieves the value associated with key as a slice of strings.
	// The value is stored with format <element1>,<element2>,... and empty
	// elements are dropped.
	GetArray(key string) []string
}
