package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
app:
  server:
    cors: "http://localhost:3000, ,http://localhost:5173"
    http:
      address: ":8080"
modules:
  pairing:
    enabled: true
    otp_ttl_minutes: 5
    sweep_interval_seconds: 30
instrument:
  trace_sample_ratio: 0.25
  credentials: "aGVsbG8="
`

func TestNewViperFromBytes(t *testing.T) {
	t.Run("RequiresType", func(t *testing.T) {

		// Act
		_, err := NewViperFromBytes(" ", []byte(sampleYAML))

		// Assert
		if err != ErrConfigTypeRequired {
			t.Fatalf("expected ErrConfigTypeRequired, got %v", err)
		}
	})

	t.Run("ReadsTypedValues", func(t *testing.T) {

		// Arrange
		cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
		if err != nil {
			t.Fatalf("new viper: %v", err)
		}

		// Act & Assert
		if got := cfg.GetString("app.server.http.address"); got != ":8080" {
			t.Fatalf("address = %q", got)
		}
		if !cfg.GetBool("modules.pairing.enabled") {
			t.Fatalf("expected pairing enabled")
		}
		if got := cfg.GetMinute("modules.pairing.otp_ttl_minutes"); got != 5*time.Minute {
			t.Fatalf("ttl = %s", got)
		}
		if got := cfg.GetSecond("modules.pairing.sweep_interval_seconds"); got != 30*time.Second {
			t.Fatalf("sweep = %s", got)
		}
		if got := cfg.GetFloat64("instrument.trace_sample_ratio"); got != 0.25 {
			t.Fatalf("ratio = %v", got)
		}
		if got := string(cfg.GetBinary("instrument.credentials")); got != "hello" {
			t.Fatalf("binary = %q", got)
		}
	})

	t.Run("ArrayDropsEmptyElements", func(t *testing.T) {

		// Arrange
		cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
		if err != nil {
			t.Fatalf("new viper: %v", err)
		}

		// Act
		got := cfg.GetArray("app.server.cors")
		missing := cfg.GetArray("app.server.unknown")

		// Assert
		if len(got) != 2 || got[0] != "http://localhost:3000" || got[1] != "http://localhost:5173" {
			t.Fatalf("unexpected array: %#v", got)
		}
		if len(missing) != 0 {
			t.Fatalf("expected empty array for missing key, got %#v", missing)
		}
	})

	t.Run("EnvironmentOverridesFile", func(t *testing.T) {

		// Arrange
		t.Setenv("OTPBRIDGE_APP_SERVER_HTTP_ADDRESS", ":9090")
		cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
		if err != nil {
			t.Fatalf("new viper: %v", err)
		}

		// Act
		got := cfg.GetString("app.server.http.address")

		// Assert
		if got != ":9090" {
			t.Fatalf("expected env override, got %q", got)
		}
	})
}

func TestNewViper(t *testing.T) {

	// Arrange
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Act
	cfg, err := NewViper(file)

	// Assert
	if err != nil {
		t.Fatalf("new viper: %v", err)
	}
	defer cfg.Close()
	if got := cfg.GetString("app.server.http.address"); got != ":8080" {
		t.Fatalf("address = %q", got)
	}
}
