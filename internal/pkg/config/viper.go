package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables that override file values.
// The key app.server.http.address is overridden by OTPBRIDGE_APP_SERVER_HTTP_ADDRESS.
const EnvPrefix = "OTPBRIDGE"

// ErrConfigTypeRequired is returned by NewViperFromBytes when no format is given.
var ErrConfigTypeRequired = errors.New("config type is required")

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// NewViper loads configuration from the given file path and watches it for changes.
//
// The config file type is inferred by Viper from the filename extension.
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filename, path.Ext(filename)))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(ev fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "op", ev.Op.String(), "err", err)
			return
		}
		slog.Info("config success reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetUint16 returns the value for key as uint16.
func (vc *Viper) GetUint16(key string) uint16 {
	return vc.v.GetUint16(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetMinute returns the value for key as minutes.
func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetBinary returns the value for key decoded from base64.
func (vc *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(vc.v.GetString(key))
	if err != nil {
		return nil
	}

	return data
}

// GetArray returns the value for key split by commas, trimmed, without empty elements.
func (vc *Viper) GetArray(key string) []string {
	parts := lo.Map(strings.Split(vc.v.GetString(key), ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})

	return lo.Compact(parts)
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
