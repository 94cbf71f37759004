package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// PathEnv names the variable holding the optional TOML file path.
const PathEnv = "GROUNDLINK_CONFIG"

const (
	DeviceNetwork = "network"
	DeviceTello   = "tello"
)

type Config struct {
	Handler HandlerConfig `toml:"handler"`
	Device  DeviceConfig  `toml:"device"`
	Session SessionConfig `toml:"session"`
	Gamepad GamepadConfig `toml:"gamepad"`
	Log     LogConfig     `toml:"log"`
}

type HandlerConfig struct {
	URL string `toml:"url"`
}

type DeviceConfig struct {
	Kind           string `toml:"kind"`
	Address        string `toml:"address"`
	ConnectTimeout string `toml:"connect_timeout"`
	WriteTimeout   string `toml:"write_timeout"`
}

type SessionConfig struct {
	TelemetryPeriod     string `toml:"telemetry_period"`
	VideoPeriod         string `toml:"video_period"`
	FlightControlPeriod string `toml:"flight_control_period"`
}

type GamepadConfig struct {
	Enabled     bool   `toml:"enabled"`
	Index       int    `toml:"index"`
	WaitTimeout string `toml:"wait_timeout"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file,omitempty"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

func Default() Config {
	return Config{
		Device: DeviceConfig{
			Kind:           DeviceNetwork,
			ConnectTimeout: "5s",
			WriteTimeout:   "1s",
		},
		Session: SessionConfig{
			TelemetryPeriod:     "50ms",
			VideoPeriod:         "67ms",
			FlightControlPeriod: "50ms",
		},
		Gamepad: GamepadConfig{
			Enabled:     true,
			WaitTimeout: "100ms",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  32,
			MaxBackups: 1,
		},
	}
}

// LoadOrDefault reads path over the defaults. A missing file is not an
// error; exists reports whether it was found.
func LoadOrDefault(path string) (cfg Config, exists bool, err error) {
	cfg = Default()
	if path == "" {
		return cfg, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return Config{}, false, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, true, fmt.Errorf("parse config: %w", err)
	}
	return cfg, true, nil
}

// FromEnvironment loads the file named by GROUNDLINK_CONFIG and applies the
// environment overrides.
func FromEnvironment(lookup func(string) (string, bool)) (Config, error) {
	path, _ := lookup(PathEnv)
	cfg, _, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HANDLER_HOST_URL"); ok {
		cfg.Handler.URL = v
	}
	if v, ok := lookup("FC_DEVICE"); ok {
		cfg.Device.Kind = v
	}
	if v, ok := lookup("FC_ADDRESS"); ok {
		cfg.Device.Address = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := lookup("GAMEPAD_INDEX"); ok {
		idx, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GAMEPAD_INDEX: %w", err)
		}
		cfg.Gamepad.Index = idx
	}
	return nil
}

func (cfg *Config) Validate() error {
	switch cfg.Device.Kind {
	case DeviceNetwork, DeviceTello:
	default:
		return fmt.Errorf("device.kind must be %q or %q, got %q", DeviceNetwork, DeviceTello, cfg.Device.Kind)
	}
	for name, value := range map[string]string{
		"device.connect_timeout":        cfg.Device.ConnectTimeout,
		"device.write_timeout":          cfg.Device.WriteTimeout,
		"session.telemetry_period":      cfg.Session.TelemetryPeriod,
		"session.video_period":          cfg.Session.VideoPeriod,
		"session.flight_control_period": cfg.Session.FlightControlPeriod,
		"gamepad.wait_timeout":          cfg.Gamepad.WaitTimeout,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, value)
		}
	}
	if cfg.Gamepad.Index < 0 {
		return fmt.Errorf("gamepad.index out of range: %d", cfg.Gamepad.Index)
	}
	return nil
}

// Duration parses a validated duration field.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
