package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Bucket              string  `toml:"bucket"`
	Region              string  `toml:"region"`
	IoTEndpoint         string  `toml:"iot_endpoint"`
	DeviceAPIURL        string  `toml:"device_api_url"`
	LinkTable           string  `toml:"link_table"`
	DeviceIndex         string  `toml:"device_index"`
	KeyRoot             string  `toml:"key_root"`
	TopicPrefix         string  `toml:"topic_prefix"`
	URLExpiry           string  `toml:"url_expiry"`
	MaxPacketSize       int     `toml:"max_packet_size"`
	SafetyMarginPercent float64 `toml:"safety_margin_percent"`
	ListPageSize        int     `toml:"list_page_size"`
	HTTPTimeout         string  `toml:"http_timeout"`
	RequestTimeout      string  `toml:"request_timeout"`
	Listen              string  `toml:"listen"`
	LogLevel            string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.urlship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".urlship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("bucket", fc.Bucket, &cfg.Bucket)
	s.setString("region", fc.Region, &cfg.Region)
	s.setString("iot-endpoint", fc.IoTEndpoint, &cfg.IoTEndpoint)
	s.setString("device-api-url", fc.DeviceAPIURL, &cfg.DeviceAPIURL)
	s.setString("link-table", fc.LinkTable, &cfg.LinkTable)
	s.setString("device-index", fc.DeviceIndex, &cfg.DeviceIndex)
	s.setString("key-root", fc.KeyRoot, &cfg.KeyRoot)
	s.setString("topic-prefix", fc.TopicPrefix, &cfg.TopicPrefix)
	s.setString("listen", fc.Listen, &cfg.Listen)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("expiry", fc.URLExpiry, &cfg.URLExpiry); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("request-timeout", fc.RequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}

	s.setInt("max-packet-size", fc.MaxPacketSize, &cfg.MaxPacketSize)
	s.setInt("list-page-size", fc.ListPageSize, &cfg.ListPageSize)
	s.setFloat("safety-margin", fc.SafetyMarginPercent, &cfg.SafetyMarginPercent)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
