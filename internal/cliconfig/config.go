package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spcloud/urlship/internal/domain"
)

// Defaults match the deployed device firmware and bucket layout.
const (
	DefaultKeyRoot             = "public/public"
	DefaultTopicPrefix         = "/presignedurls"
	DefaultDeviceIndex         = "deviceId-index"
	DefaultMaxPacketSize       = 2048
	DefaultSafetyMarginPercent = 10
	DefaultURLExpiry           = time.Hour
)

// Config holds CLI configuration for urlship.
type Config struct {
	Bucket      string
	Region      string
	IoTEndpoint string

	DeviceAPIURL string
	LinkTable    string
	DeviceIndex  string

	KeyRoot     string
	TopicPrefix string

	URLExpiry           time.Duration
	MaxPacketSize       int
	SafetyMarginPercent float64
	ListPageSize        int

	HTTPTimeout    time.Duration
	RequestTimeout time.Duration

	Listen   string
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DeviceIndex:         DefaultDeviceIndex,
		KeyRoot:             DefaultKeyRoot,
		TopicPrefix:         DefaultTopicPrefix,
		URLExpiry:           DefaultURLExpiry,
		MaxPacketSize:       DefaultMaxPacketSize,
		SafetyMarginPercent: DefaultSafetyMarginPercent,
		HTTPTimeout:         10 * time.Second,
		RequestTimeout:      30 * time.Second,
		Listen:              ":8080",
		LogLevel:            "info",
	}
}

// Validate checks the configuration needed by the publishing pipeline and
// normalizes derived values.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.IoTEndpoint == "" ||
		strings.HasPrefix(c.IoTEndpoint, "YOUR_ACTUAL_IOT_ENDPOINT") ||
		strings.Contains(c.IoTEndpoint, "your-iot-endpoint") {
		return fmt.Errorf("iot-endpoint is not configured (got %q)", c.IoTEndpoint)
	}
	if !strings.Contains(c.IoTEndpoint, "://") {
		c.IoTEndpoint = "https://" + c.IoTEndpoint
	}
	if c.DeviceAPIURL == "" {
		return fmt.Errorf("device-api-url is required")
	}

	if c.URLExpiry <= 0 {
		return fmt.Errorf("url expiry must be positive")
	}
	if c.ListPageSize < 0 || c.ListPageSize > 1000 {
		return fmt.Errorf("list page size must be between 0 and 1000")
	}
	if _, err := c.Budget(); err != nil {
		return err
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = DefaultTopicPrefix
	}
	return nil
}

// ValidateLinks checks the configuration needed by the device link service.
func (c *Config) ValidateLinks() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.LinkTable == "" {
		return fmt.Errorf("link-table is required")
	}
	if c.DeviceIndex == "" {
		c.DeviceIndex = DefaultDeviceIndex
	}
	return nil
}

// Budget derives the per-message payload budget.
func (c *Config) Budget() (domain.PayloadBudget, error) {
	return domain.NewPayloadBudget(c.MaxPacketSize, c.SafetyMarginPercent)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setSecondsFromString parses a whole number of seconds into a duration.
func (s *configSetter) setSecondsFromString(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	secs, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if secs <= 0 {
		return nil
	}
	*dst = time.Duration(secs) * time.Second
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}
