package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Bucket:              "samples",
				Region:              "us-east-1",
				IoTEndpoint:         "abc-ats.iot.us-east-1.amazonaws.com",
				DeviceAPIURL:        "https://api/device-link",
				LinkTable:           "links",
				DeviceIndex:         "idx",
				KeyRoot:             "public/public",
				TopicPrefix:         "/presignedurls",
				URLExpiry:           "30m",
				MaxPacketSize:       1024,
				SafetyMarginPercent: 5,
				ListPageSize:        100,
				HTTPTimeout:         "2s",
				RequestTimeout:      "20s",
				Listen:              "127.0.0.1:8080",
				LogLevel:            "warn",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Bucket:              "samples",
				Region:              "us-east-1",
				IoTEndpoint:         "abc-ats.iot.us-east-1.amazonaws.com",
				DeviceAPIURL:        "https://api/device-link",
				LinkTable:           "links",
				DeviceIndex:         "idx",
				KeyRoot:             "public/public",
				TopicPrefix:         "/presignedurls",
				URLExpiry:           30 * time.Minute,
				MaxPacketSize:       1024,
				SafetyMarginPercent: 5,
				ListPageSize:        100,
				HTTPTimeout:         2 * time.Second,
				RequestTimeout:      20 * time.Second,
				Listen:              "127.0.0.1:8080",
				LogLevel:            "warn",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Bucket:        "file-bucket",
				MaxPacketSize: 512,
			},
			changed: map[string]bool{"max-packet-size": true},
			initial: Config{MaxPacketSize: 2048},
			expected: Config{
				Bucket:        "file-bucket",
				MaxPacketSize: 2048, // unchanged because flag was set
			},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{URLExpiry: "forever"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v\nwant %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.TrimSpace(`
bucket = "samples"
region = "us-east-1"
iot_endpoint = "abc-ats.iot.us-east-1.amazonaws.com"
device_api_url = "https://api/device-link"
url_expiry = "15m"
max_packet_size = 2048
safety_margin_percent = 10.0
`)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Fatal("FileExists() = false for written file")
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Bucket != "samples" || fc.URLExpiry != "15m" || fc.MaxPacketSize != 2048 || fc.SafetyMarginPercent != 10 {
		t.Errorf("FileConfig = %+v", fc)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFileConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFileConfig(missing) error = nil")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("bucket = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(bad); err == nil {
		t.Error("LoadFileConfig(bad) error = nil")
	}
	if FileExists(filepath.Join(dir, "missing.toml")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestNewLogger_NonTerminalWritesJSON(t *testing.T) {
	var sb strings.Builder
	log := NewLogger(&sb, "debug")
	log.Debug().Str("k", "v").Msg("hello")

	out := sb.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("log output = %q, want a JSON line", out)
	}

	sb.Reset()
	quiet := NewLogger(&sb, "warn")
	quiet.Info().Msg("hidden")
	if sb.Len() != 0 {
		t.Errorf("info written at warn level: %q", sb.String())
	}
}
