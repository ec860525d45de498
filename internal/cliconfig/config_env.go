package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables.
// The unprefixed names are the deployment contract of the Lambda functions;
// URLSHIP_* covers the settings they never had.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("bucket", os.Getenv("S3_BUCKET_NAME"), &cfg.Bucket)
	s.setString("region", os.Getenv("AWS_REGION"), &cfg.Region)
	s.setString("iot-endpoint", os.Getenv("AWS_IOT_ENDPOINT"), &cfg.IoTEndpoint)
	s.setString("device-api-url", os.Getenv("DEVICE_API_URL_BASE"), &cfg.DeviceAPIURL)
	s.setString("link-table", os.Getenv("TABLE_NAME_SPCloudUserDeviceLinks"), &cfg.LinkTable)
	s.setString("device-index", os.Getenv("URLSHIP_DEVICE_INDEX"), &cfg.DeviceIndex)
	s.setString("key-root", os.Getenv("URLSHIP_KEY_ROOT"), &cfg.KeyRoot)
	s.setString("topic-prefix", os.Getenv("URLSHIP_TOPIC_PREFIX"), &cfg.TopicPrefix)
	s.setString("listen", os.Getenv("URLSHIP_LISTEN"), &cfg.Listen)
	s.setString("log-level", os.Getenv("URLSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setSecondsFromString("expiry", os.Getenv("PRESIGNED_URL_EXPIRY_SECONDS"), &cfg.URLExpiry); err != nil {
		return err
	}
	if err := s.setIntFromString("max-packet-size", os.Getenv("DEVICE_MAX_PACKET_SIZE"), &cfg.MaxPacketSize); err != nil {
		return err
	}
	if err := s.setFloatFromString("safety-margin", os.Getenv("SAFETY_MARGIN_PERCENT"), &cfg.SafetyMarginPercent); err != nil {
		return err
	}
	if err := s.setIntFromString("list-page-size", os.Getenv("URLSHIP_LIST_PAGE_SIZE"), &cfg.ListPageSize); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("URLSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("request-timeout", os.Getenv("URLSHIP_REQUEST_TIMEOUT"), &cfg.RequestTimeout); err != nil {
		return err
	}

	return nil
}
