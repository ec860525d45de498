package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spcloud/urlship/internal/ports"
)

// maxResponseBytes caps how much of a lookup response is read.
const maxResponseBytes = 64 << 10

// DeviceResolver implements ports.DeviceResolver against the device link
// lookup endpoint: GET {baseURL}?userId={id}.
type DeviceResolver struct {
	client  ports.HTTPClient
	baseURL string
	logger  ports.Logger
}

// NewDeviceResolver creates a resolver for the given lookup base URL.
func NewDeviceResolver(client ports.HTTPClient, baseURL string, logger ports.Logger) *DeviceResolver {
	return &DeviceResolver{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// lookupBody is the lookup response. When the endpoint is fronted by a proxy
// that does not unwrap Lambda responses, the payload arrives as a JSON string
// in Body and has to be decoded a second time.
type lookupBody struct {
	DeviceID string          `json:"deviceId"`
	Body     json.RawMessage `json:"body"`
}

// ResolveDevice returns the device linked to userID.
func (r *DeviceResolver) ResolveDevice(ctx context.Context, userID string) (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse device API url: %w", err)
	}
	q := u.Query()
	q.Set("userId", userID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Debug("querying device API", ports.String("url", u.String()))

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("device API request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read device API response: %w", err)
	}

	r.logger.Debug("device API response",
		ports.Int("status", resp.StatusCode),
		ports.String("body", string(raw)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("device API returned %d: %s", resp.StatusCode, string(raw))
	}

	return parseDeviceID(raw)
}

// parseDeviceID extracts deviceId from a lookup body, decoding a
// string-encoded "body" field when present.
func parseDeviceID(raw []byte) (string, error) {
	var outer lookupBody
	if err := json.Unmarshal(raw, &outer); err != nil {
		return "", fmt.Errorf("parse device API response: %w", err)
	}

	parsed := outer
	if len(outer.Body) > 0 && outer.Body[0] == '"' {
		var inner string
		if err := json.Unmarshal(outer.Body, &inner); err != nil {
			return "", fmt.Errorf("parse device API body field: %w", err)
		}
		parsed = lookupBody{}
		if err := json.Unmarshal([]byte(inner), &parsed); err != nil {
			return "", fmt.Errorf("parse stringified device API body: %w", err)
		}
	}

	if parsed.DeviceID == "" {
		return "", fmt.Errorf("deviceId not found in device API response: %s", string(raw))
	}
	return parsed.DeviceID, nil
}
