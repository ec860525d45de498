package ports

import "context"

// DeviceResolver looks up the device linked to a user.
type DeviceResolver interface {
	// ResolveDevice returns the device identifier for userID.
	// Any failure (unreachable upstream, non-200 status, malformed body,
	// missing identifier) is returned as an error; there are no retries.
	ResolveDevice(ctx context.Context, userID string) (string, error)
}
