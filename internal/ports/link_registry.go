package ports

import (
	"context"

	"github.com/spcloud/urlship/internal/domain"
)

// LinkRegistry stores which device is linked to which user.
type LinkRegistry interface {
	// DeviceForUser returns the link for userID; ok is false when none exists.
	DeviceForUser(ctx context.Context, userID string) (link domain.DeviceLink, ok bool, err error)

	// UserForDevice returns the link for deviceID; ok is false when none exists.
	UserForDevice(ctx context.Context, deviceID string) (link domain.DeviceLink, ok bool, err error)

	// Unlink removes the link held by userID. Removing a missing link is not an error.
	Unlink(ctx context.Context, userID string) error
}
