package domain

import "time"

// DeviceLink associates a user with the device they registered.
type DeviceLink struct {
	UserID   string
	DeviceID string
	LinkedAt time.Time
}
