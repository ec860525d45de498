package domain

import "strings"

// ResourceKey identifies a stored object within a user/loadout scope.
type ResourceKey = string

// SignedURLEntry is one object key together with its presigned access URL.
// The JSON field names are what the device firmware parses.
type SignedURLEntry struct {
	Key ResourceKey `json:"key"`
	URL string      `json:"presignedUrl"`
}

// Object is a single listing result from object storage.
type Object struct {
	Key  ResourceKey
	Size int64
}

// IsPlaceholder reports whether the object is a zero-byte directory marker.
// Placeholders are not URL candidates.
func (o Object) IsPlaceholder() bool {
	return o.Size == 0 && strings.HasSuffix(o.Key, "/")
}

// ListResult is the outcome of enumerating a prefix.
type ListResult struct {
	// Keys holds the URL candidates in listing order.
	Keys []ResourceKey

	// Placeholders counts directory markers that were skipped.
	Placeholders int
}

// Empty reports whether nothing at all was stored under the prefix.
func (r ListResult) Empty() bool {
	return len(r.Keys) == 0 && r.Placeholders == 0
}

// ScopePrefix builds the storage prefix "{root}/{userID}/{loadoutID}/".
func ScopePrefix(root, userID, loadoutID string) string {
	root = strings.Trim(root, "/")
	if root == "" {
		return userID + "/" + loadoutID + "/"
	}
	return root + "/" + userID + "/" + loadoutID + "/"
}

// DeviceTopic returns the message topic a device subscribes to for URLs.
func DeviceTopic(prefix, deviceID string) string {
	return strings.TrimRight(prefix, "/") + "/" + deviceID
}
