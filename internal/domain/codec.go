package domain

import (
	"bytes"
	"encoding/json"
)

// EncodeBatch serializes entries into the wire payload: a compact JSON array
// of {key, presignedUrl} objects. HTML escaping is disabled so that '&' in
// query strings is sent as a single byte, which is what the payload budget
// is measured against.
func EncodeBatch(entries []SignedURLEntry) ([]byte, error) {
	if entries == nil {
		entries = []SignedURLEntry{}
	}
	return encodeCompact(entries)
}

// EncodeEntry serializes a single entry object (no array framing).
func EncodeEntry(e SignedURLEntry) ([]byte, error) {
	return encodeCompact(e)
}

func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder.Encode terminates each value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Array framing overhead used by Batch for incremental size accounting.
const (
	arrayFrameBytes = 2 // '[' and ']'
	separatorBytes  = 1 // ',' between elements
)
