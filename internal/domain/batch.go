package domain

// Batch is an ordered group of entries delivered as a single message.
// It tracks its exact encoded size so packing never needs to re-encode.
type Batch struct {
	// Entries are kept in enumeration order.
	Entries []SignedURLEntry

	// EncodedBytes is len(EncodeBatch(Entries)).
	EncodedBytes int
}

// NewBatch creates a new empty batch.
func NewBatch() *Batch {
	return &Batch{
		Entries:      make([]SignedURLEntry, 0),
		EncodedBytes: arrayFrameBytes,
	}
}

// SizeWith returns the encoded size the batch would have after appending an
// entry whose encoded object is entryBytes long.
func (b *Batch) SizeWith(entryBytes int) int {
	if len(b.Entries) == 0 {
		return arrayFrameBytes + entryBytes
	}
	return b.EncodedBytes + separatorBytes + entryBytes
}

// Add appends an entry whose encoded object is entryBytes long.
func (b *Batch) Add(e SignedURLEntry, entryBytes int) {
	b.EncodedBytes = b.SizeWith(entryBytes)
	b.Entries = append(b.Entries, e)
}

// Size returns the number of entries in the batch.
func (b *Batch) Size() int {
	return len(b.Entries)
}

// Empty returns true if the batch has no entries.
func (b *Batch) Empty() bool {
	return len(b.Entries) == 0
}

// Payload encodes the batch for publishing.
func (b *Batch) Payload() ([]byte, error) {
	return EncodeBatch(b.Entries)
}
