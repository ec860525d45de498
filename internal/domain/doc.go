// Package domain contains the core entities and value objects for urlship.
//
// This package has no dependencies on infrastructure concerns (object storage,
// messaging, HTTP, logging) and contains only the rules the publishing
// pipeline must hold.
//
// # Entities
//
//   - [SignedURLEntry]: a stored object key paired with its time-limited URL
//   - [Batch]: an ordered group of entries published as one message
//   - [PayloadBudget]: the byte ceiling every published batch must respect
//   - [PublishOutcome]: the counters produced by one pipeline run
//
// # Invariants
//
// A non-empty batch handed to a publisher always encodes to at most
// PayloadBudget bytes using [EncodeBatch]. Entries are never mutated after
// signing and keep their enumeration order through packing and publishing.
package domain
