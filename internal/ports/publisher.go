package ports

import (
	"context"

	"github.com/spcloud/urlship/internal/domain"
)

// BatchPublisher delivers batches to the device messaging transport.
type BatchPublisher interface {
	// Publish sends one batch as a single message to topic and returns once
	// the transport has acknowledged it (at-least-once delivery).
	Publish(ctx context.Context, topic string, batch *domain.Batch) error
}
