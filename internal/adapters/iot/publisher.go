// Package iot publishes URL batches to devices through the AWS IoT Core
// data plane (MQTT).
package iot

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iotdataplane"

	"github.com/spcloud/urlship/internal/domain"
	"github.com/spcloud/urlship/internal/ports"
)

// QoSAtLeastOnce is the MQTT delivery quality used for URL batches.
const QoSAtLeastOnce int32 = 1

// PublishAPI is the subset of *iotdataplane.Client used for publishing.
type PublishAPI interface {
	Publish(ctx context.Context, params *iotdataplane.PublishInput, optFns ...func(*iotdataplane.Options)) (*iotdataplane.PublishOutput, error)
}

// Publisher implements ports.BatchPublisher.
type Publisher struct {
	client PublishAPI
	budget domain.PayloadBudget
	logger ports.Logger
}

// NewPublisher creates a publisher that refuses payloads above budget.
func NewPublisher(client PublishAPI, budget domain.PayloadBudget, logger ports.Logger) *Publisher {
	return &Publisher{
		client: client,
		budget: budget,
		logger: logger,
	}
}

// Publish sends the batch as one QoS 1 message and returns once IoT Core
// has accepted it.
func (p *Publisher) Publish(ctx context.Context, topic string, batch *domain.Batch) error {
	if batch.Empty() {
		p.logger.Debug("no entries in batch to publish", ports.String("topic", topic))
		return nil
	}

	payload, err := batch.Payload()
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	if !p.budget.Fits(len(payload)) {
		return fmt.Errorf("batch payload %d bytes exceeds budget %d", len(payload), p.budget)
	}

	p.logger.Debug("publishing batch",
		ports.String("topic", topic),
		ports.Int("bytes", len(payload)),
		ports.Int("entries", batch.Size()),
	)

	_, err = p.client.Publish(ctx, &iotdataplane.PublishInput{
		Topic:       aws.String(topic),
		Payload:     payload,
		Qos:         QoSAtLeastOnce,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
