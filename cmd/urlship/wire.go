package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/iotdataplane"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spcloud/urlship/internal/adapters/dynamo"
	httpAdapter "github.com/spcloud/urlship/internal/adapters/http"
	"github.com/spcloud/urlship/internal/adapters/iot"
	logAdapter "github.com/spcloud/urlship/internal/adapters/log"
	"github.com/spcloud/urlship/internal/adapters/s3store"
	"github.com/spcloud/urlship/internal/app"
	"github.com/spcloud/urlship/internal/cliconfig"
	"github.com/spcloud/urlship/internal/ports"
)

func loadAWS(ctx context.Context, cfg cliconfig.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// buildPipeline validates cfg and wires the pipeline to S3, IoT and the
// device lookup API. Clients are created once and reused across runs.
func buildPipeline(ctx context.Context, cfg *cliconfig.Config, logger ports.Logger) (*app.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	budget, err := cfg.Budget()
	if err != nil {
		return nil, err
	}

	awsCfg, err := loadAWS(ctx, *cfg)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg)
	iotClient := iotdataplane.NewFromConfig(awsCfg, func(o *iotdataplane.Options) {
		o.BaseEndpoint = aws.String(cfg.IoTEndpoint)
	})
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	return app.NewPipeline(
		app.PipelineConfig{
			KeyRoot:     cfg.KeyRoot,
			TopicPrefix: cfg.TopicPrefix,
			Budget:      budget,
		},
		httpAdapter.NewDeviceResolver(httpClient, cfg.DeviceAPIURL, logger),
		s3store.NewLister(s3Client, cfg.Bucket, int32(cfg.ListPageSize), logger),
		s3store.NewSigner(s3.NewPresignClient(s3Client), cfg.Bucket, cfg.URLExpiry),
		iot.NewPublisher(iotClient, budget, logger),
		logger,
	), nil
}

// buildLinkRegistry validates the link settings and wires DynamoDB.
func buildLinkRegistry(ctx context.Context, cfg *cliconfig.Config) (*dynamo.LinkRegistry, error) {
	if err := cfg.ValidateLinks(); err != nil {
		return nil, err
	}
	awsCfg, err := loadAWS(ctx, *cfg)
	if err != nil {
		return nil, err
	}
	return dynamo.NewLinkRegistry(dynamodb.NewFromConfig(awsCfg), cfg.LinkTable, cfg.DeviceIndex), nil
}

func (c *cli) portsLogger() ports.Logger {
	return logAdapter.NewZerologAdapter(c.log)
}
