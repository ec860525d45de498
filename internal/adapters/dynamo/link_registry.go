// Package dynamo stores user/device links in DynamoDB.
package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spcloud/urlship/internal/domain"
)

// DefaultDeviceIndex is the global secondary index keyed by deviceId.
const DefaultDeviceIndex = "deviceId-index"

// API is the subset of *dynamodb.Client used by the registry.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// linkRecord is the table item layout. userId is the partition key.
type linkRecord struct {
	UserID   string `dynamodbav:"userId"`
	DeviceID string `dynamodbav:"deviceId"`
	LinkedAt string `dynamodbav:"linkedAt,omitempty"`
}

func (r linkRecord) toDomain() domain.DeviceLink {
	link := domain.DeviceLink{UserID: r.UserID, DeviceID: r.DeviceID}
	if t, err := time.Parse(time.RFC3339Nano, r.LinkedAt); err == nil {
		link.LinkedAt = t
	}
	return link
}

// LinkRegistry implements ports.LinkRegistry on a DynamoDB table.
type LinkRegistry struct {
	client      API
	table       string
	deviceIndex string
}

// NewLinkRegistry creates a registry for table. An empty deviceIndex uses
// DefaultDeviceIndex.
func NewLinkRegistry(client API, table, deviceIndex string) *LinkRegistry {
	if deviceIndex == "" {
		deviceIndex = DefaultDeviceIndex
	}
	return &LinkRegistry{
		client:      client,
		table:       table,
		deviceIndex: deviceIndex,
	}
}

// DeviceForUser queries the table by its userId partition key.
func (r *LinkRegistry) DeviceForUser(ctx context.Context, userID string) (domain.DeviceLink, bool, error) {
	return r.queryOne(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(1),
	})
}

// UserForDevice queries the deviceId index.
func (r *LinkRegistry) UserForDevice(ctx context.Context, deviceID string) (domain.DeviceLink, bool, error) {
	return r.queryOne(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(r.deviceIndex),
		KeyConditionExpression: aws.String("deviceId = :deviceId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":deviceId": &types.AttributeValueMemberS{Value: deviceID},
		},
		Limit: aws.Int32(1),
	})
}

// Unlink deletes the link item of userID.
func (r *LinkRegistry) Unlink(ctx context.Context, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete link for %s: %w", userID, err)
	}
	return nil
}

func (r *LinkRegistry) queryOne(ctx context.Context, in *dynamodb.QueryInput) (domain.DeviceLink, bool, error) {
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return domain.DeviceLink{}, false, fmt.Errorf("query %s: %w", r.table, err)
	}
	if len(out.Items) == 0 {
		return domain.DeviceLink{}, false, nil
	}

	var rec linkRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return domain.DeviceLink{}, false, fmt.Errorf("decode link item: %w", err)
	}
	return rec.toDomain(), true, nil
}
