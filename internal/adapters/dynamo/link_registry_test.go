package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeAPI struct {
	items   []linkRecord
	err     error
	queries []*dynamodb.QueryInput
	deletes []*dynamodb.DeleteItemInput
}

func (f *fakeAPI) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.err != nil {
		return nil, f.err
	}
	out := &dynamodb.QueryOutput{}
	for _, rec := range f.items {
		item, err := attributevalue.MarshalMap(rec)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deletes = append(f.deletes, in)
	return &dynamodb.DeleteItemOutput{}, f.err
}

func stringValue(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("attribute %T is not a string", av)
	}
	return s.Value
}

func TestLinkRegistry_DeviceForUser(t *testing.T) {
	api := &fakeAPI{items: []linkRecord{{UserID: "u1", DeviceID: "esp-01", LinkedAt: "2024-05-01T10:20:30.123Z"}}}
	r := NewLinkRegistry(api, "SPCloudUserDeviceLinks", "")

	link, ok, err := r.DeviceForUser(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("DeviceForUser() = %v, %v, %v", link, ok, err)
	}
	if link.DeviceID != "esp-01" || link.UserID != "u1" {
		t.Errorf("link = %+v", link)
	}
	want := time.Date(2024, 5, 1, 10, 20, 30, 123000000, time.UTC)
	if !link.LinkedAt.Equal(want) {
		t.Errorf("LinkedAt = %v, want %v", link.LinkedAt, want)
	}

	q := api.queries[0]
	if aws.ToString(q.TableName) != "SPCloudUserDeviceLinks" || q.IndexName != nil {
		t.Errorf("query table=%s index=%v", aws.ToString(q.TableName), q.IndexName)
	}
	if got := stringValue(t, q.ExpressionAttributeValues[":userId"]); got != "u1" {
		t.Errorf(":userId = %q", got)
	}
	if aws.ToInt32(q.Limit) != 1 {
		t.Errorf("Limit = %d, want 1", aws.ToInt32(q.Limit))
	}
}

func TestLinkRegistry_UserForDeviceUsesIndex(t *testing.T) {
	api := &fakeAPI{items: []linkRecord{{UserID: "u9", DeviceID: "esp-09"}}}
	r := NewLinkRegistry(api, "links", "")

	link, ok, err := r.UserForDevice(context.Background(), "esp-09")
	if err != nil || !ok || link.UserID != "u9" {
		t.Fatalf("UserForDevice() = %+v, %v, %v", link, ok, err)
	}
	if !link.LinkedAt.IsZero() {
		t.Errorf("LinkedAt = %v, want zero", link.LinkedAt)
	}
	if aws.ToString(api.queries[0].IndexName) != DefaultDeviceIndex {
		t.Errorf("IndexName = %q, want %q", aws.ToString(api.queries[0].IndexName), DefaultDeviceIndex)
	}
}

func TestLinkRegistry_NotLinked(t *testing.T) {
	r := NewLinkRegistry(&fakeAPI{}, "links", "")
	_, ok, err := r.DeviceForUser(context.Background(), "nobody")
	if err != nil || ok {
		t.Errorf("DeviceForUser() ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestLinkRegistry_Errors(t *testing.T) {
	api := &fakeAPI{err: errors.New("ProvisionedThroughputExceeded")}
	r := NewLinkRegistry(api, "links", "by-device")

	if _, _, err := r.DeviceForUser(context.Background(), "u1"); err == nil {
		t.Error("DeviceForUser() error = nil")
	}
	if err := r.Unlink(context.Background(), "u1"); err == nil {
		t.Error("Unlink() error = nil")
	}
}

func TestLinkRegistry_Unlink(t *testing.T) {
	api := &fakeAPI{}
	r := NewLinkRegistry(api, "links", "")

	if err := r.Unlink(context.Background(), "u1"); err != nil {
		t.Fatalf("Unlink() error = %v", err)
	}
	if len(api.deletes) != 1 {
		t.Fatalf("DeleteItem calls = %d, want 1", len(api.deletes))
	}
	if got := stringValue(t, api.deletes[0].Key["userId"]); got != "u1" {
		t.Errorf("key userId = %q", got)
	}
}
