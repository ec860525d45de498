package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestNewLambdaFunc(t *testing.T) {
	var got Request
	fn := NewLambdaFunc(HandlerFunc(func(ctx context.Context, req Request) Response {
		got = req
		return messageResponse(http.StatusAccepted, "ok")
	}))

	ev := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		QueryStringParameters: map[string]string{"userSub": "u"},
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "abc-123"},
	}
	resp, err := fn(context.Background(), ev)
	if err != nil {
		t.Fatalf("lambda func error = %v", err)
	}
	if resp.StatusCode != http.StatusAccepted || resp.Body != `{"message":"ok"}` {
		t.Errorf("response = %+v", resp)
	}
	if got.RequestID != "abc-123" || got.Param("userSub") != "u" {
		t.Errorf("request = %+v", got)
	}

	pre, _ := fn(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions})
	if pre.StatusCode != http.StatusOK || pre.Headers["Access-Control-Allow-Methods"] == "" {
		t.Errorf("preflight = %+v", pre)
	}
}
