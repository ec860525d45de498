package api

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaFunc is the signature lambda.Start expects for API Gateway proxy events.
type LambdaFunc func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewLambdaFunc binds h to API Gateway proxy events. Failures are reported
// through the status code; the invocation itself never errors.
func NewLambdaFunc(h Handler) LambdaFunc {
	h = WithPreflight(h)
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp := h.Handle(ctx, Request{
			Method:    ev.HTTPMethod,
			Query:     ev.QueryStringParameters,
			RequestID: ev.RequestContext.RequestID,
		})
		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	}
}
