package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Request is the transport-neutral view of an inbound call.
type Request struct {
	Method string
	Query  map[string]string

	// RequestID is the host's request id, reused as the pipeline run id.
	RequestID string
}

// Param returns a trimmed query parameter.
func (r Request) Param(name string) string {
	return strings.TrimSpace(r.Query[name])
}

// Response is the transport-neutral view of an outbound response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Handler serves one logical endpoint.
type Handler interface {
	Handle(ctx context.Context, req Request) Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) Response

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req Request) Response {
	return f(ctx, req)
}

// CORSHeaders returns the headers attached to every response. Browsers call
// these endpoints directly from the companion web app.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,OPTIONS,POST,PUT,DELETE,PATCH",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token,X-Amz-User-Agent",
		"Content-Type":                 "application/json",
	}
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func jsonResponse(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"message":"Failed to encode response."}`)
	}
	return Response{StatusCode: status, Headers: CORSHeaders(), Body: string(body)}
}

func messageResponse(status int, msg string) Response {
	return jsonResponse(status, messageBody{Message: msg})
}

// preflight answers OPTIONS requests with headers only.
func preflight() Response {
	return Response{StatusCode: http.StatusOK, Headers: CORSHeaders(), Body: ""}
}

// WithPreflight answers OPTIONS itself and passes everything else to h.
func WithPreflight(h Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req Request) Response {
		if req.Method == http.MethodOptions {
			return preflight()
		}
		return h.Handle(ctx, req)
	})
}
