package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	logadapter "github.com/spcloud/urlship/internal/adapters/log"
)

func TestServer_Routes(t *testing.T) {
	srv := NewServer(logadapter.NewNoopLogger(), time.Second)

	var sawDeadline bool
	srv.Route(PathPresignedURLs, HandlerFunc(func(ctx context.Context, req Request) Response {
		_, sawDeadline = ctx.Deadline()
		return messageResponse(http.StatusOK, req.Param("loadoutId"))
	}))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + PathPresignedURLs + "?userSub=u&loadoutId=l7")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != `{"message":"l7"}` {
		t.Errorf("body = %s", body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if !sawDeadline {
		t.Error("handler context has no deadline")
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+PathPresignedURLs, nil)
	pre, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	pre.Body.Close()
	if pre.StatusCode != http.StatusOK || pre.Header.Get("Access-Control-Allow-Headers") == "" {
		t.Errorf("preflight status = %d headers = %v", pre.StatusCode, pre.Header)
	}

	missing, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", missing.StatusCode)
	}
}

func TestNewServer_WriteTimeout(t *testing.T) {
	tests := []struct {
		name           string
		requestTimeout time.Duration
		want           time.Duration
	}{
		{name: "unbounded requests", requestTimeout: 0, want: 0},
		{name: "bounded requests", requestTimeout: 30 * time.Second, want: 40 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(logadapter.NewNoopLogger(), tt.requestTimeout)
			if srv.server.WriteTimeout != tt.want {
				t.Errorf("WriteTimeout = %v, want %v", srv.server.WriteTimeout, tt.want)
			}
		})
	}
}

func TestServer_NoDeadlineWithoutTimeout(t *testing.T) {
	srv := NewServer(logadapter.NewNoopLogger(), 0)

	var hasDeadline bool
	srv.Route(PathPresignedURLs, HandlerFunc(func(ctx context.Context, req Request) Response {
		_, hasDeadline = ctx.Deadline()
		return messageResponse(http.StatusOK, "ok")
	}))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + PathPresignedURLs)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if hasDeadline {
		t.Error("handler context has a deadline with request timeout disabled")
	}
}
