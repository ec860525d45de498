package ports

import "net/http"

// HTTPClient sends the outbound device lookup request.
// *http.Client satisfies it; a client with a Timeout bounds each lookup.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
