// Package api turns pipeline and link-registry results into HTTP-shaped
// responses. Handlers are transport neutral; Lambda and net/http bindings
// adapt them to API Gateway proxy events and a plain HTTP server.
package api
