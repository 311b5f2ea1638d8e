// Package transport issues authenticated REST calls against the dispatch API
// entry point and classifies the outcome of each call.
package transport

import (
	"context"
	"io"
)

// Client is the wire surface the repositories talk through.
//
// Every call distinguishes three outcomes: success (the parsed body bytes),
// rejection (the server answered non-2xx, returned as *common.RejectedError)
// and transport failure (no usable response, wrapping common.ErrUnavailable).
// A context cancellation is returned as the bare context error.
type Client interface {
	// SendJSON issues method against path with an optional ld+json body and
	// returns the raw response body.
	SendJSON(ctx context.Context, method, path string, body any) ([]byte, error)

	// SendMultipart POSTs a multipart form with the given fields and one file
	// part and returns the raw response body.
	SendMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, content io.Reader) ([]byte, error)

	// Ping probes entry-point reachability. Any HTTP response counts as
	// reachable; only a transport failure is an error.
	Ping(ctx context.Context) error
}
