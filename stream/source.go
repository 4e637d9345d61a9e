// Package stream abstracts the server-sent event connection that feeds the
// step display. A Source opens a Handle; the Handle delivers message
// payloads and transport failures to registered callbacks until it is
// closed.
package stream

import (
	"context"
	"errors"
	"fmt"
)

// DefaultEndpoint is the process stream consumed when nothing else is
// configured.
const DefaultEndpoint = "http://localhost:8000/api/process"

var (
	// ErrNotEventStream is reported when the endpoint answers with a
	// content type other than text/event-stream.
	ErrNotEventStream = errors.New("response is not an event stream")
	// ErrStreamEnded is reported when the server closes the stream before
	// the handle was closed.
	ErrStreamEnded = errors.New("event stream ended")
)

// StatusError is reported when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %s", e.Status)
}

// Source opens streaming subscriptions.
type Source interface {
	// Open starts a subscription to url. Delivery does not begin until both
	// handlers have been registered on the returned Handle.
	Open(ctx context.Context, url string) (Handle, error)
}

// Handle is one open subscription. Handlers are invoked sequentially, in
// delivery order, from a goroutine owned by the handle. Handlers must not
// call Close themselves.
type Handle interface {
	// OnMessage registers the callback for message event payloads.
	OnMessage(fn func(data []byte))
	// OnTransportError registers the callback for connection failures. At
	// most one failure is reported per handle, after which delivery stops.
	OnTransportError(fn func(err error))
	// Close ends the subscription. It is synchronous and idempotent; once
	// it returns no handler is invoked again.
	Close()
}
