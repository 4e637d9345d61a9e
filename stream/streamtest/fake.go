// Package streamtest provides a scriptable in-memory stream.Source for
// tests. Events are pushed synchronously from the test goroutine.
package streamtest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/initializ/stepper/stream"
)

// Source records every Open call and hands out fake handles.
type Source struct {
	mu      sync.Mutex
	handles []*Handle
	urls    []string

	// OpenErr, when set, is returned by Open instead of a handle.
	OpenErr error
}

// NewSource creates an empty fake source.
func NewSource() *Source {
	return &Source{}
}

// Open implements stream.Source.
func (s *Source) Open(_ context.Context, url string) (stream.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.urls = append(s.urls, url)
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	h := &Handle{URL: url}
	s.handles = append(s.handles, h)
	return h, nil
}

// Opens returns the number of Open calls.
func (s *Source) Opens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}

// URLs returns the urls passed to Open, in order.
func (s *Source) URLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.urls...)
}

// Last returns the most recently opened handle, or nil.
func (s *Source) Last() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.handles) == 0 {
		return nil
	}
	return s.handles[len(s.handles)-1]
}

// Handle is a fake subscription.
type Handle struct {
	URL string

	mu        sync.Mutex
	onMessage func([]byte)
	onError   func(error)
	closes    int
}

func (h *Handle) OnMessage(fn func(data []byte)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMessage = fn
}

func (h *Handle) OnTransportError(fn func(err error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onError = fn
}

func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closes++
}

// Closed reports whether Close was called at least once.
func (h *Handle) Closed() bool {
	return h.CloseCount() > 0
}

// CloseCount returns how many times Close was called.
func (h *Handle) CloseCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closes
}

// Emit delivers a raw payload to the message handler. It reports false
// when the handle is closed or no handler is registered.
func (h *Handle) Emit(data string) bool {
	h.mu.Lock()
	fn, closed := h.onMessage, h.closes > 0
	h.mu.Unlock()
	if closed || fn == nil {
		return false
	}
	fn([]byte(data))
	return true
}

// EmitJSON marshals v and delivers it as a message payload.
func (h *Handle) EmitJSON(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return h.Emit(string(data))
}

// Fail delivers a transport failure.
func (h *Handle) Fail(err error) bool {
	h.mu.Lock()
	fn, closed := h.onError, h.closes > 0
	h.mu.Unlock()
	if closed || fn == nil {
		return false
	}
	fn(err)
	return true
}
