package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSSEEvent writes a single message event the way the process server
// frames it.
func writeSSEEvent(w http.ResponseWriter, data any) {
	payload, _ := json.Marshal(data)
	_, _ = fmt.Fprintf(w, "event: message\r\ndata: %s\r\n\r\n", payload)
	w.(http.Flusher).Flush()
}

func sseHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}

type recorder struct {
	mu       sync.Mutex
	messages []string
	errs     []error
	errCh    chan error
}

func newRecorder() *recorder {
	return &recorder{errCh: make(chan error, 4)}
}

func (r *recorder) attach(h Handle) {
	h.OnMessage(func(data []byte) {
		r.mu.Lock()
		r.messages = append(r.messages, string(data))
		r.mu.Unlock()
	})
	h.OnTransportError(func(err error) {
		r.mu.Lock()
		r.errs = append(r.errs, err)
		r.mu.Unlock()
		r.errCh <- err
	})
}

func (r *recorder) waitErr(t *testing.T) error {
	t.Helper()
	select {
	case err := <-r.errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for transport error")
		return nil
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func TestHTTPSource_DeliversInOrderThenReportsEnd(t *testing.T) {
	accept := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept <- r.Header.Get("Accept")
		sseHeaders(w)
		_, _ = fmt.Fprint(w, ": ping\r\n\r\n")
		writeSSEEvent(w, map[string]any{"type": "step_update", "step_id": 1, "status": "processing"})
		writeSSEEvent(w, map[string]any{"type": "step_update", "step_id": 1, "status": "completed"})
		writeSSEEvent(w, map[string]any{"type": "process_complete"})
	}))
	defer srv.Close()

	h, err := NewHTTPSource(srv.Client(), nil).Open(context.Background(), srv.URL+"/api/process")
	require.NoError(t, err)
	defer h.Close()

	rec := newRecorder()
	rec.attach(h)

	err = rec.waitErr(t)
	assert.ErrorIs(t, err, ErrStreamEnded)
	assert.Equal(t, "text/event-stream", <-accept)
	assert.Equal(t, []string{
		`{"status":"processing","step_id":1,"type":"step_update"}`,
		`{"status":"completed","step_id":1,"type":"step_update"}`,
		`{"type":"process_complete"}`,
	}, rec.snapshot())
}

func TestHTTPSource_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h, err := NewHTTPSource(srv.Client(), nil).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer h.Close()

	rec := newRecorder()
	rec.attach(h)

	err = rec.waitErr(t)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestHTTPSource_WrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"process_complete"}`))
	}))
	defer srv.Close()

	h, err := NewHTTPSource(srv.Client(), nil).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer h.Close()

	rec := newRecorder()
	rec.attach(h)

	assert.ErrorIs(t, rec.waitErr(t), ErrNotEventStream)
	assert.Empty(t, rec.snapshot())
}

func TestHTTPSource_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	h, err := NewHTTPSource(nil, nil).Open(context.Background(), url)
	require.NoError(t, err)
	defer h.Close()

	rec := newRecorder()
	rec.attach(h)
	assert.Error(t, rec.waitErr(t))
}

func TestHTTPSource_WaitsForBothHandlers(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		sseHeaders(w)
	}))
	defer srv.Close()

	h, err := NewHTTPSource(srv.Client(), nil).Open(context.Background(), srv.URL)
	require.NoError(t, err)

	h.OnMessage(func([]byte) {})
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), hits.Load(), "request sent before transport error handler registered")

	h.Close()
	h.OnTransportError(func(error) {})
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), hits.Load(), "request sent after close")
}

func TestHTTPSource_CloseStopsDelivery(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sseHeaders(w)
		writeSSEEvent(w, map[string]any{"type": "step_update", "step_id": 1, "status": "processing"})
		select {
		case <-release:
			writeSSEEvent(w, map[string]any{"type": "step_update", "step_id": 1, "status": "completed"})
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	h, err := NewHTTPSource(srv.Client(), nil).Open(context.Background(), srv.URL)
	require.NoError(t, err)

	first := make(chan struct{}, 1)
	var after atomic.Int32
	var closed atomic.Bool
	h.OnMessage(func([]byte) {
		if closed.Load() {
			after.Add(1)
		}
		select {
		case first <- struct{}{}:
		default:
		}
	})
	h.OnTransportError(func(error) {
		if closed.Load() {
			after.Add(1)
		}
	})

	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first event")
	}

	h.Close()
	closed.Store(true)
	h.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), after.Load())
}

func TestHTTPSource_RejectsBadURL(t *testing.T) {
	src := NewHTTPSource(nil, nil)

	_, err := src.Open(context.Background(), "localhost:8000/api/process")
	assert.Error(t, err)

	_, err = src.Open(context.Background(), "ftp://example.com/stream")
	assert.Error(t, err)

	_, err = src.Open(context.Background(), "http://%zz")
	assert.Error(t, err)
}
