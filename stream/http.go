package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sync"

	"github.com/initializ/stepper/logging"
)

// HTTPSource opens server-sent event subscriptions over HTTP GET.
type HTTPSource struct {
	client *http.Client
	logger logging.Logger
}

// NewHTTPSource creates a source using client. A nil client means
// http.DefaultClient; a nil logger discards.
func NewHTTPSource(client *http.Client, logger logging.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &HTTPSource{client: client, logger: logger}
}

// Open validates rawURL and starts the subscription goroutine. The request
// is sent once both handlers are registered.
func (s *HTTPSource) Open(ctx context.Context, rawURL string) (Handle, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing stream url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("stream url %q must be an absolute http(s) url", rawURL)
	}

	hctx, cancel := context.WithCancel(ctx)
	h := &httpHandle{
		url:    u.String(),
		client: s.client,
		logger: s.logger,
		ctx:    hctx,
		cancel: cancel,
		armed:  make(chan struct{}),
	}
	go h.run()
	return h, nil
}

type httpHandle struct {
	url    string
	client *http.Client
	logger logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	onMessage func([]byte)
	onError   func(error)
	closed    bool
	armOnce   sync.Once
	armed     chan struct{}

	// dispatch is held while a handler runs so Close can wait it out.
	dispatch sync.Mutex
}

func (h *httpHandle) OnMessage(fn func(data []byte)) {
	h.mu.Lock()
	h.onMessage = fn
	h.mu.Unlock()
	h.maybeArm()
}

func (h *httpHandle) OnTransportError(fn func(err error)) {
	h.mu.Lock()
	h.onError = fn
	h.mu.Unlock()
	h.maybeArm()
}

func (h *httpHandle) maybeArm() {
	h.mu.Lock()
	ready := h.onMessage != nil && h.onError != nil
	h.mu.Unlock()
	if ready {
		h.armOnce.Do(func() { close(h.armed) })
	}
}

func (h *httpHandle) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	h.dispatch.Lock()
	h.dispatch.Unlock() //nolint:staticcheck
}

func (h *httpHandle) run() {
	select {
	case <-h.armed:
	case <-h.ctx.Done():
		return
	}
	if h.ctx.Err() != nil {
		return
	}

	req, err := http.NewRequestWithContext(h.ctx, http.MethodGet, h.url, nil)
	if err != nil {
		h.fail(fmt.Errorf("building stream request: %w", err))
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(fmt.Errorf("connecting to %s: %w", h.url, err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.fail(&StatusError{StatusCode: resp.StatusCode, Status: resp.Status})
		return
	}
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err != nil || mt != "text/event-stream" {
		h.fail(fmt.Errorf("%w: content type %q", ErrNotEventStream, resp.Header.Get("Content-Type")))
		return
	}

	h.logger.Debug("stream connected", map[string]any{"url": h.url})

	reader := NewEventReader(resp.Body)
	for {
		ev, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrStreamEnded
			}
			h.fail(err)
			return
		}
		if !ev.IsMessage() {
			h.logger.Debug("ignoring named event", map[string]any{"event": ev.Type})
			continue
		}
		h.deliver(ev.Data)
	}
}

func (h *httpHandle) deliver(data string) {
	h.dispatch.Lock()
	defer h.dispatch.Unlock()

	h.mu.Lock()
	closed, fn := h.closed, h.onMessage
	h.mu.Unlock()
	if closed || fn == nil {
		return
	}
	fn([]byte(data))
}

// fail reports err once, unless the handle was closed first.
func (h *httpHandle) fail(err error) {
	h.dispatch.Lock()
	defer h.dispatch.Unlock()

	h.mu.Lock()
	closed, fn := h.closed, h.onError
	h.closed = true
	h.mu.Unlock()
	if closed || fn == nil {
		return
	}
	h.logger.Warn("stream transport failure", map[string]any{"url": h.url, "error": err.Error()})
	fn(err)
}
