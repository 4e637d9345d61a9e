package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/stepper/stream"
)

// eventBuffer is how many stream events may queue before the reader
// goroutine waits for the display to catch up.
const eventBuffer = 32

// session is one open subscription. All release paths (complete, error,
// transport failure, teardown) go through release.
type session struct {
	id     string
	handle stream.Handle
	events chan tea.Msg
	done   chan struct{}

	once  sync.Once
	ended bool
}

func newSession(id string, handle stream.Handle) *session {
	s := &session{
		id:     id,
		handle: handle,
		events: make(chan tea.Msg, eventBuffer),
		done:   make(chan struct{}),
	}
	handle.OnMessage(func(data []byte) {
		s.send(streamMessageMsg{sessionID: id, data: data})
	})
	handle.OnTransportError(func(err error) {
		s.send(transportErrorMsg{sessionID: id, err: err})
	})
	return s
}

// send forwards a stream callback into the event queue. It gives up once
// the session is released so the stream goroutine never blocks on a
// display that stopped listening.
func (s *session) send(msg tea.Msg) {
	select {
	case s.events <- msg:
	case <-s.done:
	}
}

// wait returns a command that yields the next queued event.
func (s *session) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.events:
			return msg
		case <-s.done:
			return nil
		}
	}
}

// release closes the underlying handle exactly once. done is closed first
// so a callback blocked in send returns before Close waits on it.
func (s *session) release() {
	s.once.Do(func() {
		close(s.done)
		s.handle.Close()
		s.ended = true
	})
}
