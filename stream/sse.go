package stream

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// maxEventLine bounds a single SSE line.
const maxEventLine = 1 << 20

// Event is one dispatched server-sent event.
type Event struct {
	Type string
	ID   string
	Data string
}

// IsMessage reports whether the event targets the default message handler.
func (e Event) IsMessage() bool {
	return e.Type == "" || e.Type == "message"
}

// EventReader decodes the text/event-stream framing.
type EventReader struct {
	scanner *bufio.Scanner
}

// NewEventReader returns a reader over r. Lines may end in LF, CRLF or a
// bare CR.
func NewEventReader(r io.Reader) *EventReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxEventLine)
	scanner.Split(scanEventLines)
	return &EventReader{scanner: scanner}
}

// scanEventLines is a bufio.SplitFunc for event-stream lines.
func scanEventLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A CR at the end of the buffer may be the first half of a CRLF.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Next returns the next dispatched event. It returns io.EOF when the stream
// ends; a trailing event that was never terminated by a blank line is
// dropped.
func (r *EventReader) Next() (Event, error) {
	var (
		ev      Event
		data    strings.Builder
		hasData bool
	)

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if !hasData {
				ev = Event{}
				continue
			}
			ev.Data = strings.TrimSuffix(data.String(), "\n")
			return ev, nil
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if found {
			value = strings.TrimPrefix(value, " ")
		}

		switch field {
		case "event":
			ev.Type = value
		case "data":
			data.WriteString(value)
			data.WriteByte('\n')
			hasData = true
		case "id":
			ev.ID = value
		}
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
