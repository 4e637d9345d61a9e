// Package process holds the step board driven by the process event stream:
// the fixed set of steps, their status enum, and the wire messages that
// update them.
package process

import "fmt"

// Status is the lifecycle state of a single step.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var statusLabels = map[Status]string{
	StatusPending:    "Menunggu",
	StatusProcessing: "Sedang diproses...",
	StatusCompleted:  "Selesai",
	StatusFailed:     "Gagal",
}

// ParseStatus converts a wire value into a Status. It is the only way an
// incoming status reaches the board.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusLabels[st]; !ok {
		return "", fmt.Errorf("unknown step status %q", s)
	}
	return st, nil
}

// Label returns the human-readable text shown for the status.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) String() string { return string(s) }
