package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/initializ/stepper/validate"
)

// MessageType discriminates the payloads carried by the process stream.
type MessageType string

const (
	TypeStepUpdate      MessageType = "step_update"
	TypeProcessComplete MessageType = "process_complete"
	TypeError           MessageType = "error"
)

var (
	// ErrMalformed is returned for payloads that are not JSON or do not
	// match the message schema.
	ErrMalformed = errors.New("malformed stream message")
	// ErrUnknownType is returned for JSON objects whose type is not one of
	// the known message types.
	ErrUnknownType = errors.New("unknown stream message type")
)

// Message is one decoded stream event. Only the fields relevant to Type
// are populated.
type Message struct {
	Type    MessageType `json:"type"`
	StepID  int         `json:"step_id,omitempty"`
	Status  Status      `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
}

// DecodeMessage parses and validates a single event payload.
func DecodeMessage(data []byte) (Message, error) {
	var envelope struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch envelope.Type {
	case TypeStepUpdate, TypeProcessComplete, TypeError:
	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownType, envelope.Type)
	}

	findings, err := validate.ValidateMessage(data)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(findings) > 0 {
		return Message{}, fmt.Errorf("%w: %s", ErrMalformed, strings.Join(findings, "; "))
	}

	var wire struct {
		StepID  int    `json:"step_id"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	msg := Message{Type: envelope.Type, Message: wire.Message}
	if msg.Type == TypeStepUpdate {
		st, err := ParseStatus(wire.Status)
		if err != nil {
			return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		msg.StepID, msg.Status = wire.StepID, st
	}
	return msg, nil
}

// Apply records a step_update on the board. Other message types do not
// touch step statuses. It reports whether a step changed.
func (b *Board) Apply(msg Message) bool {
	if msg.Type != TypeStepUpdate {
		return false
	}
	return b.SetStatus(msg.StepID, msg.Status)
}
