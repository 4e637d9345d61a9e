// Package schemas embeds the JSON Schemas used to validate stream messages
// and the stepper configuration.
package schemas

import _ "embed"

// MessageSchema describes one JSON payload carried by a process stream event.
//
//go:embed message.schema.json
var MessageSchema []byte

// ConfigSchema describes stepper.yaml after YAML-to-JSON conversion.
//
//go:embed config.schema.json
var ConfigSchema []byte
