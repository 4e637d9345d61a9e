// Package validate provides JSON Schema validation for stream messages and
// stepper configuration documents.
package validate

import (
	"fmt"
	"sync"

	"github.com/initializ/stepper/schemas"
	"github.com/xeipuuv/gojsonschema"
)

type compiled struct {
	once   sync.Once
	source []byte
	schema *gojsonschema.Schema
	err    error
}

func (c *compiled) get() (*gojsonschema.Schema, error) {
	c.once.Do(func() {
		c.schema, c.err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(c.source))
	})
	return c.schema, c.err
}

var (
	messageSchema = &compiled{source: schemas.MessageSchema}
	configSchema  = &compiled{source: schemas.ConfigSchema}
)

// ValidateMessage validates one raw stream payload against the message
// schema. It returns the validation findings, and an error only when the
// payload is not JSON or the schema fails to compile.
func ValidateMessage(data []byte) ([]string, error) {
	schema, err := messageSchema.get()
	if err != nil {
		return nil, fmt.Errorf("compiling message schema: %w", err)
	}
	return collect(schema.Validate(gojsonschema.NewBytesLoader(data)))
}

// ValidateConfigDocument validates a decoded stepper.yaml document (as
// produced by yaml.Unmarshal into a map) against the config schema.
func ValidateConfigDocument(doc any) ([]string, error) {
	schema, err := configSchema.get()
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return collect(schema.Validate(gojsonschema.NewGoLoader(doc)))
}

func collect(result *gojsonschema.Result, err error) ([]string, error) {
	if err != nil {
		return nil, fmt.Errorf("validating document: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}
