package capture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/arloliu/sigframe/errs"
)

//go:embed event.schema.json
var eventSchemaJSON []byte

const eventSchemaURL = "sigframe-event.schema.json"

// EventSchema returns the compiled JSON schema of one capture line.
var EventSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(eventSchemaURL, bytes.NewReader(eventSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add event schema: %w", err)
	}

	schema, err := compiler.Compile(eventSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile event schema: %w", err)
	}

	return schema, nil
})

// validateLine checks line against EventSchema. Unknown fields, out-of-range
// bytes and missing per-type fields are all rejected.
func validateLine(schema *jsonschema.Schema, line []byte) error {
	var instance any
	if err := json.Unmarshal(line, &instance); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMalformedEvent, err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMalformedEvent, err)
	}

	return nil
}
