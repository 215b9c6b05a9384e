package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaData []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaData)

// ErrInvalidDocument wraps schema violations.
var ErrInvalidDocument = errors.New("config does not match schema")

// validateDocument checks the raw YAML document against the embedded schema
// before it is decoded. Semantic checks (e.g. radius ordering) stay with the
// components that own them.
func validateDocument(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	if doc == nil {
		return nil // empty file keeps defaults
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}
