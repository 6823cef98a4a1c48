package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "document.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON schema documents are checked against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a decoded document (from YAML or JSON) against the
// embedded schema. The value is round-tripped through JSON so YAML maps and
// numbers take the types the validator expects.
func validateSchema(doc any) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if err := schema.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(schemaMessages(verr), "; "))
		}
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

// schemaMessages flattens a validation error to its leaf causes, formatted
// as "path: message".
func schemaMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		return []string{instancePath(err.InstanceLocation) + ": " + err.Message}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, schemaMessages(cause)...)
	}
	return out
}

// instancePath converts a JSON pointer like /generators/0/steps/1 into
// generators[0].steps[1].
func instancePath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "document"
	}
	var sb strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		switch {
		case isIndex(part):
			sb.WriteString("[" + part + "]")
		case i > 0:
			sb.WriteString("." + part)
		default:
			sb.WriteString(part)
		}
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
