package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the persisted layout: an object whose values are
// arrays of strings, oldest entry first.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "array",
    "items": {"type": "string"}
  }
}`

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// validateDocument checks raw file contents against documentSchema. It
// rejects shapes encoding/json would silently accept, such as a top-level
// null or a session mapped to null.
func validateDocument(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile document schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("unexpected document shape: %s", strings.Join(msgs, "; "))
	}

	return nil
}
