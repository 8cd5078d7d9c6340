package questionset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://examiz/question-set.json"

// documentSchema describes a question set file.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["questions"],
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "duration_seconds": {"type": "integer", "minimum": 1},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "prompt", "kind"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "prompt": {"type": "string", "minLength": 1},
          "kind": {"enum": ["choice", "true_false", "free_text"]},
          "options": {"type": "array", "items": {"type": "string"}},
          "correct_index": {"type": "integer", "minimum": 0},
          "tier": {"enum": ["beginner", "intermediate", "advanced"]},
          "topics": {"type": "array", "items": {"type": "string"}, "uniqueItems": true}
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// documentValidator returns the compiled schema, compiling it on first use.
func documentValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(documentSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
