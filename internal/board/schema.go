package board

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const importSchemaURL = "taskboard://schemas/import.json"

const importSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name"],
    "properties": {
      "id": {"type": ["string", "integer"], "minLength": 1},
      "name": {"type": "string"},
      "completed": {"type": "boolean"},
      "completedDate": {"type": "string", "format": "date-time"},
      "lastChange": {"type": "string", "format": "date-time"},
      "isNew": {"type": "boolean"}
    }
  }
}`

func compileImportSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(importSchemaURL, strings.NewReader(importSchema)); err != nil {
		return nil, fmt.Errorf("add import schema: %w", err)
	}
	return compiler.Compile(importSchemaURL)
}

// schemaMessages flattens a validation error into one line per leaf cause.
func schemaMessages(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0)
	collectSchemaMessages(&out, ve)
	return out
}

func collectSchemaMessages(out *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaMessages(out, cause)
	}
}
