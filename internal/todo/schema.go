package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todo/internal/model"
)

const schemaURL = "todos.schema.json"

// The stored value is a bare array of {title, status}. Extra fields are
// tolerated so values written by older clients still load.
const storedSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "status"],
    "properties": {
      "title": {"type": "string"},
      "status": {"enum": ["Pending", "Completed"]}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(storedSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// decodeStored validates raw against the stored-value schema and decodes it.
// Failures come back as *CorruptStateError.
func decodeStored(key, raw string) ([]model.Item, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &CorruptStateError{Key: key, Err: fmt.Errorf("parse: %w", err)}
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		path, msg := firstSchemaCause(err)
		return nil, &CorruptStateError{Key: key, Path: path, Err: fmt.Errorf("schema: %s", msg)}
	}

	items, err := model.Decode(raw)
	if err != nil {
		return nil, &CorruptStateError{Key: key, Err: err}
	}
	return items, nil
}

// firstSchemaCause walks to the deepest leaf of a validation error tree.
func firstSchemaCause(err error) (path, msg string) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return "", err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	path = ve.InstanceLocation
	if path == "" {
		path = "/"
	}
	return path, ve.Message
}
