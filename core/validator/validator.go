// Package validator checks the structural shape of a description document
// before a route table is built from it: the paths object, the per-method
// operation objects, and the parameter declarations the routing core will
// read. It is deliberately narrower than full Swagger 2.0 validation;
// anything the core does not consume is passed through unchecked.
package validator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	sigyaml "sigs.k8s.io/yaml"

	_ "embed"
)

//go:embed schema/swagger20.json
var descriptionSchema []byte

const schemaResource = "swagger20.json"

// Validate checks one description document, given as JSON or YAML bytes.
// It returns nil when the document is structurally usable by the routing
// core, and a descriptive error otherwise.
func Validate(document []byte) error {
	jsonDoc, err := sigyaml.YAMLToJSON(document)
	if err != nil {
		return fmt.Errorf("description is not valid YAML or JSON: %w", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(jsonDoc, &decoded); err != nil {
		return fmt.Errorf("failed to decode description: %w", err)
	}

	schema, err := compiled()
	if err != nil {
		return err
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("description failed structural validation: %w", err)
	}
	return nil
}

func compiled() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(descriptionSchema)); err != nil {
		return nil, fmt.Errorf("failed to load embedded schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}
	return schema, nil
}
