// Package parser loads Swagger 2.0 description documents into the
// in-memory form the routing core consumes. It owns everything about the
// serialization format; the core only ever sees an ir.Description.
package parser

import (
	"fmt"

	"github.com/specx2/openapi-router/core/ir"
)

type ParseError struct {
	Message string
	Path    string
}

func (e ParseError) Error() string {
	if e.Path != "" {
		return e.Path + ": " + e.Message
	}
	return e.Message
}

// Parse reads a Swagger 2.0 document (JSON or YAML) into a Description,
// preserving the document's path declaration order.
func Parse(data []byte) (*ir.Description, error) {
	return ParseFrom(data, "")
}

// ParseFrom is Parse with a source URL, enabling relative file or remote
// reference resolution for documents that use them.
func ParseFrom(data []byte, specURL string) (*ir.Description, error) {
	doc, err := newDocument(data, specURL)
	if err != nil {
		return nil, ParseError{Path: specURL, Message: fmt.Sprintf("failed to create document: %v", err)}
	}

	model, err := doc.BuildV2Model()
	if err != nil {
		return nil, ParseError{Path: specURL, Message: fmt.Sprintf("failed to build swagger model: %v", err)}
	}

	return convertDocument(&model.Model), nil
}
