package parser

import (
	"github.com/pb33f/libopenapi/orderedmap"
	yaml "go.yaml.in/yaml/v4"
)

func decodeNode(node *yaml.Node) interface{} {
	if node == nil {
		return nil
	}
	var value interface{}
	if err := node.Decode(&value); err == nil {
		return value
	}
	// A scalar that refuses to decode still carries its literal text.
	if node.Kind == yaml.ScalarNode {
		return node.Value
	}
	return nil
}

func convertExtensionsMap(exts *orderedmap.Map[string, *yaml.Node]) map[string]interface{} {
	if exts == nil || exts.Len() == 0 {
		return nil
	}
	result := make(map[string]interface{}, exts.Len())
	for key, node := range exts.FromOldest() {
		if node == nil {
			continue
		}
		if value := decodeNode(node); value != nil {
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
