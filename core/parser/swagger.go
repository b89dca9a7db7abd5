package parser

import (
	"encoding/json"

	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"

	"github.com/specx2/openapi-router/core/ir"
)

func convertDocument(doc *v2.Swagger) *ir.Description {
	desc := &ir.Description{
		BasePath:   doc.BasePath,
		Host:       doc.Host,
		Extensions: convertExtensionsMap(doc.Extensions),
	}
	if doc.Info != nil {
		desc.Title = doc.Info.Title
		desc.Version = doc.Info.Version
	}

	if doc.Paths == nil || doc.Paths.PathItems == nil {
		return desc
	}

	for template, pathItem := range doc.Paths.PathItems.FromOldest() {
		if pathItem == nil {
			continue
		}
		desc.Paths = append(desc.Paths, ir.PathEntry{
			Template: template,
			Item:     convertPathItem(pathItem),
		})
	}
	return desc
}

func convertPathItem(pathItem *v2.PathItem) *ir.PathItem {
	item := &ir.PathItem{
		Parameters: convertParameters(pathItem.Parameters),
		Operations: make(map[string]*ir.Operation),
		Extensions: convertExtensionsMap(pathItem.Extensions),
	}

	operations := map[string]*v2.Operation{
		"get":     pathItem.Get,
		"put":     pathItem.Put,
		"post":    pathItem.Post,
		"delete":  pathItem.Delete,
		"options": pathItem.Options,
		"head":    pathItem.Head,
		"patch":   pathItem.Patch,
	}
	for method, operation := range operations {
		if operation == nil {
			continue
		}
		item.Operations[method] = &ir.Operation{
			OperationID: operation.OperationId,
			Summary:     operation.Summary,
			Description: operation.Description,
			Tags:        operation.Tags,
			Parameters:  convertParameters(operation.Parameters),
			Consumes:    operation.Consumes,
			Produces:    operation.Produces,
			Extensions:  convertExtensionsMap(operation.Extensions),
		}
	}
	return item
}

func convertParameters(params []*v2.Parameter) []ir.ParameterInfo {
	var result []ir.ParameterInfo
	for _, param := range params {
		if param == nil {
			continue
		}

		info := ir.ParameterInfo{
			Name:        param.Name,
			In:          ir.NormalizeIn(param.In),
			Required:    param.Required != nil && *param.Required,
			Description: param.Description,
			Schema:      convertParameterSchema(param),
			Extensions:  convertExtensionsMap(param.Extensions),
		}
		result = append(result, info)
	}
	return result
}

// convertParameterSchema assembles the declaration's schema. Body
// parameters carry a full schema object; every other location describes
// its value inline on the parameter itself.
func convertParameterSchema(param *v2.Parameter) ir.Schema {
	if param.Schema != nil {
		if schema := convertBodySchema(param.Schema.Schema()); schema != nil {
			return schema
		}
	}

	schema := make(ir.Schema)
	if param.Type != "" {
		schema["type"] = param.Type
	}
	if param.Format != "" {
		schema["format"] = param.Format
	}
	if param.CollectionFormat != "" {
		schema["collectionFormat"] = param.CollectionFormat
	}
	if def := decodeNode(param.Default); def != nil {
		schema["default"] = def
	}
	if len(schema) == 0 {
		return nil
	}
	return schema
}

func convertBodySchema(schema interface{}) ir.Schema {
	if schema == nil {
		return nil
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var schemaMap map[string]interface{}
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return nil
	}
	return ir.Schema(schemaMap)
}
