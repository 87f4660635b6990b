// Package export renders service definitions as JSON Schema documents for
// host UIs and API documentation.
package export

import (
	"encoding/json"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/hearthkit/servicekit/schema"
)

// Service builds the JSON Schema describing the argument object of a
// service. Properties appear in field declaration order; fields outside the
// schema are rejected via additionalProperties: false, matching the
// validator's unknown-field handling.
func Service(def *schema.ServiceDefinition) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Title:                def.ID,
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}

	for i := range def.Fields {
		field := &def.Fields[i]
		out.Properties.Set(field.Name, fieldSchema(field))
		if field.Required && field.Default == nil {
			out.Required = append(out.Required, field.Name)
		}
	}
	return out
}

func fieldSchema(field *schema.FieldSpec) *jsonschema.Schema {
	prop := selectorSchema(&field.Selector)
	if field.Default != nil {
		prop.Default = field.Default
	}
	if field.Example != nil {
		prop.Examples = []any{field.Example}
	}
	return prop
}

func selectorSchema(sel *schema.Selector) *jsonschema.Schema {
	switch sel.Kind {
	case schema.SelectorText:
		return &jsonschema.Schema{Type: "string"}

	case schema.SelectorBoolean:
		return &jsonschema.Schema{Type: "boolean"}

	case schema.SelectorNumber:
		prop := &jsonschema.Schema{Type: "number"}
		if sel.Min != nil {
			prop.Minimum = number(*sel.Min)
		}
		if sel.Max != nil {
			prop.Maximum = number(*sel.Max)
		}
		if sel.Step != nil {
			prop.MultipleOf = number(*sel.Step)
		}
		return prop

	case schema.SelectorSelect:
		values := make([]any, 0, len(sel.Options))
		for _, option := range sel.Options {
			values = append(values, option)
		}
		member := &jsonschema.Schema{Type: "string", Enum: values}
		if sel.Multiple {
			return &jsonschema.Schema{Type: "array", Items: member}
		}
		return member

	default:
		// Object selectors are opaque: any shape is allowed.
		return &jsonschema.Schema{}
	}
}

func number(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
}
