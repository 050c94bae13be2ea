package flexvalue

import "github.com/google/jsonschema-go/jsonschema"

// ToJSONSchema projects s to a *jsonschema.Schema, reusing the same
// field-by-field construction style as magicschema.Generator's walkNode
// family (Type/Properties/Required/Items/Enum/AnyOf), so a Schema obtained
// from a dispatch-table registration (flexparse.Register) can be rendered
// as a JSON Schema document. `cmd/flexparse schema` does not call it: that
// command has no registered types and returns an error.
func (s Schema) ToJSONSchema() *jsonschema.Schema {
	switch s.Kind {
	case SchemaString:
		return &jsonschema.Schema{Type: "string"}
	case SchemaInt:
		return &jsonschema.Schema{Type: "integer"}
	case SchemaFloat:
		return &jsonschema.Schema{Type: "number"}
	case SchemaBool:
		return &jsonschema.Schema{Type: "boolean"}
	case SchemaNull:
		return &jsonschema.Schema{Type: "null"}

	case SchemaObject:
		out := &jsonschema.Schema{
			Type:                 "object",
			Properties:           make(map[string]*jsonschema.Schema, len(s.Fields)),
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		}

		for _, f := range s.Fields {
			out.Properties[f.Name] = f.Type.ToJSONSchema()

			if f.Required {
				out.Required = append(out.Required, f.Name)
			}
		}

		return out

	case SchemaArray:
		return &jsonschema.Schema{Type: "array", Items: s.Inner.ToJSONSchema()}

	case SchemaOptional:
		return s.Inner.ToJSONSchema()

	case SchemaUnion:
		out := &jsonschema.Schema{}
		for _, v := range s.Variants {
			out.AnyOf = append(out.AnyOf, v.ToJSONSchema())
		}

		return out

	case SchemaTuple:
		// jsonschema-go has no positional-tuple construct in this
		// repository's vendored version; approximate with a same-length
		// array whose item schema is the union of the tuple's members.
		out := &jsonschema.Schema{Type: "array"}

		items := &jsonschema.Schema{}
		for _, it := range s.Items {
			items.AnyOf = append(items.AnyOf, it.ToJSONSchema())
		}

		out.Items = items

		return out

	case SchemaMap:
		return &jsonschema.Schema{Type: "object", AdditionalProperties: s.Value.ToJSONSchema()}

	case SchemaEnum:
		out := &jsonschema.Schema{Type: "string"}
		for _, v := range s.EnumVariants {
			out.Enum = append(out.Enum, v.Name)
		}

		return out

	default:
		return &jsonschema.Schema{}
	}
}
