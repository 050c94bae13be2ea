package flexvalue

// SchemaKind discriminates the variants of [Schema] (§3).
type SchemaKind int

const (
	SchemaString SchemaKind = iota
	SchemaInt
	SchemaFloat
	SchemaBool
	SchemaNull
	SchemaObject
	SchemaArray
	SchemaOptional
	SchemaUnion
	SchemaTuple
	SchemaMap
	SchemaEnum
)

// Schema is a closed enum mirroring a target Go type well enough for the
// field matcher, enum matcher, and union coercer to reason about it without
// reflection in the hot path (though coerce.CoerceAny falls back to
// reflect.Type for types with no registered Schema; see SPEC_FULL.md §D.3).
type Schema struct {
	Kind SchemaKind

	// Object
	Name   string
	Fields []Field

	// Array, Optional: the element/wrapped schema
	Inner *Schema

	// Union
	Variants []Schema

	// Tuple
	Items []Schema

	// Map
	Key   *Schema
	Value *Schema

	// Enum
	EnumVariants []EnumVariant
}

// Field describes one struct field for the object coercer and field
// matcher (§4.8, §4.9): its name, type, whether it is required, and the
// aliases fuzzy matching should also accept.
type Field struct {
	Name     string
	Type     Schema
	Required bool
	Aliases  []string
}

// FieldDescriptor is the declarative, reflection-adjacent metadata the
// dispatch-table registration surface (SPEC_FULL.md §D.2) uses to describe
// one field before any value has been seen.
type FieldDescriptor struct {
	Name       string
	TypeName   string
	IsOptional bool
}

// EnumVariant names one case of an enum/union-of-strings target, with an
// optional description used to widen fuzzy matching (§4.10).
type EnumVariant struct {
	Name        string
	Description string
}

func StringSchema() Schema { return Schema{Kind: SchemaString} }
func Int64() Schema  { return Schema{Kind: SchemaInt} }
func Float64() Schema { return Schema{Kind: SchemaFloat} }
func Boolean() Schema  { return Schema{Kind: SchemaBool} }
func NullSchema() Schema { return Schema{Kind: SchemaNull} }

func Object(name string, fields ...Field) Schema {
	return Schema{Kind: SchemaObject, Name: name, Fields: fields}
}

func Array(inner Schema) Schema { return Schema{Kind: SchemaArray, Inner: &inner} }

func Optional(inner Schema) Schema { return Schema{Kind: SchemaOptional, Inner: &inner} }

func Union(name string, variants ...Schema) Schema {
	return Schema{Kind: SchemaUnion, Name: name, Variants: variants}
}

func Tuple(items ...Schema) Schema { return Schema{Kind: SchemaTuple, Items: items} }

func Map(key, value Schema) Schema { return Schema{Kind: SchemaMap, Key: &key, Value: &value} }

func Enum(name string, variants ...EnumVariant) Schema {
	return Schema{Kind: SchemaEnum, Name: name, EnumVariants: variants}
}

// IsOptional reports whether s is an Optional wrapper, matching the
// dispatch-table contract's requirement (§6) that optionality be derivable
// by "matching the field type against Optional<_>."
func (s Schema) IsOptional() bool { return s.Kind == SchemaOptional }
