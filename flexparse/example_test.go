package flexparse_test

import (
	"fmt"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexparse"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

// User is the spec's own running example (§8, scenarios A-F): a struct
// with a required string, a required int, and an optional string field.
type User struct {
	Name  string
	Age   int
	Email *string
}

var userSchema = flexvalue.Object("User",
	flexvalue.Field{Name: "Name", Type: flexvalue.StringSchema(), Required: true},
	flexvalue.Field{Name: "Age", Type: flexvalue.Int64(), Required: true},
	flexvalue.Field{Name: "Email", Type: flexvalue.Optional(flexvalue.StringSchema()), Required: false},
)

// userStructDef builds the coerce.StructDef for User directly from the
// per-field coercers, demonstrating how a hand-written adapter (the
// derive-macro-contract realization of spec §4.12/§6) composes TryInt,
// String, and the Optional/string convention (a nil *string field records
// DefaultValueInserted rather than failing) into one target type.
func userStructDef() coerce.StructDef {
	return coerce.StructDef{
		TypeName: "User",
		Fields: []coerce.Field{
			{
				Name:     "Name",
				Required: true,
				TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
					return coerce.TryString(v)
				},
				Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
					return coerce.String(ctx, v)
				},
			},
			{
				Name:     "Age",
				Required: true,
				Aliases:  []string{"Years", "AgeInYears"},
				TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
					return coerce.TryInt(v)
				},
				Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
					return coerce.Int(ctx, v)
				},
			},
			{
				Name:     "Email",
				Required: false,
				TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
					return coerce.TryString(v)
				},
				Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
					return coerce.String(ctx, v)
				},
			},
		},
		Assemble: func(values map[string]any) (any, error) {
			u := User{}

			if name, ok := values["Name"].(string); ok {
				u.Name = name
			}

			if age, ok := values["Age"].(int64); ok {
				u.Age = int(age)
			}

			if email, ok := values["Email"].(string); ok {
				u.Email = &email
			}

			return u, nil
		},
	}
}

func tryUser(v flexvalue.JSONValue, _ *coerce.Context) (User, bool) {
	out, ok := coerce.TryStruct(userStructDef(), v)
	if !ok {
		return User{}, false
	}

	return out.(User), true
}

func deserUser(v flexvalue.JSONValue, ctx *coerce.Context) (User, error) {
	out, err := coerce.Struct(ctx, userStructDef(), v)
	if err != nil {
		return User{}, err
	}

	return out.(User), nil
}

func init() {
	flexparse.Register[User](userSchema, tryUser, deserUser)
}

// Demonstrates the clean-object scenario of spec §8: a well-formed object
// parses via the strict pass. The markdown-fenced, lenient case is shown
// by Example_parseLLM_messy.
func Example_parseLLM() {
	clean := `{"Name": "Ada Lovelace", "Age": 28, "Email": "ada@example.com"}`

	u, err := flexparse.ParseLLM[User](clean)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(u.Name, u.Age, *u.Email)
	// Output: Ada Lovelace 28 ada@example.com
}

// Messy is a realistic LLM response: the payload is fenced in markdown,
// the age arrives as a numeric string, and the field name is a loose
// case/alias variant the field matcher (§4.9) must resolve.
func Example_parseLLM_messy() {
	messy := "Here you go:\n```json\n{\"name\": \"Grace Hopper\", \"years\": \"85\"}\n```\n"

	u, err := flexparse.ParseLLM[User](messy)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(u.Name, u.Age, u.Email == nil)
	// Output: Grace Hopper 85 true
}
