package jsonstrategy

import (
	"regexp"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

var keyValueLineRe = regexp.MustCompile(`(?m)^\s*[A-Za-z_][A-Za-z0-9_.-]*\s*:\s*.*$`)

// looksLikeYAML reports whether input has at least two lines of `key:
// value` shape and does not start with '{' or '[' (§4.4 YAML).
func looksLikeYAML(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || trimmed[0] == '{' || trimmed[0] == '[' {
		return false
	}

	return len(keyValueLineRe.FindAllString(input, 2)) >= 2
}

// YAML parses input as YAML (via goccy/go-yaml's AST parser) and
// projects the result to a flexvalue.JSONValue tree,
// walking the AST the way magicschema.inferType/unwrapNode do rather than
// decoding into an unordered map[string]any (§4.4 YAML, optional feature).
func YAML(input string) (*flexvalue.FlexValue, bool) {
	if !looksLikeYAML(input) {
		return nil, false
	}

	file, err := parser.ParseBytes([]byte(input), 0)
	if err != nil || len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, false
	}

	val, ok := nodeToJSON(file.Docs[0].Body)
	if !ok {
		return nil, false
	}

	return flexvalue.New(val, flexvalue.YAML()), true
}

func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func nodeToJSON(node ast.Node) (flexvalue.JSONValue, bool) {
	node = unwrapNode(node)

	switch n := node.(type) {
	case *ast.NullNode:
		return flexvalue.Null(), true
	case *ast.BoolNode:
		return flexvalue.Bool(n.Value), true
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return flexvalue.Int(v), true
		case uint64:
			return flexvalue.Int(int64(v)), true
		default:
			return flexvalue.String(n.GetToken().Value), true
		}
	case *ast.FloatNode:
		return flexvalue.Float(n.Value), true
	case *ast.StringNode:
		return flexvalue.String(n.Value), true
	case *ast.LiteralNode:
		return flexvalue.String(n.String()), true
	case *ast.SequenceNode:
		elems := make([]flexvalue.JSONValue, 0, len(n.Values))

		for _, v := range n.Values {
			ev, ok := nodeToJSON(v)
			if !ok {
				return flexvalue.JSONValue{}, false
			}

			elems = append(elems, ev)
		}

		return flexvalue.Arr(elems...), true
	case *ast.MappingNode:
		m := flexvalue.NewOrderedMap()

		for _, v := range n.Values {
			key, val, ok := mappingValueToJSON(v)
			if !ok {
				return flexvalue.JSONValue{}, false
			}

			m.Set(key, val)
		}

		return flexvalue.Obj(m), true
	case *ast.MappingValueNode:
		m := flexvalue.NewOrderedMap()

		key, val, ok := mappingValueToJSON(n)
		if !ok {
			return flexvalue.JSONValue{}, false
		}

		m.Set(key, val)

		return flexvalue.Obj(m), true
	default:
		return flexvalue.JSONValue{}, false
	}
}

func mappingValueToJSON(mvn *ast.MappingValueNode) (string, flexvalue.JSONValue, bool) {
	keyNode := unwrapNode(mvn.Key)

	var key string

	switch k := keyNode.(type) {
	case *ast.StringNode:
		key = k.Value
	default:
		key = strings.Trim(keyNode.String(), `"'`)
	}

	val, ok := nodeToJSON(mvn.Value)
	if !ok {
		return "", flexvalue.JSONValue{}, false
	}

	return key, val, true
}
