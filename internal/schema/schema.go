// Package schema defines the output contract for the analysis call as a
// declarative constraint tree. The same tree is rendered as a strict JSON
// Schema to constrain generation and walked as a structural validator over
// decoded results.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the node type of a constraint.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBoolean
)

// Field is a named property of an object node. Order is preserved in the
// emitted schema.
type Field struct {
	Name string
	Node *Node
}

// Node is one constraint in the tree.
type Node struct {
	Kind     Kind
	Fields   []Field // object properties
	Items    *Node   // array element constraint
	MinItems int     // array floor, 0 means none
	Enum     []string
	Const    string // string fixed to a single value
	Nullable bool
	Desc     string
}

// Object builds an object node. Every field is required and unknown keys
// are rejected.
func Object(fields ...Field) *Node {
	return &Node{Kind: KindObject, Fields: fields}
}

// Prop builds a named field for Object.
func Prop(name string, n *Node) Field {
	return Field{Name: name, Node: n}
}

// Array builds an array node over the given element constraint.
func Array(items *Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// String builds an unconstrained string node.
func String() *Node {
	return &Node{Kind: KindString}
}

// Enum builds a string node restricted to the given values.
func Enum(values ...string) *Node {
	return &Node{Kind: KindString, Enum: values}
}

// Const builds a string node fixed to a single value.
func Const(value string) *Node {
	return &Node{Kind: KindString, Const: value}
}

// Number builds a number node.
func Number() *Node {
	return &Node{Kind: KindNumber}
}

// Boolean builds a boolean node.
func Boolean() *Node {
	return &Node{Kind: KindBoolean}
}

// Min sets the minimum element count on an array node.
func (n *Node) Min(count int) *Node {
	n.MinItems = count
	return n
}

// OrNull allows JSON null in place of the value.
func (n *Node) OrNull() *Node {
	n.Nullable = true
	return n
}

// Describe attaches a description carried into the emitted schema.
func (n *Node) Describe(desc string) *Node {
	n.Desc = desc
	return n
}

// JSONSchema renders the node as a strict JSON Schema fragment: all object
// properties required, additionalProperties false.
func (n *Node) JSONSchema() map[string]any {
	var s map[string]any

	switch n.Kind {
	case KindObject:
		props := make(map[string]any, len(n.Fields))
		required := make([]string, 0, len(n.Fields))
		for _, f := range n.Fields {
			props[f.Name] = f.Node.JSONSchema()
			required = append(required, f.Name)
		}
		s = map[string]any{
			"type":                 "object",
			"properties":           props,
			"required":             required,
			"additionalProperties": false,
		}
	case KindArray:
		s = map[string]any{
			"type":  "array",
			"items": n.Items.JSONSchema(),
		}
		if n.MinItems > 0 {
			s["minItems"] = n.MinItems
		}
	case KindString:
		s = map[string]any{"type": "string"}
		if n.Const != "" {
			s["enum"] = []string{n.Const}
		} else if len(n.Enum) > 0 {
			s["enum"] = n.Enum
		}
	case KindNumber:
		s = map[string]any{"type": "number"}
	case KindBoolean:
		s = map[string]any{"type": "boolean"}
	}

	if n.Nullable {
		s["type"] = []string{s["type"].(string), "null"}
	}
	if n.Desc != "" {
		s["description"] = n.Desc
	}
	return s
}

// Issue is a single validation finding at a JSON path.
type Issue struct {
	Path    string
	Message string
}

// ValidationError aggregates all issues found in one pass.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	first := e.Issues[0]
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", first.Path, first.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (and %d more issues)", first.Path, first.Message, len(e.Issues)-1)
}

// Validate checks a decoded JSON value (map[string]any, []any, string,
// float64, bool, nil) against the tree. Returns a *ValidationError listing
// every violation, or nil.
func (n *Node) Validate(value any) error {
	var issues []Issue
	n.validate(value, "$", &issues)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateJSON unmarshals raw JSON and validates it.
func (n *Node) ValidateJSON(raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return n.Validate(value)
}

func (n *Node) validate(value any, path string, issues *[]Issue) {
	if value == nil {
		if !n.Nullable {
			*issues = append(*issues, Issue{Path: path, Message: "unexpected null"})
		}
		return
	}

	switch n.Kind {
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected object, got %s", typeName(value))})
			return
		}
		known := make(map[string]bool, len(n.Fields))
		for _, f := range n.Fields {
			known[f.Name] = true
			child, present := obj[f.Name]
			if !present {
				*issues = append(*issues, Issue{Path: path + "." + f.Name, Message: "missing required property"})
				continue
			}
			f.Node.validate(child, path+"."+f.Name, issues)
		}
		for key := range obj {
			if !known[key] {
				*issues = append(*issues, Issue{Path: path + "." + key, Message: "unknown property"})
			}
		}
	case KindArray:
		arr, ok := value.([]any)
		if !ok {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected array, got %s", typeName(value))})
			return
		}
		if len(arr) < n.MinItems {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected at least %d items, got %d", n.MinItems, len(arr))})
		}
		for i, item := range arr {
			n.Items.validate(item, fmt.Sprintf("%s[%d]", path, i), issues)
		}
	case KindString:
		s, ok := value.(string)
		if !ok {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected string, got %s", typeName(value))})
			return
		}
		if n.Const != "" && s != n.Const {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected %q, got %q", n.Const, s)})
			return
		}
		if len(n.Enum) > 0 && !contains(n.Enum, s) {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("value %q not in [%s]", s, strings.Join(n.Enum, ", "))})
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected number, got %s", typeName(value))})
		}
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("expected boolean, got %s", typeName(value))})
		}
	}
}

func typeName(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
