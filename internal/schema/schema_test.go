package schema

import (
	"strings"
	"testing"
)

func TestJSONSchemaObjectIsStrict(t *testing.T) {
	node := Object(
		Prop("name", String()),
		Prop("count", Number()),
	)
	s := node.JSONSchema()

	if s["type"] != "object" {
		t.Fatalf("type = %v, want object", s["type"])
	}
	if s["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", s["additionalProperties"])
	}
	required, ok := s["required"].([]string)
	if !ok {
		t.Fatalf("required has type %T, want []string", s["required"])
	}
	if len(required) != 2 || required[0] != "name" || required[1] != "count" {
		t.Errorf("required = %v, want [name count] in declaration order", required)
	}
	props, ok := s["properties"].(map[string]any)
	if !ok || len(props) != 2 {
		t.Fatalf("properties = %v, want both fields", s["properties"])
	}
}

func TestJSONSchemaArrayMinItems(t *testing.T) {
	s := Array(String()).Min(3).JSONSchema()
	if s["minItems"] != 3 {
		t.Errorf("minItems = %v, want 3", s["minItems"])
	}

	noFloor := Array(String()).JSONSchema()
	if _, present := noFloor["minItems"]; present {
		t.Errorf("minItems present on unconstrained array: %v", noFloor)
	}
}

func TestJSONSchemaEnumAndConst(t *testing.T) {
	e := Enum("a", "b").JSONSchema()
	values, ok := e["enum"].([]string)
	if !ok || len(values) != 2 {
		t.Fatalf("enum = %v, want [a b]", e["enum"])
	}

	c := Const("fixed").JSONSchema()
	values, ok = c["enum"].([]string)
	if !ok || len(values) != 1 || values[0] != "fixed" {
		t.Errorf("const schema enum = %v, want [fixed]", c["enum"])
	}
}

func TestJSONSchemaNullable(t *testing.T) {
	s := String().OrNull().JSONSchema()
	types, ok := s["type"].([]string)
	if !ok {
		t.Fatalf("type has type %T, want []string", s["type"])
	}
	if len(types) != 2 || types[0] != "string" || types[1] != "null" {
		t.Errorf("type = %v, want [string null]", types)
	}
}

func TestJSONSchemaDescription(t *testing.T) {
	s := String().Describe("a note").JSONSchema()
	if s["description"] != "a note" {
		t.Errorf("description = %v, want %q", s["description"], "a note")
	}
}

func TestValidateAcceptsMatchingValue(t *testing.T) {
	node := Object(
		Prop("name", String()),
		Prop("tags", Array(Enum("x", "y")).Min(1)),
		Prop("active", Boolean()),
		Prop("score", Number()),
		Prop("note", String().OrNull()),
	)
	value := map[string]any{
		"name":   "widget",
		"tags":   []any{"x"},
		"active": true,
		"score":  1.5,
		"note":   nil,
	}
	if err := node.Validate(value); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	node := Object(
		Prop("name", String()),
		Prop("tags", Array(Enum("x", "y")).Min(2)),
	)

	tests := []struct {
		name     string
		value    any
		wantPath string
		wantMsg  string
	}{
		{
			name:     "wrong root type",
			value:    []any{},
			wantPath: "$",
			wantMsg:  "expected object",
		},
		{
			name:     "missing property",
			value:    map[string]any{"name": "a"},
			wantPath: "$.tags",
			wantMsg:  "missing required property",
		},
		{
			name:     "unknown property",
			value:    map[string]any{"name": "a", "tags": []any{"x", "y"}, "extra": 1.0},
			wantPath: "$.extra",
			wantMsg:  "unknown property",
		},
		{
			name:     "type mismatch",
			value:    map[string]any{"name": 5.0, "tags": []any{"x", "y"}},
			wantPath: "$.name",
			wantMsg:  "expected string, got number",
		},
		{
			name:     "below min items",
			value:    map[string]any{"name": "a", "tags": []any{"x"}},
			wantPath: "$.tags",
			wantMsg:  "at least 2 items",
		},
		{
			name:     "enum violation",
			value:    map[string]any{"name": "a", "tags": []any{"x", "z"}},
			wantPath: "$.tags[1]",
			wantMsg:  "not in",
		},
		{
			name:     "unexpected null",
			value:    map[string]any{"name": nil, "tags": []any{"x", "y"}},
			wantPath: "$.name",
			wantMsg:  "unexpected null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := node.Validate(tt.value)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error has type %T, want *ValidationError", err)
			}
			found := false
			for _, issue := range verr.Issues {
				if issue.Path == tt.wantPath && strings.Contains(issue.Message, tt.wantMsg) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("issues %v do not contain %s: %q", verr.Issues, tt.wantPath, tt.wantMsg)
			}
		})
	}
}

func TestValidateConstMismatch(t *testing.T) {
	node := Object(Prop("focus", Const("EU")))
	err := node.Validate(map[string]any{"focus": "US"})
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), `expected "EU"`) {
		t.Errorf("error = %v, want const mismatch", err)
	}
}

func TestValidateReportsEveryIssue(t *testing.T) {
	node := Object(
		Prop("a", String()),
		Prop("b", Boolean()),
	)
	err := node.Validate(map[string]any{})
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error has type %T, want *ValidationError", err)
	}
	if len(verr.Issues) != 2 {
		t.Errorf("got %d issues, want 2: %v", len(verr.Issues), verr.Issues)
	}
	if !strings.Contains(verr.Error(), "and 1 more issue") {
		t.Errorf("Error() = %q, want issue count suffix", verr.Error())
	}
}

func TestValidateJSON(t *testing.T) {
	node := Object(Prop("name", String()))

	if err := node.ValidateJSON([]byte(`{"name":"ok"}`)); err != nil {
		t.Errorf("valid JSON rejected: %v", err)
	}
	if err := node.ValidateJSON([]byte(`{"name":`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if err := node.ValidateJSON([]byte(`{"name":5}`)); err == nil {
		t.Error("schema violation accepted")
	}
}
