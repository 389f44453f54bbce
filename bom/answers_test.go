package bom

import (
	"strings"
	"testing"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := ParseSchema([]byte(validDoc))
	if err != nil {
		t.Fatalf("ParseSchema() failed: %v", err)
	}
	return schema
}

func completeAnswers() map[string]any {
	return map[string]any{
		"num_racks":     2,
		"power_cables":  true,
		"support_years": 3,
	}
}

func TestValidateAnswers(t *testing.T) {
	schema := testSchema(t)

	ctx, err := schema.ValidateAnswers(completeAnswers())
	if err != nil {
		t.Fatalf("ValidateAnswers() failed: %v", err)
	}

	if len(ctx) != 3 {
		t.Errorf("context has %d entries, want 3", len(ctx))
	}
	if ctx["num_racks"] != int64(2) {
		t.Errorf("num_racks = %v (%T), want int64(2)", ctx["num_racks"], ctx["num_racks"])
	}
	if ctx["power_cables"] != true {
		t.Errorf("power_cables = %v", ctx["power_cables"])
	}
}

func TestValidateAnswersIgnoresExtraKeys(t *testing.T) {
	schema := testSchema(t)

	answers := completeAnswers()
	answers["undeclared"] = "whatever"

	ctx, err := schema.ValidateAnswers(answers)
	if err != nil {
		t.Fatalf("ValidateAnswers() failed: %v", err)
	}
	if _, present := ctx["undeclared"]; present {
		t.Error("undeclared keys must not reach the answer context")
	}
}

func TestValidateAnswersAcceptsJSONNumbers(t *testing.T) {
	schema := testSchema(t)

	// JSON decoders hand over numbers as float64.
	answers := completeAnswers()
	answers["num_racks"] = float64(2)
	answers["support_years"] = float64(3)

	ctx, err := schema.ValidateAnswers(answers)
	if err != nil {
		t.Fatalf("ValidateAnswers() failed: %v", err)
	}
	if ctx["num_racks"] != int64(2) {
		t.Errorf("num_racks = %v (%T), want int64(2)", ctx["num_racks"], ctx["num_racks"])
	}
}

func TestValidateAnswersErrors(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(map[string]any)
		wantKind ErrorKind
		wantMsg  string
	}{
		{"Missing answer", func(a map[string]any) { delete(a, "num_racks") }, KindMissingAnswer, `missing answer for "num_racks"`},
		{"Null answer", func(a map[string]any) { a["power_cables"] = nil }, KindMissingAnswer, "power_cables"},
		{"Integer type mismatch", func(a map[string]any) { a["num_racks"] = "2" }, KindTypeMismatch, "must be an integer"},
		{"Non-integral float", func(a map[string]any) { a["num_racks"] = 1.5 }, KindTypeMismatch, "must be an integer"},
		{"Above max", func(a map[string]any) { a["num_racks"] = 3 }, KindBoundsViolation, "must be <= 2 (got 3)"},
		{"Below min", func(a map[string]any) { a["num_racks"] = -1 }, KindBoundsViolation, "must be >= 0 (got -1)"},
		{"Boolean type mismatch", func(a map[string]any) { a["power_cables"] = 1 }, KindTypeMismatch, "must be a boolean"},
		{"Invalid choice", func(a map[string]any) { a["support_years"] = 4 }, KindInvalidChoice, "must be one of"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			schema := testSchema(t)
			answers := completeAnswers()
			tc.mutate(answers)

			_, err := schema.ValidateAnswers(answers)
			if err == nil {
				t.Fatal("ValidateAnswers() should have failed")
			}
			if kind := KindOf(err); kind != tc.wantKind {
				t.Errorf("kind = %s, want %s (err: %v)", kind, tc.wantKind, err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestValidateAnswersUnboundedInteger(t *testing.T) {
	doc := `
questions:
- name: n
  type: integer
  prompt: "n?"
  default: 0
products: []
`
	schema, err := ParseSchema([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSchema() failed: %v", err)
	}

	// An undeclared bound never triggers a violation.
	for _, n := range []int{-1000000, 0, 1000000} {
		if _, err := schema.ValidateAnswers(map[string]any{"n": n}); err != nil {
			t.Errorf("unbounded integer rejected %d: %v", n, err)
		}
	}
}

func TestValidateAnswersSchemaErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"Enum without choices", "products: []\nquestions:\n- {name: x, type: enum, prompt: p, default: 1}"},
		{"Unknown type", "products: []\nquestions:\n- {name: x, type: fancy, prompt: p, default: 1}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			schema, err := ParseSchema([]byte(tc.doc))
			if err != nil {
				t.Fatalf("ParseSchema() failed: %v", err)
			}
			_, err = schema.ValidateAnswers(map[string]any{"x": 1})
			if KindOf(err) != KindSchemaError {
				t.Errorf("err = %v, want a schema error", err)
			}
		})
	}
}

func TestValidateAnswersEnumStrings(t *testing.T) {
	doc := `
products: []
questions:
- name: site
  type: enum
  prompt: "Which site?"
  choices: ["east", "west"]
  default: "east"
`
	schema, err := ParseSchema([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSchema() failed: %v", err)
	}

	if _, err := schema.ValidateAnswers(map[string]any{"site": "west"}); err != nil {
		t.Errorf("valid choice rejected: %v", err)
	}
	if _, err := schema.ValidateAnswers(map[string]any{"site": "north"}); KindOf(err) != KindInvalidChoice {
		t.Errorf("err = %v, want an invalid choice error", err)
	}
}
