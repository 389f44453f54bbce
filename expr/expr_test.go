package expr

import (
	"strings"
	"testing"
)

func TestEvalArithmetic(t *testing.T) {
	vars := map[string]any{"num_racks": 3, "ports": 48}

	testCases := []struct {
		name string
		src  string
		want any
	}{
		{"Integer literal", `7`, int64(7)},
		{"Variable times literal", `num_racks * 2`, int64(6)},
		{"Addition", `num_racks + ports`, int64(51)},
		{"Subtraction", `num_racks - 5`, int64(-2)},
		{"True division yields float", `4 / 2`, float64(2)},
		{"Floor division", `7 // 2`, int64(3)},
		{"Floor division rounds toward negative infinity", `-7 // 2`, int64(-4)},
		{"Modulo sign follows divisor", `-7 % 2`, int64(1)},
		{"Modulo negative divisor", `7 % -2`, int64(-1)},
		{"Unary minus", `-num_racks`, int64(-3)},
		{"Parentheses", `(num_racks + 1) * 2`, int64(8)},
		{"Precedence", `2 + 3 * 4`, int64(14)},
		{"Float promotion", `num_racks * 1.5`, float64(4.5)},
		{"String concatenation", `"a" + 'b'`, "ab"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Eval(tc.src, vars)
			if err != nil {
				t.Fatalf("Eval(%q) failed: %v", tc.src, err)
			}
			if got != tc.want {
				t.Errorf("Eval(%q) = %v (%T), want %v (%T)", tc.src, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestEvalBooleans(t *testing.T) {
	vars := map[string]any{
		"num_racks":     3,
		"power_cables":  true,
		"support_years": 5,
		"site":          "east",
	}

	testCases := []struct {
		name string
		src  string
		want any
	}{
		{"Comparison true", `num_racks > 2`, true},
		{"Comparison false", `num_racks > 4`, false},
		{"Boolean equality", `power_cables == True`, true},
		{"Lowercase literal accepted", `power_cables == true`, true},
		{"Enum comparison", `support_years == 5`, true},
		{"String comparison", `site == "east"`, true},
		{"And", `num_racks > 2 and power_cables`, true},
		{"Or short-circuit", `num_racks > 9 or support_years == 5`, true},
		{"Not", `not power_cables`, false},
		{"Chained comparison", `1 < num_racks < 5`, true},
		{"Chained comparison false", `1 < num_racks < 3`, false},
		{"Cross-type equality is false", `site == 3`, false},
		{"Int float equality", `3 == 3.0`, true},
		{"And yields operand", `power_cables and num_racks`, int64(3)},
		{"Or yields operand", `0 or num_racks`, int64(3)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Eval(tc.src, vars)
			if err != nil {
				t.Fatalf("Eval(%q) failed: %v", tc.src, err)
			}
			if got != tc.want {
				t.Errorf("Eval(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	vars := map[string]any{"num_racks": 3}

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"Undefined variable", `num_rack * 2`, "undefined variable"},
		{"Division by zero", `1 / 0`, "division by zero"},
		{"Floor division by zero", `1 // 0`, "zero"},
		{"Modulo by zero", `1 % 0`, "zero"},
		{"Type error", `num_racks + "a"`, "unsupported operand"},
		{"Ordering type error", `num_racks < "a"`, "not supported"},
		{"Syntax error", `num_racks >=`, "unexpected"},
		{"Dangling operand", `1 2`, "unexpected"},
		{"Unterminated string", `"abc`, "unterminated string"},
		{"Missing paren", `(1 + 2`, "parenthesis"},
		{"No function calls", `len(num_racks)`, "unexpected"},
		{"No attribute access", `num_racks.value`, "unexpected"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Eval(tc.src, vars)
			if err == nil {
				t.Fatalf("Eval(%q) should have failed", tc.src)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Eval(%q) error = %q, want it to contain %q", tc.src, err, tc.wantErr)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	testCases := []struct {
		val  any
		want bool
	}{
		{true, true},
		{false, false},
		{int64(0), false},
		{int64(2), true},
		{float64(0), false},
		{float64(0.5), true},
		{"", false},
		{"x", true},
		{nil, false},
	}

	for _, tc := range testCases {
		if got := Truthy(tc.val); got != tc.want {
			t.Errorf("Truthy(%v) = %v, want %v", tc.val, got, tc.want)
		}
	}
}

func TestParseReusable(t *testing.T) {
	prog, err := Parse(`num_racks * 2`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if prog.Source() != `num_racks * 2` {
		t.Errorf("Source() = %q", prog.Source())
	}

	for _, racks := range []int{0, 1, 5} {
		got, err := prog.Eval(map[string]any{"num_racks": racks})
		if err != nil {
			t.Fatalf("Eval failed: %v", err)
		}
		if got != int64(racks*2) {
			t.Errorf("Eval with num_racks=%d = %v, want %d", racks, got, racks*2)
		}
	}
}
