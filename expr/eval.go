// Package expr implements the expression sub-language used by schema
// conditions and quantity formulas: arithmetic, comparison and boolean logic
// over literals and answer variables. Evaluation is pure value computation;
// there is no access to functions, attributes, the file system or anything
// else outside the supplied variable map.
package expr

import (
	"fmt"
	"math"
)

// Program is a parsed expression ready for evaluation.
type Program struct {
	root node
	src  string
}

// Source returns the original expression text.
func (p *Program) Source() string { return p.src }

// Eval parses and evaluates src against vars in one step.
// Values in vars must be int64, float64, bool or string; int is widened.
func Eval(src string, vars map[string]any) (any, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return prog.Eval(vars)
}

// Eval evaluates the program against vars. The result is one of int64,
// float64, bool or string. Errors are returned, never panicked.
func (p *Program) Eval(vars map[string]any) (any, error) {
	return evalNode(p.root, vars)
}

// Truthy reports whether a value counts as true in a condition:
// False, 0, 0.0 and "" are falsy, everything else is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return v != nil
	}
}

func evalNode(n node, vars map[string]any) (any, error) {
	switch t := n.(type) {
	case *litNode:
		return t.val, nil

	case *nameNode:
		v, ok := vars[t.name]
		if !ok {
			return nil, fmt.Errorf("undefined variable %q", t.name)
		}
		return normalize(v), nil

	case *unaryNode:
		v, err := evalNode(t.operand, vars)
		if err != nil {
			return nil, err
		}
		if t.op == "not" {
			return !Truthy(v), nil
		}
		switch num := v.(type) {
		case int64:
			return -num, nil
		case float64:
			return -num, nil
		}
		return nil, fmt.Errorf("bad operand type for unary -: %s", typeName(v))

	case *boolOpNode:
		left, err := evalNode(t.left, vars)
		if err != nil {
			return nil, err
		}
		// Short-circuit with operand-value semantics: the deciding
		// operand is the result, not a coerced boolean.
		if t.op == "or" {
			if Truthy(left) {
				return left, nil
			}
			return evalNode(t.right, vars)
		}
		if !Truthy(left) {
			return left, nil
		}
		return evalNode(t.right, vars)

	case *compareNode:
		left, err := evalNode(t.left, vars)
		if err != nil {
			return nil, err
		}
		for i, op := range t.ops {
			right, err := evalNode(t.rights[i], vars)
			if err != nil {
				return nil, err
			}
			ok, err := compare(op, left, right)
			if err != nil {
				return nil, err
			}
			if !ok {
				return false, nil
			}
			left = right
		}
		return true, nil

	case *binaryNode:
		left, err := evalNode(t.left, vars)
		if err != nil {
			return nil, err
		}
		right, err := evalNode(t.right, vars)
		if err != nil {
			return nil, err
		}
		return arith(t.op, left, right)
	}
	return nil, fmt.Errorf("internal: unknown node %T", n)
}

func arith(op string, left, right any) (any, error) {
	if op == "+" {
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
	}

	li, lInt := left.(int64)
	ri, rInt := right.(int64)
	if lInt && rInt {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "/":
			// True division always yields a float.
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return float64(li) / float64(ri), nil
		case "//":
			if ri == 0 {
				return nil, fmt.Errorf("integer division or modulo by zero")
			}
			return floorDivInt(li, ri), nil
		case "%":
			if ri == 0 {
				return nil, fmt.Errorf("integer division or modulo by zero")
			}
			return modInt(li, ri), nil
		}
	}

	lf, lNum := toFloat(left)
	rf, rNum := toFloat(right)
	if !lNum || !rNum {
		return nil, fmt.Errorf("unsupported operand types for %s: %s and %s", op, typeName(left), typeName(right))
	}
	switch op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return lf / rf, nil
	case "//":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return math.Floor(lf / rf), nil
	case "%":
		if rf == 0 {
			return nil, fmt.Errorf("modulo by zero")
		}
		r := math.Mod(lf, rf)
		// Result sign follows the divisor.
		if r != 0 && (r < 0) != (rf < 0) {
			r += rf
		}
		return r, nil
	}
	return nil, fmt.Errorf("internal: unknown operator %q", op)
}

func compare(op string, left, right any) (bool, error) {
	switch op {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	}

	// Ordering requires two numbers or two strings.
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return orderStrings(op, ls, rs), nil
		}
	}
	lf, lNum := toFloat(left)
	rf, rNum := toFloat(right)
	if !lNum || !rNum {
		return false, fmt.Errorf("%q not supported between %s and %s", op, typeName(left), typeName(right))
	}
	switch op {
	case "<":
		return lf < rf, nil
	case "<=":
		return lf <= rf, nil
	case ">":
		return lf > rf, nil
	case ">=":
		return lf >= rf, nil
	}
	return false, fmt.Errorf("internal: unknown comparison %q", op)
}

func orderStrings(op, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func equal(left, right any) bool {
	if lf, ok := toFloat(left); ok {
		if rf, ok := toFloat(right); ok {
			return lf == rf
		}
		return false
	}
	switch l := left.(type) {
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	}
	return false
}

// toFloat widens a numeric value. Booleans are deliberately not numbers here.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// normalize widens the integer kinds a caller-supplied variable map may hold.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	}
	return v
}

func floorDivInt(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func modInt(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func typeName(v any) string {
	switch v.(type) {
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case string:
		return "string"
	case nil:
		return "none"
	}
	return fmt.Sprintf("%T", v)
}
