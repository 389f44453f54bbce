package bom

import (
	"github.com/google/uuid"

	"github.com/FreshSupaSulley/ABC/expr"
)

// Evaluate runs every addition rule against the answer context and returns
// the resulting line items in rule declaration order. Quantities for repeated
// part identifiers are summed into the first occurrence; raw rows get a
// synthetic unique key so they never merge.
func Evaluate(s *Schema, ctx AnswerContext) ([]*LineItem, error) {
	vars := map[string]any(ctx)

	var items []*LineItem
	byPart := make(map[string]*LineItem)

	for i, rule := range s.Rules {
		pos := i + 1

		if rule.IsRaw() {
			if len(rule.Raw) > len(Columns) {
				return nil, errf(KindRowTooWide, "'raw' list in rule #%d has too many entries (max: %d)", pos, len(Columns)).withRule(pos)
			}
			items = append(items, &LineItem{
				Key: "raw-" + uuid.NewString(),
				Raw: rule.Raw,
			})
			continue
		}

		// Placeholder rules from template documents are never real line items.
		if rule.Product == ExampleProduct {
			continue
		}

		if rule.Condition != "" {
			v, err := expr.Eval(rule.Condition, vars)
			if err != nil {
				return nil, errf(KindExpressionError, "error evaluating condition for rule #%d (%q)", pos, rule.Condition).withRule(pos).withCause(err)
			}
			if !expr.Truthy(v) {
				continue
			}
		}

		var qty int64
		if rule.Quantity.IsLiteral() {
			qty = rule.Quantity.Literal()
		} else {
			v, err := expr.Eval(rule.Quantity.Expr(), vars)
			if err != nil {
				return nil, errf(KindExpressionError, "error evaluating quantity for rule #%d (%q)", pos, rule.Quantity.Expr()).withRule(pos).withCause(err)
			}
			n, ok := v.(int64)
			if !ok {
				// You can't order half a router: non-integer results are
				// rejected, never truncated.
				return nil, errf(KindNonIntegerQuantity, "quantity for rule #%d must be an integer (got %v)", pos, v).withRule(pos)
			}
			qty = n
		}

		if existing, ok := byPart[rule.Product]; ok {
			existing.Quantity += qty
			continue
		}
		li := &LineItem{Key: rule.Product, Quantity: qty}
		byPart[rule.Product] = li
		items = append(items, li)
	}

	return items, nil
}
