// Package bom implements the Bill-of-Materials generation engine: it parses a
// declarative schema document (questions plus conditional product addition
// rules), validates a set of answers, evaluates the rules against those
// answers, prices the aggregated line items from a catalog, and assembles the
// rendered table.
package bom

// QuestionType discriminates the three declared question kinds.
type QuestionType string

const (
	QuestionInteger QuestionType = "integer"
	QuestionBoolean QuestionType = "boolean"
	QuestionEnum    QuestionType = "enum"
)

// Question is a typed input the schema requires from the end user.
type Question struct {
	// Name is the unique key and the variable name in rule expressions.
	Name        string
	Type        QuestionType
	Prompt      string
	Description string
	// Default is the answer used for save-time dry runs.
	Default any

	// Min and Max bound integer questions. An absent bound never
	// triggers a violation.
	Min *int64
	Max *int64

	// Choices are the allowed values for enum questions.
	Choices []any
}

// Quantity is either an integer literal or an expression evaluated against
// the answer context.
type Quantity struct {
	literal   int64
	expr      string
	isLiteral bool
}

// LiteralQuantity makes a fixed quantity.
func LiteralQuantity(n int64) Quantity { return Quantity{literal: n, isLiteral: true} }

// ExprQuantity makes a quantity computed from an expression.
func ExprQuantity(src string) Quantity { return Quantity{expr: src} }

// IsLiteral reports whether the quantity is a fixed integer.
func (q Quantity) IsLiteral() bool { return q.isLiteral }

// Literal returns the fixed quantity value.
func (q Quantity) Literal() int64 { return q.literal }

// Expr returns the quantity expression source.
func (q Quantity) Expr() string { return q.expr }

// AdditionRule describes one entry of the schema's products list: either a
// raw literal row, or a product with an optional condition and a quantity.
type AdditionRule struct {
	// Raw, when non-nil, is a literal table row rendered verbatim.
	// It bypasses condition evaluation and catalog lookup entirely.
	Raw []any

	// Condition is an optional boolean expression; absent means always-true.
	Condition string
	// Product is the part identifier to add.
	Product  string
	Quantity Quantity
}

// IsRaw reports whether the rule is a literal row.
func (r *AdditionRule) IsRaw() bool { return r.Raw != nil }

// Schema is the parsed rule document. It is parsed fresh per generation and
// never mutated afterwards.
type Schema struct {
	Questions []Question
	Rules     []AdditionRule
}

// AnswerContext maps question names to their validated values. It contains
// exactly the declared question names and is read-only during evaluation.
type AnswerContext map[string]any

// LineItem is one row of the evaluated BOM before pricing: a part identifier
// with its aggregated quantity, or a raw row under a synthetic unique key.
type LineItem struct {
	// Key is the part number, or a synthetic unique key for raw rows so
	// they never merge with each other or with products.
	Key string
	// Raw is non-nil for literal rows.
	Raw []any
	// Quantity is the accumulated quantity for product rows.
	Quantity int64
}

// IsRaw reports whether the line item is a literal row.
func (li *LineItem) IsRaw() bool { return li.Raw != nil }

// ExampleProduct is the reserved placeholder identifier used in template
// documents; rules naming it are never treated as real line items.
const ExampleProduct = "example"

// Columns are the headers of the rendered BOM table, in order.
var Columns = []string{
	"Manufacturer Part #",
	"Manufacturer",
	"Description",
	"Device Role",
	"Qty",
	"List Price",
	"Discount",
	"Customer Price",
	"Ext. Price",
}
