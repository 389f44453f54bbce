package expr

import "fmt"

// node is the AST for one expression. The tree is evaluated directly; there
// is no compilation step beyond parsing.
type node interface{}

type litNode struct {
	val any // int64, float64, bool or string
}

type nameNode struct {
	name string
	pos  int
}

type unaryNode struct {
	op      string // "-" or "not"
	operand node
	pos     int
}

type binaryNode struct {
	op          string // + - * / // %
	left, right node
	pos         int
}

// boolOpNode covers and/or with short-circuit evaluation.
type boolOpNode struct {
	op          string // "and" or "or"
	left, right node
}

// compareNode holds a (possibly chained) comparison: a < b <= c.
type compareNode struct {
	left   node
	ops    []string
	rights []node
	pos    int
}

type parser struct {
	toks []token
	i    int
}

// Parse parses an expression into a Program. The grammar covers exactly the
// value sub-language allowed in schema conditions and quantities: arithmetic,
// comparison, boolean logic, parentheses, literals and variable names. There
// are no calls, attribute access or indexing.
func Parse(src string) (*Program, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tk := p.peek(); tk.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tk.text, tk.pos)
	}
	return &Program{root: root, src: src}, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tk := p.toks[p.i]
	if tk.kind != tokEOF {
		p.i++
	}
	return tk
}

func (p *parser) isName(s string) bool {
	tk := p.peek()
	return tk.kind == tokName && tk.text == s
}

func (p *parser) isOp(ops ...string) bool {
	tk := p.peek()
	if tk.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if tk.text == op {
			return true
		}
	}
	return false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isName("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &boolOpNode{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isName("and") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &boolOpNode{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (node, error) {
	if p.isName("not") {
		tk := p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "not", operand: operand, pos: tk.pos}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if !p.isOp("==", "!=", "<", "<=", ">", ">=") {
		return left, nil
	}
	cmp := &compareNode{left: left, pos: p.peek().pos}
	// Comparisons chain: a < b < c means (a < b) and (b < c).
	for p.isOp("==", "!=", "<", "<=", ">", ">=") {
		op := p.next().text
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		cmp.ops = append(cmp.ops, op)
		cmp.rights = append(cmp.rights, right)
	}
	return cmp, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		tk := p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tk.text, left: left, right: right, pos: tk.pos}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/", "//", "%") {
		tk := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tk.text, left: left, right: right, pos: tk.pos}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.isOp("-") {
		tk := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "-", operand: operand, pos: tk.pos}, nil
	}
	if p.isOp("+") {
		p.next()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tk := p.peek()
	switch tk.kind {
	case tokInt:
		p.next()
		return &litNode{val: tk.intVal}, nil
	case tokFloat:
		p.next()
		return &litNode{val: tk.floatVal}, nil
	case tokString:
		p.next()
		return &litNode{val: tk.text}, nil
	case tokName:
		p.next()
		switch tk.text {
		case "True", "true":
			return &litNode{val: true}, nil
		case "False", "false":
			return &litNode{val: false}, nil
		case "and", "or", "not":
			return nil, fmt.Errorf("unexpected %q at position %d", tk.text, tk.pos)
		}
		return &nameNode{name: tk.text, pos: tk.pos}, nil
	case tokOp:
		if tk.text == "(" {
			p.next()
			inner, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, fmt.Errorf("missing closing parenthesis at position %d", p.peek().pos)
			}
			p.next()
			return inner, nil
		}
	}
	if tk.kind == tokEOF {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	return nil, fmt.Errorf("unexpected %q at position %d", tk.text, tk.pos)
}
