package bom

import (
	"gopkg.in/yaml.v3"
)

// ParseSchema parses and structurally validates a schema document. It does
// not evaluate any expressions and does not touch the catalog; expression and
// answer errors surface later, from ValidateAnswers and Evaluate.
func ParseSchema(doc []byte) (*Schema, error) {
	var root any
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, errf(KindMalformedDocument, "invalid YAML").withCause(err)
	}

	m, ok := root.(map[string]any)
	if !ok {
		return nil, errf(KindStructuralError, "document must be a mapping")
	}

	rulesRaw, ok := m["products"]
	if !ok {
		return nil, errf(KindStructuralError, "document must contain a 'products' key")
	}
	ruleList, ok := rulesRaw.([]any)
	if !ok {
		return nil, errf(KindStructuralError, "'products' must be a list")
	}

	s := &Schema{}
	for i, item := range ruleList {
		rule, err := parseRule(i+1, item)
		if err != nil {
			return nil, err
		}
		s.Rules = append(s.Rules, rule)
	}

	if questionsRaw, ok := m["questions"]; ok && questionsRaw != nil {
		questionList, ok := questionsRaw.([]any)
		if !ok {
			return nil, errf(KindStructuralError, "'questions' must be a list")
		}
		seen := make(map[string]bool, len(questionList))
		for i, item := range questionList {
			q, err := parseQuestion(i+1, item)
			if err != nil {
				return nil, err
			}
			if seen[q.Name] {
				return nil, errf(KindDuplicateQuestionName, "duplicate question name %q", q.Name).withField(q.Name)
			}
			seen[q.Name] = true
			s.Questions = append(s.Questions, q)
		}
	}

	return s, nil
}

func parseRule(pos int, item any) (AdditionRule, error) {
	rm, ok := item.(map[string]any)
	if !ok {
		return AdditionRule{}, errf(KindStructuralError, "rule #%d is not a mapping", pos).withRule(pos)
	}

	addRaw, ok := rm["add"]
	if !ok || addRaw == nil {
		return AdditionRule{}, errf(KindStructuralError, "rule #%d must have an 'add' mapping", pos).withRule(pos)
	}
	add, ok := addRaw.(map[string]any)
	if !ok {
		return AdditionRule{}, errf(KindStructuralError, "rule #%d must have an 'add' mapping", pos).withRule(pos)
	}

	if rawVal, present := add["raw"]; present {
		rawList, ok := rawVal.([]any)
		if !ok {
			return AdditionRule{}, errf(KindStructuralError, "'raw' in rule #%d must be a list (got %s)", pos, yamlTypeName(rawVal)).withRule(pos)
		}
		if len(rawList) == 0 {
			return AdditionRule{}, errf(KindStructuralError, "'raw' in rule #%d must have at least one element", pos).withRule(pos)
		}
		cells := make([]any, len(rawList))
		for i, v := range rawList {
			cells[i] = normalizeValue(v)
		}
		return AdditionRule{Raw: cells}, nil
	}

	for _, field := range []string{"product", "quantity"} {
		if _, present := add[field]; !present {
			return AdditionRule{}, errf(KindStructuralError, "missing %q in 'add' of rule #%d", field, pos).withRule(pos).withField(field)
		}
	}

	rule := AdditionRule{}
	if condVal, present := rm["condition"]; present && condVal != nil {
		cond, ok := condVal.(string)
		if !ok {
			return AdditionRule{}, errf(KindStructuralError, "'condition' in rule #%d must be a string", pos).withRule(pos).withField("condition")
		}
		rule.Condition = cond
	}

	product, ok := add["product"].(string)
	if !ok {
		return AdditionRule{}, errf(KindStructuralError, "'product' in rule #%d must be a string (got %s)", pos, yamlTypeName(add["product"])).withRule(pos).withField("product")
	}
	rule.Product = product

	switch qty := add["quantity"].(type) {
	case int:
		rule.Quantity = LiteralQuantity(int64(qty))
	case int64:
		rule.Quantity = LiteralQuantity(qty)
	case string:
		rule.Quantity = ExprQuantity(qty)
	default:
		return AdditionRule{}, errf(KindStructuralError, "'quantity' in rule #%d must be a string or integer (got %s)", pos, yamlTypeName(qty)).withRule(pos).withField("quantity")
	}

	return rule, nil
}

func parseQuestion(pos int, item any) (Question, error) {
	qm, ok := item.(map[string]any)
	if !ok {
		return Question{}, errf(KindStructuralError, "question #%d is not a mapping", pos)
	}

	for _, field := range []string{"name", "type", "prompt", "default"} {
		if _, present := qm[field]; !present {
			return Question{}, errf(KindStructuralError, "missing %q in question #%d", field, pos).withField(field)
		}
	}

	name, ok := qm["name"].(string)
	if !ok {
		return Question{}, errf(KindStructuralError, "'name' in question #%d must be a string", pos).withField("name")
	}
	typeName, ok := qm["type"].(string)
	if !ok {
		return Question{}, errf(KindStructuralError, "'type' in question %q must be a string", name).withField(name)
	}
	prompt, ok := qm["prompt"].(string)
	if !ok {
		return Question{}, errf(KindStructuralError, "'prompt' in question %q must be a string", name).withField(name)
	}

	q := Question{
		Name:    name,
		Type:    QuestionType(typeName),
		Prompt:  prompt,
		Default: normalizeValue(qm["default"]),
	}

	if desc, present := qm["description"]; present && desc != nil {
		d, ok := desc.(string)
		if !ok {
			return Question{}, errf(KindStructuralError, "'description' in question %q must be a string", name).withField(name)
		}
		q.Description = d
	}

	for _, bound := range []string{"min", "max"} {
		v, present := qm[bound]
		if !present || v == nil {
			continue
		}
		n, ok := asInt(v)
		if !ok {
			return Question{}, errf(KindStructuralError, "%q in question %q must be an integer", bound, name).withField(name)
		}
		if bound == "min" {
			q.Min = &n
		} else {
			q.Max = &n
		}
	}

	if choicesRaw, present := qm["choices"]; present && choicesRaw != nil {
		choiceList, ok := choicesRaw.([]any)
		if !ok {
			return Question{}, errf(KindStructuralError, "'choices' in question %q must be a list", name).withField(name)
		}
		q.Choices = make([]any, len(choiceList))
		for i, c := range choiceList {
			q.Choices[i] = normalizeValue(c)
		}
	}

	return q, nil
}

// normalizeValue widens the scalar types yaml.v3 produces so that values
// compare consistently downstream (int -> int64).
func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	}
	return v
}

// asInt accepts the integer shapes callers can hand us: YAML ints, int64s,
// and JSON numbers that happen to be integral.
func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return int64(t), true
		}
	}
	return 0, false
}

func yamlTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	}
	return "unknown"
}
