package bom

import "fmt"

// ValidateAnswers checks a caller-supplied answer set against the declared
// questions and returns the context rule expressions evaluate against.
// Every declared question must be answered; extra keys are ignored. The
// returned context holds exactly the declared question names.
func (s *Schema) ValidateAnswers(answers map[string]any) (AnswerContext, error) {
	ctx := make(AnswerContext, len(s.Questions))

	for _, q := range s.Questions {
		v, present := answers[q.Name]
		if !present || v == nil {
			return nil, errf(KindMissingAnswer, "missing answer for %q (expected type: %s)", q.Name, q.Type).withField(q.Name)
		}

		switch q.Type {
		case QuestionInteger:
			n, ok := asInt(v)
			if !ok {
				return nil, errf(KindTypeMismatch, "answer for %q must be an integer, got %s", q.Name, answerTypeName(v)).withField(q.Name)
			}
			// An undeclared bound defaults to the value itself, so it
			// can never be violated.
			min, max := n, n
			if q.Min != nil {
				min = *q.Min
			}
			if q.Max != nil {
				max = *q.Max
			}
			if n < min {
				return nil, errf(KindBoundsViolation, "answer for %q must be >= %d (got %d)", q.Name, min, n).withField(q.Name)
			}
			if n > max {
				return nil, errf(KindBoundsViolation, "answer for %q must be <= %d (got %d)", q.Name, max, n).withField(q.Name)
			}
			ctx[q.Name] = n

		case QuestionBoolean:
			b, ok := v.(bool)
			if !ok {
				return nil, errf(KindTypeMismatch, "answer for %q must be a boolean, got %s", q.Name, answerTypeName(v)).withField(q.Name)
			}
			ctx[q.Name] = b

		case QuestionEnum:
			if len(q.Choices) == 0 {
				return nil, errf(KindSchemaError, "question %q has no choices", q.Name).withField(q.Name)
			}
			val := normalizeValue(v)
			if !choicesContain(q.Choices, val) {
				return nil, errf(KindInvalidChoice, "answer for %q must be one of %v (got %v)", q.Name, q.Choices, v).withField(q.Name)
			}
			ctx[q.Name] = val

		default:
			return nil, errf(KindSchemaError, "question %q has unknown type %q", q.Name, q.Type).withField(q.Name)
		}
	}

	return ctx, nil
}

func choicesContain(choices []any, v any) bool {
	for _, c := range choices {
		if valuesEqual(c, v) {
			return true
		}
	}
	return false
}

// valuesEqual compares an answer to a choice. Numbers compare by value so a
// JSON 3 (float64) matches a YAML choice 3 (int64); everything else is exact.
func valuesEqual(a, b any) bool {
	if af, ok := numericValue(a); ok {
		bf, ok := numericValue(b)
		return ok && af == bf
	}
	return a == b
}

func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func answerTypeName(v any) string {
	switch v.(type) {
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	}
	return fmt.Sprintf("%T", v)
}
