package expr

import (
	"errors"
	"strings"
)

// ErrUndefined is returned when a bare identifier has no value in scope.
var ErrUndefined = errors.New("host/expr: undefined identifier")

// Evaluator is a small, dependency-free expression evaluator.
//
// A lone identifier or literal evaluates to its value:
// `user.name`, `"text"`, `42`, `true`, `null`.
//
// Anything else is a boolean expression built from
// `==`, `!=`, `!`, `&&`, `||` and parentheses, and evaluates to a bool.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

// Evaluate computes expression against scope.
func (e *Evaluator) Evaluate(expression string, scope Scope) (any, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return nil, errors.New("host/expr: empty expression")
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 1 {
		return operandValue(tokens[0], scope, true)
	}

	n, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	return n.eval(scope)
}
