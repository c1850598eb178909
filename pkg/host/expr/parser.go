package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type node interface {
	eval(scope Scope) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(scope Scope) (bool, error) {
	ok, err := n.left.eval(scope)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(scope)
}

type andNode struct{ left, right node }

func (n andNode) eval(scope Scope) (bool, error) {
	ok, err := n.left.eval(scope)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(scope)
}

type notNode struct{ inner node }

func (n notNode) eval(scope Scope) (bool, error) {
	ok, err := n.inner.eval(scope)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// operandNode is a bare identifier or literal in boolean position.
type operandNode struct{ operand token }

func (n operandNode) eval(scope Scope) (bool, error) {
	value, err := operandValue(n.operand, scope, false)
	if err != nil {
		return false, err
	}
	return Truthy(value), nil
}

type compareNode struct {
	left  token
	op    tokenKind
	right token
}

func (n compareNode) eval(scope Scope) (bool, error) {
	left, err := operandValue(n.left, scope, false)
	if err != nil {
		return false, err
	}
	right, err := operandValue(n.right, scope, false)
	if err != nil {
		return false, err
	}
	equal := looseEqual(left, right)
	if n.op == tokenNeq {
		return !equal, nil
	}
	return equal, nil
}

type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	n, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("host/expr: unexpected token %q", p.tokens[p.pos].raw)
	}
	return n, nil
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(tokenOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(tokenAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.match(tokenNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	if p.match(tokenLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.match(tokenRParen) {
			return nil, errors.New("host/expr: missing closing ')'")
		}
		return inner, nil
	}

	left, err := p.operand()
	if err != nil {
		return nil, err
	}
	for _, op := range []tokenKind{tokenEq, tokenNeq} {
		if p.match(op) {
			right, err := p.operand()
			if err != nil {
				return nil, err
			}
			return compareNode{left: left, op: op, right: right}, nil
		}
	}
	return operandNode{operand: left}, nil
}

func (p *parser) operand() (token, error) {
	if p.pos >= len(p.tokens) {
		return token{}, errors.New("host/expr: unexpected end of expression")
	}
	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokenIdentifier, tokenString, tokenNumber, tokenBool, tokenNull:
		p.pos++
		return tok, nil
	default:
		return token{}, fmt.Errorf("host/expr: expected operand, got %q", tok.raw)
	}
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != kind {
		return false
	}
	p.pos++
	return true
}

// operandValue resolves a single operand. Undefined identifiers are errors
// only when strict is set; in comparisons they read as null.
func operandValue(tok token, scope Scope, strict bool) (any, error) {
	switch tok.kind {
	case tokenIdentifier:
		value, ok := scope.Lookup(tok.raw)
		if !ok {
			if strict {
				return nil, fmt.Errorf("%w: %s", ErrUndefined, tok.raw)
			}
			return nil, nil
		}
		return value, nil
	case tokenString:
		return tok.raw, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("host/expr: invalid number literal %q", tok.raw)
		}
		return f, nil
	case tokenBool:
		return strings.EqualFold(tok.raw, "true"), nil
	case tokenNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("host/expr: unsupported operand %q", tok.raw)
	}
}
