package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

type lexer struct {
	input  string
	pos    int
	tokens []token
}

func tokenize(input string) ([]token, error) {
	lx := &lexer{input: input}
	for lx.pos < len(lx.input) {
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	return lx.tokens, nil
}

func (lx *lexer) peek() byte {
	if lx.pos >= len(lx.input) {
		return 0
	}
	return lx.input[lx.pos]
}

func (lx *lexer) emit(kind tokenKind, raw string) {
	lx.tokens = append(lx.tokens, token{kind: kind, raw: raw})
}

// pair consumes a two-character operator whose second byte must be want.
func (lx *lexer) pair(want byte, kind tokenKind, raw string) error {
	first := lx.input[lx.pos]
	lx.pos++
	if lx.peek() != want {
		return fmt.Errorf("host/expr: unexpected '%c'; use '%s'", first, raw)
	}
	lx.pos++
	lx.emit(kind, raw)
	return nil
}

func (lx *lexer) next() error {
	ch := lx.peek()
	switch {
	case isSpace(ch):
		lx.pos++
		return nil
	case ch == '(':
		lx.pos++
		lx.emit(tokenLParen, "(")
		return nil
	case ch == ')':
		lx.pos++
		lx.emit(tokenRParen, ")")
		return nil
	case ch == '!':
		lx.pos++
		if lx.peek() == '=' {
			lx.pos++
			lx.emit(tokenNeq, "!=")
			return nil
		}
		lx.emit(tokenNot, "!")
		return nil
	case ch == '=':
		return lx.pair('=', tokenEq, "==")
	case ch == '&':
		return lx.pair('&', tokenAnd, "&&")
	case ch == '|':
		return lx.pair('|', tokenOr, "||")
	case ch == '"' || ch == '\'':
		return lx.quoted(ch)
	default:
		lx.word()
		return nil
	}
}

func (lx *lexer) quoted(quote byte) error {
	lx.pos++
	start := lx.pos
	escaped := false
	for lx.pos < len(lx.input) {
		c := lx.input[lx.pos]
		lx.pos++
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			body := lx.input[start : lx.pos-1]
			if quote == '\'' {
				// strconv.Unquote only accepts single quotes around one rune.
				body = strings.ReplaceAll(strings.ReplaceAll(body, `\'`, "'"), `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return fmt.Errorf("host/expr: invalid string literal: %w", err)
			}
			lx.emit(tokenString, value)
			return nil
		}
	}
	return errors.New("host/expr: unterminated string literal")
}

func (lx *lexer) word() {
	start := lx.pos
	for lx.pos < len(lx.input) && !isDelimiter(lx.input[lx.pos]) {
		lx.pos++
	}
	raw := lx.input[start:lx.pos]
	switch strings.ToLower(raw) {
	case "true", "false":
		lx.emit(tokenBool, strings.ToLower(raw))
	case "null", "nil", "undefined":
		lx.emit(tokenNull, "null")
	default:
		if looksLikeNumber(raw) {
			lx.emit(tokenNumber, raw)
		} else {
			lx.emit(tokenIdentifier, raw)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '!' || c == '=' || c == '&' || c == '|' || c == '"' || c == '\''
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}
