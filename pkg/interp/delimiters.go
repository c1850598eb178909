package interp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Delimiters holds the start and end tokens back to back, e.g. "{}" or
// "[[]]". The string is split in half after escaping.
type Delimiters string

// DefaultDelimiters is used when no pair is configured.
const DefaultDelimiters Delimiters = "{}"

// ErrInvalidDelimiters is the sentinel wrapped by DelimiterError.
var ErrInvalidDelimiters = errors.New("interp: invalid delimiters")

// DelimiterError reports a delimiter pair that cannot be compiled.
type DelimiterError struct {
	Delimiters Delimiters
	Reason     string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("interp: invalid delimiters %q: %s", string(e.Delimiters), e.Reason)
}

func (e *DelimiterError) Unwrap() error {
	return ErrInvalidDelimiters
}

// Characters escaped with a backslash before the pair is split.
const metaChars = `^.?*+[]{}()\$|`

// Span locates one match inside a text value.
type Span struct {
	Start      int
	End        int
	Expression string
}

// Pattern matches the shortest run of characters between the two halves of a
// delimiter pair.
type Pattern struct {
	delimiters Delimiters
	start      string
	end        string
	re         *regexp.Regexp
}

// Compile validates pair and builds its Pattern. The escaped form of the pair
// must have an even length and split into two non-empty halves without
// separating a backslash from the character it escapes.
func Compile(pair Delimiters) (*Pattern, error) {
	if !utf8.ValidString(string(pair)) {
		return nil, &DelimiterError{Delimiters: pair, Reason: "invalid UTF-8"}
	}

	var sb strings.Builder
	// escaped offset -> offset in pair, recorded after each rune
	boundaries := map[int]int{0: 0}
	for i, r := range string(pair) {
		if strings.ContainsRune(metaChars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
		boundaries[sb.Len()] = i + utf8.RuneLen(r)
	}
	escaped := sb.String()

	if len(escaped) == 0 {
		return nil, &DelimiterError{Delimiters: pair, Reason: "empty"}
	}
	if len(escaped)%2 != 0 {
		return nil, &DelimiterError{Delimiters: pair, Reason: "escaped length is odd"}
	}
	half := len(escaped) / 2
	split, ok := boundaries[half]
	if !ok {
		return nil, &DelimiterError{Delimiters: pair, Reason: "halves split an escaped character"}
	}

	start, end := escaped[:half], escaped[half:]
	re, err := regexp.Compile(start + `(.+?)` + end)
	if err != nil {
		return nil, &DelimiterError{Delimiters: pair, Reason: err.Error()}
	}

	return &Pattern{
		delimiters: pair,
		start:      string(pair[:split]),
		end:        string(pair[split:]),
		re:         re,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pair Delimiters) *Pattern {
	p, err := Compile(pair)
	if err != nil {
		panic(err)
	}
	return p
}

// Delimiters returns the pair the pattern was compiled from.
func (p *Pattern) Delimiters() Delimiters {
	return p.delimiters
}

// Start returns the literal start token.
func (p *Pattern) Start() string {
	return p.start
}

// End returns the literal end token.
func (p *Pattern) End() string {
	return p.end
}

// Matches returns every non-overlapping match in text, left to right.
func (p *Pattern) Matches(text string) []Span {
	indexes := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(indexes) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(indexes))
	for _, idx := range indexes {
		spans = append(spans, Span{
			Start:      idx[0],
			End:        idx[1],
			Expression: text[idx[2]:idx[3]],
		})
	}
	return spans
}

// Replace substitutes every match with the value returned by fn for its
// captured expression.
func (p *Pattern) Replace(text string, fn func(expression string) string) string {
	spans := p.Matches(text)
	if len(spans) == 0 {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, span := range spans {
		sb.WriteString(text[last:span.Start])
		sb.WriteString(fn(span.Expression))
		last = span.End
	}
	sb.WriteString(text[last:])
	return sb.String()
}
