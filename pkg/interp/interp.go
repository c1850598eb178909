package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/pkg/directive"
	"github.com/goliatone/go-fragments/pkg/dom"
)

// Register compiles the configured delimiters and registers the interp and
// interpolate directives. An invalid pair fails here, before any element is
// bound.
func Register(r directive.Registrar, options ...Option) error {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	pattern, err := Compile(cfg.delimiters)
	if err != nil {
		return err
	}

	if cfg.interpName != "" {
		if err := r.Directive(cfg.interpName, interpDirective(pattern)); err != nil {
			return fmt.Errorf("interp: register %q: %w", cfg.interpName, err)
		}
	}
	if cfg.interpolateName != "" {
		if err := r.Directive(cfg.interpolateName, interpolateDirective(pattern, cfg)); err != nil {
			return fmt.Errorf("interp: register %q: %w", cfg.interpolateName, err)
		}
	}
	return nil
}

// Plugin defers Register to host initialisation.
func Plugin(options ...Option) directive.Plugin {
	return func(r directive.Registrar) error {
		return Register(r, options...)
	}
}

// patternFor returns the per-element override when the directive carries an
// expression, otherwise the registered default.
func patternFor(def *Pattern, args directive.Args) (*Pattern, error) {
	override := strings.TrimSpace(args.Expression)
	if override == "" || Delimiters(override) == def.Delimiters() {
		return def, nil
	}
	return Compile(Delimiters(override))
}

func interpDirective(def *Pattern) directive.Directive {
	return func(el *html.Node, args directive.Args, utils directive.Utilities) error {
		pattern, err := patternFor(def, args)
		if err != nil {
			return err
		}
		binding := NewBinding(pattern, el)
		utils.Effect(func() {
			binding.Update(utils.Evaluate)
		})
		return nil
	}
}

// EvaluateFunc resolves an expression; ok is false when evaluation failed.
type EvaluateFunc func(expression string) (value any, ok bool)

// Binding renders the text nodes under one element from their original
// content. Each text node's original value is captured the first time the
// binding sees it, and every update starts over from that value. Nodes that
// left the subtree are forgotten on the next update.
type Binding struct {
	pattern   *Pattern
	root      *html.Node
	originals map[*html.Node]string
}

// NewBinding prepares a binding for root.
func NewBinding(pattern *Pattern, root *html.Node) *Binding {
	return &Binding{
		pattern:   pattern,
		root:      root,
		originals: make(map[*html.Node]string),
	}
}

// Update re-renders every descendant text node.
func (b *Binding) Update(evaluate EvaluateFunc) {
	texts := dom.TextNodes(b.root)
	current := make(map[*html.Node]string, len(texts))
	for _, text := range texts {
		original, seen := b.originals[text]
		if !seen {
			original = text.Data
		}
		current[text] = original
		text.Data = b.pattern.Replace(original, func(expression string) string {
			return render(evaluate, expression)
		})
	}
	b.originals = current
}

// render falls back to the expression text when evaluation fails or the
// value is falsy.
func render(evaluate EvaluateFunc, expression string) string {
	value, ok := evaluate(expression)
	if !ok || Falsy(value) {
		return expression
	}
	return Format(value)
}

// Falsy reports whether value counts as false for display: nil, false, the
// empty string, numeric zero and NaN.
func Falsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case int:
		return v == 0
	case int8:
		return v == 0
	case int16:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case uint:
		return v == 0
	case uint8:
		return v == 0
	case uint16:
		return v == 0
	case uint32:
		return v == 0
	case uint64:
		return v == 0
	case float32:
		return v == 0 || math.IsNaN(float64(v))
	case float64:
		return v == 0 || math.IsNaN(v)
	default:
		return false
	}
}

// Format renders an evaluated value as display text. Nil renders empty.
func Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
