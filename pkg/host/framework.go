package host

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/pkg/directive"
	"github.com/goliatone/go-fragments/pkg/dom"
	"github.com/goliatone/go-fragments/pkg/host/expr"
)

// DefaultPrefix marks directive attributes.
const DefaultPrefix = "x-"

// Resolver supplies a value for an expression the evaluator could not
// handle.
type Resolver interface {
	Resolve(expression string) (any, bool)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(expression string) (any, bool)

// Resolve delegates to the underlying function.
func (fn ResolverFunc) Resolve(expression string) (any, bool) {
	return fn(expression)
}

// Option configures a Framework.
type Option func(*Framework)

// WithData seeds the reactive data scope.
func WithData(data map[string]any) Option {
	return func(f *Framework) {
		for key, value := range data {
			f.data[key] = value
		}
	}
}

// WithPrefix overrides the directive attribute prefix.
func WithPrefix(prefix string) Option {
	return func(f *Framework) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			f.prefix = trimmed
		}
	}
}

// WithLogger receives evaluation failures.
func WithLogger(logger *log.Logger) Option {
	return func(f *Framework) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFallback consults r when an expression fails to evaluate.
func WithFallback(r Resolver) Option {
	return func(f *Framework) {
		f.fallback = r
	}
}

// Framework is a minimal in-process reactive host. Directives bind to
// elements during Start; effects re-run whenever Set changes the data
// scope. It is not safe for concurrent use.
type Framework struct {
	prefix     string
	directives map[string]directive.Directive
	plugins    []directive.Plugin
	data       expr.Scope
	evaluator  *expr.Evaluator
	effects    []func()
	fallback   Resolver
	logger     *log.Logger
	started    bool
}

var _ directive.Registrar = (*Framework)(nil)
var _ directive.Utilities = (*Framework)(nil)

// New constructs a Framework with the built-in text directive registered.
func New(options ...Option) *Framework {
	f := &Framework{
		prefix:     DefaultPrefix,
		directives: make(map[string]directive.Directive),
		data:       expr.Scope{},
		evaluator:  expr.New(),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.directives["text"] = textDirective
	return f
}

// Directive registers fn under name. Names are unique.
func (f *Framework) Directive(name string, fn directive.Directive) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("host: directive name is required")
	}
	if fn == nil {
		return fmt.Errorf("host: directive %q is nil", name)
	}
	if _, exists := f.directives[name]; exists {
		return fmt.Errorf("host: directive %q already registered", name)
	}
	f.directives[name] = fn
	return nil
}

// OnInit queues a plugin that runs at the start of Start, before any element
// is bound.
func (f *Framework) OnInit(plugin directive.Plugin) {
	if plugin != nil {
		f.plugins = append(f.plugins, plugin)
	}
}

// Start runs the init plugins and binds every directive found under root in
// document order. Elements created by a directive below its own element are
// bound afterwards in the same walk.
func (f *Framework) Start(root *html.Node) error {
	if f.started {
		return errors.New("host: already started")
	}
	f.started = true

	for _, plugin := range f.plugins {
		if err := plugin(f); err != nil {
			return fmt.Errorf("host: init: %w", err)
		}
	}

	return dom.Walk(root, func(n *html.Node) error {
		if n.Type != html.ElementNode {
			return nil
		}
		attrs := append([]html.Attribute(nil), n.Attr...)
		for _, attr := range attrs {
			args, ok := f.parseAttr(attr)
			if !ok {
				continue
			}
			fn, ok := f.directives[args.Name]
			if !ok {
				continue
			}
			if err := fn(n, args, f); err != nil {
				return fmt.Errorf("host: directive %q on <%s>: %w", args.Name, n.Data, err)
			}
		}
		return nil
	})
}

func (f *Framework) parseAttr(attr html.Attribute) (directive.Args, bool) {
	if attr.Namespace != "" || !strings.HasPrefix(attr.Key, f.prefix) {
		return directive.Args{}, false
	}
	parts := strings.Split(strings.TrimPrefix(attr.Key, f.prefix), ".")
	if parts[0] == "" {
		return directive.Args{}, false
	}
	args := directive.Args{Name: parts[0], Expression: attr.Val}
	if len(parts) > 1 {
		args.Modifiers = parts[1:]
	}
	return args, true
}

// Effect runs fn immediately and again after every Set.
func (f *Framework) Effect(fn func()) {
	if fn == nil {
		return
	}
	f.effects = append(f.effects, fn)
	fn()
}

// Evaluate computes expression against the data scope. Failures are logged
// and reported as (nil, false) unless the fallback resolver supplies a value.
func (f *Framework) Evaluate(expression string) (any, bool) {
	value, err := f.evaluator.Evaluate(expression, f.data)
	if err == nil {
		return value, true
	}
	f.logger.Printf("host: evaluate %q: %v", expression, err)
	if f.fallback != nil {
		if value, ok := f.fallback.Resolve(expression); ok {
			return value, true
		}
	}
	return nil, false
}

// Set updates a top level value and re-runs every effect in registration
// order.
func (f *Framework) Set(key string, value any) {
	f.data[key] = value
	for _, fn := range f.effects {
		fn()
	}
}

// Value returns a value from the data scope by dotted path.
func (f *Framework) Value(path string) (any, bool) {
	return f.data.Lookup(path)
}

func textDirective(el *html.Node, args directive.Args, utils directive.Utilities) error {
	utils.Effect(func() {
		value, _ := utils.Evaluate(args.Expression)
		dom.SetText(el, display(value))
	})
	return nil
}

func display(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
