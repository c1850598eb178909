// Package directive describes the contract between HTML extensions and the
// reactive framework that hosts them. Extensions only see the capabilities
// declared here, so any host (a browser bridge, the in-process host package,
// a test double) can drive them.
package directive

import "golang.org/x/net/html"

// Utilities are the host primitives handed to a directive when it binds.
type Utilities interface {
	// Effect runs fn now and again whenever reactive state read by fn
	// changes.
	Effect(fn func())
	// Evaluate returns the value of expression in the element's scope. The
	// boolean is false when evaluation failed; hosts report the failure
	// themselves.
	Evaluate(expression string) (any, bool)
}

// Args carry the static parts of a directive attribute such as
// x-name.modifier="expression".
type Args struct {
	Name       string
	Expression string
	Modifiers  []string
}

// Directive binds behaviour to an element.
type Directive func(el *html.Node, args Args, utils Utilities) error

// Registrar accepts directive registrations.
type Registrar interface {
	Directive(name string, fn Directive) error
}

// Plugin registers one or more directives during host initialisation.
type Plugin func(r Registrar) error
