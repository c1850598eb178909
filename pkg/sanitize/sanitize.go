// Package sanitize filters fragment markup with bluemonday before it is
// cached and injected.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultDirectiveAttributes are kept on every element.
var DefaultDirectiveAttributes = []string{
	"x-include", "x-interp", "x-interpolate", "x-text", "x-data", "x-show", "x-if",
}

var (
	defaultOnce   sync.Once
	defaultPolicy *Policy
)

// Policy implements include.Sanitizer.
type Policy struct {
	policy *bluemonday.Policy
}

// Default returns a shared policy built with DefaultDirectiveAttributes.
func Default() *Policy {
	defaultOnce.Do(func() {
		defaultPolicy = New()
	})
	return defaultPolicy
}

// New builds a policy from bluemonday's user generated content rules plus
// layout elements, data attributes and the given directive attributes.
func New(directiveAttrs ...string) *Policy {
	if len(directiveAttrs) == 0 {
		directiveAttrs = DefaultDirectiveAttributes
	}

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	policy.AllowDataAttributes()
	policy.AllowElements(
		"section", "article", "header", "footer", "nav", "main", "aside",
		"template", "button", "label", "form", "input", "select", "option",
	)
	policy.AllowAttrs("id", "class", "role", "aria-label", "aria-hidden").Globally()
	policy.AllowAttrs("type", "name", "value", "placeholder").OnElements("input", "button", "select", "option")

	attrs := make([]string, 0, len(directiveAttrs))
	for _, attr := range directiveAttrs {
		if trimmed := strings.TrimSpace(attr); trimmed != "" {
			attrs = append(attrs, trimmed)
		}
	}
	if len(attrs) > 0 {
		policy.AllowAttrs(attrs...).Globally()
	}

	return &Policy{policy: policy}
}

// Sanitize returns markup with disallowed elements and attributes removed.
func (p *Policy) Sanitize(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return markup
	}
	return p.policy.Sanitize(markup)
}
