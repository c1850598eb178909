package interp

import "strings"

const (
	// DirectiveInterp names the reactive, in-place directive (x-interp).
	DirectiveInterp = "interp"
	// DirectiveInterpolate names the one-shot, structural directive
	// (x-interpolate).
	DirectiveInterpolate = "interpolate"
	// DefaultWrapperTag wraps each expression produced by x-interpolate.
	DefaultWrapperTag = "span"
	// DefaultTextAttribute binds the wrapper to the host's live text
	// directive.
	DefaultTextAttribute = "x-text"
)

// Option configures the interpolation directives.
type Option func(*config)

type config struct {
	delimiters      Delimiters
	wrapperTag      string
	textAttribute   string
	interpName      string
	interpolateName string
}

func defaultConfig() config {
	return config{
		delimiters:      DefaultDelimiters,
		wrapperTag:      DefaultWrapperTag,
		textAttribute:   DefaultTextAttribute,
		interpName:      DirectiveInterp,
		interpolateName: DirectiveInterpolate,
	}
}

// WithDelimiters sets the default pair used by elements that do not provide
// their own in the directive expression.
func WithDelimiters(pair Delimiters) Option {
	return func(cfg *config) {
		if pair != "" {
			cfg.delimiters = pair
		}
	}
}

// WithWrapperTag overrides the element created for each expression by the
// structural directive.
func WithWrapperTag(tag string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cfg.wrapperTag = trimmed
		}
	}
}

// WithTextAttribute overrides the attribute that binds generated wrappers to
// the host's live text directive.
func WithTextAttribute(attr string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(attr); trimmed != "" {
			cfg.textAttribute = trimmed
		}
	}
}

// WithDirectiveNames renames the registered directives. Empty names disable
// the matching directive.
func WithDirectiveNames(interp, interpolate string) Option {
	return func(cfg *config) {
		cfg.interpName = strings.TrimSpace(interp)
		cfg.interpolateName = strings.TrimSpace(interpolate)
	}
}
