package include

import (
	"log"
	"strings"
)

// DefaultAttribute is the marker attribute consumed by the includer.
const DefaultAttribute = "x-include"

// DefaultMaxIncludes bounds a single Run.
const DefaultMaxIncludes = 1000

// Option configures an Includer.
type Option func(*config)

type config struct {
	base        string
	attribute   string
	cache       *Cache
	sanitizer   Sanitizer
	maxIncludes int
	logger      *log.Logger
}

// WithBase sets the prefix prepended to "<name>.html". It is used verbatim,
// so directories and URLs should end with a slash.
func WithBase(base string) Option {
	return func(cfg *config) {
		cfg.base = strings.TrimSpace(base)
	}
}

// WithPageURL derives the base from the directory of the page being
// processed, matching how a browser resolves fragments next to the page.
func WithPageURL(pageURL string) Option {
	return func(cfg *config) {
		cfg.base = PageDirectory(strings.TrimSpace(pageURL))
	}
}

// WithAttribute overrides the marker attribute name.
func WithAttribute(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.attribute = trimmed
		}
	}
}

// WithCache shares a cache between includers.
func WithCache(cache *Cache) Option {
	return func(cfg *config) {
		if cache != nil {
			cfg.cache = cache
		}
	}
}

// WithSanitizer filters fragment markup after scripts are extracted and
// before it is cached.
func WithSanitizer(s Sanitizer) Option {
	return func(cfg *config) {
		cfg.sanitizer = s
	}
}

// WithMaxIncludes caps the number of markers processed by one Run. Zero or a
// negative value disables the cap.
func WithMaxIncludes(n int) Option {
	return func(cfg *config) {
		cfg.maxIncludes = n
	}
}

// WithLogger overrides the logger used for include tracing.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// PageDirectory returns pageURL up to and including its last slash. A value
// without a slash yields the empty string.
func PageDirectory(pageURL string) string {
	idx := strings.LastIndex(pageURL, "/")
	if idx == -1 {
		return ""
	}
	return pageURL[:idx+1]
}
