package include

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/pkg/dom"
)

// Loader fetches the raw body stored at location.
type Loader interface {
	Load(ctx context.Context, location string) ([]byte, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, location string) ([]byte, error)

// Load delegates to the underlying function.
func (fn LoaderFunc) Load(ctx context.Context, location string) ([]byte, error) {
	return fn(ctx, location)
}

// Sanitizer filters fragment markup before it is cached and injected.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Includer splices named fragments into elements carrying the marker
// attribute.
type Includer struct {
	loader Loader
	cfg    config
}

// New constructs an Includer that loads fragments through loader.
func New(loader Loader, options ...Option) (*Includer, error) {
	if loader == nil {
		return nil, errors.New("include: loader is required")
	}
	cfg := config{
		attribute:   DefaultAttribute,
		maxIncludes: DefaultMaxIncludes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.cache == nil {
		cfg.cache = NewCache()
	}
	return &Includer{loader: loader, cfg: cfg}, nil
}

// Cache exposes the fragment cache backing this includer.
func (in *Includer) Cache() *Cache {
	return in.cfg.cache
}

// Location resolves a fragment name to the location handed to the loader.
func (in *Includer) Location(name string) string {
	return in.cfg.base + name + ".html"
}

// Run processes marked elements one at a time until none remain. The
// document is queried again after every include, so markers introduced by a
// fragment are handled in the same pass. Mutations applied before an error
// are kept.
func (in *Includer) Run(ctx context.Context, doc *html.Node) error {
	if doc == nil {
		return errors.New("include: document is nil")
	}
	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		el := dom.FirstWithAttr(doc, in.cfg.attribute)
		if el == nil {
			return nil
		}
		if in.cfg.maxIncludes > 0 && processed >= in.cfg.maxIncludes {
			return fmt.Errorf("%w: %d", ErrIncludeLimit, in.cfg.maxIncludes)
		}
		processed++

		name, _ := dom.Attr(el, in.cfg.attribute)
		if err := in.include(ctx, el, name); err != nil {
			return err
		}
	}
}

func (in *Includer) include(ctx context.Context, el *html.Node, name string) error {
	if content, ok := in.cfg.cache.Get(name); ok {
		return in.inject(el, name, content)
	}

	location := in.Location(name)
	body, err := in.loader.Load(ctx, location)
	if err != nil {
		return &LoadError{Name: name, Location: location, Err: err}
	}

	content, scripts, err := SplitScripts(string(body))
	if err != nil {
		return fmt.Errorf("include: fragment %q: %w", name, err)
	}
	if in.cfg.sanitizer != nil {
		content = in.cfg.sanitizer.Sanitize(content)
	}

	// Scripts parsed through inner HTML are inert, so each body gets its
	// own element ahead of the target.
	for _, script := range scripts {
		if err := dom.InsertBefore(dom.NewScript(script), el); err != nil {
			return fmt.Errorf("include: fragment %q: insert script: %w", name, err)
		}
	}

	in.cfg.cache.Put(name, content)
	if in.cfg.logger != nil {
		in.cfg.logger.Printf("include: loaded %q from %s (%d scripts)", name, location, len(scripts))
	}
	return in.inject(el, name, content)
}

func (in *Includer) inject(el *html.Node, name, content string) error {
	if err := dom.SetInnerHTML(el, content); err != nil {
		return fmt.Errorf("include: fragment %q: %w", name, err)
	}
	dom.RemoveAttr(el, in.cfg.attribute)
	return nil
}
