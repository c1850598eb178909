package fragments

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/internal/loader"
	"github.com/goliatone/go-fragments/pkg/config"
	"github.com/goliatone/go-fragments/pkg/dom"
	"github.com/goliatone/go-fragments/pkg/host"
	"github.com/goliatone/go-fragments/pkg/include"
	"github.com/goliatone/go-fragments/pkg/interp"
	"github.com/goliatone/go-fragments/pkg/sanitize"
)

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	files      fs.FS
	httpClient *http.Client
	loader     include.Loader
	cache      *include.Cache
	fallback   host.Resolver
	logger     *log.Logger
}

// WithFileSystem serves fragment locations from files instead of the
// operating system.
func WithFileSystem(files fs.FS) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithHTTPClient overrides the client used for http(s) fragment locations.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLoader replaces the built-in loader entirely.
func WithLoader(l include.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithCache shares a fragment cache with other pipelines.
func WithCache(cache *include.Cache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithFallback resolves expressions the host evaluator cannot.
func WithFallback(r host.Resolver) Option {
	return func(o *options) {
		o.fallback = r
	}
}

// WithLogger receives include tracing and evaluation failures.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Pipeline includes fragments and then binds interpolation directives for
// each processed page. The fragment cache lives as long as the Pipeline.
type Pipeline struct {
	cfg      config.Config
	opts     options
	includer *include.Includer
}

// NewPipeline validates cfg and prepares the includer.
func NewPipeline(cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	l := o.loader
	if l == nil {
		l = loader.New(loader.Options{
			FileSystem:     o.files,
			HTTPClient:     o.httpClient,
			AllowHTTP:      true,
			RequestTimeout: cfg.Timeout,
		})
	}

	includeOpts := []include.Option{
		include.WithBase(cfg.ResolvedBase()),
		include.WithAttribute(cfg.Attribute),
		include.WithCache(o.cache),
		include.WithLogger(o.logger),
	}
	if cfg.MaxIncludes > 0 {
		includeOpts = append(includeOpts, include.WithMaxIncludes(cfg.MaxIncludes))
	}
	if cfg.Sanitize {
		directiveAttrs := append([]string{cfg.Attribute}, sanitize.DefaultDirectiveAttributes...)
		includeOpts = append(includeOpts, include.WithSanitizer(sanitize.New(directiveAttrs...)))
	}

	includer, err := include.New(l, includeOpts...)
	if err != nil {
		return nil, fmt.Errorf("fragments: %w", err)
	}

	return &Pipeline{cfg: cfg, opts: o, includer: includer}, nil
}

// Cache exposes the fragment cache.
func (p *Pipeline) Cache() *include.Cache {
	return p.includer.Cache()
}

// Process parses a page from r, runs the pipeline and renders the result to w.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	doc, err := dom.Parse(r)
	if err != nil {
		return fmt.Errorf("fragments: %w", err)
	}
	if _, err := p.ProcessDocument(ctx, doc); err != nil {
		return err
	}
	if err := dom.Render(w, doc); err != nil {
		return fmt.Errorf("fragments: render: %w", err)
	}
	return nil
}

// ProcessDocument includes every fragment and starts a host with the
// interpolation directives bound. The returned Framework can be used to
// change data and re-render.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc *html.Node) (*host.Framework, error) {
	if err := p.includer.Run(ctx, doc); err != nil {
		return nil, err
	}

	hostOpts := []host.Option{
		host.WithData(p.cfg.Data),
		host.WithLogger(p.opts.logger),
	}
	if p.opts.fallback != nil {
		hostOpts = append(hostOpts, host.WithFallback(p.opts.fallback))
	}
	fw := host.New(hostOpts...)
	fw.OnInit(interp.Plugin(interp.WithDelimiters(interp.Delimiters(p.cfg.Delimiters))))

	if err := fw.Start(doc); err != nil {
		return nil, fmt.Errorf("fragments: %w", err)
	}
	return fw, nil
}
