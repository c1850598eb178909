package fragments

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-fragments/pkg/config"
	"github.com/goliatone/go-fragments/pkg/dom"
	"github.com/goliatone/go-fragments/pkg/host"
	"github.com/goliatone/go-fragments/pkg/include"
	"github.com/goliatone/go-fragments/pkg/interp"
)

func siteFS() fstest.MapFS {
	return fstest.MapFS{
		"parts/card.html": &fstest.MapFile{Data: []byte(`<h1 x-interpolate>Hi {name}!</h1><script>init()</script>`)},
		"parts/nav.html":  &fstest.MapFile{Data: []byte(`<a href="/" onclick="x()">home</a>`)},
	}
}

func TestPipelineIncludesAndInterpolates(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Base = "parts/"
	cfg.Data = map[string]any{"name": "Ada"}

	p, err := NewPipeline(cfg, WithFileSystem(siteFS()))
	if err != nil {
		t.Fatalf("NewPipeline returned error: %v", err)
	}

	doc, err := dom.Parse(strings.NewReader(`<body><div x-include="card"></div><p x-interp>Hello {name}</p></body>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fw, err := p.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("ProcessDocument returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := dom.Render(&buf, doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<script>init()</script><div><h1 x-interpolate="">Hi <span x-text="name">Ada</span>!</h1></div>`,
		`<p x-interp="">Hello Ada</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	fw.Set("name", "Grace")
	buf.Reset()
	_ = dom.Render(&buf, doc)
	out = buf.String()
	for _, want := range []string{
		`Hi <span x-text="name">Grace</span>!`,
		`<p x-interp="">Hello Grace</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q after Set in output:\n%s", want, out)
		}
	}
}

func TestPipelineProcessSanitizesAndCaches(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Base = "parts/"
	cfg.Sanitize = true

	p, err := NewPipeline(cfg, WithFileSystem(siteFS()))
	if err != nil {
		t.Fatalf("NewPipeline returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		if err := p.Process(context.Background(), strings.NewReader(`<nav x-include="nav"></nav>`), &out); err != nil {
			t.Fatalf("Process returned error: %v", err)
		}
		if strings.Contains(out.String(), "onclick") {
			t.Fatalf("expected handler to be stripped, got %s", out.String())
		}
		if !strings.Contains(out.String(), ">home</a>") {
			t.Fatalf("expected link text to survive, got %s", out.String())
		}
	}
	if p.Cache().Len() != 1 {
		t.Fatalf("expected one cached fragment, got %d", p.Cache().Len())
	}
}

func TestPipelineCustomDelimitersAndFallback(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Delimiters = "[[]]"

	p, err := NewPipeline(cfg,
		WithLoader(include.LoaderFunc(func(context.Context, string) ([]byte, error) {
			return nil, errors.New("no fragments")
		})),
		WithFallback(host.ResolverFunc(func(expr string) (any, bool) {
			return "<" + expr + ">", true
		})),
	)
	if err != nil {
		t.Fatalf("NewPipeline returned error: %v", err)
	}

	var out bytes.Buffer
	if err := p.Process(context.Background(), strings.NewReader(`<p x-interp>[[who]] {who}</p>`), &out); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(out.String(), "&lt;who&gt; {who}") {
		t.Fatalf("unexpected output %s", out.String())
	}
}

func TestPipelineErrors(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Delimiters = "{}!"
	if _, err := NewPipeline(cfg); !errors.Is(err, interp.ErrInvalidDelimiters) {
		t.Fatalf("expected ErrInvalidDelimiters, got %v", err)
	}

	cfg = config.Default()
	cfg.Base = "parts/"
	p, err := NewPipeline(cfg, WithFileSystem(fstest.MapFS{
		"parts/bad.html": &fstest.MapFile{Data: []byte("<script>oops")},
	}))
	if err != nil {
		t.Fatalf("NewPipeline returned error: %v", err)
	}
	err = p.Process(context.Background(), strings.NewReader(`<div x-include="bad"></div>`), &bytes.Buffer{})
	if !errors.Is(err, include.ErrUnterminatedScript) {
		t.Fatalf("expected ErrUnterminatedScript, got %v", err)
	}
}
