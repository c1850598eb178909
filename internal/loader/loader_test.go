package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoaderReadsFromFS(t *testing.T) {
	t.Parallel()

	l := New(Options{FileSystem: fstest.MapFS{
		"parts/nav.html": &fstest.MapFile{Data: []byte("<nav></nav>")},
	}})

	for _, location := range []string{"parts/nav.html", "/parts/nav.html", "./parts/nav.html"} {
		data, err := l.Load(context.Background(), location)
		if err != nil {
			t.Fatalf("Load(%q) returned error: %v", location, err)
		}
		if string(data) != "<nav></nav>" {
			t.Fatalf("unexpected body %q", data)
		}
	}
}

func TestLoaderReadsFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "card.html")
	if err := os.WriteFile(file, []byte("<p>card</p>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	data, err := New(Options{}).Load(context.Background(), file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(data) != "<p>card</p>" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestLoaderHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/app/header.html":
			_, _ = w.Write([]byte("<header></header>"))
		case "/app/broken.html":
			http.Error(w, "<h1>boom</h1>", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New(Options{HTTPClient: srv.Client()})

	data, err := l.Load(context.Background(), srv.URL+"/app/header.html")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(data) != "<header></header>" {
		t.Fatalf("unexpected body %q", data)
	}

	_, err = l.Load(context.Background(), srv.URL+"/app/missing.html")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist for a missing fragment, got %v", err)
	}

	data, err = l.Load(context.Background(), srv.URL+"/app/broken.html")
	if data != nil {
		t.Fatalf("expected no body for an error page, got %q", data)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", statusErr.Code)
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a server error not to read as missing")
	}
}

func TestLoaderMissingFragmentIsNotExistEverywhere(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{FileSystem: fstest.MapFS{}}).Load(context.Background(), "parts/none.html"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("fs: expected fs.ErrNotExist, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "none.html")
	if _, err := New(Options{}).Load(context.Background(), missing); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("file: expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoaderHTTPDisabledByDefault(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).Load(context.Background(), "https://example.com/a.html")
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestLoaderRejectsEmptyLocation(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}).Load(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty location")
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(Options{FileSystem: fstest.MapFS{}})
	if _, err := l.Load(ctx, "a.html"); err == nil {
		t.Fatalf("expected context error")
	}
}
