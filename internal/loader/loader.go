package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-fragments/pkg/include"
)

// Options controls which strategies the Loader may use.
type Options struct {
	// FileSystem serves relative locations when set; otherwise they are read
	// from the operating system.
	FileSystem fs.FS

	// HTTPClient enables http(s) locations. Nil disables them unless
	// AllowHTTP is true.
	HTTPClient *http.Client

	// AllowHTTP enables http(s) locations with a default client.
	AllowHTTP bool

	// RequestTimeout caps each remote fetch. A client that already carries
	// a timeout keeps its own.
	RequestTimeout time.Duration
}

// StatusError reports a remote fragment answered with a status other than
// 2xx. Missing fragments (404, 410) also match fs.ErrNotExist.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fragment loader: %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	return target == fs.ErrNotExist && (e.Code == http.StatusNotFound || e.Code == http.StatusGone)
}

// Loader implements include.Loader by delegating to file, fs.FS, or HTTP
// strategies based on the shape of the location.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
}

var _ include.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options Options) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
	}
}

// Load reads the fragment body stored at location.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	switch {
	case location == "":
		return nil, errors.New("fragment loader: location is required")
	case isURL(location):
		if !l.allowHTTP {
			return nil, errors.New("fragment loader: http support disabled")
		}
		return l.fetch(ctx, location)
	case l.fs != nil:
		return loadFromFS(ctx, l.fs, location)
	default:
		return loadFile(ctx, location)
	}
}

// fetch GETs a remote fragment. Only 2xx bodies are returned; a redirect the
// client does not follow or an error page never reaches the document.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fragment loader: %w", err)
	}
	req.Header.Set("Accept", "text/html, */*;q=0.1")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fragment loader: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fragment loader: read %s: %w", url, err)
	}
	return body, nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
