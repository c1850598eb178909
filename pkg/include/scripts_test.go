package include

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitScripts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantContent string
		wantScripts []string
	}{
		{
			name:        "no scripts",
			body:        "<p>plain</p>",
			wantContent: "<p>plain</p>",
		},
		{
			name:        "single script with tail",
			body:        "<p>hi</p><script>console.log(1)</script>tail",
			wantContent: "<p>hi</p>tail",
			wantScripts: []string{"console.log(1)"},
		},
		{
			name:        "multiple scripts keep surrounding text once",
			body:        "a<script>one()</script>b<script>two()</script>c",
			wantContent: "abc",
			wantScripts: []string{"one()", "two()"},
		},
		{
			name:        "empty script body",
			body:        "<script></script>x",
			wantContent: "x",
			wantScripts: []string{""},
		},
		{
			name:        "script with attributes is not extracted",
			body:        `<script src="a.js"></script>`,
			wantContent: `<script src="a.js"></script>`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, scripts, err := SplitScripts(tt.body)
			if err != nil {
				t.Fatalf("SplitScripts returned error: %v", err)
			}
			if content != tt.wantContent {
				t.Fatalf("content mismatch: want %q, got %q", tt.wantContent, content)
			}
			if diff := cmp.Diff(tt.wantScripts, scripts); diff != "" {
				t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitScriptsUnterminated(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"<script>no end", "<p>a</p><script>x()</script><script>y()"} {
		_, _, err := SplitScripts(body)
		if !errors.Is(err, ErrUnterminatedScript) {
			t.Fatalf("expected ErrUnterminatedScript for %q, got %v", body, err)
		}
	}
}

func TestPageDirectory(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://example.com/app/index.html": "https://example.com/app/",
		"https://example.com/":               "https://example.com/",
		"pages/home.html":                    "pages/",
		"index.html":                         "",
	}
	for in, want := range cases {
		if got := PageDirectory(in); got != want {
			t.Fatalf("PageDirectory(%q): want %q, got %q", in, want, got)
		}
	}
}
