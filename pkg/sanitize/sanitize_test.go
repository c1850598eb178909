package sanitize

import (
	"strings"
	"testing"
)

func TestSanitizeKeepsDirectivesAndDropsHandlers(t *testing.T) {
	t.Parallel()

	input := `<section id="s" x-include="nav" onclick="steal()"><p x-text="name">hi</p><img src="x" onerror="boom()"></section>`
	got := Default().Sanitize(input)

	for _, want := range []string{`<section`, `x-include="nav"`, `x-text="name"`, `<p`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in sanitized markup, got %q", want, got)
		}
	}
	for _, banned := range []string{"onclick", "onerror"} {
		if strings.Contains(got, banned) {
			t.Fatalf("expected %q to be removed, got %q", banned, got)
		}
	}
}

func TestSanitizeRemovesInlineScripts(t *testing.T) {
	t.Parallel()

	got := New().Sanitize(`<p>a</p><script src="evil.js"></script>`)
	if strings.Contains(got, "script") {
		t.Fatalf("expected script element to be removed, got %q", got)
	}
}

func TestSanitizeCustomAttributes(t *testing.T) {
	t.Parallel()

	p := New("x-custom")
	got := p.Sanitize(`<div x-custom="1" x-include="a">b</div>`)
	if !strings.Contains(got, `x-custom="1"`) {
		t.Fatalf("expected custom attribute to remain, got %q", got)
	}
	if strings.Contains(got, "x-include") {
		t.Fatalf("expected default attributes to be replaced, got %q", got)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	t.Parallel()

	if got := Default().Sanitize("  "); got != "  " {
		t.Fatalf("expected blank markup to pass through, got %q", got)
	}
}
