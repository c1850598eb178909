package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

type stubDriver struct {
	inputs   []string
	messages []string
	err      error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.err != nil {
		return "", s.err
	}
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func TestResolverAsksOncePerExpression(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{inputs: []string{"Ada", "5", ""}}
	r := NewResolver(context.Background(), driver)

	if v, ok := r.Resolve("name"); !ok || v != "Ada" {
		t.Fatalf("unexpected answer %v (ok=%v)", v, ok)
	}
	if v, ok := r.Resolve(" name "); !ok || v != "Ada" {
		t.Fatalf("expected remembered answer, got %v (ok=%v)", v, ok)
	}
	if v, ok := r.Resolve("count"); !ok || v != float64(5) {
		t.Fatalf("expected numeric answer, got %v (ok=%v)", v, ok)
	}
	if _, ok := r.Resolve("skip"); ok {
		t.Fatalf("expected blank answer to stay unresolved")
	}
	if _, ok := r.Resolve("skip"); ok {
		t.Fatalf("expected blank answer to be remembered")
	}

	want := []string{"Value for name", "Value for count", "Value for skip"}
	if diff := cmp.Diff(want, driver.messages); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverStopsAfterAbort(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{err: ErrAborted}
	r := NewResolver(context.Background(), driver)

	if _, ok := r.Resolve("a"); ok {
		t.Fatalf("expected unresolved after abort")
	}
	if _, ok := r.Resolve("b"); ok {
		t.Fatalf("expected unresolved after abort")
	}
	if len(driver.messages) != 1 {
		t.Fatalf("expected prompting to stop, got %d prompts", len(driver.messages))
	}
	if !errors.Is(r.Err(), ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", r.Err())
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("expected interrupt to map to ErrAborted")
	}
	other := errors.New("other")
	if translateSurveyErr(other) != other {
		t.Fatalf("expected other errors to pass through")
	}
}
