// Package prompt asks a person at the terminal for values the host could not
// evaluate.
package prompt

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// Driver abstracts the terminal so the resolver can be tested without one.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

type surveyDriver struct{}

// NewSurveyDriver returns a Driver backed by survey.
func NewSurveyDriver() Driver {
	return surveyDriver{}
}

func (surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Resolver asks once per expression and remembers the answer. Blank answers
// leave the expression unresolved. After an abort it stops prompting.
type Resolver struct {
	ctx    context.Context
	driver Driver

	mu      sync.Mutex
	answers map[string]any
	err     error
}

// NewResolver wraps driver; a nil driver uses survey.
func NewResolver(ctx context.Context, driver Driver) *Resolver {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Resolver{
		ctx:     ctx,
		driver:  driver,
		answers: make(map[string]any),
	}
}

// Resolve implements host.Resolver.
func (r *Resolver) Resolve(expression string) (any, bool) {
	key := strings.TrimSpace(expression)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, false
	}
	if value, ok := r.answers[key]; ok {
		return value, value != nil
	}

	answer, err := r.driver.Input(r.ctx, InputConfig{
		Message: "Value for " + key,
		Help:    "Leave blank to keep the expression text.",
	})
	if err != nil {
		r.err = err
		return nil, false
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		r.answers[key] = nil
		return nil, false
	}
	value := parseAnswer(answer)
	r.answers[key] = value
	return value, true
}

// Err returns the error that stopped prompting, if any.
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func parseAnswer(answer string) any {
	if f, err := strconv.ParseFloat(answer, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(answer); err == nil {
		return b
	}
	return answer
}
