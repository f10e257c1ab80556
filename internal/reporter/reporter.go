package reporter

import (
	"os"
)

// Reporter is the CI-facing status surface of a run.
type Reporter interface {
	Group(title string)
	EndGroup()
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetOutput(key, value string)
}

// Detect returns a GitHub reporter inside GitHub Actions and a console one otherwise.
func Detect() Reporter {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return NewGitHub(nil)
	}
	return NewConsole()
}

// WithGroup runs fn inside a named group; the group is closed even if fn fails.
func WithGroup[T any](r Reporter, title string, fn func() (T, error)) (T, error) {
	r.Group(title)
	defer r.EndGroup()
	return fn()
}
