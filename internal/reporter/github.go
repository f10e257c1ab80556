package reporter

import (
	"github.com/sethvargo/go-githubactions"
)

// GitHub writes workflow commands (::group::, ::warning::, $GITHUB_OUTPUT).
type GitHub struct {
	action *githubactions.Action
}

// NewGitHub wraps action; nil means a default action on stdout and the process env.
func NewGitHub(action *githubactions.Action) *GitHub {
	if action == nil {
		action = githubactions.New()
	}
	return &GitHub{action: action}
}

func (g *GitHub) Group(title string) { g.action.Group(title) }

func (g *GitHub) EndGroup() { g.action.EndGroup() }

func (g *GitHub) Info(format string, args ...any) { g.action.Infof(format, args...) }

func (g *GitHub) Warn(format string, args ...any) { g.action.Warningf(format, args...) }

func (g *GitHub) Error(format string, args ...any) { g.action.Errorf(format, args...) }

func (g *GitHub) SetOutput(key, value string) { g.action.SetOutput(key, value) }
