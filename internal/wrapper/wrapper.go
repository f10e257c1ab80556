package wrapper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrSnakeDoc/gradle-updater/internal/errs"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/runner"
)

const DefaultScript = "./gradlew"

// Updater regenerates the Gradle wrapper of a working tree.
type Updater struct {
	Runner  runner.CommandRunner
	Script  string
	Timeout time.Duration
}

func New(r runner.CommandRunner, script string, timeout time.Duration) *Updater {
	if r == nil {
		r = runner.ExecRunner{Out: logger.Out()}
	}
	if script == "" {
		script = DefaultScript
	}
	return &Updater{Runner: r, Script: script, Timeout: timeout}
}

// Update pins the wrapper to version, then runs the wrapper task again so the
// launcher scripts are regenerated by the new distribution. The second run only
// starts after the first succeeded; nothing is rolled back on failure.
func (u *Updater) Update(ctx context.Context, version string) error {
	if err := u.run(ctx, "wrapper", "--gradle-version="+version); err != nil {
		return err
	}
	return u.run(ctx, "wrapper")
}

func (u *Updater) run(ctx context.Context, args ...string) error {
	cmdline := u.Script + " " + strings.Join(args, " ")
	logger.Debug("running %s", cmdline)

	if _, err := u.Runner.Run(ctx, u.Timeout, runner.Stream, u.Script, args...); err != nil {
		return errs.Newf(errs.ExternalProcess, cmdline,
			"exit code %d: %w", runner.ExitCode(err), err)
	}
	return nil
}

// RequireScript checks that the wrapper script exists in dir and is a regular file.
func RequireScript(dir, script string) error {
	path := script
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, script)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errs.Newf(errs.Configuration, "locate wrapper script",
			"%s not found (is %s a Gradle project?): %w", script, dir, err)
	}
	if info.IsDir() {
		return errs.Newf(errs.Configuration, "locate wrapper script", "%s is a directory", path)
	}
	if info.Mode()&0o111 == 0 {
		logger.Warn("%s is not executable, the wrapper task will probably fail", path)
	}
	return nil
}
