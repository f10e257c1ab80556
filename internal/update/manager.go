package update

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/reporter"
	"github.com/MrSnakeDoc/gradle-updater/internal/versions"
	"github.com/MrSnakeDoc/gradle-updater/internal/wrapper"
)

// OutputSuccess is set to "true" once both wrapper runs succeeded.
const OutputSuccess = "update_successful"

type Fetcher interface {
	Latest(ctx context.Context, stage string) (*versions.VersionInfo, error)
}

type WrapperUpdater interface {
	Update(ctx context.Context, version string) error
}

// Result describes what a run did. Previous and Current are the versions
// pinned by gradle-wrapper.properties before and after, empty when unknown.
type Result struct {
	Stage    string
	Version  string
	Broken   bool
	Updated  bool
	Previous string
	Current  string
}

type Updater struct {
	Fetcher  Fetcher
	Wrapper  WrapperUpdater
	Reporter reporter.Reporter
	// Dir is the project directory, used to read the pinned version. Empty skips it.
	Dir string
}

func New(f Fetcher, w WrapperUpdater, r reporter.Reporter, dir string) *Updater {
	if r == nil {
		r = reporter.Detect()
	}
	return &Updater{Fetcher: f, Wrapper: w, Reporter: r, Dir: dir}
}

// Execute fetches the latest version of stage and, if there is one, updates
// the wrapper to it. A stage without a usable version is not an error.
func (u *Updater) Execute(ctx context.Context, stage string) (*Result, error) {
	res := &Result{Stage: stage}

	info, err := reporter.WithGroup(u.Reporter,
		fmt.Sprintf("Fetch the latest version of stage ‘%s’", stage),
		func() (*versions.VersionInfo, error) {
			return u.Fetcher.Latest(ctx, stage)
		})
	if err != nil {
		return res, fmt.Errorf("failed to fetch the latest version: %w", err)
	}

	if info == nil {
		u.Reporter.Error("There is currently no up-to-date version on stage ‘%s’", stage)
		return res, nil
	}

	res.Version, res.Broken = info.Version, info.Broken
	if info.Broken {
		u.Reporter.Warn("Version ‘%s’ is marked as broken", info.Version)
	}

	res.Previous = u.pinnedVersion()

	_, err = reporter.WithGroup(u.Reporter,
		fmt.Sprintf("Update Gradle to version ‘%s’", info.Version),
		func() (struct{}, error) {
			if err := u.Wrapper.Update(ctx, info.Version); err != nil {
				return struct{}{}, err
			}
			res.Current = u.pinnedVersion()
			if res.Current != "" {
				u.Reporter.Info("Wrapper now pins Gradle %s (was %s)", res.Current, orUnknown(res.Previous))
			}
			return struct{}{}, nil
		})
	if err != nil {
		return res, fmt.Errorf("failed to update Gradle: %w", err)
	}

	res.Updated = true
	u.Reporter.SetOutput(OutputSuccess, "true")

	return res, nil
}

func (u *Updater) pinnedVersion() string {
	if u.Dir == "" {
		return ""
	}
	v, err := wrapper.CurrentVersion(u.Dir)
	if err != nil {
		logger.Debug("could not read the pinned Gradle version: %v", err)
		return ""
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
