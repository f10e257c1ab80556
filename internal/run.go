package internal

import (
	"context"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/gradle-updater/internal/config"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/MrSnakeDoc/gradle-updater/internal/middleware"
	"github.com/MrSnakeDoc/gradle-updater/internal/reporter"
	"github.com/MrSnakeDoc/gradle-updater/internal/runner"
	"github.com/MrSnakeDoc/gradle-updater/internal/service"
	"github.com/MrSnakeDoc/gradle-updater/internal/update"
	"github.com/MrSnakeDoc/gradle-updater/internal/versions"
	"github.com/MrSnakeDoc/gradle-updater/internal/wrapper"
	"github.com/spf13/cobra"
)

// newHTTPClient builds the client used for the versions request.
var newHTTPClient = func(timeout time.Duration) service.HTTPClient {
	return service.NewHTTPClient(timeout)
}

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradle-updater",
		Short: "Update the Gradle wrapper to the latest version of a release stage",
		Long: `gradle-updater queries services.gradle.org for the latest Gradle version of a
release stage and runs the wrapper task twice, so both gradle-wrapper.properties
and the wrapper scripts end up on that version.

Inside GitHub Actions the stage comes from the "stage" input and the
"update_successful" output is set once the update succeeded.`,
		Example: `  gradle-updater --stage current
  gradle-updater --stage release-candidate --policy strict --dir ./app
  gradle-updater fetch nightly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), cfg, reporter.Detect())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return cmd
}

func runUpdate(ctx context.Context, cfg *config.Config, rep reporter.Reporter) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	fetcher, err := versions.NewFetcher(cfg.Endpoint, cfg.Policy, newHTTPClient(cfg.HTTPTimeout), rep)
	if err != nil {
		return err
	}

	w := wrapper.New(runner.ExecRunner{Dir: cfg.Dir, Out: logger.Out()}, cfg.Gradlew, 0)

	res, err := update.New(fetcher, w, rep, cfg.Dir).Execute(ctx, cfg.Stage)
	if err != nil {
		return err
	}

	if _, ok := rep.(*reporter.Console); ok {
		return renderSummary(res)
	}
	return nil
}

func renderSummary(res *update.Result) error {
	table := logger.CreateTable([]string{"Stage", "Version", "Broken", "Pinned before", "Pinned after", "Updated"})
	if err := table.Append([]string{
		res.Stage,
		orDash(res.Version),
		strconv.FormatBool(res.Broken),
		orDash(res.Previous),
		orDash(res.Current),
		strconv.FormatBool(res.Updated),
	}); err != nil {
		return err
	}
	return table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
