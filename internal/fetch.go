package internal

import (
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/gradle-updater/internal/config"
	"github.com/MrSnakeDoc/gradle-updater/internal/middleware"
	"github.com/MrSnakeDoc/gradle-updater/internal/reporter"
	"github.com/MrSnakeDoc/gradle-updater/internal/versions"
	"github.com/spf13/cobra"
)

func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [stage]",
		Short: "Print the latest version of a stage without touching the project",
		Example: `  gradle-updater fetch current
  gradle-updater fetch release-candidate --policy strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			rep := reporter.Detect()
			fetcher, err := versions.NewFetcher(cfg.Endpoint, cfg.Policy, newHTTPClient(cfg.HTTPTimeout), rep)
			if err != nil {
				return err
			}

			info, err := reporter.WithGroup(rep,
				fmt.Sprintf("Fetch the latest version of stage ‘%s’", cfg.Stage),
				func() (*versions.VersionInfo, error) {
					return fetcher.Latest(cmd.Context(), cfg.Stage)
				})
			if err != nil {
				return err
			}
			if info == nil {
				rep.Error("There is currently no up-to-date version on stage ‘%s’", cfg.Stage)
				return nil
			}

			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return cmd
}
