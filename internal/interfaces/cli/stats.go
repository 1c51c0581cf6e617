package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewStatsCmd returns the "stats" command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache and ML client statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()
			stats, err := cliCtx.Backend.Stats(ctx)
			if err != nil {
				return err
			}
			return PrintResult(cmd, stats)
		},
	}
}

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("missionctl %s (commit: %s, built: %s, %s)", b.Version, b.Commit, b.BuildDate, b.GoVersion)
}

// NewVersionCmd returns the "version" command. It needs no runtime.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{"runtime": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate, GoVersion: runtime.Version()}
			if cmd.Flag("output").Value.String() == FormatJSON {
				return printJSON(cmd, info)
			}
			return printText(cmd, info)
		},
	}
}

//Personal.AI order the ending
