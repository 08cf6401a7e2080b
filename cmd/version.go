package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

// Version is overridden with -ldflags in release builds.
var Version = "0.9.0-dev"

var checkLatest bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the wish version.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fmt.Fprintln(cmd.OutOrStdout(), "wish", Version)

		if checkLatest {
			checkUpdate(cmd, Version)
		}

		return nil
	},
}

// checkUpdate reports a newer release if one exists. Network failures
// are silent, the version number above is the real answer.
func checkUpdate(cmd *cobra.Command, currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "wishshell",
		Repository: "wish",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return
	}

	if res.Outdated {
		fmt.Fprintf(cmd.OutOrStdout(), "A newer version is available: %s\n", res.Current)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check for a newer release on GitHub")
}
