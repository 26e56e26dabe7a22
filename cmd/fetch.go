package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"branchscope/internal/ui"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch updates from all configured remotes",
	Long:  `Fetch from every configured remote so remote-tracking branches reflect the upstream state.`,
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, err := newGitService(cfg)
	if err != nil {
		return err
	}

	if err := service.EnsureRemotes(cfg.Remotes); err != nil {
		return err
	}

	uiInstance := ui.NewUI(verboseFlag, quietFlag)

	names, err := service.RemoteNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		uiInstance.Warning("No remotes configured, nothing to fetch")
		return nil
	}
	uiInstance.VerbosePrintf("Fetching remotes: %s\n", strings.Join(names, ", "))

	uiInstance.StartProgress("Fetching remotes...")

	err = service.UpdateRemotes(cmd.Context())
	uiInstance.StopProgress(err == nil, "Remotes updated")

	return err
}
