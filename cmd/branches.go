package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"branchscope/internal/git"
	"branchscope/internal/ui"
)

var includeRemotes bool

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List branches of the repository",
	Long:  `List the local branches of the repository, optionally including remote-tracking branches.`,
	RunE:  runBranches,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
	addBranchListFlags(branchesCmd.Flags())
}

func addBranchListFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&includeRemotes, "remotes", "r", false, "Include remote-tracking branches")
}

func runBranches(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, err := newGitService(cfg)
	if err != nil {
		return err
	}

	branches, err := service.ListBranches(cmd.Context(), git.ListOptions{IncludeRemotes: includeRemotes})
	if err != nil {
		return err
	}

	if len(branches) == 0 {
		ui.ShowInfo("No branches found, the repository has no commits yet")
		return nil
	}

	table := ui.NewTable()
	table.AddHeader("Branch", "Commit", "")
	for _, branch := range branches {
		marker := ""
		switch {
		case branch.IsHead:
			marker = "current"
		case branch.IsRemote:
			marker = "remote"
		}
		short := branch.Hash
		if len(short) > 7 {
			short = short[:7]
		}
		table.AddRow(branch.Name, short, marker)
	}
	table.Render()

	return nil
}
