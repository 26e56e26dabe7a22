package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"branchscope/internal/git"
	"branchscope/internal/ui"
	"branchscope/pkg/models"
)

var (
	sourceBranch string
	targetBranch string
	commitLimit  int
	fetchFirst   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two branches",
	Long: `Compare a source branch against a target branch: show the commits
reachable from each side and not the other. Branches are picked
interactively when not given as flags.`,
	RunE: runCompareBranches,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&sourceBranch, "source", "s", "", "Source branch (interactive prompt when omitted)")
	compareCmd.Flags().StringVarP(&targetBranch, "target", "t", "", "Target branch (interactive prompt when omitted)")
	compareCmd.Flags().IntVarP(&commitLimit, "limit", "n", 20, "Maximum commits to list per side (0 = all)")
	compareCmd.Flags().BoolVar(&fetchFirst, "fetch", false, "Fetch remotes before comparing")
	addBranchListFlags(compareCmd.Flags())
}

func runCompareBranches(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, err := newGitService(cfg)
	if err != nil {
		return err
	}

	uiInstance := ui.NewUI(verboseFlag, quietFlag)

	if fetchFirst {
		uiInstance.StartProgress("Fetching remotes...")
		err := service.UpdateRemotes(cmd.Context())
		uiInstance.StopProgress(err == nil, "Remotes updated")
		if err != nil {
			return err
		}
	}

	source, target, err := pickBranches(cmd, cfg, service)
	if err != nil {
		return err
	}
	uiInstance.VerbosePrintf("Comparing %s against %s in %s\n", source, target, git.ExtractRepoName(service.Path()))

	comparison, err := service.Compare(cmd.Context(), source, target)
	if err != nil {
		return err
	}

	displayComparison(uiInstance, comparison)
	return nil
}

// pickBranches resolves source and target from flags, configured defaults,
// or an interactive selector
func pickBranches(cmd *cobra.Command, cfg *models.Config, service *git.Service) (string, string, error) {
	source := sourceBranch
	target := targetBranch

	if source == "" && cfg.Repository.DefaultSource != "" && !cmd.Flags().Changed("source") {
		source = cfg.Repository.DefaultSource
	}
	if target == "" && cfg.Repository.DefaultTarget != "" && !cmd.Flags().Changed("target") {
		target = cfg.Repository.DefaultTarget
	}

	if source != "" && target != "" {
		return source, target, nil
	}

	branches, err := service.ListBranches(cmd.Context(), git.ListOptions{IncludeRemotes: includeRemotes})
	if err != nil {
		return "", "", err
	}

	if source == "" {
		source, err = ui.SelectBranch("Select source branch:", branches)
		if err != nil {
			return "", "", err
		}
	}
	if target == "" {
		remaining := make([]models.Branch, 0, len(branches))
		for _, b := range branches {
			if b.Name != source {
				remaining = append(remaining, b)
			}
		}
		target, err = ui.SelectBranch("Select target branch:", remaining)
		if err != nil {
			return "", "", err
		}
	}

	return source, target, nil
}

func displayComparison(uiInstance *ui.UI, comparison *models.Comparison) {
	visualizer := ui.NewVisualizer(true)

	ui.ShowHeader("Branch Comparison")
	uiInstance.Printf("Source: %s\nTarget: %s\n\n", comparison.Source, comparison.Target)

	if comparison.InSync() {
		uiInstance.Success("Branches are in sync, no unique commits on either side.")
		return
	}

	uiInstance.Println(visualizer.DisplaySummaryTable(comparison))

	title := fmt.Sprintf("Commits only on %s (%d)", comparison.Source, comparison.AheadCount())
	uiInstance.Println(visualizer.DisplayCommitList(title, comparison.Ahead, commitLimit))

	title = fmt.Sprintf("Commits only on %s (%d)", comparison.Target, comparison.BehindCount())
	uiInstance.Println(visualizer.DisplayCommitList(title, comparison.Behind, commitLimit))
}
