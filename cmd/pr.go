package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"branchscope/internal/git"
	"branchscope/pkg/errors"
)

var prCmd = &cobra.Command{
	Use:   "pr <id>",
	Short: "Print the pull-request URL for an id",
	Long:  `Format the configured provider pull-request template with the given numeric id.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPullRequest,
}

func init() {
	rootCmd.AddCommand(prCmd)
}

func runPullRequest(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "Pull request id must be a number").
			WithContext("argument", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url, err := git.FormatPullRequestURL(cfg.Provider.PullRequestURL, id)
	if err != nil {
		return err
	}

	fmt.Println(url)
	return nil
}
