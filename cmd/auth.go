package cmd

import (
	"github.com/spf13/cobra"

	"branchscope/internal/git"
	"branchscope/internal/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored credentials for remotes",
}

var authSetCmd = &cobra.Command{
	Use:   "set <host>",
	Short: "Store a personal access token for a host in the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSet,
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove <host>",
	Short: "Remove a stored token for a host",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthRemove,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authRemoveCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	host := args[0]

	token, err := ui.Password("Personal access token:", "Used for HTTPS fetches against "+host)
	if err != nil {
		return err
	}

	if err := git.NewAuthManager().StoreToken(host, token); err != nil {
		return err
	}

	ui.ShowSuccess("Token stored for " + host)
	return nil
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	host := args[0]

	if err := git.NewAuthManager().DeleteToken(host); err != nil {
		return err
	}

	ui.ShowSuccess("Token removed for " + host)
	return nil
}
