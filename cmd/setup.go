package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"branchscope/internal/config"
	"branchscope/internal/ui"
	"branchscope/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initial configuration setup",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println("Setting up branchscope...")
	fmt.Println()

	// Check if config already exists
	if config.Exists() {
		overwrite, err := ui.ConfirmPrompt("Configuration already exists. Do you want to overwrite it?", false)
		if err != nil {
			return err
		}
		if !overwrite {
			ui.ShowWarning("Setup cancelled, existing configuration kept")
			return nil
		}
	}

	cfg := &models.Config{}

	wd, _ := os.Getwd()
	repoQs := []*survey.Question{
		{
			Name: "path",
			Prompt: &survey.Input{
				Message: "Repository path:",
				Default: wd,
			},
			Validate: survey.Required,
		},
		{
			Name: "defaultsource",
			Prompt: &survey.Input{
				Message: "Default source branch (optional):",
			},
		},
		{
			Name: "defaulttarget",
			Prompt: &survey.Input{
				Message: "Default target branch (optional):",
				Default: "main",
			},
		},
	}
	if err := survey.Ask(repoQs, &cfg.Repository); err != nil {
		return err
	}

	providerName, err := ui.Select("Hosting provider:", []string{"azure-devops", "github", "gitlab", "other"})
	if err != nil {
		return err
	}
	cfg.Provider.Name = providerName

	cfg.Provider.PullRequestURL, err = ui.Input(
		"Pull request URL template (use %d for the id):",
		defaultPullRequestTemplate(providerName),
		"Example: https://github.com/org/repo/pull/%d",
	)
	if err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", config.GetConfigFile())
	return nil
}

// defaultPullRequestTemplate suggests a template per provider; the host and
// project segments still need the user's own values
func defaultPullRequestTemplate(provider string) string {
	switch provider {
	case "azure-devops":
		return "https://dev.azure.com/org/project/_git/repo/pullrequest/%d"
	case "github":
		return "https://github.com/org/repo/pull/%d"
	case "gitlab":
		return "https://gitlab.com/org/repo/-/merge_requests/%d"
	default:
		return ""
	}
}
