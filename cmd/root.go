package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"branchscope/internal/config"
	"branchscope/internal/git"
	"branchscope/internal/ui"
	"branchscope/pkg/models"
)

var (
	repoFlag    string
	verboseFlag bool
	quietFlag   bool

	rootCmd = &cobra.Command{
		Use:   "branchscope",
		Short: "Compare branches of a Git repository",
		Long: `Branchscope - A CLI tool for comparing two Git branches: list branches,
show the commits unique to each side, refresh remotes, and build
pull-request links for your hosting provider.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Path to the Git repository (overrides configured path)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")
}

func initConfig() {
	if configFile := os.Getenv("BRANCHSCOPE_CONFIG"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".branchscope"))
		}
	}

	// A missing config file is okay, setup creates it on demand
	_ = viper.ReadInConfig()
}

// loadConfig reads the yaml configuration, then overlays whatever viper
// picked up. Since viper searches the working directory first, a
// project-local config.yaml overrides the user-level one.
func loadConfig() (*models.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if v := viper.GetString("repository.path"); v != "" {
		cfg.Repository.Path = v
	}
	if v := viper.GetString("repository.default_source"); v != "" {
		cfg.Repository.DefaultSource = v
	}
	if v := viper.GetString("repository.default_target"); v != "" {
		cfg.Repository.DefaultTarget = v
	}
	if v := viper.GetString("provider.name"); v != "" {
		cfg.Provider.Name = v
	}
	if v := viper.GetString("provider.pull_request_url"); v != "" {
		cfg.Provider.PullRequestURL = v
	}

	return cfg, nil
}

// resolveRepoPath picks the repository path: flag, then config, then the
// current directory
func resolveRepoPath(cfg *models.Config) string {
	if repoFlag != "" {
		return repoFlag
	}
	if cfg.Repository.Path != "" {
		return cfg.Repository.Path
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// newGitService opens the resolved repository
func newGitService(cfg *models.Config) (*git.Service, error) {
	return git.NewService(resolveRepoPath(cfg), cfg.Provider)
}
