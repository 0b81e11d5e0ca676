package cmd

import (
	"context"
	"os"

	"github.com/google/go-github/v66/github"
	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/logger"
	"github.com/rasperon/portfolio/service"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Personal portfolio with the most starred github repositories",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path of the toml config file (default config/config.toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reposCmd)
}

// Execute runs the command line, exiting with a non zero status on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// setup loads the configuration, configures the logger and builds the github client and rate limiter
func setup(ctx context.Context) (*config.Config, *github.Client, *rate.Limiter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Warning("unable to load configuration, using defaults")
		cfg = config.GetDefault()
		cfg.ApplyEnv()
	}

	// configure logger
	logger.Setup(*cfg)

	// setup github client
	// we do here and pass the client to Github service to easily improve tests with mock client
	githubClient, err := service.NewGithubClient(ctx, *cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, githubClient, service.NewRateLimiter(ctx, githubClient), nil
}
