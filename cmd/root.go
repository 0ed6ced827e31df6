// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"net/http"
	"os"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-browser/internal/config"
	"github.com/naka-gawa/repo-browser/internal/gateway"
	"github.com/naka-gawa/repo-browser/internal/usecase"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "repo-browser",
	Short: "Browse a GitHub account's repositories and their commits.",
	Long: `repo-browser lists the repositories of a fixed GitHub account and, on demand,
the commit history of one of them. Results are rendered as HTML fragments,
either served to a browser page or printed to standard output.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP(config.KeyVerbose, "v", false, "Enable verbose/debug logging")
	flags.StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	flags.StringP(config.KeyUser, "u", config.DefaultUser, "GitHub account whose repositories are browsed")
	flags.String(config.KeyAPIURL, config.DefaultAPIURL, "Base URL of the GitHub REST API")
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "Timeout of each GitHub API request")
}

// loadConfig resolves the settings of cmd: flags, then REPO_BROWSER_* variables,
// then the config file, then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}
	return config.Load(v)
}

func newLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(new(logrus.TextFormatter))
	logger.SetLevel(logrus.InfoLevel)
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// setup loads the configuration and injects the dependencies of the browser.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, *usecase.Browser, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	githubGateway, err := gateway.NewGitHubGateway(cfg.APIURL, &http.Client{Timeout: cfg.Timeout}, logger)
	if err != nil {
		return nil, nil, nil, errors.WithMessage(err, "failed to create GitHub gateway")
	}
	logger.WithFields(logrus.Fields{"user": cfg.User, "api": cfg.APIURL}).Debug("Configuration loaded.")
	return cfg, logger, usecase.NewBrowser(githubGateway, cfg.User, logger), nil
}
