package cmd

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-browser/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Prints a rendered HTML fragment to standard output",
}

var renderRepositoriesCmd = &cobra.Command{
	Use:   "repositories",
	Short: "Prints the repository list fragment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, browser, err := setup(cmd)
		if err != nil {
			return err
		}
		renderer, err := render.New()
		if err != nil {
			return err
		}

		repos, err := browser.Repositories(cmd.Context())
		if err != nil {
			logger.WithError(err).Error("Repository list not rendered")
			return err
		}

		// Rendered in full before anything reaches stdout.
		var buf bytes.Buffer
		if err := renderer.RepositoryList(&buf, repos); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

var renderCommitsCmd = &cobra.Command{
	Use:   "commits <repository>",
	Short: "Prints the commit list fragment of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, browser, err := setup(cmd)
		if err != nil {
			return err
		}
		renderer, err := render.New()
		if err != nil {
			return err
		}

		commits, err := browser.Commits(cmd.Context(), args[0])
		if err != nil {
			logger.WithError(err).WithField("repo", args[0]).Error("Commit list not rendered")
			return err
		}

		var buf bytes.Buffer
		if err := renderer.CommitList(&buf, commits); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.AddCommand(renderRepositoriesCmd, renderCommitsCmd)
}
