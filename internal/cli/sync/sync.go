package sync

import (
	"context"
	"fmt"
	"io"

	"entq/internal/cli/paramutils"
	"entq/internal/cli/utils"
	"entq/internal/clientutils"
	"entq/internal/domain/gitsync"
	"entq/internal/persistance"

	"github.com/spf13/cobra"
)

func runCmd(cmd *cobra.Command, args []string) error {
	flags := paramutils.NewFlagRepo(cmd.Flags())
	v, err := utils.LoadConfig(cmd)
	if err != nil {
		return err
	}

	app, err := utils.ResolveApp(flags, v, persistance.GetRepo())
	if err != nil {
		return err
	}

	params := &syncCmdParams{}
	if err := fillSyncCmdParams(flags, args, params); err != nil {
		return err
	}

	c, err := clientutils.ClientFactory{}.Backend(v, app.Endpoint)
	if err != nil {
		return err
	}

	gh, err := clientutils.ClientFactory{}.Github(v)
	if err != nil {
		return err
	}

	var lister gitsync.RepositoryLister
	if gh != nil {
		lister = gh
	}

	return execute(cmd.Context(), gitsync.NewHandler(app.AppID, c), lister, params, cmd.OutOrStdout())
}

func execute(
	ctx context.Context,
	h *gitsync.Handler,
	lister gitsync.RepositoryLister,
	params *syncCmdParams,
	out io.Writer,
) error {
	repo, err := resolveRepository(ctx, params, lister)
	if err != nil {
		return err
	}

	status, err := h.EnableOnBranch(ctx, repo, params.Branch)
	if err != nil {
		return err
	}

	branch := status.GithubBranch
	if branch == "" {
		branch = "default branch"
	}
	fmt.Fprintf(out, "Sync enabled: %s (%s)\n", status.GithubRepo, branch)

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [owner/repo]",
		Short: "Enable GitHub sync",
		Long: `Links the application to a GitHub repository. Without an argument the
repository is taken from the origin of the current directory, or picked
from the repositories the configured GitHub token can see.`,
		Args: cobra.MaximumNArgs(1),
		Run:  utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().StringP("branch", "b", "", "branch to sync with (default: the repository's default branch)")
	cmd.Flags().Bool("current-branch", false, "sync with the checked out branch")

	return cmd
}
