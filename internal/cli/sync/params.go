package sync

import (
	"context"

	"entq/internal/cli/paramutils"
	"entq/internal/cli/utils"
	"entq/internal/domain/gitsync"
	"entq/internal/errcodes"
	"entq/internal/gitutils"
)

type syncCmdParams struct {
	Repository string
	Branch     string
}

var (
	getGithubRepository = gitutils.GetGithubRepository
	getCurrentBranch    = gitutils.GetCurrentBranch
	promptSelect        = utils.PromptSelect
)

func fillSyncCmdParams(flags paramutils.FlagRepo, args []string, params *syncCmdParams) error {
	params.Repository = paramutils.ParseIDArg(args)
	params.Branch = flags.GetStringOrDefault("branch", "")

	if params.Branch == "" && flags.GetBoolOrDefault("current-branch", false) {
		b, err := getCurrentBranch()
		if err != nil {
			return err
		}
		params.Branch = b
	}

	return nil
}

// resolveRepository takes the explicit repository, then the origin of the
// working directory, then asks the user to pick one when a lister is
// available.
func resolveRepository(
	ctx context.Context,
	params *syncCmdParams,
	lister gitsync.RepositoryLister,
) (*gitsync.Repository, error) {
	if params.Repository != "" {
		return gitsync.ParseFullName(params.Repository)
	}

	if name, err := getGithubRepository(); err == nil {
		return gitsync.ParseFullName(name)
	}

	if lister == nil {
		return nil, errcodes.ErrMissingRepository
	}

	repos, err := lister.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, errcodes.ErrMissingRepository
	}

	options := make([]string, 0, len(repos))
	for _, r := range repos {
		options = append(options, r.FullName)
	}

	answer, err := promptSelect("GitHub repository", options)
	if err != nil {
		return nil, err
	}

	for _, r := range repos {
		if r.FullName == answer {
			return r, nil
		}
	}

	return nil, errcodes.ErrMissingRepository
}
