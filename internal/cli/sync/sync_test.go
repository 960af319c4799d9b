package sync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"entq/internal/cli/paramutils"
	"entq/internal/domain/gitsync"
	"entq/internal/errcodes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noOrigin(t *testing.T) {
	old := getGithubRepository
	getGithubRepository = func() (string, error) { return "", errors.New("no remote") }
	t.Cleanup(func() { getGithubRepository = old })
}

func Test_fillSyncCmdParams(t *testing.T) {
	t.Run("takes the repository argument", func(t *testing.T) {
		params := &syncCmdParams{}
		err := fillSyncCmdParams(&paramutils.MockFlagSet{}, []string{"org/repo"}, params)
		require.NoError(t, err)
		assert.Equal(t, &syncCmdParams{Repository: "org/repo"}, params)
	})

	t.Run("uses the checked out branch", func(t *testing.T) {
		old := getCurrentBranch
		defer func() { getCurrentBranch = old }()
		getCurrentBranch = func() (string, error) { return "feature", nil }

		params := &syncCmdParams{}
		err := fillSyncCmdParams(&paramutils.MockFlagSet{StringMap: map[string]interface{}{
			"current-branch": true,
		}}, nil, params)
		require.NoError(t, err)
		assert.Equal(t, "feature", params.Branch)
	})

	t.Run("explicit branch wins", func(t *testing.T) {
		params := &syncCmdParams{}
		err := fillSyncCmdParams(&paramutils.MockFlagSet{StringMap: map[string]interface{}{
			"branch":         "main",
			"current-branch": true,
		}}, nil, params)
		require.NoError(t, err)
		assert.Equal(t, "main", params.Branch)
	})
}

func Test_resolveRepository(t *testing.T) {
	t.Run("validates the argument", func(t *testing.T) {
		_, err := resolveRepository(context.Background(), &syncCmdParams{Repository: "repo"}, nil)
		assert.ErrorIs(t, err, errcodes.ErrRepositoryMustBeInFormOwnerRepo)
	})

	t.Run("falls back to the origin remote", func(t *testing.T) {
		old := getGithubRepository
		defer func() { getGithubRepository = old }()
		getGithubRepository = func() (string, error) { return "org/origin", nil }

		r, err := resolveRepository(context.Background(), &syncCmdParams{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "org/origin", r.FullName)
	})

	t.Run("fails without origin and lister", func(t *testing.T) {
		noOrigin(t)

		_, err := resolveRepository(context.Background(), &syncCmdParams{}, nil)
		assert.ErrorIs(t, err, errcodes.ErrMissingRepository)
	})

	t.Run("prompts among listed repositories", func(t *testing.T) {
		noOrigin(t)
		old := promptSelect
		defer func() { promptSelect = old }()
		var offered []string
		promptSelect = func(message string, options []string) (string, error) {
			offered = options
			return "org/b", nil
		}

		r, err := resolveRepository(context.Background(), &syncCmdParams{}, &gitsync.MockRepositoryLister{
			Value: []*gitsync.Repository{{FullName: "org/a"}, {FullName: "org/b", DefaultBranch: "main"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"org/a", "org/b"}, offered)
		assert.Equal(t, "main", r.DefaultBranch)
	})

	t.Run("returns lister errors", func(t *testing.T) {
		noOrigin(t)
		vErr := errors.New("list err")

		_, err := resolveRepository(context.Background(), &syncCmdParams{}, &gitsync.MockRepositoryLister{ErrorValue: vErr})
		assert.EqualError(t, err, vErr.Error())
	})
}

func Test_execute(t *testing.T) {
	t.Run("enables sync with a null branch", func(t *testing.T) {
		m := &gitsync.MockEnabler{}
		out := &bytes.Buffer{}

		err := execute(context.Background(), gitsync.NewHandler("app-1", m), nil, &syncCmdParams{Repository: "org/repo"}, out)

		require.NoError(t, err)
		require.Len(t, m.Calls, 1)
		assert.Equal(t, &gitsync.EnableOptions{AppID: "app-1", GithubRepo: "org/repo"}, m.Calls[0])
		assert.Equal(t, "Sync enabled: org/repo (main)\n", out.String())
	})

	t.Run("reports mutation failures", func(t *testing.T) {
		vErr := errors.New("denied")
		m := &gitsync.MockEnabler{ErrorValue: vErr}

		err := execute(context.Background(), gitsync.NewHandler("app-1", m), nil, &syncCmdParams{Repository: "org/repo"}, &bytes.Buffer{})

		assert.ErrorIs(t, err, vErr)
		assert.False(t, errcodes.IsBestEffort(err))
	})
}
