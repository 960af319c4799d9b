package gitutils

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

type goGitRepository interface {
	Head() (*plumbing.Reference, error)
	Remotes() ([]*git.Remote, error)
}

type gitRepository interface {
	GetRemoteURLs() ([]string, error)
	GetCheckedOutBranchShortName() (string, error)
}

type repository struct {
	r goGitRepository
}

var openRepo = func(path string) (goGitRepository, error) {
	return OpenRepoRecursively(path)
}

// OpenRepoRecursively opens the repository at input or at the closest
// parent directory that holds one.
func OpenRepoRecursively(input string) (*git.Repository, error) {
	dir := input
	for {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			return repo, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || parent == "." {
			break
		}
		dir = parent
	}

	return nil, fmt.Errorf("could not open a repository at %s or above", input)
}

func (r *repository) GetRemoteURLs() ([]string, error) {
	var repoURLs []string
	remotes, err := r.r.Remotes()
	if err != nil {
		return nil, err
	}

	for _, re := range remotes {
		repoURLs = append(repoURLs, re.Config().URLs...)
	}

	return repoURLs, nil
}

func (r *repository) GetCheckedOutBranchShortName() (string, error) {
	headRef, err := r.r.Head()
	if err != nil {
		return "", err
	}

	return headRef.Name().Short(), nil
}
