package gitutils

import (
	"regexp"

	"entq/internal/pkg/fs"

	"github.com/pkg/errors"
)

var (
	ErrCannotGetLocalRepository = errors.New("cannot get local repository")
	ErrNoGithubRemote           = errors.New("no github remote found")
)

var (
	sshRemote   = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)
	httpsRemote = regexp.MustCompile(`^https?://(?:[^@/]+@)?github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

var getWorkingDir = func(fs fs.Filesystem) (string, error) {
	return fs.Getwd()
}

var openLocalRepo = func() (gitRepository, error) {
	wd, err := getWorkingDir(fs.OS{})
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	r, err := openRepo(wd)
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	return &repository{r: r}, nil
}

// ParseGithubRemote extracts "owner/repo" from an SSH or HTTPS GitHub
// remote URL.
func ParseGithubRemote(uri string) (string, bool) {
	for _, r := range []*regexp.Regexp{sshRemote, httpsRemote} {
		if m := r.FindStringSubmatch(uri); len(m) == 3 {
			return m[1] + "/" + m[2], true
		}
	}

	return "", false
}

func githubRepoFrom(r gitRepository) (string, error) {
	urls, err := r.GetRemoteURLs()
	if err != nil {
		return "", err
	}

	for _, u := range urls {
		if name, ok := ParseGithubRemote(u); ok {
			return name, nil
		}
	}

	return "", ErrNoGithubRemote
}

// GetGithubRepository returns the first GitHub remote of the working
// directory's repository as "owner/repo".
func GetGithubRepository() (string, error) {
	r, err := openLocalRepo()
	if err != nil {
		return "", err
	}

	return githubRepoFrom(r)
}

func GetCurrentBranch() (string, error) {
	r, err := openLocalRepo()
	if err != nil {
		return "", err
	}

	return r.GetCheckedOutBranchShortName()
}
