package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"entq/internal/domain/gitsync"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://api.github.com"
	pageSize       = 100
	// Stops pagination on accounts with very many repositories.
	maxPages = 10
)

var ErrMissingGithubToken = errors.New("github token is missing")

type ClientOptions struct {
	Token string
	// Owner is a user or organization. Empty lists the token user's own
	// repositories.
	Owner   string
	BaseURL string
	HTTP    *resty.Client
}

type Client struct {
	token   string
	owner   string
	baseURL string
	rc      *resty.Client
}

func New(o *ClientOptions) (*Client, error) {
	if o.Token == "" {
		return nil, ErrMissingGithubToken
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rc := o.HTTP
	if rc == nil {
		rc = resty.New()
	}

	return &Client{
		token:   o.Token,
		owner:   o.Owner,
		baseURL: strings.TrimRight(baseURL, "/"),
		rc:      rc,
	}, nil
}

type ghError struct {
	Message string `json:"message"`
}

func (c *Client) reposURL() string {
	if c.owner == "" {
		return fmt.Sprintf("%s/user/repos", c.baseURL)
	}

	return fmt.Sprintf("%s/users/%s/repos", c.baseURL, c.owner)
}

func (c *Client) getPage(ctx context.Context, page int) ([]*gitsync.Repository, error) {
	r, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetHeader("Accept", "application/vnd.github+json").
		SetQueryParam("per_page", fmt.Sprint(pageSize)).
		SetQueryParam("page", fmt.Sprint(page)).
		SetQueryParam("sort", "updated").
		SetError(&ghError{}).
		Get(c.reposURL())
	if err != nil {
		return nil, err
	}
	if r.IsError() {
		if e, ok := r.Error().(*ghError); ok && e.Message != "" {
			return nil, fmt.Errorf("github: %s (%d)", e.Message, r.StatusCode())
		}
		return nil, errors.New(string(r.Body()))
	}

	var repos []*gitsync.Repository
	gjson.ParseBytes(r.Body()).ForEach(func(key, value gjson.Result) bool {
		repos = append(repos, &gitsync.Repository{
			FullName:      value.Get("full_name").String(),
			Description:   value.Get("description").String(),
			Private:       value.Get("private").Bool(),
			DefaultBranch: value.Get("default_branch").String(),
		})

		return true
	})

	return repos, nil
}

// ListRepositories walks the pages until a short page is returned.
func (c *Client) ListRepositories(ctx context.Context) ([]*gitsync.Repository, error) {
	var all []*gitsync.Repository
	for page := 1; page <= maxPages; page++ {
		repos, err := c.getPage(ctx, page)
		if err != nil {
			log.WithError(err).WithField("page", page).Error("could not list github repositories")
			return nil, err
		}
		all = append(all, repos...)
		if len(repos) < pageSize {
			break
		}
	}

	log.WithField("count", len(all)).Debug("listed github repositories")

	return all, nil
}
