package gitsync

import (
	"context"
	"strings"

	"entq/internal/errcodes"

	"github.com/rs/zerolog/log"
)

const opEnableSync = "enable github sync"

// Repository is an external GitHub repository offered for selection.
type Repository struct {
	FullName      string
	Description   string
	Private       bool
	DefaultBranch string
}

func ParseFullName(s string) (*Repository, error) {
	v := strings.Split(s, "/")
	if len(v) != 2 || v[0] == "" || v[1] == "" {
		return nil, errcodes.ErrRepositoryMustBeInFormOwnerRepo
	}

	return &Repository{FullName: s}, nil
}

type EnableOptions struct {
	AppID      string
	GithubRepo string
	// Nil lets the backend pick the repository default branch.
	GithubBranch *string
}

type Status struct {
	AppID        string
	SyncEnabled  bool
	GithubRepo   string
	GithubBranch string
}

type Enabler interface {
	EnableSync(ctx context.Context, o *EnableOptions) (*Status, error)
}

// RepositoryLister lists the repositories a user can pick from.
type RepositoryLister interface {
	ListRepositories(ctx context.Context) ([]*Repository, error)
}

// Handler turns the selection of an external repository into a sync
// enable mutation for one application.
type Handler struct {
	appID   string
	enabler Enabler
	onDone  func(*Status)
	onError func(error)
}

type HandlerOption func(*Handler)

// WithCompleted registers a callback for successful mutations.
func WithCompleted(fn func(*Status)) HandlerOption {
	return func(h *Handler) { h.onDone = fn }
}

// WithFailed registers an observer for dropped failures. It receives the
// best-effort error after it was logged.
func WithFailed(fn func(error)) HandlerOption {
	return func(h *Handler) { h.onError = fn }
}

func NewHandler(appID string, e Enabler, opts ...HandlerOption) *Handler {
	h := &Handler{appID: appID, enabler: e}
	for _, o := range opts {
		o(h)
	}

	return h
}

// resolved fills in a status for an enabler that reported success without
// one.
func resolved(status *Status, o *EnableOptions) *Status {
	if status != nil {
		return status
	}

	s := &Status{AppID: o.AppID, SyncEnabled: true, GithubRepo: o.GithubRepo}
	if o.GithubBranch != nil {
		s.GithubBranch = *o.GithubBranch
	}

	return s
}

func (h *Handler) options(repo *Repository) *EnableOptions {
	return &EnableOptions{
		AppID:        h.appID,
		GithubRepo:   repo.FullName,
		GithubBranch: nil,
	}
}

// OnRepositorySelected is best-effort: failures are logged and never
// returned.
func (h *Handler) OnRepositorySelected(ctx context.Context, repo *Repository) {
	o := h.options(repo)
	status, err := h.enabler.EnableSync(ctx, o)
	if err != nil {
		oe := errcodes.NewBestEffortError(opEnableSync, err)
		log.Error().
			Err(oe).
			Str("app", h.appID).
			Str("repository", repo.FullName).
			Msg("github sync was not enabled")
		if h.onError != nil {
			h.onError(oe)
		}
		return
	}
	status = resolved(status, o)

	log.Info().
		Str("app", h.appID).
		Str("repository", status.GithubRepo).
		Msg("github sync enabled")
	if h.onDone != nil {
		h.onDone(status)
	}
}

// Enable runs the same mutation as a required operation.
func (h *Handler) Enable(ctx context.Context, repo *Repository) (*Status, error) {
	return h.EnableOnBranch(ctx, repo, "")
}

// EnableOnBranch is Enable with an explicit branch. An empty branch is
// sent as null.
func (h *Handler) EnableOnBranch(ctx context.Context, repo *Repository, branch string) (*Status, error) {
	if h.appID == "" {
		return nil, errcodes.ErrMissingApplication
	}

	o := h.options(repo)
	if branch != "" {
		o.GithubBranch = &branch
	}

	status, err := h.enabler.EnableSync(ctx, o)
	if err != nil {
		return nil, errcodes.NewRequiredError(opEnableSync, err)
	}

	return resolved(status, o), nil
}
