package gitsync

import "context"

type MockEnabler struct {
	Calls      []*EnableOptions
	ErrorValue error
	// NoStatus makes a successful call return a nil status.
	NoStatus bool
}

func (m *MockEnabler) EnableSync(ctx context.Context, o *EnableOptions) (*Status, error) {
	m.Calls = append(m.Calls, o)
	if m.ErrorValue != nil {
		return nil, m.ErrorValue
	}
	if m.NoStatus {
		return nil, nil
	}

	branch := "main"
	if o.GithubBranch != nil {
		branch = *o.GithubBranch
	}

	return &Status{
		AppID:        o.AppID,
		SyncEnabled:  true,
		GithubRepo:   o.GithubRepo,
		GithubBranch: branch,
	}, nil
}

type MockRepositoryLister struct {
	Calls      int
	Value      []*Repository
	ErrorValue error
}

func (m *MockRepositoryLister) ListRepositories(ctx context.Context) ([]*Repository, error) {
	m.Calls++
	if m.ErrorValue != nil {
		return nil, m.ErrorValue
	}

	return m.Value, nil
}
