package clientutils

import (
	"entq/internal/errcodes"
	"entq/internal/pkg/backend"
	"entq/internal/pkg/github"

	"github.com/spf13/viper"
)

type ClientFactory struct{}

// Backend builds the GraphQL client. A non-empty endpoint overrides
// server.url.
func (cf ClientFactory) Backend(v *viper.Viper, endpoint string) (*backend.Client, error) {
	if endpoint == "" {
		endpoint = v.GetString("server.url")
	}
	if endpoint == "" {
		return nil, errcodes.ErrMissingServerURL
	}

	token := v.GetString("server.token")
	if token == "" {
		return nil, errcodes.ErrMissingServerToken
	}

	return backend.New(&backend.ClientOptions{URL: endpoint, Token: token})
}

// Github returns nil without error when no github token is configured; the
// repository picker is then unavailable.
func (cf ClientFactory) Github(v *viper.Viper) (*github.Client, error) {
	token := v.GetString("github.token")
	if token == "" {
		return nil, nil
	}

	return github.New(&github.ClientOptions{
		Token: token,
		Owner: v.GetString("github.owner"),
	})
}
