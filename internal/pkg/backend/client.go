package backend

import (
	"context"

	"entq/internal/domain/entity"
	"entq/internal/domain/gitsync"
	"entq/internal/pkg/graphql"

	"github.com/tidwall/gjson"
)

type transport interface {
	Do(ctx context.Context, req *graphql.Request) (gjson.Result, error)
}

// Client speaks the backend's GraphQL schema. It serves both the list
// query and the mutations.
type Client struct {
	t transport
}

type ClientOptions struct {
	URL   string
	Token string
}

func New(o *ClientOptions) (*Client, error) {
	t, err := graphql.New(&graphql.ClientOptions{
		Endpoint: o.URL,
		Token:    o.Token,
	})
	if err != nil {
		return nil, err
	}

	return &Client{t: t}, nil
}

func entitiesVariables(vars *entity.QueryVariables) map[string]interface{} {
	v := map[string]interface{}{
		"id":      vars.AppID,
		"orderBy": vars.OrderBy.Map(),
	}

	if vars.WhereName != nil {
		filter := map[string]interface{}{"contains": vars.WhereName.Contains}
		if vars.WhereName.CaseInsensitive {
			filter["mode"] = "Insensitive"
		}
		v["whereName"] = filter
	}

	return v
}

func (c *Client) List(ctx context.Context, vars *entity.QueryVariables) ([]*entity.Entity, error) {
	data, err := c.t.Do(ctx, &graphql.Request{
		OperationName: "getEntities",
		Query:         getEntitiesQuery,
		Variables:     entitiesVariables(vars),
	})
	if err != nil {
		return nil, err
	}

	var entities []*entity.Entity
	data.Get("entities").ForEach(func(_, value gjson.Result) bool {
		entities = append(entities, parseEntity(value))
		return true
	})

	return entities, nil
}

func (c *Client) Create(ctx context.Context, o *entity.CreateOptions) (*entity.Entity, error) {
	data, err := c.t.Do(ctx, &graphql.Request{
		OperationName: "createEntity",
		Query:         createEntityMutation,
		Variables: map[string]interface{}{
			"data": map[string]interface{}{
				"displayName":       o.DisplayName,
				"name":              o.Name,
				"pluralDisplayName": o.PluralDisplayName,
				"app": map[string]interface{}{
					"connect": map[string]interface{}{"id": o.AppID},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return parseEntity(data.Get("createOneEntity")), nil
}

func (c *Client) EnableSync(ctx context.Context, o *gitsync.EnableOptions) (*gitsync.Status, error) {
	var branch interface{}
	if o.GithubBranch != nil {
		branch = *o.GithubBranch
	}

	data, err := c.t.Do(ctx, &graphql.Request{
		OperationName: "appEnableSyncWithGithubRepo",
		Query:         enableSyncMutation,
		Variables: map[string]interface{}{
			"githubRepo":   o.GithubRepo,
			"githubBranch": branch,
			"appId":        o.AppID,
		},
	})
	if err != nil {
		return nil, err
	}

	app := data.Get("appEnableSyncWithGithubRepo")
	return &gitsync.Status{
		AppID:        app.Get("id").String(),
		SyncEnabled:  app.Get("githubSyncEnabled").Bool(),
		GithubRepo:   app.Get("githubRepo").String(),
		GithubBranch: app.Get("githubBranch").String(),
	}, nil
}
