package entity

import (
	"context"
	"strings"

	"entq/internal/errcodes"
)

type Lister interface {
	List(ctx context.Context, vars *QueryVariables) ([]*Entity, error)
}

type Creator interface {
	Create(ctx context.Context, o *CreateOptions) (*Entity, error)
}

type CreateOptions struct {
	AppID             string
	DisplayName       string
	Name              string
	PluralDisplayName string
}

// NewCreateOptions fills the derived names from displayName.
func NewCreateOptions(appID, displayName string) *CreateOptions {
	displayName = strings.TrimSpace(displayName)
	return &CreateOptions{
		AppID:             appID,
		DisplayName:       displayName,
		Name:              NameFromDisplayName(displayName),
		PluralDisplayName: Pluralize(displayName),
	}
}

type CreateService struct {
	creator Creator
}

func NewCreateService(c Creator) *CreateService {
	return &CreateService{c}
}

func (cs *CreateService) Create(ctx context.Context, o *CreateOptions) (*Entity, error) {
	if o.AppID == "" {
		return nil, errcodes.ErrMissingApplication
	}
	if o.DisplayName == "" || o.Name == "" {
		return nil, errcodes.ErrMissingDisplayName
	}

	return cs.creator.Create(ctx, o)
}
