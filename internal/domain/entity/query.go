package entity

import (
	"strings"

	"entq/internal/errcodes"
)

const DefaultSortField = "displayName"

type SortDirection string

const (
	SortAsc  SortDirection = "Asc"
	SortDesc SortDirection = "Desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return SortAsc, nil
	case "desc", "descending":
		return SortDesc, nil
	}

	return "", errcodes.ErrUnknownSortDirection
}

// Opposite of Asc is Desc and vice versa. The unset direction counts as Asc.
func (d SortDirection) Opposite() SortDirection {
	if d == SortDesc {
		return SortAsc
	}

	return SortDesc
}

// SortSpec holds one sort field. Empty values mean unset.
type SortSpec struct {
	Field     string
	Direction SortDirection
}

func (s SortSpec) Normalize() SortSpec {
	if s.Field == "" {
		s.Field = DefaultSortField
	}
	if s.Direction == "" {
		s.Direction = SortAsc
	}

	return s
}

// OrderBy is a single-entry ordering. The wire form is {field: direction}.
type OrderBy struct {
	Field     string
	Direction SortDirection
}

func (o OrderBy) Map() map[string]interface{} {
	return map[string]interface{}{o.Field: string(o.Direction)}
}

type NameFilter struct {
	Contains        string
	CaseInsensitive bool
}

type QueryVariables struct {
	AppID     string
	OrderBy   OrderBy
	WhereName *NameFilter
}

// BuildQueryVariables derives the list query variables from the view state.
// An empty search phrase produces no name filter.
func BuildQueryVariables(appID string, sort SortSpec, search string) *QueryVariables {
	s := sort.Normalize()
	vars := &QueryVariables{
		AppID:   appID,
		OrderBy: OrderBy{Field: s.Field, Direction: s.Direction},
	}

	if search != "" {
		vars.WhereName = &NameFilter{Contains: search, CaseInsensitive: true}
	}

	return vars
}
