package entity

import "context"

type MockCreator struct {
	Calls      []*CreateOptions
	Value      *Entity
	ErrorValue error
}

func (m *MockCreator) Create(ctx context.Context, o *CreateOptions) (*Entity, error) {
	m.Calls = append(m.Calls, o)
	if m.ErrorValue != nil {
		return nil, m.ErrorValue
	}
	if m.Value != nil {
		return m.Value, nil
	}

	return &Entity{ID: "new", Name: o.Name, DisplayName: o.DisplayName}, nil
}
