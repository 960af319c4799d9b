package entity

import (
	"context"
	"errors"
	"testing"

	"entq/internal/errcodes"

	"github.com/stretchr/testify/assert"
)

func TestUser_FullName(t *testing.T) {
	t.Run("joins first and last name", func(t *testing.T) {
		u := &User{Account: &Account{FirstName: "Ada", LastName: "Lovelace"}}
		assert.Equal(t, "Ada Lovelace", u.FullName())
	})

	t.Run("tolerates missing parts", func(t *testing.T) {
		assert.Equal(t, "Ada", (&User{Account: &Account{FirstName: "Ada"}}).FullName())
		assert.Equal(t, "Lovelace", (&User{Account: &Account{LastName: "Lovelace"}}).FullName())
		assert.Equal(t, "", (&User{}).FullName())
		assert.Equal(t, "", (*User)(nil).FullName())
	})
}

func TestEntity_LatestVersion(t *testing.T) {
	t.Run("returns nil without versions", func(t *testing.T) {
		assert.Nil(t, (&Entity{}).LatestVersion())
	})

	t.Run("returns the first version", func(t *testing.T) {
		e := &Entity{Versions: []*Version{{VersionNumber: 4}, {VersionNumber: 3}}}
		assert.Equal(t, 4, e.LatestVersion().VersionNumber)
	})
}

func TestNaming(t *testing.T) {
	t.Run("derives names from display names", func(t *testing.T) {
		cases := map[string]string{
			"Customer":       "Customer",
			"customer order": "CustomerOrder",
			"order-item 2":   "OrderItem2",
			"2fa token":      "E2faToken",
			"  ":             "",
		}

		for in, out := range cases {
			assert.Equal(t, out, NameFromDisplayName(in), in)
		}
	})

	t.Run("pluralizes display names", func(t *testing.T) {
		cases := map[string]string{
			"Customer": "Customers",
			"Category": "Categories",
			"Day":      "Days",
			"Box":      "Boxes",
			"Address":  "Addresses",
			"Branch":   "Branches",
			"":         "",
		}

		for in, out := range cases {
			assert.Equal(t, out, Pluralize(in), in)
		}
	})
}

func TestCreateService_Create(t *testing.T) {
	t.Run("creates an entity with derived names", func(t *testing.T) {
		m := &MockCreator{}
		s := NewCreateService(m)

		e, err := s.Create(context.Background(), NewCreateOptions("app-1", " Customer order "))

		assert.NoError(t, err)
		assert.Equal(t, "CustomerOrder", e.Name)
		assert.Equal(t, &CreateOptions{
			AppID:             "app-1",
			DisplayName:       "Customer order",
			Name:              "CustomerOrder",
			PluralDisplayName: "Customer orders",
		}, m.Calls[0])
	})

	t.Run("fails without an application", func(t *testing.T) {
		s := NewCreateService(&MockCreator{})
		_, err := s.Create(context.Background(), NewCreateOptions("", "Customer"))
		assert.ErrorIs(t, err, errcodes.ErrMissingApplication)
	})

	t.Run("fails without a display name", func(t *testing.T) {
		m := &MockCreator{}
		s := NewCreateService(m)
		_, err := s.Create(context.Background(), NewCreateOptions("app-1", "  "))
		assert.ErrorIs(t, err, errcodes.ErrMissingDisplayName)
		assert.Empty(t, m.Calls)
	})

	t.Run("returns creator errors", func(t *testing.T) {
		vErr := errors.New("create failed")
		s := NewCreateService(&MockCreator{ErrorValue: vErr})
		_, err := s.Create(context.Background(), NewCreateOptions("app-1", "Customer"))
		assert.EqualError(t, err, vErr.Error())
	})
}
