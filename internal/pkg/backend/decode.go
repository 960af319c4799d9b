package backend

import (
	"entq/internal/domain/entity"

	"github.com/tidwall/gjson"
)

func parseUser(value gjson.Result) *entity.User {
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}

	u := &entity.User{ID: value.Get("id").String()}
	if account := value.Get("account"); account.Exists() && account.Type != gjson.Null {
		u.Account = &entity.Account{
			FirstName: account.Get("firstName").String(),
			LastName:  account.Get("lastName").String(),
		}
	}

	return u
}

func parseCommit(value gjson.Result) *entity.Commit {
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}

	return &entity.Commit{
		Message:   value.Get("message").String(),
		CreatedAt: value.Get("createdAt").Time(),
		User:      parseUser(value.Get("user")),
	}
}

func parseEntity(value gjson.Result) *entity.Entity {
	e := &entity.Entity{
		ID:           entity.EntityID(value.Get("id").String()),
		Name:         value.Get("name").String(),
		DisplayName:  value.Get("displayName").String(),
		Description:  value.Get("description").String(),
		LockedByUser: parseUser(value.Get("lockedByUser")),
		LockedAt:     value.Get("lockedAt").Time(),
	}

	value.Get("versions").ForEach(func(_, v gjson.Result) bool {
		e.Versions = append(e.Versions, &entity.Version{
			VersionNumber: int(v.Get("versionNumber").Int()),
			Commit:        parseCommit(v.Get("commit")),
		})
		return true
	})

	return e
}
