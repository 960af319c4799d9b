package listview

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"entq/internal/domain/entity"
)

type Avatar struct {
	Name     string
	Initials string
}

func newAvatar(u *entity.User) *Avatar {
	if u == nil {
		return nil
	}

	return &Avatar{Name: u.FullName(), Initials: initials(u)}
}

func initials(u *entity.User) string {
	if u.Account == nil {
		return ""
	}

	var b strings.Builder
	for _, s := range []string{u.Account.FirstName, u.Account.LastName} {
		for _, r := range strings.TrimSpace(s) {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}

	return b.String()
}

type CommitSummary struct {
	Author    *Avatar
	Message   string
	CreatedAt time.Time
}

// Row is the rendered form of one entity. Nil pointers mean the part is
// absent and must not be drawn.
type Row struct {
	ID          entity.EntityID
	Name        string
	Link        string
	Description string
	LockedBy    *Avatar
	LockedAt    time.Time
	Version     string
	Commit      *CommitSummary
}

// EntityLink is the in-app path of an entity.
func EntityLink(appID string, id entity.EntityID) string {
	return fmt.Sprintf("/%s/entities/%s", appID, id)
}

func VersionLabel(v *entity.Version) string {
	if v == nil {
		return ""
	}

	return fmt.Sprintf("V%d", v.VersionNumber)
}

func NewRow(appID string, e *entity.Entity) *Row {
	r := &Row{
		ID:          e.ID,
		Name:        e.DisplayName,
		Link:        EntityLink(appID, e.ID),
		Description: e.Description,
		LockedBy:    newAvatar(e.LockedByUser),
	}
	if r.LockedBy != nil {
		r.LockedAt = e.LockedAt
	}

	v := e.LatestVersion()
	r.Version = VersionLabel(v)
	if v != nil && v.Commit != nil {
		r.Commit = &CommitSummary{
			Author:    newAvatar(v.Commit.User),
			Message:   v.Commit.Message,
			CreatedAt: v.Commit.CreatedAt,
		}
	}

	return r
}
