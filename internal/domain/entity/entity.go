package entity

import "time"

type EntityID string

type Account struct {
	FirstName string
	LastName  string
}

type User struct {
	ID      string
	Account *Account
}

// FullName is empty when the user has no account attached.
func (u *User) FullName() string {
	if u == nil || u.Account == nil {
		return ""
	}

	switch {
	case u.Account.FirstName == "":
		return u.Account.LastName
	case u.Account.LastName == "":
		return u.Account.FirstName
	}

	return u.Account.FirstName + " " + u.Account.LastName
}

type Commit struct {
	Message   string
	CreatedAt time.Time
	User      *User
}

type Version struct {
	VersionNumber int
	Commit        *Commit
}

type Entity struct {
	ID           EntityID
	Name         string
	DisplayName  string
	Description  string
	LockedByUser *User
	LockedAt     time.Time
	// Newest first. The list query asks for the latest version only.
	Versions []*Version
}

func (e *Entity) IsLocked() bool {
	return e.LockedByUser != nil
}

func (e *Entity) LatestVersion() *Version {
	if len(e.Versions) == 0 {
		return nil
	}

	return e.Versions[0]
}
