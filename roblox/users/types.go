package users

import "time"

// User represents a full public profile from the Users API
type User struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	DisplayName            string    `json:"displayName"`
	Description            string    `json:"description"`
	Created                time.Time `json:"created"`
	Banned                 bool      `json:"isBanned"`
	ExternalAppDisplayName string    `json:"externalAppDisplayName"`
	HasVerifiedBadge       bool      `json:"hasVerifiedBadge"`
}

// Label returns "DisplayName (@Name)" for display, collapsing to just
// "@Name" when the two are the same or the display name is unset.
func (u User) Label() string {
	if u.DisplayName == "" || u.DisplayName == u.Name {
		return "@" + u.Name
	}
	return u.DisplayName + " (@" + u.Name + ")"
}

// PartialUser is the compact identity shape the search and batch
// endpoints return
type PartialUser struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	HasVerifiedBadge bool   `json:"hasVerifiedBadge"`
}

// Label returns "DisplayName (@Name)" for display, collapsing to just
// "@Name" when the two are the same or the display name is unset.
func (u PartialUser) Label() string {
	if u.DisplayName == "" || u.DisplayName == u.Name {
		return "@" + u.Name
	}
	return u.DisplayName + " (@" + u.Name + ")"
}

// SearchResult is one search hit: a partial user plus the usernames the
// account previously held
type SearchResult struct {
	PartialUser
	PreviousUsernames []string `json:"previousUsernames"`
}

// resolvedUser is one entry of a batch lookup response.
// RequestedUsername echoes the name exactly as submitted; Name holds
// the canonical current username, which may differ in case or entirely
// when the account was renamed.
type resolvedUser struct {
	PartialUser
	RequestedUsername string `json:"requestedUsername"`
}

// dataList is the "data"-wrapped list shape most Users endpoints return.
type dataList[T any] struct {
	Data []T `json:"data"`
}

// legacyUserID is the PascalCase envelope of the legacy get-by-username
// endpoint.
type legacyUserID struct {
	ID int64 `json:"Id"`
}
