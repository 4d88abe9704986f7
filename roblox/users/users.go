// Package users covers the Roblox Users API family: profile lookups,
// username resolution in both directions, search, and name history.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Archasion/arlox/roblox"
)

// maxProfileFetches bounds the fan-out of FetchProfiles.
const maxProfileFetches = 10

// Client wraps the Users API endpoints
type Client struct {
	rbx    *roblox.Client
	logger zerolog.Logger
}

// NewClient creates a new Users API client on top of the shared core
func NewClient(rbx *roblox.Client, logger zerolog.Logger) *Client {
	return &Client{
		rbx:    rbx,
		logger: logger,
	}
}

// Fetch retrieves the full public profile for a user ID
func (c *Client) Fetch(ctx context.Context, id int64) (*User, error) {
	user, err := roblox.Do[User](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/users/%d", c.rbx.Endpoints().Users, id),
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Partial retrieves just the identity fields for a user ID. It hits the
// same endpoint as Fetch and simply decodes less.
func (c *Client) Partial(ctx context.Context, id int64) (*PartialUser, error) {
	user, err := roblox.Do[PartialUser](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/users/%d", c.rbx.Endpoints().Users, id),
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticated retrieves the identity behind the client's session
// cookie. Without an authenticated session the API answers 401.
func (c *Client) Authenticated(ctx context.Context) (*PartialUser, error) {
	user, err := roblox.Do[PartialUser](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    c.rbx.Endpoints().Users + "/v1/users/authenticated",
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IDByUsername resolves a single username through the legacy lookup
// endpoint.
func (c *Client) IDByUsername(ctx context.Context, username string) (int64, error) {
	query := url.Values{"username": {username}}

	res, err := roblox.Do[legacyUserID](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/users/get-by-username?%s", c.rbx.Endpoints().Base, query.Encode()),
	})
	if err != nil {
		return 0, err
	}
	return res.ID, nil
}

// Search finds users whose names match the keyword. The API caps limit
// at preset page sizes; values outside them are rejected server-side.
func (c *Client) Search(ctx context.Context, keyword string, limit int) ([]SearchResult, error) {
	query := url.Values{
		"keyword": {keyword},
		"limit":   {strconv.Itoa(limit)},
	}

	res, err := roblox.Do[dataList[SearchResult]](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/users/search?%s", c.rbx.Endpoints().Users, query.Encode()),
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("keyword", keyword).
		Int("results", len(res.Data)).
		Msg("User search complete")

	return res.Data, nil
}

// FetchMany resolves user IDs to their current usernames in one round
// trip. IDs the API does not recognize are simply absent from the
// result; with excludeBanned set, banned accounts are dropped too.
func (c *Client) FetchMany(ctx context.Context, ids []int64, excludeBanned bool) (map[int64]string, error) {
	payload := struct {
		UserIDs            []int64 `json:"userIds"`
		ExcludeBannedUsers bool    `json:"excludeBannedUsers"`
	}{
		UserIDs:            ids,
		ExcludeBannedUsers: excludeBanned,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	res, err := roblox.Do[dataList[PartialUser]](ctx, c.rbx, roblox.Request{
		Method: http.MethodPost,
		URL:    c.rbx.Endpoints().Users + "/v1/users",
		Header: jsonHeader(),
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(res.Data))
	for _, user := range res.Data {
		names[user.ID] = user.Name
	}

	c.logger.Debug().
		Int("requested", len(ids)).
		Int("resolved", len(names)).
		Msg("Batch username lookup complete")

	return names, nil
}

// FindMany resolves usernames to user IDs in one round trip. Keys of
// the result are the names as requested, not the canonical casing the
// API reports, so callers can index by their own input. Unknown names
// are absent from the result.
func (c *Client) FindMany(ctx context.Context, usernames []string, excludeBanned bool) (map[string]int64, error) {
	payload := struct {
		Usernames          []string `json:"usernames"`
		ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
	}{
		Usernames:          usernames,
		ExcludeBannedUsers: excludeBanned,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	res, err := roblox.Do[dataList[resolvedUser]](ctx, c.rbx, roblox.Request{
		Method: http.MethodPost,
		URL:    c.rbx.Endpoints().Users + "/v1/usernames/users",
		Header: jsonHeader(),
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int64, len(res.Data))
	for _, user := range res.Data {
		key := user.RequestedUsername
		if key == "" {
			key = user.Name
		}
		ids[key] = user.ID
	}

	c.logger.Debug().
		Int("requested", len(usernames)).
		Int("resolved", len(ids)).
		Msg("Batch ID lookup complete")

	return ids, nil
}

// UsernameHistory lists the previous usernames of a user, most recent
// first.
func (c *Client) UsernameHistory(ctx context.Context, id int64) ([]string, error) {
	res, err := roblox.Do[dataList[string]](ctx, c.rbx, roblox.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/users/%d/username-history", c.rbx.Endpoints().Users, id),
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// FetchProfiles retrieves full profiles for a set of user IDs
// concurrently. The result preserves input order. Any failed lookup
// fails the whole call; remaining fetches are cancelled.
func (c *Client) FetchProfiles(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxProfileFetches)

	profiles := make([]User, len(ids))
	for i, id := range ids {
		g.Go(func() error {
			user, err := c.Fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("user %d: %w", id, err)
			}
			profiles[i] = *user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("count", len(profiles)).
		Msg("Fetched user profiles")

	return profiles, nil
}

func jsonHeader() http.Header {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return header
}
