package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Archasion/arlox/roblox"
)

// newTestClient builds a Users client whose every endpoint family
// points at the supplied test server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	rbx := roblox.NewClient(zerolog.Nop(), roblox.WithEndpoints(roblox.EndpointSet{
		Base:  server.URL,
		Auth:  server.URL,
		Users: server.URL,
	}))
	return NewClient(rbx, zerolog.Nop())
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/users/156", r.URL.Path)

		w.Write([]byte(`{
			"description": "Welcome to the Roblox profile!",
			"created": "2006-02-27T21:06:40.3Z",
			"isBanned": false,
			"externalAppDisplayName": null,
			"hasVerifiedBadge": true,
			"id": 156,
			"name": "builderman",
			"displayName": "builderman"
		}`))
	}))

	user, err := client.Fetch(context.Background(), 156)
	require.NoError(t, err)

	assert.Equal(t, int64(156), user.ID)
	assert.Equal(t, "builderman", user.Name)
	assert.Equal(t, "builderman", user.DisplayName)
	assert.Equal(t, "Welcome to the Roblox profile!", user.Description)
	assert.True(t, user.HasVerifiedBadge)
	assert.False(t, user.Banned)
	assert.Equal(t, 2006, user.Created.Year())
}

func TestFetchInvalidIDMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":3,"message":"The user id is invalid.","userFacingMessage":"Something went wrong"}]}`))
	}))

	_, err := client.Fetch(context.Background(), 0)
	require.Error(t, err)

	var apiErr *roblox.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "The user id is invalid.", apiErr.Message)
	assert.Equal(t, 3, apiErr.Code)
}

func TestPartial(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/261", r.URL.Path)
		w.Write([]byte(`{"id":261,"name":"Shedletsky","displayName":"Shedletsky","hasVerifiedBadge":true}`))
	}))

	user, err := client.Partial(context.Background(), 261)
	require.NoError(t, err)
	assert.Equal(t, int64(261), user.ID)
	assert.Equal(t, "Shedletsky", user.Name)
	assert.True(t, user.HasVerifiedBadge)
}

func TestAuthenticated(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/authenticated", r.URL.Path)
		w.Write([]byte(`{"id":42,"name":"someone","displayName":"Someone"}`))
	}))

	user, err := client.Authenticated(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
}

func TestAuthenticatedWithoutSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"code":0,"message":"Authorization has been denied for this request."}]}`))
	}))

	_, err := client.Authenticated(context.Background())
	require.Error(t, err)

	var apiErr *roblox.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestIDByUsername(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/get-by-username", r.URL.Path)
		assert.Equal(t, "builderman", r.URL.Query().Get("username"))

		// Legacy endpoint, legacy casing.
		w.Write([]byte(`{"Id":156,"Username":"builderman"}`))
	}))

	id, err := client.IDByUsername(context.Background(), "builderman")
	require.NoError(t, err)
	assert.Equal(t, int64(156), id)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/search", r.URL.Path)
		assert.Equal(t, "builder", r.URL.Query().Get("keyword"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"previousPageCursor":null,"nextPageCursor":"eyJ","data":[
			{"previousUsernames":["bob"],"hasVerifiedBadge":true,"id":156,"name":"builderman","displayName":"builderman"},
			{"previousUsernames":[],"hasVerifiedBadge":false,"id":9999,"name":"builderfan","displayName":"Fan"}
		]}`))
	}))

	results, err := client.Search(context.Background(), "builder", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "builderman", results[0].Name)
	assert.Equal(t, []string{"bob"}, results[0].PreviousUsernames)
	assert.True(t, results[0].HasVerifiedBadge)
	assert.Empty(t, results[1].PreviousUsernames)
}

func TestFetchMany(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"userIds":[156,261,1],"excludeBannedUsers":true}`, string(body))

		// ID 1 is omitted: the API silently drops unknown users.
		w.Write([]byte(`{"data":[
			{"hasVerifiedBadge":true,"id":156,"name":"builderman","displayName":"builderman"},
			{"hasVerifiedBadge":true,"id":261,"name":"Shedletsky","displayName":"Shedletsky"}
		]}`))
	}))

	names, err := client.FetchMany(context.Background(), []int64{156, 261, 1}, true)
	require.NoError(t, err)

	assert.Equal(t, map[int64]string{
		156: "builderman",
		261: "Shedletsky",
	}, names)
}

func TestFindMany(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/usernames/users", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"usernames":["BUILDERMAN","ghost","renamed_user"],"excludeBannedUsers":false}`, string(body))

		w.Write([]byte(`{"data":[
			{"requestedUsername":"BUILDERMAN","hasVerifiedBadge":true,"id":156,"name":"builderman","displayName":"builderman"},
			{"requestedUsername":"renamed_user","hasVerifiedBadge":false,"id":777,"name":"brand_new_name","displayName":"X"}
		]}`))
	}))

	ids, err := client.FindMany(context.Background(), []string{"BUILDERMAN", "ghost", "renamed_user"}, false)
	require.NoError(t, err)

	// Keys follow the requested spelling, and unknown names are absent.
	assert.Equal(t, map[string]int64{
		"BUILDERMAN":   156,
		"renamed_user": 777,
	}, ids)
}

func TestUsernameHistory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/4445/username-history", r.URL.Path)
		w.Write([]byte(`{"data":["older_name","oldest_name"]}`))
	}))

	history, err := client.UsernameHistory(context.Background(), 4445)
	require.NoError(t, err)
	assert.Equal(t, []string{"older_name", "oldest_name"}, history)
}

func TestFetchProfiles(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/v1/users/"), 10, 64)
		require.NoError(t, err)

		json.NewEncoder(w).Encode(User{
			ID:      id,
			Name:    fmt.Sprintf("user-%d", id),
			Created: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}))

	ids := []int64{101, 102, 103, 104, 105}
	profiles, err := client.FetchProfiles(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, profiles, len(ids))

	// Input order survives the concurrent fan-out.
	for i, id := range ids {
		assert.Equal(t, id, profiles[i].ID)
		assert.Equal(t, fmt.Sprintf("user-%d", id), profiles[i].Name)
	}
}

func TestFetchProfilesPropagatesFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/users/404" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"code":3,"message":"The user id is invalid."}]}`))
			return
		}
		w.Write([]byte(`{"id":1,"name":"ok","displayName":"ok"}`))
	}))

	_, err := client.FetchProfiles(context.Background(), []int64{1, 404, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user 404")

	var apiErr *roblox.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestFetchProfilesEmptyInput(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	profiles, err := client.FetchProfiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, profiles)
}

func TestPartialUserLabel(t *testing.T) {
	tests := []struct {
		name string
		user PartialUser
		want string
	}{
		{
			name: "distinct display name",
			user: PartialUser{Name: "builderman", DisplayName: "Builder"},
			want: "Builder (@builderman)",
		},
		{
			name: "matching display name collapses",
			user: PartialUser{Name: "builderman", DisplayName: "builderman"},
			want: "@builderman",
		},
		{
			name: "missing display name",
			user: PartialUser{Name: "builderman"},
			want: "@builderman",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.Label())
		})
	}
}
