package roblox

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
)

const (
	// csrfTokenHeader is the anti-forgery header the API expects on
	// state-changing requests and returns on the logout probe.
	csrfTokenHeader = "X-CSRF-TOKEN"

	// probePath is the logout endpoint used to harvest a token. The
	// call is a credential probe, not an actual logout.
	probePath = "/v2/logout"
)

// session is one immutable transport configuration: the default headers
// applied to every request plus the HTTP client that carries them. A
// session is never modified after it is installed on a Client, so a
// dispatch that snapshotted it keeps a coherent credential view even
// while a swap is in progress.
type session struct {
	header http.Header
	client *http.Client
}

// anonymousSession returns the configuration a client starts with and
// returns to after Deauthenticate: no default headers, no cookie jar.
func anonymousSession() *session {
	return &session{
		header: make(http.Header),
		client: &http.Client{},
	}
}

// authenticatedSession builds the configuration installed by a
// successful Authenticate: the raw cookie and the derived anti-forgery
// token as default headers, plus a cookie jar so responses can rotate
// stored cookies across the session's lifetime.
func authenticatedSession(cookie, token string) (*session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	header := make(http.Header)
	header.Set("Cookie", cookie)
	header.Set(csrfTokenHeader, token)

	return &session{
		header: header,
		client: &http.Client{Jar: jar},
	}, nil
}

// Authenticate establishes an authenticated session from a raw
// .ROBLOSECURITY cookie string. The cookie is sent verbatim as the
// Cookie header; callers own any formatting.
//
// A cookie alone is not enough to act on an account: state-changing
// endpoints also demand an anti-forgery token, and the API only hands
// that out in response headers. Authenticate therefore posts a probe to
// the logout endpoint purely to harvest a fresh token. The probe result
// is judged loosely: a 403 still carries a usable token and counts as
// success, while any other non-2xx status means the cookie itself was
// rejected and yields ErrInvalidCookie. A qualifying response without
// the token header yields ErrCSRFTokenMissing.
//
// On success the client's session is atomically replaced with one whose
// default headers carry both credentials. Requests already in flight
// finish on the previous session; a failed Authenticate leaves the
// previous session untouched.
func (c *Client) Authenticate(ctx context.Context, cookie string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Auth+probePath, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("Cookie", cookie)
	req.Header.Set("User-Agent", c.userAgent)

	// The probe runs on a fresh transport rather than the held session
	// so it cannot inherit credentials from a previous login.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("authentication probe failed: %w", err)
	}
	defer resp.Body.Close()

	if !statusSuccess(resp.StatusCode) && resp.StatusCode != http.StatusForbidden {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Msg("Authentication probe rejected cookie")
		return ErrInvalidCookie
	}

	token := resp.Header.Get(csrfTokenHeader)
	if token == "" {
		return ErrCSRFTokenMissing
	}

	next, err := authenticatedSession(cookie, token)
	if err != nil {
		return err
	}
	c.swapSession(next)

	c.logger.Debug().Msg("Authenticated Roblox session installed")
	return nil
}

// Deauthenticate discards any stored credentials and returns the client
// to its anonymous configuration. It performs no network round trip and
// cannot fail; calling it on an anonymous client is a no-op.
func (c *Client) Deauthenticate() {
	c.swapSession(anonymousSession())
	c.logger.Debug().Msg("Session reset to anonymous")
}
