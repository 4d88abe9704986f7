// Package roblox provides the authenticated HTTP core shared by every
// Roblox web API package in this module.
//
// The Roblox web API is split across several hosts (auth.roblox.com,
// users.roblox.com, the legacy api.roblox.com) but they all share one
// credential model and one error envelope. This package owns both: it
// holds the session state and exposes a typed dispatcher that endpoint
// packages build on.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: session state cell plus the dispatch pipeline
//   - Session: immutable header/transport pairs swapped atomically
//   - Request: a declarative description of one API call
//   - Errors: sentinel values and structured API errors
//
// # Authentication
//
// Roblox authenticates with a .ROBLOSECURITY cookie, but state-changing
// endpoints additionally require an anti-forgery token that the API only
// hands out in response headers. Authenticate issues a throwaway logout
// call purely to harvest that token, then installs a session carrying
// both credentials as default headers:
//
//	client := roblox.NewClient(logger)
//	if err := client.Authenticate(ctx, cookie); err != nil {
//		log.Fatal(err)
//	}
//
// A client starts anonymous and can be returned to that state at any
// time with Deauthenticate. Both transitions are atomic with respect to
// in-flight requests.
//
// # Dispatch
//
// Endpoint packages describe calls as Request values and decode typed
// responses through Do:
//
//	user, err := roblox.Do[User](ctx, client, roblox.Request{
//		Method: http.MethodGet,
//		URL:    client.Endpoints().Users + "/v1/users/156",
//	})
//
// Do classifies every outcome: transport failures are returned wrapped,
// 2xx bodies are decoded into the caller's type, and anything else is
// normalized into an *APIError built from the service's error envelope.
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrInvalidCookie: the authentication probe rejected the cookie
//   - ErrCSRFTokenMissing: the probe response carried no token
//   - APIError: structured non-success responses with status codes
//   - DecodeError: a success response whose body did not match
//
// API errors include helper methods for classification:
//
//	var apiErr *roblox.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// handle missing resource
//	}
package roblox
