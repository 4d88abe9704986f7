package roblox

import (
	"sync"

	"github.com/rs/zerolog"
)

const defaultUserAgent = "arlox"

// Client represents a handle on the Roblox web API. It owns the session
// state and the dispatch pipeline that every endpoint package routes
// through. A Client is safe for concurrent use.
type Client struct {
	endpoints EndpointSet
	userAgent string
	logger    zerolog.Logger

	mu      sync.RWMutex
	session *session
}

// NewClient creates a new anonymous client against the production API.
// Call Authenticate to attach credentials.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		endpoints: DefaultEndpoints(),
		userAgent: defaultUserAgent,
		logger:    logger,
		session:   anonymousSession(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Endpoints returns the API base URLs this client targets. Endpoint
// packages build request URLs from these rather than hard-coding hosts.
func (c *Client) Endpoints() EndpointSet {
	return c.endpoints
}

// currentSession snapshots the session pointer. Sessions are immutable
// once installed, so the snapshot stays coherent even if a swap lands
// while a request built from it is still in flight.
func (c *Client) currentSession() *session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// swapSession atomically installs a new session.
func (c *Client) swapSession(next *session) {
	c.mu.Lock()
	c.session = next
	c.mu.Unlock()
}
