package roblox

// Option configures a Client.
type Option func(*Client)

// WithEndpoints points the client at an alternative set of API base
// URLs. Tests use this to aim individual host families at local servers.
func WithEndpoints(endpoints EndpointSet) Option {
	return func(c *Client) {
		if endpoints.Base != "" {
			c.endpoints.Base = endpoints.Base
		}
		if endpoints.Auth != "" {
			c.endpoints.Auth = endpoints.Auth
		}
		if endpoints.Users != "" {
			c.endpoints.Users = endpoints.Users
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}
