package roblox

// EndpointSet holds the base URLs for the Roblox API host families this
// module talks to. Production values come from DefaultEndpoints; tests
// point individual families at local servers via WithEndpoints.
type EndpointSet struct {
	// Base is the legacy api.roblox.com family. Only username
	// resolution still lives here.
	Base string
	// Auth is the authentication family. The token probe posts here.
	Auth string
	// Users is the modern users.roblox.com family.
	Users string
}

// DefaultEndpoints returns the production Roblox API base URLs.
func DefaultEndpoints() EndpointSet {
	return EndpointSet{
		Base:  "https://api.roblox.com",
		Auth:  "https://auth.roblox.com",
		Users: "https://users.roblox.com",
	}
}
