package server

import "strconv"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitKB caps request bodies accepted by the API.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"512"`
}

// IsValidPort reports whether Port is a usable TCP port number.
func (c Config) IsValidPort() bool {
	p, err := strconv.Atoi(c.Port)
	return err == nil && p > 0 && p <= 65535
}

// Addr returns the listen address for fiber.
func (c Config) Addr() string {
	return ":" + c.Port
}

// BodyLimit returns the body limit in bytes, falling back to fiber's 4MB default.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitKB * 1024
}
