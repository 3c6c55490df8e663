package config

import "fmt"

// PaginationConfig holds paged search limits.
type PaginationConfig struct {
	// DefaultLimit is used when a request does not specify a limit.
	DefaultLimit int
	// MaxLimit caps the limit a request may ask for.
	MaxLimit int
}

// LoadPaginationConfigFromEnv loads pagination configuration from environment variables.
func LoadPaginationConfigFromEnv() PaginationConfig {
	return PaginationConfig{
		DefaultLimit: GetEnvInt("PAGE_DEFAULT_LIMIT", 20),
		MaxLimit:     GetEnvInt("PAGE_MAX_LIMIT", 100),
	}
}

// Validate validates pagination configuration.
func (c PaginationConfig) Validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("DefaultLimit must be greater than 0")
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("MaxLimit (%d) must not be less than DefaultLimit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// Clamp returns the effective limit for a requested one: zero selects the
// default and values above the maximum are capped.
func (c PaginationConfig) Clamp(limit int) int {
	switch {
	case limit == 0:
		return c.DefaultLimit
	case limit > c.MaxLimit:
		return c.MaxLimit
	default:
		return limit
	}
}
