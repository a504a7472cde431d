// Package env reads process environment variables with fallbacks, for the
// few settings resolved before envconfig parses the MEDSTOCK_ block.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
