// Package gov holds thin adapters for the public U.S. government REST
// APIs this tool fetches from. Each adapter knows its base URL, auth
// convention, query grammar, and pagination contract; everything else
// (retry, rate limiting, caching) lives in the fetch client.
package gov

import "fmt"

// MissingKeyError indicates a required API key was not configured.
type MissingKeyError struct {
	EnvVar string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s environment variable not set", e.EnvVar)
}
