// Package credentials resolves the remote API token from the environment or
// the OS keyring.
package credentials

import "fmt"

// Source indicates where the token was found
type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceNone    Source = "none"
)

// Token is a resolved API token together with its origin.
type Token struct {
	Value  string
	Source Source
}

// Resolve finds the remote API token using the priority order:
// 1. the configured environment variable
// 2. the OS keyring
func Resolve(envName string) (*Token, error) {
	if v := FromEnv(envName); v != "" {
		return &Token{Value: v, Source: SourceEnv}, nil
	}

	if IsKeyringAvailable() {
		v, err := FromKeyring()
		if err == nil && v != "" {
			return &Token{Value: v, Source: SourceKeyring}, nil
		}
	}

	return nil, fmt.Errorf("no remote API token found: set %s or store one with %q", envName, "listsync token set")
}
