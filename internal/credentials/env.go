package credentials

import "os"

// DefaultTokenEnv is the environment variable consulted when the config does
// not name one.
const DefaultTokenEnv = "LISTSYNC_REMOTE_TOKEN"

// FromEnv retrieves the token from the named environment variable.
func FromEnv(name string) string {
	if name == "" {
		name = DefaultTokenEnv
	}
	return os.Getenv(name)
}
