package credentials

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for listsync keyring entries
	KeyringService = "listsync"
	// KeyringUser is the account entry holding the remote API token
	KeyringUser = "remote-token"
)

// StoreInKeyring saves the remote API token in the OS keyring.
func StoreInKeyring(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := keyring.Set(KeyringService, KeyringUser, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// FromKeyring retrieves the remote API token from the OS keyring.
func FromKeyring() (string, error) {
	token, err := keyring.Get(KeyringService, KeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no token stored in keyring")
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

// DeleteFromKeyring removes the stored token.
func DeleteFromKeyring() error {
	if err := keyring.Delete(KeyringService, KeyringUser); err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// IsKeyringAvailable probes whether an OS keyring backend is usable.
func IsKeyringAvailable() bool {
	_, err := keyring.Get(KeyringService, "availability-probe")
	return err == nil || err == keyring.ErrNotFound
}
