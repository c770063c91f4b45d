// Package keyring stores gamttori secrets in the OS keyring: the database
// connection string for remote backends and the API session token.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/gamttori/gamttori/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, what, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString returns ErrNotFound if nothing is stored.
func GetConnectionString() (string, error) { return get(constants.DefaultKeyringUser) }

func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, "connection string", connStr)
}

func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser, "connection string")
}

// GetToken returns the bearer token saved by the last login.
func GetToken() (string, error) { return get(constants.KeyringTokenUser) }

func SetToken(token string) error {
	return set(constants.KeyringTokenUser, "token", token)
}

// DeleteToken is a no-op when no token is stored.
func DeleteToken() error {
	if err := del(constants.KeyringTokenUser, "token"); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// IsAvailable is a best-effort probe: a not-found answer still means the
// keyring service responded.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
