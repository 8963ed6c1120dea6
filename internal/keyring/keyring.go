// Package keyring keeps ledger secrets in the OS keyring: the Postgres
// connection string and the generative AI API key.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/ledger/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(user, what, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
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

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, "connection string", connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser, "connection string")
}

// GetAPIKey retrieves the generative AI API key from the OS keyring.
func GetAPIKey() (string, error) {
	return get(constants.AIKeyringUser)
}

// SetAPIKey stores the generative AI API key in the OS keyring.
func SetAPIKey(key string) error {
	return set(constants.AIKeyringUser, "API key", strings.TrimSpace(key))
}

// DeleteAPIKey removes the generative AI API key from the OS keyring.
func DeleteAPIKey() error {
	return del(constants.AIKeyringUser, "API key")
}

// ResolveAPIKey returns the API key from the environment, falling back to the
// keyring. An empty string means no key is configured.
func ResolveAPIKey() string {
	if key := strings.TrimSpace(os.Getenv(constants.EnvGeminiAPIKey)); key != "" {
		return key
	}
	key, err := GetAPIKey()
	if err != nil {
		return ""
	}
	return key
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	// ErrNotFound means the keyring answered and is simply empty
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
