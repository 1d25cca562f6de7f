package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service  = "salon-cli"
	tokenKey = "token"
)

// ErrNoToken is returned by LoadToken when nothing has been stored yet
var ErrNoToken = errors.New("no credential stored")

// SaveToken persists the credential in the OS keychain/credential manager
func SaveToken(token string) error {
	if err := keyring.Set(service, tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves the credential from the OS keychain/credential manager
func LoadToken() (string, error) {
	token, err := keyring.Get(service, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the credential from the OS keychain/credential manager
func DeleteToken() error {
	if err := keyring.Delete(service, tokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// TokenStore keeps the single credential string of the client.
// This allows us to mock the keyring in tests
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// keyringStore implements TokenStore using the OS keyring
type keyringStore struct{}

var Default TokenStore = &keyringStore{}

func (k *keyringStore) SaveToken(token string) error {
	return SaveToken(token)
}

func (k *keyringStore) LoadToken() (string, error) {
	return LoadToken()
}

func (k *keyringStore) DeleteToken() error {
	return DeleteToken()
}
