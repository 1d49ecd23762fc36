package session

import (
	"encoding/json"
	"fmt"

	"github.com/99designs/keyring"

	"jobportal-client/internal/models"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// KeyringStorage persists the session in the OS keyring, falling back to an
// encrypted file backend on headless hosts.
type KeyringStorage struct {
	ring keyring.Keyring
}

// OpenKeyring opens the system keyring for the given service name.
func OpenKeyring(serviceName, fileDir string) (*KeyringStorage, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(serviceName + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &KeyringStorage{ring: ring}, nil
}

func (s *KeyringStorage) Token() string {
	item, err := s.ring.Get(keyToken)
	if err != nil {
		return ""
	}
	return string(item.Data)
}

func (s *KeyringStorage) User() (models.User, bool) {
	item, err := s.ring.Get(keyUser)
	if err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(item.Data, &user); err != nil {
		return models.User{}, false
	}
	return user, true
}

func (s *KeyringStorage) Save(user models.User, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializing identity: %w", err)
	}

	if err := s.ring.Set(keyring.Item{Key: keyToken, Data: []byte(token)}); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}
	if err := s.ring.Set(keyring.Item{Key: keyUser, Data: data}); err != nil {
		return fmt.Errorf("storing identity: %w", err)
	}
	return nil
}

func (s *KeyringStorage) Clear() error {
	if err := s.ring.Remove(keyToken); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing credential: %w", err)
	}
	if err := s.ring.Remove(keyUser); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing identity: %w", err)
	}
	return nil
}
