// Package tokenstore persists the portal auth token on disk. The token is an
// opaque credential owned by this store; the API client only ever holds a
// transient in-memory copy.
package tokenstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

// ErrNotFound is returned when no token has been saved yet
var ErrNotFound = errors.New("token not found")

// tokenKey is the fixed name the portal token is stored under
const tokenKey = "medport_token"

// record is the on-disk shape of one stored credential
type record struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store manages the encrypted token file
type Store struct {
	mu sync.RWMutex

	// path is where the credential file lives
	path string

	// masterKey is the AES key derived from the passphrase
	masterKey []byte

	records map[string]*record
}

// New creates a token store backed by the given file. The key is derived
// with PBKDF2; the fixed salt means this is at-rest obfuscation keyed to the
// application, not protection against a local attacker.
func New(path, passphrase string) (*Store, error) {
	salt := []byte("medport-token-store")
	masterKey := pbkdf2.Key([]byte(passphrase), salt, 100000, 32, sha256.New)

	s := &Store{
		path:      path,
		masterKey: masterKey,
		records:   make(map[string]*record),
	}

	if _, err := os.Stat(path); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("load token store: %w", err)
		}
	}

	return s, nil
}

// Save stores the auth token, replacing any previous value
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := s.encrypt(token)
	if err != nil {
		return fmt.Errorf("encrypt token: %w", err)
	}

	s.records[tokenKey] = &record{
		Value:     encrypted,
		UpdatedAt: time.Now(),
	}

	if err := s.save(); err != nil {
		return fmt.Errorf("save token store: %w", err)
	}
	return nil
}

// Load returns the persisted auth token, or ErrNotFound when none exists
func (s *Store) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[tokenKey]
	if !exists {
		return "", ErrNotFound
	}

	token, err := s.decrypt(rec.Value)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	return token, nil
}

// Delete removes the persisted token. Deleting an absent token is not an
// error; logout must be idempotent.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[tokenKey]; !exists {
		return nil
	}
	delete(s.records, tokenKey)

	if err := s.save(); err != nil {
		return fmt.Errorf("save token store: %w", err)
	}
	return nil
}

// encrypt encrypts a value using AES-GCM
func (s *Store) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a value using AES-GCM
func (s *Store) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// save writes the credential file with restricted permissions
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// load reads the credential file
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.records)
}
