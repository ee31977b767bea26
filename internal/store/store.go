package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2"
)

const (
	// ServiceName identifies this application in the OS credential store.
	ServiceName = "gdocs"

	accountsKey       = "accounts"
	defaultAccountKey = "default_account"
	accountKeyPrefix  = "oauth_"
)

// ErrNotFound is returned when no token is stored for an account.
var ErrNotFound = errors.New("no stored credentials")

// StorageError wraps failures of the underlying secure store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("credential store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is a credential store for per-account OAuth token sets.
type Store struct {
	ring keyring.Keyring
}

// Open opens the OS credential store for this application.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	return &Store{ring: ring}, nil
}

// New wraps an existing keyring. Used by tests with the array backend.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

func accountKey(account string) string {
	return accountKeyPrefix + account
}

// Save persists the token set for an account and registers the account
// in the accounts list.
func (s *Store) Save(account string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	item := keyring.Item{
		Key:   accountKey(account),
		Data:  data,
		Label: fmt.Sprintf("%s OAuth token (%s)", ServiceName, account),
	}
	if err := s.ring.Set(item); err != nil {
		return &StorageError{Op: "set", Err: err}
	}

	return s.addAccount(account)
}

// Load retrieves the stored token set for an account.
// Returns ErrNotFound when the account has no stored token.
func (s *Store) Load(account string) (*oauth2.Token, error) {
	item, err := s.ring.Get(accountKey(account))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}

	var token oauth2.Token
	if err := json.Unmarshal(item.Data, &token); err != nil {
		return nil, fmt.Errorf("stored token for %s is corrupt: %w", account, err)
	}
	return &token, nil
}

// RawJSON returns the stored token set as its raw JSON encoding, for
// exporting credentials to a headless deployment.
func (s *Store) RawJSON(account string) (string, error) {
	item, err := s.ring.Get(accountKey(account))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", &StorageError{Op: "get", Err: err}
	}
	return string(item.Data), nil
}

// Has reports whether a token set is stored for the account.
func (s *Store) Has(account string) bool {
	_, err := s.ring.Get(accountKey(account))
	return err == nil
}

// Delete removes the stored token for an account, deregisters it and
// clears the default marker if it pointed at the account. Deleting an
// account with no stored token is not an error.
func (s *Store) Delete(account string) error {
	if err := s.ring.Remove(accountKey(account)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return &StorageError{Op: "remove", Err: err}
	}

	if err := s.removeAccount(account); err != nil {
		return err
	}

	def, err := s.DefaultAccount()
	if err != nil {
		return err
	}
	if def == account {
		if err := s.ring.Remove(defaultAccountKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return &StorageError{Op: "remove", Err: err}
		}
	}
	return nil
}

// ClearAll deletes every stored account and returns the emails removed.
func (s *Store) ClearAll() ([]string, error) {
	accounts, err := s.Accounts()
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if err := s.Delete(account); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

// Accounts lists all registered account emails.
// A missing or corrupt accounts list reads as empty.
func (s *Store) Accounts() ([]string, error) {
	item, err := s.ring.Get(accountsKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}

	var accounts []string
	if err := json.Unmarshal(item.Data, &accounts); err != nil {
		return nil, nil
	}
	return accounts, nil
}

// DefaultAccount returns the configured default account, or "" when no
// default has been set.
func (s *Store) DefaultAccount() (string, error) {
	item, err := s.ring.Get(defaultAccountKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Op: "get", Err: err}
	}
	return string(item.Data), nil
}

// SetDefaultAccount marks an account as the default for commands that
// don't name one explicitly.
func (s *Store) SetDefaultAccount(account string) error {
	item := keyring.Item{
		Key:  defaultAccountKey,
		Data: []byte(account),
	}
	if err := s.ring.Set(item); err != nil {
		return &StorageError{Op: "set", Err: err}
	}
	return nil
}

func (s *Store) addAccount(account string) error {
	accounts, err := s.Accounts()
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a == account {
			return nil
		}
	}
	accounts = append(accounts, account)
	return s.writeAccounts(accounts)
}

func (s *Store) removeAccount(account string) error {
	accounts, err := s.Accounts()
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a != account {
			kept = append(kept, a)
		}
	}
	return s.writeAccounts(kept)
}

func (s *Store) writeAccounts(accounts []string) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts list: %w", err)
	}
	if err := s.ring.Set(keyring.Item{Key: accountsKey, Data: data}); err != nil {
		return &StorageError{Op: "set", Err: err}
	}
	return nil
}
