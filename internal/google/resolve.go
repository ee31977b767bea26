package google

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdocs-cli/gdocs/internal/store"
)

// AccountEnvVar names the environment variable that selects the account
// when no --account flag is given.
const AccountEnvVar = "GDOCS_ACCOUNT"

// ErrNoAccountConfigured is returned when no accounts are stored and an
// operation requires one.
var ErrNoAccountConfigured = errors.New("no accounts configured")

// AccountNotFoundError is returned when a requested account is not in
// the credential store.
type AccountNotFoundError struct {
	Account   string
	Available []string
}

func (e *AccountNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("account %q not found", e.Account)
	}
	return fmt.Sprintf("account %q not found (available: %s)", e.Account, strings.Join(e.Available, ", "))
}

// ResolveAccount decides which account a command runs as.
//
// Priority order:
//  1. Explicit --account flag
//  2. GDOCS_ACCOUNT environment variable
//  3. Configured default account
//  4. First stored account
func ResolveAccount(st *store.Store, explicit string) (string, error) {
	accounts, err := st.Accounts()
	if err != nil {
		return "", err
	}

	if explicit != "" {
		if !contains(accounts, explicit) {
			return "", &AccountNotFoundError{Account: explicit, Available: accounts}
		}
		return explicit, nil
	}

	if env := os.Getenv(AccountEnvVar); env != "" {
		if !contains(accounts, env) {
			return "", &AccountNotFoundError{Account: env, Available: accounts}
		}
		return env, nil
	}

	def, err := st.DefaultAccount()
	if err != nil {
		return "", err
	}
	if def != "" && contains(accounts, def) {
		return def, nil
	}

	if len(accounts) > 0 {
		return accounts[0], nil
	}

	return "", ErrNoAccountConfigured
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
