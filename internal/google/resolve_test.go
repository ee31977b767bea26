package google

import (
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/gdocs-cli/gdocs/internal/store"
)

func storeWithAccounts(t *testing.T, accounts ...string) *store.Store {
	t.Helper()
	s := store.New(keyring.NewArrayKeyring(nil))
	for _, account := range accounts {
		require.NoError(t, s.Save(account, &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(time.Hour),
		}))
	}
	return s
}

func TestResolveAccountExplicitFlagWins(t *testing.T) {
	s := storeWithAccounts(t, "flag@example.com", "env@example.com", "default@example.com")
	require.NoError(t, s.SetDefaultAccount("default@example.com"))
	t.Setenv(AccountEnvVar, "env@example.com")

	account, err := ResolveAccount(s, "flag@example.com")
	require.NoError(t, err)
	assert.Equal(t, "flag@example.com", account)
}

func TestResolveAccountEnvBeatsDefault(t *testing.T) {
	s := storeWithAccounts(t, "env@example.com", "default@example.com")
	require.NoError(t, s.SetDefaultAccount("default@example.com"))
	t.Setenv(AccountEnvVar, "env@example.com")

	account, err := ResolveAccount(s, "")
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", account)
}

func TestResolveAccountConfiguredDefault(t *testing.T) {
	s := storeWithAccounts(t, "first@example.com", "default@example.com")
	require.NoError(t, s.SetDefaultAccount("default@example.com"))
	t.Setenv(AccountEnvVar, "")

	account, err := ResolveAccount(s, "")
	require.NoError(t, err)
	assert.Equal(t, "default@example.com", account)
}

func TestResolveAccountFallsBackToFirst(t *testing.T) {
	s := storeWithAccounts(t, "first@example.com", "second@example.com")
	t.Setenv(AccountEnvVar, "")

	account, err := ResolveAccount(s, "")
	require.NoError(t, err)
	assert.Equal(t, "first@example.com", account)
}

func TestResolveAccountUnknownFlag(t *testing.T) {
	s := storeWithAccounts(t, "known@example.com")

	_, err := ResolveAccount(s, "unknown@example.com")
	var notFound *AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unknown@example.com", notFound.Account)
	assert.Equal(t, []string{"known@example.com"}, notFound.Available)
}

func TestResolveAccountUnknownEnv(t *testing.T) {
	s := storeWithAccounts(t, "known@example.com")
	t.Setenv(AccountEnvVar, "unknown@example.com")

	_, err := ResolveAccount(s, "")
	var notFound *AccountNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveAccountEmptyStore(t *testing.T) {
	s := storeWithAccounts(t)
	t.Setenv(AccountEnvVar, "")

	_, err := ResolveAccount(s, "")
	assert.ErrorIs(t, err, ErrNoAccountConfigured)
}
