package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/gdocs-cli/gdocs/internal/logging"
	"github.com/gdocs-cli/gdocs/internal/store"
)

// ErrAuthRequired is returned when no credentials are stored for the
// requested account.
var ErrAuthRequired = errors.New("not authenticated")

// ErrReauthRequired is returned when the stored refresh token has been
// revoked or expired and a new browser login is needed.
var ErrReauthRequired = errors.New("stored credentials are no longer valid")

// TokenSource returns an oauth2.TokenSource for the account. Expired
// access tokens are refreshed transparently and the refreshed token set
// is written back to the credential store.
func TokenSource(ctx context.Context, st *store.Store, account string) (oauth2.TokenSource, error) {
	token, err := st.Load(account)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no credentials for account %s: %w", account, ErrAuthRequired)
	}
	if err != nil {
		return nil, err
	}

	conf, err := OAuthConfig()
	if err != nil {
		return nil, err
	}

	return &persistingTokenSource{
		store:   st,
		account: account,
		src:     conf.TokenSource(ctx, token),
		last:    token,
	}, nil
}

// TokenExpiry returns the stored access token's expiry for an account.
func TokenExpiry(st *store.Store, account string) (time.Time, error) {
	token, err := st.Load(account)
	if err != nil {
		return time.Time{}, err
	}
	return token.Expiry, nil
}

// persistingTokenSource wraps an oauth2 token source and writes refreshed
// tokens back to the credential store, so the next invocation doesn't
// repeat the refresh exchange.
type persistingTokenSource struct {
	store   *store.Store
	account string
	src     oauth2.TokenSource

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// The refresh token itself was rejected. Drop the dead
			// credentials so status reporting stays truthful.
			if delErr := s.store.Delete(s.account); delErr != nil {
				slog.Debug("failed to remove stale credentials",
					logging.Account(s.account), logging.Err(delErr))
			}
			return nil, fmt.Errorf("token refresh rejected for %s: %w", s.account, ErrReauthRequired)
		}
		return nil, fmt.Errorf("token refresh failed for %s: %w", s.account, err)
	}

	if token.AccessToken != s.last.AccessToken {
		if err := s.store.Save(s.account, token); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.last = token
	}
	return token, nil
}
