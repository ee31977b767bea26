package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdocs-cli/gdocs/internal/docs"
	"github.com/gdocs-cli/gdocs/internal/google"
	"github.com/gdocs-cli/gdocs/internal/logging"
	"github.com/gdocs-cli/gdocs/internal/output"
	"github.com/gdocs-cli/gdocs/internal/store"
)

// printer builds the output printer for the current invocation.
func printer() *output.Printer {
	return output.New(jsonFlag)
}

// openStore opens the system keyring.
func openStore() (*store.Store, error) {
	return store.Open()
}

// resolveClient opens the keyring, resolves which account to act as
// and returns an authenticated API client.
func resolveClient(ctx context.Context) (*docs.Client, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	account, err := google.ResolveAccount(st, accountFlag)
	if err != nil {
		return nil, err
	}
	logging.WithAccount(slog.Default(), account).Debug("account resolved")
	return docs.NewClient(ctx, st, account)
}

// printError renders a failed command for humans or JSON consumers.
// Exit status is handled by Execute.
func printError(err error) {
	slog.Debug("command failed", logging.Status(logging.StatusError), logging.Err(err))
	code, tip := classifyError(err)
	printer().Error(code, err.Error(), tip)
}

// classifyError maps an error to a stable machine-readable code and a
// recovery tip for the terminal.
func classifyError(err error) (code, tip string) {
	var notFound *google.AccountNotFoundError
	var validation *docs.ValidationError
	var storage *store.StorageError

	switch {
	case errors.As(err, &notFound):
		available := "none"
		if len(notFound.Available) > 0 {
			available = fmt.Sprintf("%v", notFound.Available)
		}
		return "ACCOUNT_NOT_FOUND", fmt.Sprintf("known accounts: %s; run 'gdocs auth login' to add one", available)
	case errors.Is(err, google.ErrNoAccountConfigured):
		return "NO_ACCOUNT", "run 'gdocs auth login' to authenticate"
	case errors.Is(err, google.ErrReauthRequired):
		return "REAUTH_REQUIRED", "run 'gdocs auth login' to re-authenticate"
	case errors.Is(err, google.ErrAuthRequired), errors.Is(err, store.ErrNotFound):
		return "AUTH_REQUIRED", "run 'gdocs auth login' to authenticate"
	case errors.Is(err, google.ErrClientCredentialsMissing):
		return "CLIENT_CREDENTIALS_MISSING", "set GDOCS_CLIENT_ID and GDOCS_CLIENT_SECRET or place credentials.json in the config directory"
	case errors.Is(err, docs.ErrNotFound):
		return "NOT_FOUND", ""
	case errors.Is(err, docs.ErrPermissionDenied):
		return "PERMISSION_DENIED", "ask the owner for access or switch accounts with --account"
	case errors.Is(err, docs.ErrRateLimited):
		return "RATE_LIMITED", "wait a moment and try again"
	case errors.As(err, &validation):
		return "INVALID_ARGUMENT", ""
	case errors.As(err, &storage):
		return "KEYRING_ERROR", "check that the system keyring service is available"
	default:
		return "INTERNAL", ""
	}
}
