package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdocs-cli/gdocs/internal/docs"
	"github.com/gdocs-cli/gdocs/internal/google"
	"github.com/gdocs-cli/gdocs/internal/store"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantTip  bool
	}{
		{
			name:     "account not found",
			err:      &google.AccountNotFoundError{Account: "x@example.com", Available: []string{"a@example.com"}},
			wantCode: "ACCOUNT_NOT_FOUND",
			wantTip:  true,
		},
		{
			name:     "no account configured",
			err:      google.ErrNoAccountConfigured,
			wantCode: "NO_ACCOUNT",
			wantTip:  true,
		},
		{
			name:     "reauth required",
			err:      fmt.Errorf("token refresh: %w", google.ErrReauthRequired),
			wantCode: "REAUTH_REQUIRED",
			wantTip:  true,
		},
		{
			name:     "missing credentials",
			err:      store.ErrNotFound,
			wantCode: "AUTH_REQUIRED",
			wantTip:  true,
		},
		{
			name:     "document not found",
			err:      fmt.Errorf("failed to get document: %w", docs.ErrNotFound),
			wantCode: "NOT_FOUND",
		},
		{
			name:     "permission denied",
			err:      docs.ErrPermissionDenied,
			wantCode: "PERMISSION_DENIED",
			wantTip:  true,
		},
		{
			name:     "rate limited",
			err:      docs.ErrRateLimited,
			wantCode: "RATE_LIMITED",
			wantTip:  true,
		},
		{
			name:     "validation",
			err:      docs.Validationf("table index 9 out of range"),
			wantCode: "INVALID_ARGUMENT",
		},
		{
			name:     "keyring failure",
			err:      &store.StorageError{Op: "get", Err: errors.New("dbus unavailable")},
			wantCode: "KEYRING_ERROR",
			wantTip:  true,
		},
		{
			name:     "unclassified",
			err:      errors.New("boom"),
			wantCode: "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, tip := classifyError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantTip {
				assert.NotEmpty(t, tip)
			} else {
				assert.Empty(t, tip)
			}
		})
	}
}

func TestCommandTree(t *testing.T) {
	expected := []string{"auth", "doc", "content", "table", "drives", "serve", "version"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}
