package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/gdocs-cli/gdocs/internal/store"
)

// Scopes are the Google OAuth scopes the CLI requests.
var Scopes = []string{
	"https://www.googleapis.com/auth/documents",      // Full docs access
	"https://www.googleapis.com/auth/drive.file",     // Create/open docs in Drive
	"https://www.googleapis.com/auth/drive.readonly", // List drives and folders
	"https://www.googleapis.com/auth/userinfo.email", // Get user email
	"openid",                                         // Required by Google with userinfo.email
}

// Environment variables carrying OAuth client credentials.
const (
	ClientIDEnvVar     = "GDOCS_CLIENT_ID"
	ClientSecretEnvVar = "GDOCS_CLIENT_SECRET"
)

// ErrClientCredentialsMissing is returned when neither the environment
// variables nor a credentials.json file provide an OAuth client.
var ErrClientCredentialsMissing = errors.New(
	"OAuth client credentials not found: set GDOCS_CLIENT_ID and GDOCS_CLIENT_SECRET, or place credentials.json in the working directory")

// OAuthConfig builds the OAuth2 configuration for the CLI.
// Environment variables take precedence over a local credentials.json
// (the Google "installed app" client JSON).
func OAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv(ClientIDEnvVar)
	clientSecret := os.Getenv(ClientSecretEnvVar)
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       Scopes,
		}, nil
	}

	path, err := credentialsFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	conf, err := googleoauth.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid OAuth client file %s: %w", path, err)
	}
	return conf, nil
}

// credentialsFile locates the OAuth client JSON: the working directory
// first, then the user config directory.
func credentialsFile() (string, error) {
	if _, err := os.Stat("credentials.json"); err == nil {
		return "credentials.json", nil
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "gdocs", "credentials.json")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrClientCredentialsMissing
}

// HTTPClient returns an HTTP client that authenticates requests for the
// given account and refreshes tokens as needed.
// The client is pinned to HTTP/1.1 to avoid HTTP/2 protocol errors seen
// with the Google API endpoints.
func HTTPClient(ctx context.Context, st *store.Store, account string) (*http.Client, error) {
	ts, err := TokenSource(ctx, st, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}
	return client, nil
}
