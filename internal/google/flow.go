package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/gdocs-cli/gdocs/internal/logging"
	"github.com/gdocs-cli/gdocs/internal/store"
)

// loginPorts are tried in order for the loopback redirect listener.
// A port of 0 (ephemeral) is the final fallback.
var loginPorts = []int{9090, 9091, 9092, 8888, 8889, 0}

// successPage is shown in the browser once the consent redirect lands.
const successPage = `<html><body><h3>Authentication successful!</h3><p>You can close this window and return to the terminal.</p></body></html>`

// LoginResult describes a completed browser login.
type LoginResult struct {
	Email string
	Token *oauth2.Token
}

// Login drives the OAuth authorization-code flow: it starts a loopback
// redirect listener, opens the consent URL in a browser, exchanges the
// returned code for a token set, resolves the authenticated user's email
// and persists the tokens under it.
func Login(ctx context.Context, st *store.Store) (*LoginResult, error) {
	conf, err := OAuthConfig()
	if err != nil {
		return nil, err
	}

	ln, err := listenLoopback()
	if err != nil {
		return nil, fmt.Errorf("failed to start redirect listener: %w", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	conf.RedirectURL = fmt.Sprintf("http://127.0.0.1:%d/", port)

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	fmt.Println("Starting OAuth flow... A browser window will open.")
	fmt.Println("If it doesn't, visit this URL to authorize:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	if err := openBrowser(authURL); err != nil {
		slog.Debug("could not open browser", logging.Err(err))
	}

	code, err := waitForCode(ctx, ln, state)
	if err != nil {
		return nil, err
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	email, err := userEmail(ctx, conf.TokenSource(ctx, token))
	if err != nil {
		return nil, err
	}

	if err := st.Save(email, token); err != nil {
		return nil, err
	}

	slog.Debug("login complete", logging.Account(email),
		slog.String("token", logging.SanitizeToken(token.AccessToken)))
	return &LoginResult{Email: email, Token: token}, nil
}

func listenLoopback() (net.Listener, error) {
	var lastErr error
	for _, port := range loginPorts {
		ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err == nil {
			return ln, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// waitForCode serves the loopback redirect until the consent flow
// delivers an authorization code (or the user denies access).
func waitForCode(ctx context.Context, ln net.Listener, state string) (string, error) {
	type authResult struct {
		code string
		err  error
	}
	results := make(chan authResult, 1)

	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			q := r.URL.Query()
			if errCode := q.Get("error"); errCode != "" {
				http.Error(w, "Authorization failed: "+errCode, http.StatusBadRequest)
				results <- authResult{err: fmt.Errorf("authorization denied: %s", errCode)}
				return
			}
			if q.Get("state") != state {
				http.Error(w, "State mismatch", http.StatusBadRequest)
				results <- authResult{err: fmt.Errorf("OAuth state mismatch")}
				return
			}
			code := q.Get("code")
			if code == "" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, successPage)
			results <- authResult{code: code}
		}),
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			results <- authResult{err: err}
		}
	}()
	defer srv.Close()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		return res.code, res.err
	}
}

// userEmail resolves the authenticated user's email via the userinfo
// endpoint; the email becomes the account identifier.
func userEmail(ctx context.Context, ts oauth2.TokenSource) (string, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch user info: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo response contained no email")
	}
	return info.Email, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
