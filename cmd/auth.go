package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gdocs-cli/gdocs/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google account credentials",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthSetDefaultCmd())
	cmd.AddCommand(newAuthTokenCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var setDefault bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate a Google account via the browser",
		Long: `Opens the Google consent screen in your browser and stores the
resulting credentials in the system keyring. Repeat with different
accounts to manage several of them side by side.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			result, err := google.Login(cmd.Context(), st)
			if err != nil {
				return err
			}

			if setDefault {
				if err := st.SetDefaultAccount(result.Email); err != nil {
					return err
				}
			}

			p := printer()
			if p.JSON() {
				p.Result(map[string]any{
					"success": true,
					"email":   result.Email,
					"default": setDefault,
				}, nil)
				return nil
			}
			p.Success("Authenticated as %s", result.Email)
			if setDefault {
				p.Success("Set %s as the default account", result.Email)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&setDefault, "set-default", false, "Make this account the default")

	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored accounts and token state",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			accounts, err := st.Accounts()
			if err != nil {
				return err
			}
			defaultAccount, err := st.DefaultAccount()
			if err != nil {
				return err
			}

			type accountStatus struct {
				Email   string `json:"email"`
				Default bool   `json:"default"`
				Expiry  string `json:"expiry,omitempty"`
				Valid   bool   `json:"valid"`
			}

			statuses := make([]accountStatus, 0, len(accounts))
			for _, email := range accounts {
				status := accountStatus{
					Email:   email,
					Default: email == defaultAccount,
				}
				if expiry, err := google.TokenExpiry(st, email); err == nil {
					status.Valid = expiry.IsZero() || expiry.After(time.Now())
					if !expiry.IsZero() {
						status.Expiry = expiry.Format(time.RFC3339)
					}
				}
				statuses = append(statuses, status)
			}

			p := printer()
			p.Result(map[string]any{"accounts": statuses}, func(w io.Writer) {
				if len(statuses) == 0 {
					fmt.Fprintln(w, "No accounts configured. Run 'gdocs auth login' to authenticate.")
					return
				}
				for _, s := range statuses {
					marker := " "
					if s.Default {
						marker = "*"
					}
					state := "expired"
					if s.Valid {
						state = "valid"
					}
					fmt.Fprintf(w, "%s %s (%s)\n", marker, s.Email, state)
				}
			})
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			p := printer()
			if all {
				removed, err := st.ClearAll()
				if err != nil {
					return err
				}
				p.Success("Removed credentials for %d account(s)", len(removed))
				return nil
			}

			account, err := google.ResolveAccount(st, accountFlag)
			if err != nil {
				return err
			}
			if err := st.Delete(account); err != nil {
				return err
			}
			p.Success("Removed credentials for %s", account)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove credentials for every account")

	return cmd
}

func newAuthSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <email>",
		Short: "Choose which account commands use by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			email := args[0]
			if !st.Has(email) {
				accounts, _ := st.Accounts()
				return &google.AccountNotFoundError{Account: email, Available: accounts}
			}
			if err := st.SetDefaultAccount(email); err != nil {
				return err
			}
			printer().Success("Default account is now %s", email)
			return nil
		},
	}
}

func newAuthTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a fresh access token for the resolved account",
		Long: `Prints a short-lived access token to stdout, refreshing it first if
needed. Useful for calling the Google APIs directly with curl.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			account, err := google.ResolveAccount(st, accountFlag)
			if err != nil {
				return err
			}
			ts, err := google.TokenSource(cmd.Context(), st, account)
			if err != nil {
				return err
			}
			token, err := ts.Token()
			if err != nil {
				return err
			}

			p := printer()
			if p.JSON() {
				raw, err := st.RawJSON(account)
				if err != nil {
					return err
				}
				p.Result(map[string]any{
					"account":     account,
					"accessToken": token.AccessToken,
					"expiry":      token.Expiry.Format(time.RFC3339),
					"credentials": json.RawMessage(raw),
				}, nil)
				return nil
			}
			p.Raw(token.AccessToken)
			return nil
		},
	}
}
