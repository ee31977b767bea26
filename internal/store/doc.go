// Package store persists per-account OAuth token sets in the operating
// system's secure credential store (macOS Keychain, Windows Credential
// Manager, Linux Secret Service) via 99designs/keyring.
//
// Layout within the keyring service "gdocs":
//   - oauth_<email>     JSON-encoded oauth2.Token for one account
//   - accounts          JSON array of all registered account emails
//   - default_account   email of the configured default account
//
// Tests run against the in-memory array backend, so no real keyring is
// touched.
package store
