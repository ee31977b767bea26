// Package google provides OAuth2 authentication for the Google Docs and
// Drive APIs: the browser consent flow, refresh-on-expiry token sources
// backed by the credential store, and the account resolution chain used
// by every command.
package google
