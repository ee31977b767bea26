// Package cmd implements the command-line interface for gdocs.
//
// This package provides the following command groups:
//   - auth: Log in, inspect and remove stored Google account credentials
//   - doc: Create, find, share and manage documents
//   - content: Read and edit document text
//   - table: Create and modify tables inside documents
//   - drives: Browse Shared Drives and folders
//   - serve: Start the MCP server to provide tools for AI assistants
//
// Global flags: --json switches output to machine-readable JSON,
// --account selects which stored Google account to act as, and
// --verbose enables debug logging.
package cmd
