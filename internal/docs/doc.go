// Package docs wraps the Google Docs v1 and Drive v3 APIs behind a
// typed client, a batch-update request builder, and renderers that
// turn document structure into Markdown or plain text.
package docs
