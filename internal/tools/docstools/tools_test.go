package docstools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdocs-cli/gdocs/internal/docs"
)

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// failingFactory stands in for client construction so validation paths
// can be tested without credentials.
func failingFactory(ctx context.Context, account string) (*docs.Client, error) {
	return nil, errors.New("no credentials in test")
}

func TestRegisterDocsTools(t *testing.T) {
	srv := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	RegisterDocsTools(srv, failingFactory)
}

func TestHandleReadDocumentValidation(t *testing.T) {
	result, err := handleReadDocument(context.Background(), request(map[string]any{}), failingFactory)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = handleReadDocument(context.Background(), request(map[string]any{
		"documentId": "",
	}), failingFactory)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCreateDocumentValidation(t *testing.T) {
	result, err := handleCreateDocument(context.Background(), request(map[string]any{}), failingFactory)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleInsertTextValidation(t *testing.T) {
	result, err := handleInsertText(context.Background(), request(map[string]any{
		"documentId": "doc1",
	}), failingFactory)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleReplaceTextValidation(t *testing.T) {
	result, err := handleReplaceText(context.Background(), request(map[string]any{
		"documentId": "doc1",
	}), failingFactory)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestFactoryErrorSurfacesAsToolError(t *testing.T) {
	result, err := handleListDocuments(context.Background(), request(map[string]any{}), failingFactory)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
