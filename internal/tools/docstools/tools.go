// Package docstools registers the Google Docs tools exposed by the MCP
// server.
package docstools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/gdocs-cli/gdocs/internal/docs"
	docsapi "google.golang.org/api/docs/v1"
)

// ClientFactory builds an authenticated API client for the given
// account. An empty account resolves through the usual chain.
type ClientFactory func(ctx context.Context, account string) (*docs.Client, error)

// RegisterDocsTools registers all Google Docs-related tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, newClient ClientFactory) {
	readTool := mcp.NewTool("docs_read_document",
		mcp.WithDescription("Read a Google Docs document by ID"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default), 'text', or 'json'"),
		),
		mcp.WithString("account",
			mcp.Description("Google account email to act as"),
		),
	)
	s.AddTool(readTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleReadDocument(ctx, request, newClient)
	})

	createTool := mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create a new Google Docs document"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title for the new document"),
		),
		mcp.WithString("folderId",
			mcp.Description("Folder ID to create the document in"),
		),
		mcp.WithString("account",
			mcp.Description("Google account email to act as"),
		),
	)
	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateDocument(ctx, request, newClient)
	})

	insertTool := mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Insert text into a document at a character index"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to insert"),
		),
		mcp.WithNumber("index",
			mcp.Description("Character index to insert at (default 1, the start of the body)"),
		),
		mcp.WithString("account",
			mcp.Description("Google account email to act as"),
		),
	)
	s.AddTool(insertTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleInsertText(ctx, request, newClient)
	})

	appendTool := mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text to the end of a document"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to append"),
		),
		mcp.WithString("account",
			mcp.Description("Google account email to act as"),
		),
	)
	s.AddTool(appendTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAppendText(ctx, request, newClient)
	})

	replaceTool := mcp.NewTool("docs_replace_text",
		mcp.WithDescription("Replace every occurrence of a string in a document"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("find",
			mcp.Required(),
			mcp.Description("The text to find"),
		),
		mcp.WithString("replace",
			mcp.Required(),
			mcp.Description("The replacement text"),
		),
		mcp.WithBoolean("ignoreCase",
			mcp.Description("Ignore case when matching (matching is exact by default)"),
		),
		mcp.WithString("account",
			mcp.Description("Google account email to act as"),
		),
	)
	s.AddTool(replaceTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleReplaceText(ctx, request, newClient)
	})

	listTool := mcp.NewTool("docs_list_documents",
		mcp.WithDescription("List Google Docs documents, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return (default 20)"),
		),
		mcp.WithString("account",
			mcp.Description("Google account email to act as"),
		),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListDocuments(ctx, request, newClient)
	})
}

func clientFor(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*docs.Client, error) {
	account, _ := request.GetArguments()["account"].(string)
	return newClient(ctx, account)
}

func handleReadDocument(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	format := "markdown"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}

	client, err := clientFor(ctx, request, newClient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Docs client: %v", err)), nil
	}

	doc, err := client.GetDocumentContent(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
	}

	var content []*docsapi.StructuralElement
	if doc.Body != nil {
		content = doc.Body.Content
	}

	switch format {
	case "markdown":
		markdown := fmt.Sprintf("# %s\n\n%s", doc.Title, docs.RenderMarkdown(content))
		return mcp.NewToolResultText(markdown), nil
	case "text":
		return mcp.NewToolResultText(docs.RenderPlainText(content)), nil
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to encode document: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Unknown format %q: expected markdown, text or json", format)), nil
	}
}

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	folderID, _ := args["folderId"].(string)

	client, err := clientFor(ctx, request, newClient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Docs client: %v", err)), nil
	}

	doc, err := client.CreateDocument(ctx, title, folderID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created document %q\nID: %s\nURL: %s", doc.Title, doc.ID, doc.URL())), nil
}

func handleInsertText(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	index := int64(1)
	if indexVal, ok := args["index"].(float64); ok && indexVal > 0 {
		index = int64(indexVal)
	}

	client, err := clientFor(ctx, request, newClient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Docs client: %v", err)), nil
	}

	if _, err := client.BatchUpdate(ctx, documentID, []*docsapi.Request{
		docs.InsertTextRequest(text, index),
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Inserted %d character(s) at index %d", docs.TextLength(text), index)), nil
}

func handleAppendText(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	client, err := clientFor(ctx, request, newClient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Docs client: %v", err)), nil
	}

	if _, err := client.BatchUpdate(ctx, documentID, []*docsapi.Request{
		docs.InsertTextAtEndRequest("\n" + text),
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Appended %d character(s)", docs.TextLength(text))), nil
}

func handleReplaceText(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, ok := args["documentId"].(string)
	if !ok || documentID == "" {
		return mcp.NewToolResultError("documentId is required"), nil
	}
	find, ok := args["find"].(string)
	if !ok || find == "" {
		return mcp.NewToolResultError("find is required"), nil
	}
	replace, _ := args["replace"].(string)
	ignoreCase, _ := args["ignoreCase"].(bool)

	client, err := clientFor(ctx, request, newClient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Docs client: %v", err)), nil
	}

	occurrences, err := client.ReplaceAllText(ctx, documentID, find, replace, !ignoreCase)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to replace text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Replaced %d occurrence(s)", occurrences)), nil
}

func handleListDocuments(ctx context.Context, request mcp.CallToolRequest, newClient ClientFactory) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	limit := int64(20)
	if limitVal, ok := args["limit"].(float64); ok && limitVal > 0 {
		limit = int64(limitVal)
	}

	client, err := clientFor(ctx, request, newClient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Docs client: %v", err)), nil
	}

	summaries, err := client.ListDocuments(ctx, &docs.ListOptions{Limit: limit})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list documents: %v", err)), nil
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
