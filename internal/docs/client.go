package docs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/gdocs-cli/gdocs/internal/google"
	"github.com/gdocs-cli/gdocs/internal/logging"
	"github.com/gdocs-cli/gdocs/internal/store"
)

const (
	// DocumentMimeType is the MIME type of Google Docs documents.
	DocumentMimeType = "application/vnd.google-apps.document"

	// FolderMimeType is the MIME type of Google Drive folders.
	FolderMimeType = "application/vnd.google-apps.folder"
)

// Client wraps the Google Docs and Drive API services for one account.
type Client struct {
	docsService  *docs.Service
	driveService *drive.Service
	account      string
}

// NewClient creates a client authenticated as the given account.
// Returns an error wrapping google.ErrAuthRequired when the account has
// no stored credentials.
func NewClient(ctx context.Context, st *store.Store, account string) (*Client, error) {
	httpClient, err := google.HTTPClient(ctx, st, account)
	if err != nil {
		return nil, err
	}

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		docsService:  docsService,
		driveService: driveService,
		account:      account,
	}, nil
}

// Account returns the account this client authenticates as.
func (c *Client) Account() string {
	return c.account
}

// CreateDocument creates a new document, optionally moving it into a
// folder (Shared Drive folders included). With no folder the document
// lands in the Drive root.
func (c *Client) CreateDocument(ctx context.Context, title, folderID string) (*Document, error) {
	created, err := withRetry(ctx, "docs.create", func() (*docs.Document, error) {
		return c.docsService.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if folderID != "" {
		if err := c.MoveDocument(ctx, created.DocumentId, folderID); err != nil {
			return nil, err
		}
	}

	return &Document{
		ID:         created.DocumentId,
		Title:      created.Title,
		RevisionID: created.RevisionId,
	}, nil
}

// GetDocument retrieves document identity and revision metadata.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	doc, err := c.GetDocumentContent(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &Document{
		ID:         doc.DocumentId,
		Title:      doc.Title,
		RevisionID: doc.RevisionId,
	}, nil
}

// GetDocumentContent retrieves the full structural JSON of a document.
func (c *Client) GetDocumentContent(ctx context.Context, documentID string) (*docs.Document, error) {
	if documentID == "" {
		return nil, Validationf("document ID is required")
	}
	doc, err := withRetry(ctx, "docs.get", func() (*docs.Document, error) {
		return c.docsService.Documents.Get(documentID).Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListOptions filters ListDocuments.
type ListOptions struct {
	Limit         int64
	FolderID      string
	SharedDriveID string
}

// ListDocuments lists documents from Drive, newest first.
func (c *Client) ListDocuments(ctx context.Context, opts *ListOptions) ([]*DocumentSummary, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf("mimeType='%s'", DocumentMimeType)
	if opts.FolderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeQuery(opts.FolderID))
	}

	call := c.driveService.Files.List().
		Context(ctx).
		Q(query).
		PageSize(limit).
		Fields("files(id, name, modifiedTime, parents)").
		OrderBy("modifiedTime desc").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	if opts.SharedDriveID != "" {
		call = call.Corpora("drive").DriveId(opts.SharedDriveID)
	}

	list, err := withRetry(ctx, "drive.files.list", func() (*drive.FileList, error) { return call.Do() })
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return convertToSummaries(list.Files), nil
}

// SearchDocuments finds documents whose title contains the query.
func (c *Client) SearchDocuments(ctx context.Context, query string, limit int64) ([]*DocumentSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	fullQuery := fmt.Sprintf("mimeType='%s' and name contains '%s'", DocumentMimeType, escapeQuery(query))

	call := c.driveService.Files.List().
		Context(ctx).
		Q(fullQuery).
		PageSize(limit).
		Fields("files(id, name, modifiedTime)").
		OrderBy("modifiedTime desc").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	list, err := withRetry(ctx, "drive.files.search", func() (*drive.FileList, error) { return call.Do() })
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	return convertToSummaries(list.Files), nil
}

// DeleteDocument deletes a document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return Validationf("document ID is required")
	}
	_, err := withRetry(ctx, "drive.files.delete", func() (struct{}, error) {
		return struct{}{}, c.driveService.Files.Delete(documentID).SupportsAllDrives(true).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	return nil
}

// MoveDocument moves a document into a folder, detaching it from its
// current parents. Works across Shared Drives.
func (c *Client) MoveDocument(ctx context.Context, documentID, folderID string) error {
	if documentID == "" || folderID == "" {
		return Validationf("document ID and folder ID are required")
	}

	file, err := withRetry(ctx, "drive.files.get", func() (*drive.File, error) {
		return c.driveService.Files.Get(documentID).
			Context(ctx).
			Fields("parents").
			SupportsAllDrives(true).
			Do()
	})
	if err != nil {
		return fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	call := c.driveService.Files.Update(documentID, &drive.File{}).
		Context(ctx).
		AddParents(folderID).
		SupportsAllDrives(true).
		Fields("id, parents")
	if len(file.Parents) > 0 {
		call = call.RemoveParents(strings.Join(file.Parents, ","))
	}

	if _, err := withRetry(ctx, "drive.files.move", func() (*drive.File, error) { return call.Do() }); err != nil {
		return fmt.Errorf("failed to move document %s: %w", documentID, err)
	}
	return nil
}

// ShareOptions configures ShareDocument.
type ShareOptions struct {
	Email            string
	Role             string
	SendNotification bool
	Message          string
}

// ShareDocument grants a user access to a document.
func (c *Client) ShareDocument(ctx context.Context, documentID string, opts *ShareOptions) (*Permission, error) {
	if documentID == "" {
		return nil, Validationf("document ID is required")
	}
	if opts == nil || opts.Email == "" {
		return nil, Validationf("an email address to share with is required")
	}
	role := opts.Role
	if role == "" {
		role = "reader"
	}

	permission := &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: opts.Email,
	}

	call := c.driveService.Permissions.Create(documentID, permission).
		Context(ctx).
		SupportsAllDrives(true).
		SendNotificationEmail(opts.SendNotification).
		Fields("id, type, role, emailAddress, displayName")
	if opts.SendNotification && opts.Message != "" {
		call = call.EmailMessage(opts.Message)
	}

	created, err := withRetry(ctx, "drive.permissions.create", func() (*drive.Permission, error) { return call.Do() })
	if err != nil {
		return nil, fmt.Errorf("failed to share document %s: %w", documentID, err)
	}
	return convertToPermission(created), nil
}

// ListPermissions lists the access grants on a document.
func (c *Client) ListPermissions(ctx context.Context, documentID string) ([]*Permission, error) {
	if documentID == "" {
		return nil, Validationf("document ID is required")
	}

	list, err := withRetry(ctx, "drive.permissions.list", func() (*drive.PermissionList, error) {
		return c.driveService.Permissions.List(documentID).
			Context(ctx).
			SupportsAllDrives(true).
			Fields("permissions(id, type, role, emailAddress, displayName)").
			Do()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions for %s: %w", documentID, err)
	}

	permissions := make([]*Permission, len(list.Permissions))
	for i, p := range list.Permissions {
		permissions[i] = convertToPermission(p)
	}
	return permissions, nil
}

// UnshareDocument removes a permission from a document.
func (c *Client) UnshareDocument(ctx context.Context, documentID, permissionID string) error {
	if documentID == "" || permissionID == "" {
		return Validationf("document ID and permission ID are required")
	}
	_, err := withRetry(ctx, "drive.permissions.delete", func() (struct{}, error) {
		return struct{}{}, c.driveService.Permissions.Delete(documentID, permissionID).
			Context(ctx).
			SupportsAllDrives(true).
			Do()
	})
	if err != nil {
		return fmt.Errorf("failed to remove permission %s from %s: %w", permissionID, documentID, err)
	}
	return nil
}

// ListRevisions lists a document's revision history.
func (c *Client) ListRevisions(ctx context.Context, documentID string) ([]*Revision, error) {
	if documentID == "" {
		return nil, Validationf("document ID is required")
	}

	list, err := withRetry(ctx, "drive.revisions.list", func() (*drive.RevisionList, error) {
		return c.driveService.Revisions.List(documentID).
			Context(ctx).
			Fields("revisions(id, modifiedTime, lastModifyingUser)").
			Do()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions for %s: %w", documentID, err)
	}

	revisions := make([]*Revision, len(list.Revisions))
	for i, r := range list.Revisions {
		revisions[i] = convertToRevision(r)
	}
	return revisions, nil
}

// ListSharedDrives lists the Shared Drives the account can access.
func (c *Client) ListSharedDrives(ctx context.Context) ([]*SharedDrive, error) {
	list, err := withRetry(ctx, "drive.drives.list", func() (*drive.DriveList, error) {
		return c.driveService.Drives.List().Context(ctx).PageSize(100).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shared drives: %w", err)
	}

	drives := make([]*SharedDrive, len(list.Drives))
	for i, d := range list.Drives {
		drives[i] = &SharedDrive{ID: d.Id, Name: d.Name}
	}
	return drives, nil
}

// ListFolders lists folders under a parent, in My Drive or a Shared
// Drive.
func (c *Client) ListFolders(ctx context.Context, parentID, sharedDriveID string) ([]*Folder, error) {
	query := fmt.Sprintf("mimeType='%s'", FolderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeQuery(parentID))
	}

	call := c.driveService.Files.List().
		Context(ctx).
		Q(query).
		PageSize(100).
		Fields("files(id, name, parents)").
		OrderBy("name").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	if sharedDriveID != "" {
		call = call.Corpora("drive").DriveId(sharedDriveID)
	}

	list, err := withRetry(ctx, "drive.folders.list", func() (*drive.FileList, error) { return call.Do() })
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	folders := make([]*Folder, len(list.Files))
	for i, f := range list.Files {
		folder := &Folder{ID: f.Id, Name: f.Name}
		if len(f.Parents) > 0 {
			folder.ParentID = f.Parents[0]
		}
		folders[i] = folder
	}
	return folders, nil
}

// BatchUpdate submits an ordered sequence of edit operations, applied
// transactionally by the backend.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	if documentID == "" {
		return nil, Validationf("document ID is required")
	}
	if len(requests) == 0 {
		return nil, Validationf("batch update requires at least one operation")
	}

	resp, err := withRetry(ctx, "docs.batchUpdate", func() (*docs.BatchUpdateDocumentResponse, error) {
		return c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
			Requests: requests,
		}).Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	slog.Debug("batch update applied",
		logging.Document(documentID),
		logging.Status(logging.StatusSuccess),
		slog.Int("requests", len(requests)))
	return resp, nil
}

// ReplaceAllText replaces every occurrence of a string and reports how
// many were changed. The backend applies the replacement over the
// pre-request document state, so occurrence indices never shift under
// the client.
func (c *Client) ReplaceAllText(ctx context.Context, documentID, find, replace string, matchCase bool) (int64, error) {
	if find == "" {
		return 0, Validationf("search text is required")
	}

	resp, err := c.BatchUpdate(ctx, documentID, []*docs.Request{
		ReplaceAllTextRequest(find, replace, matchCase),
	})
	if err != nil {
		return 0, err
	}

	var occurrences int64
	for _, reply := range resp.Replies {
		if reply != nil && reply.ReplaceAllText != nil {
			occurrences += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return occurrences, nil
}

// escapeQuery escapes quotes and backslashes for Drive query strings.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func convertToSummaries(files []*drive.File) []*DocumentSummary {
	summaries := make([]*DocumentSummary, len(files))
	for i, f := range files {
		summaries[i] = &DocumentSummary{
			ID:           f.Id,
			Title:        f.Name,
			ModifiedTime: f.ModifiedTime,
		}
	}
	return summaries
}

func convertToPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		DisplayName:  p.DisplayName,
	}
}

func convertToRevision(r *drive.Revision) *Revision {
	rev := &Revision{
		ID:           r.Id,
		ModifiedTime: r.ModifiedTime,
	}
	if r.LastModifyingUser != nil {
		rev.LastModifyingUser = r.LastModifyingUser.EmailAddress
		if rev.LastModifyingUser == "" {
			rev.LastModifyingUser = r.LastModifyingUser.DisplayName
		}
	}
	return rev
}
