package docs

// Document is a Google Docs document as returned by create/get.
type Document struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	RevisionID string `json:"revisionId,omitempty"`
}

// URL returns the editor URL for the document.
func (d *Document) URL() string {
	return "https://docs.google.com/document/d/" + d.ID + "/edit"
}

// DocumentSummary is document metadata for list and search operations.
type DocumentSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
}

// URL returns the editor URL for the document.
func (d *DocumentSummary) URL() string {
	return "https://docs.google.com/document/d/" + d.ID + "/edit"
}

// SharedDrive is a Drive container owned by a group rather than a user.
type SharedDrive struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Folder is a folder in Google Drive.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// Permission is an access grant on a document.
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// Revision is one entry of a document's revision history.
type Revision struct {
	ID                string `json:"id"`
	ModifiedTime      string `json:"modifiedTime,omitempty"`
	LastModifyingUser string `json:"lastModifyingUser,omitempty"`
}

// TableInfo locates a table inside a document by document order.
type TableInfo struct {
	Index      int   `json:"index"`
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
	Rows       int64 `json:"rows"`
	Columns    int64 `json:"columns"`
}
