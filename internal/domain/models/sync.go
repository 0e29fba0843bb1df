package models

// Message roles within a synced conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DocKitItem types.
const (
	ItemTypeURL  = "url"
	ItemTypeFile = "file"
	ItemTypeText = "text"
)

// Branch is an identified conversation pushed from the extension. A branch
// without messages is a reference-only bookmark to external content.
type Branch struct {
	ID         string    `json:"id"`
	FolderID   string    `json:"folderId,omitempty"`
	FolderPath string    `json:"folderPath,omitempty"` // untrusted, sanitized before use
	Title      string    `json:"title"`
	Platform   string    `json:"platform"`
	URL        string    `json:"url"`
	Tags       []string  `json:"tags,omitempty"`
	Messages   []Message `json:"messages,omitempty"`
	CreatedAt  int64     `json:"createdAt"` // epoch milliseconds
	UpdatedAt  int64     `json:"updatedAt"`
}

type Message struct {
	ID        string `json:"id,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Platform  string `json:"platform,omitempty"`
}

// ForgeDoc is an identified standalone document.
type ForgeDoc struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	FolderID   string   `json:"folderId,omitempty"`
	FolderPath string   `json:"folderPath,omitempty"`
	Tags       []string `json:"tags"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

// DocKit is a named collection materialized as a folder with an index file
// plus one file per item.
type DocKit struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	FolderID    string       `json:"folderId,omitempty"`
	FolderPath  string       `json:"folderPath,omitempty"`
	Items       []DocKitItem `json:"items"`
	CreatedAt   int64        `json:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt"`
}

type DocKitItem struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"` // url, file or text
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	URL      string         `json:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SyncFolder is a folder entry in a push batch; only Path is used to create
// the directory, the rest identifies the folder for error reporting.
type SyncFolder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Path     string `json:"path,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

// FolderMapping binds an external ThinkForge folder identity to a vault path.
// The external folder id is the unique key.
type FolderMapping struct {
	ThinkForgeFolderID   string `json:"thinkForgeFolderId" yaml:"thinkForgeFolderId"`
	ThinkForgeFolderName string `json:"thinkForgeFolderName" yaml:"thinkForgeFolderName"`
	ObsidianPath         string `json:"obsidianPath" yaml:"obsidianPath"`
	CreatedAt            int64  `json:"createdAt" yaml:"createdAt"`
	LastSync             int64  `json:"lastSync" yaml:"lastSync"`
}
