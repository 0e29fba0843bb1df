package models

// PushRequest is the body of POST /sync/push. Array elements are not
// validated up front; malformed items surface as per-item errors instead of
// rejecting the whole batch.
type PushRequest struct {
	ProjectName       string       `json:"projectName"`
	ProjectID         string       `json:"projectId,omitempty"`
	PreserveStructure bool         `json:"preserveStructure,omitempty"`
	Folders           []SyncFolder `json:"folders,omitempty"`
	Branches          []Branch     `json:"branches,omitempty"`
	ForgeDocs         []ForgeDoc   `json:"forgeDocs,omitempty"`
	DocKits           []DocKit     `json:"docKits,omitempty"`
}

// ProcessedCounts counts items that were actually written, per kind.
type ProcessedCounts struct {
	Folders   int `json:"folders"`
	Branches  int `json:"branches"`
	ForgeDocs int `json:"forgeDocs"`
	DocKits   int `json:"docKits"`
}

// SyncError records a single failed item within an otherwise-continuing
// push batch.
type SyncError struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	Error    string `json:"error"`
}

// PushResult is returned even when some items failed; callers must inspect
// Errors to detect partial failure.
type PushResult struct {
	Processed ProcessedCounts `json:"processed"`
	Errors    []SyncError     `json:"errors"`
}

// PullRequest is the optional body of POST /sync/pull.
type PullRequest struct {
	Since     *int64   `json:"since,omitempty"`
	FolderIDs []string `json:"folderIds,omitempty"`
}

type PullResult struct {
	Branches  []Branch   `json:"branches"`
	ForgeDocs []ForgeDoc `json:"forgeDocs"`
	DocKits   []DocKit   `json:"docKits"`
	LastSync  int64      `json:"lastSync"`
}

// CreateMappingRequest is the body of POST /mappings.
type CreateMappingRequest struct {
	ThinkForgeFolderID   string `json:"thinkForgeFolderId"`
	ThinkForgeFolderName string `json:"thinkForgeFolderName"`
	ObsidianPath         string `json:"obsidianPath"`
}

// HealthData is the payload of GET /health and GET /ping.
type HealthData struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	VaultName   string `json:"vaultName"`
	BasePath    string `json:"basePath"`
	SyncEnabled bool   `json:"syncEnabled"`
	LastSync    *int64 `json:"lastSync"`
}

type VaultInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// StatusData is the payload of GET /status, used by the extension for its
// connection check.
type StatusData struct {
	Vault       VaultInfo       `json:"vault"`
	BasePath    string          `json:"basePath"`
	SyncFolders []FolderMapping `json:"syncFolders"`
}

type FoldersData struct {
	Folders []string `json:"folders"`
}

type MappingsData struct {
	Mappings []FolderMapping `json:"mappings"`
}

type DeletedData struct {
	Deleted bool `json:"deleted"`
}
