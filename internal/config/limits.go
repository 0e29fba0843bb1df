package config

const (
	// MaxBodyBytes caps request bodies before JSON parsing. Push batches
	// can be large (full conversation transcripts) so this is generous.
	MaxBodyBytes = 10 << 20 // 10 MiB

	// MaxProjectNameLength is the maximum length for project names.
	MaxProjectNameLength = 200

	// MaxPathLength is the maximum length for vault-relative paths.
	// Longer paths indicate overly deep hierarchies (anti-pattern).
	MaxPathLength = 500

	// MaxFolderIDLength is the maximum length for external folder ids.
	MaxFolderIDLength = 100

	// MaxFolderNameLength is the maximum length for external folder names.
	MaxFolderNameLength = 200

	// MaxBatchItems is the maximum number of elements accepted in any one
	// array of a push batch.
	MaxBatchItems = 1000

	// MaxFilenameLength is the truncation point for sanitized filenames.
	MaxFilenameLength = 100
)
