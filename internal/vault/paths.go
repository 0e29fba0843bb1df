package vault

import (
	"regexp"
	"strings"

	"forgesync/internal/config"
	"forgesync/internal/domain"
)

var (
	drivePrefixRegex = regexp.MustCompile(`^[A-Za-z]:`)
	badFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	separatorRuns    = regexp.MustCompile(`[/\\]+`)
)

// ValidatePath normalizes separators and rejects any path the vault must not
// touch: traversal sequences, absolute paths and null bytes. It is the hard
// defense layer for paths the system composes itself; free-form input from
// push payloads goes through SanitizeFolderPath first.
func ValidatePath(p string) (string, error) {
	normalized := normalizePath(p)

	if strings.Contains(normalized, "..") {
		return "", &domain.InvalidPathError{Path: p, Reason: "directory traversal not allowed"}
	}

	if strings.HasPrefix(normalized, "/") || drivePrefixRegex.MatchString(normalized) {
		return "", &domain.InvalidPathError{Path: p, Reason: "absolute paths not allowed"}
	}

	if strings.ContainsRune(normalized, 0) {
		return "", &domain.InvalidPathError{Path: p, Reason: "contains null bytes"}
	}

	return normalized, nil
}

// normalizePath converts backslashes to slashes, collapses separator runs and
// strips a trailing separator. Leading separators are kept so ValidatePath
// can still detect absolute paths.
func normalizePath(p string) string {
	normalized := strings.ReplaceAll(p, "\\", "/")
	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	if len(normalized) > 1 {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return normalized
}

// SanitizeFolderPath cleans an externally supplied, possibly multi-segment
// folder path. Unlike ValidatePath it never fails: traversal segments are
// dropped and each remaining segment is sanitized as a filename, so one
// malformed folder name never aborts a whole sync batch. Empty input yields
// empty output.
func SanitizeFolderPath(p string) string {
	if p == "" {
		return ""
	}

	cleaned := strings.Trim(p, "/\\")

	var sanitized []string
	for _, seg := range separatorRuns.Split(cleaned, -1) {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		if s := SanitizeFilename(seg); s != "" {
			sanitized = append(sanitized, s)
		}
	}

	return strings.Join(sanitized, "/")
}

// SanitizeFilename replaces characters disallowed in filenames with "-",
// collapses whitespace runs, trims, and truncates to MaxFilenameLength
// runes. Idempotent: applying it twice yields the same result as once.
func SanitizeFilename(name string) string {
	s := badFilenameChars.ReplaceAllString(name, "-")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if runes := []rune(s); len(runes) > config.MaxFilenameLength {
		// Re-trim after cutting so truncation cannot expose a trailing
		// space that a second application would remove.
		s = strings.TrimRight(string(runes[:config.MaxFilenameLength]), " ")
	}

	return s
}
