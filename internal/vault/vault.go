package vault

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"forgesync/internal/domain"
	"forgesync/internal/domain/models"
)

// Vault is the filesystem-backed document store. All paths it accepts are
// vault-relative with "/" separators; every write goes through ValidatePath
// before touching the disk.
type Vault struct {
	root   string
	logger *slog.Logger
}

// StoredItems is the result of reading a vault folder back.
type StoredItems struct {
	Branches  []models.Branch
	ForgeDocs []models.ForgeDoc
	DocKits   []models.DocKit
}

// New opens (creating if necessary) a vault rooted at dir.
func New(dir string, logger *slog.Logger) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create vault root: %w", err)
	}
	return &Vault{root: abs, logger: logger}, nil
}

// Name returns the vault's display name, derived from its root directory.
func (v *Vault) Name() string { return filepath.Base(v.root) }

// Root returns the absolute path of the vault root.
func (v *Vault) Root() string { return v.root }

func (v *Vault) abs(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(rel))
}

// EnsureFolder validates path and creates the folder chain if it does not
// exist yet. Safe to call repeatedly for the same path. Returns a
// ConflictError if a file occupies the path.
func (v *Vault) EnsureFolder(path string) (string, error) {
	normalized, err := ValidatePath(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(v.abs(normalized))
	if err == nil {
		if info.IsDir() {
			return normalized, nil
		}
		return "", &domain.ConflictError{
			Message: fmt.Sprintf("cannot create folder: a file already exists at %s", normalized),
		}
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat %s: %w", normalized, err)
	}

	if err := os.MkdirAll(v.abs(normalized), 0755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", normalized, err)
	}
	return normalized, nil
}

// ListFiles returns the direct-child files (non-recursive) of the folder at
// path, or nil if the path does not resolve to a folder.
func (v *Vault) ListFiles(path string) ([]string, error) {
	normalized, err := ValidatePath(path)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(v.abs(normalized))
	if err != nil {
		// Missing folder (or a file at this path) reads as empty.
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if normalized == "" {
			files = append(files, entry.Name())
		} else {
			files = append(files, normalized+"/"+entry.Name())
		}
	}
	return files, nil
}

// ListAllFolders enumerates every folder path under the vault root,
// sorted, root excluded.
func (v *Vault) ListAllFolders() ([]string, error) {
	var folders []string
	err := filepath.WalkDir(v.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == v.root {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		folders = append(folders, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}
	sort.Strings(folders)
	return folders, nil
}

// SaveBranch writes a conversation under projectPath, nested in the branch's
// sanitized folder path. Overwrites any previous file for the same title.
func (v *Vault) SaveBranch(branch *models.Branch, projectPath string) (string, error) {
	folder, err := v.EnsureFolder(joinPath(projectPath, SanitizeFolderPath(branch.FolderPath)))
	if err != nil {
		return "", err
	}

	name := branch.Title
	if strings.TrimSpace(name) == "" {
		name = "Chat " + branch.ID
	}
	fileName := SanitizeFilename(name) + ".md"
	filePath := joinPath(folder, fileName)

	content, err := formatBranchMarkdown(branch, time.Now())
	if err != nil {
		return "", err
	}
	if err := v.writeFile(folder, fileName, content); err != nil {
		return "", err
	}

	v.logger.Debug("branch saved", "id", branch.ID, "path", filePath)
	return filePath, nil
}

// SaveForgeDoc writes a document under projectPath, nested in the doc's
// sanitized folder path.
func (v *Vault) SaveForgeDoc(doc *models.ForgeDoc, projectPath string) (string, error) {
	folder, err := v.EnsureFolder(joinPath(projectPath, SanitizeFolderPath(doc.FolderPath)))
	if err != nil {
		return "", err
	}

	name := doc.Title
	if strings.TrimSpace(name) == "" {
		name = "Doc " + doc.ID
	}
	fileName := SanitizeFilename(name) + ".md"
	filePath := joinPath(folder, fileName)

	content, err := formatForgeDocMarkdown(doc, time.Now())
	if err != nil {
		return "", err
	}
	if err := v.writeFile(folder, fileName, content); err != nil {
		return "", err
	}

	v.logger.Debug("forge doc saved", "id", doc.ID, "path", filePath)
	return filePath, nil
}

// SaveDocKit materializes a kit as a folder named after its sanitized name,
// holding an _index.md plus one file per item. Returns the kit folder path.
func (v *Vault) SaveDocKit(kit *models.DocKit, projectPath string) (string, error) {
	name := kit.Name
	if strings.TrimSpace(name) == "" {
		name = "Untitled DocKit"
	}
	safeName := SanitizeFilename(name)

	folder, err := v.EnsureFolder(joinPath(projectPath, SanitizeFolderPath(kit.FolderPath), safeName))
	if err != nil {
		return "", err
	}

	index, err := formatDocKitIndex(kit, time.Now())
	if err != nil {
		return "", err
	}
	if err := v.writeFile(folder, "_index.md", index); err != nil {
		return "", err
	}

	for i := range kit.Items {
		if err := v.saveDocKitItem(&kit.Items[i], folder); err != nil {
			return "", err
		}
	}

	v.logger.Debug("dockit saved", "id", kit.ID, "path", folder, "items", len(kit.Items))
	return folder, nil
}

func (v *Vault) saveDocKitItem(item *models.DocKitItem, folder string) error {
	name := item.Title
	if strings.TrimSpace(name) == "" {
		name = "Item " + item.ID
	}
	fileName := SanitizeFilename(name) + ".md"

	fields := []Field{
		{fmKeyItemID, item.ID},
		{fmKeyItemType, item.Type},
	}
	if item.URL != "" {
		fields = append(fields, Field{fmKeyURL, item.URL})
	}
	fm, err := FormatFrontmatter(fields)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(fm)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "# %s\n\n", item.Title)
	sb.WriteString(item.Content)

	return v.writeFile(folder, fileName, sb.String())
}

// ReadStoredItems lists the files of folderPath and reconstructs item
// metadata from their header blocks. Files without a recognized type tag are
// skipped. Branches come back reference-only: message transcripts are not
// re-parsed into structured messages.
func (v *Vault) ReadStoredItems(folderPath string) (StoredItems, error) {
	var items StoredItems

	files, err := v.ListFiles(folderPath)
	if err != nil {
		return items, err
	}

	for _, file := range files {
		data, err := os.ReadFile(v.abs(file))
		if err != nil {
			v.logger.Debug("skipping unreadable file", "path", file, "error", err)
			continue
		}

		meta, body := ParseFrontmatter(string(data))
		if meta == nil {
			continue
		}

		switch fmString(meta, fmKeyType) {
		case typeTagBranch:
			items.Branches = append(items.Branches, models.Branch{
				ID:        fmString(meta, fmKeyID),
				FolderID:  fmString(meta, fmKeyFolderID),
				Title:     headingFrom(body),
				Platform:  fmString(meta, fmKeyPlatform),
				URL:       fmString(meta, fmKeyURL),
				CreatedAt: fmMillis(meta, fmKeyCreated),
				UpdatedAt: fmMillis(meta, fmKeyUpdated),
			})
		case typeTagForgeDoc:
			items.ForgeDocs = append(items.ForgeDocs, models.ForgeDoc{
				ID:        fmString(meta, fmKeyID),
				FolderID:  fmString(meta, fmKeyFolderID),
				Title:     headingFrom(body),
				Content:   bodyAfterRule(body),
				Tags:      fmStringSlice(meta, fmKeyTags),
				CreatedAt: fmMillis(meta, fmKeyCreated),
				UpdatedAt: fmMillis(meta, fmKeyUpdated),
			})
		case typeTagDocKit:
			items.DocKits = append(items.DocKits, models.DocKit{
				ID:          fmString(meta, fmKeyID),
				FolderID:    fmString(meta, fmKeyFolderID),
				Name:        headingFrom(body),
				Description: fmString(meta, fmKeyDescription),
				Items:       []models.DocKitItem{},
				CreatedAt:   fmMillis(meta, fmKeyCreated),
				UpdatedAt:   fmMillis(meta, fmKeyUpdated),
			})
		}
	}

	return items, nil
}

// writeFile writes content at name inside folder. Only the folder portion is
// path-validated: leaf names come from SanitizeFilename and contain no
// separators, so consecutive dots in a title ("Thinking...") cannot traverse.
func (v *Vault) writeFile(folder, name, content string) error {
	normalized, err := ValidatePath(folder)
	if err != nil {
		return err
	}
	if strings.ContainsRune(name, 0) {
		return &domain.InvalidPathError{Path: name, Reason: "contains null bytes"}
	}
	path := joinPath(normalized, name)
	if err := os.WriteFile(v.abs(path), []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// joinPath joins non-empty segments with the canonical separator.
func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}

// headingFrom returns the text of the first "# " heading in body.
func headingFrom(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return ""
}

// bodyAfterRule returns the content following the first horizontal rule,
// which is where document bodies live in the stored format.
func bodyAfterRule(body string) string {
	idx := strings.Index(body, "\n---\n")
	if idx < 0 {
		return ""
	}
	return strings.TrimPrefix(body[idx+len("\n---\n"):], "\n")
}
