package vault

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forgesync/internal/domain"
	"forgesync/internal/domain/models"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v, err := New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func readVaultFile(t *testing.T, v *Vault, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Root(), filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestEnsureFolder(t *testing.T) {
	v := newTestVault(t)

	got, err := v.EnsureFolder("ThinkForge/Alpha")
	if err != nil {
		t.Fatalf("EnsureFolder: %v", err)
	}
	if got != "ThinkForge/Alpha" {
		t.Errorf("EnsureFolder = %q, want ThinkForge/Alpha", got)
	}

	// Repeat is a no-op.
	if _, err := v.EnsureFolder("ThinkForge/Alpha"); err != nil {
		t.Fatalf("EnsureFolder repeat: %v", err)
	}

	// Traversal never reaches the filesystem.
	if _, err := v.EnsureFolder("../outside"); err == nil {
		t.Fatal("EnsureFolder accepted a traversal path")
	}
}

func TestEnsureFolderFileConflict(t *testing.T) {
	v := newTestVault(t)

	if err := os.WriteFile(filepath.Join(v.Root(), "taken"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := v.EnsureFolder("taken")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("EnsureFolder over a file: err = %v, want ErrConflict", err)
	}
}

func TestSaveBranchWithMessages(t *testing.T) {
	v := newTestVault(t)

	branch := &models.Branch{
		ID:       "b1",
		Title:    "Planning Session",
		Platform: "claude",
		URL:      "https://chat.example/b1",
		Tags:     []string{"work"},
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "hello", Timestamp: 1700000000000},
			{Role: models.RoleAssistant, Content: "hi there", Timestamp: 1700000001000},
		},
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000001000,
	}

	path, err := v.SaveBranch(branch, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveBranch: %v", err)
	}
	if path != "TF/Proj/Planning Session.md" {
		t.Errorf("path = %q", path)
	}

	content := readVaultFile(t, v, path)
	for _, want := range []string{
		"thinkforge_id: b1",
		"thinkforge_type: branch",
		"# Planning Session",
		"> Platform: claude | [Original Link](https://chat.example/b1)",
		"Tags: #work",
		"### **You**",
		"### **Assistant**",
		"hello",
		"hi there",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, referenceOnlyLine) {
		t.Error("transcript branch rendered as reference-only")
	}
}

func TestSaveBranchReferenceOnly(t *testing.T) {
	v := newTestVault(t)

	branch := &models.Branch{
		ID:       "b2",
		Platform: "chatgpt",
		URL:      "https://chat.example/b2",
	}

	path, err := v.SaveBranch(branch, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveBranch: %v", err)
	}
	if path != "TF/Proj/Chat b2.md" {
		t.Errorf("untitled branch path = %q, want fallback filename", path)
	}

	content := readVaultFile(t, v, path)
	if !strings.Contains(content, referenceOnlyLine) {
		t.Error("branch without messages should render the reference-only note")
	}
	if !strings.Contains(content, "# Untitled Chat") {
		t.Error("untitled branch should get the fallback heading")
	}
}

func TestSaveBranchOverwrites(t *testing.T) {
	v := newTestVault(t)

	branch := &models.Branch{ID: "b1", Title: "Same Title", Platform: "claude", URL: "u"}
	if _, err := v.SaveBranch(branch, "TF/Proj"); err != nil {
		t.Fatal(err)
	}

	branch.Messages = []models.Message{{Role: models.RoleUser, Content: "second push", Timestamp: 1}}
	path, err := v.SaveBranch(branch, "TF/Proj")
	if err != nil {
		t.Fatal(err)
	}

	content := readVaultFile(t, v, path)
	if !strings.Contains(content, "second push") {
		t.Error("second push did not overwrite the first file")
	}
	if strings.Contains(content, referenceOnlyLine) {
		t.Error("overwritten file still carries the first version's body")
	}
}

func TestSaveBranchEllipsisTitle(t *testing.T) {
	v := newTestVault(t)

	// Consecutive dots in a title are just a filename, not traversal.
	branch := &models.Branch{ID: "b1", Title: "Thinking...", Platform: "claude", URL: "u"}
	path, err := v.SaveBranch(branch, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveBranch: %v", err)
	}
	if path != "TF/Proj/Thinking....md" {
		t.Errorf("path = %q", path)
	}

	content := readVaultFile(t, v, path)
	if !strings.Contains(content, "# Thinking...") {
		t.Errorf("content missing title heading:\n%s", content)
	}
}

func TestSaveForgeDocDottedTitle(t *testing.T) {
	v := newTestVault(t)

	doc := &models.ForgeDoc{ID: "d1", Title: "Draft v2..final", Content: "body"}
	path, err := v.SaveForgeDoc(doc, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveForgeDoc: %v", err)
	}
	if path != "TF/Proj/Draft v2..final.md" {
		t.Errorf("path = %q", path)
	}
}

func TestSaveBranchNestedFolderPath(t *testing.T) {
	v := newTestVault(t)

	branch := &models.Branch{ID: "b1", Title: "Deep", Platform: "p", URL: "u", FolderPath: "Work/../Research"}
	path, err := v.SaveBranch(branch, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveBranch: %v", err)
	}
	// Traversal segment is dropped by sanitization, not an error.
	if path != "TF/Proj/Work/Research/Deep.md" {
		t.Errorf("path = %q", path)
	}
}

func TestSaveForgeDoc(t *testing.T) {
	v := newTestVault(t)

	doc := &models.ForgeDoc{
		ID:        "d1",
		Title:     "API Notes",
		Content:   "Some body text.",
		Tags:      []string{"api", "draft"},
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
	}

	path, err := v.SaveForgeDoc(doc, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveForgeDoc: %v", err)
	}

	content := readVaultFile(t, v, path)
	for _, want := range []string{
		"thinkforge_type: forgeDoc",
		"tags:\n  - api\n  - draft",
		"# API Notes",
		"Tags: #api #draft",
		"Some body text.",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q:\n%s", want, content)
		}
	}
}

func TestSaveDocKit(t *testing.T) {
	v := newTestVault(t)

	kit := &models.DocKit{
		ID:          "k1",
		Name:        "My Kit",
		Description: "Reference bundle",
		Items: []models.DocKitItem{
			{ID: "i1", Type: models.ItemTypeURL, Title: "Ref", URL: "https://example.com", Content: "link notes"},
			{ID: "i2", Type: models.ItemTypeText, Content: "loose text"},
		},
	}

	folder, err := v.SaveDocKit(kit, "TF/Proj")
	if err != nil {
		t.Fatalf("SaveDocKit: %v", err)
	}
	if folder != "TF/Proj/My Kit" {
		t.Errorf("folder = %q", folder)
	}

	index := readVaultFile(t, v, folder+"/_index.md")
	for _, want := range []string{
		"thinkforge_type: docKit",
		"description: Reference bundle",
		"# My Kit",
		"## Items",
		"- [[Ref]] (url)",
		"- [[Item i2]] (text)",
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index missing %q:\n%s", want, index)
		}
	}

	item := readVaultFile(t, v, folder+"/Ref.md")
	for _, want := range []string{"item_id: i1", "type: url", "url: https://example.com", "link notes"} {
		if !strings.Contains(item, want) {
			t.Errorf("item file missing %q:\n%s", want, item)
		}
	}

	// The untitled item lands under its fallback filename.
	if _, err := os.Stat(filepath.Join(v.Root(), "TF/Proj/My Kit/Item i2.md")); err != nil {
		t.Errorf("fallback item file missing: %v", err)
	}
}

func TestReadStoredItems(t *testing.T) {
	v := newTestVault(t)

	branch := &models.Branch{
		ID:        "b1",
		Title:     "Stored Chat",
		Platform:  "claude",
		URL:       "https://chat.example/b1",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000001000,
	}
	if _, err := v.SaveBranch(branch, "Synced"); err != nil {
		t.Fatal(err)
	}

	doc := &models.ForgeDoc{
		ID:        "d1",
		Title:     "Stored Doc",
		Content:   "doc body",
		Tags:      []string{"kept"},
		CreatedAt: 1700000002000,
		UpdatedAt: 1700000003000,
	}
	if _, err := v.SaveForgeDoc(doc, "Synced"); err != nil {
		t.Fatal(err)
	}

	// A file without a header block is ignored.
	if err := os.WriteFile(filepath.Join(v.Root(), "Synced/plain.md"), []byte("# Plain note\n"), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := v.ReadStoredItems("Synced")
	if err != nil {
		t.Fatalf("ReadStoredItems: %v", err)
	}

	if len(items.Branches) != 1 {
		t.Fatalf("branches = %d, want 1", len(items.Branches))
	}
	got := items.Branches[0]
	if got.ID != "b1" || got.Title != "Stored Chat" || got.Platform != "claude" {
		t.Errorf("branch = %+v", got)
	}
	if got.CreatedAt != branch.CreatedAt || got.UpdatedAt != branch.UpdatedAt {
		t.Errorf("branch timestamps = %d/%d, want %d/%d",
			got.CreatedAt, got.UpdatedAt, branch.CreatedAt, branch.UpdatedAt)
	}

	if len(items.ForgeDocs) != 1 {
		t.Fatalf("forgeDocs = %d, want 1", len(items.ForgeDocs))
	}
	gotDoc := items.ForgeDocs[0]
	if gotDoc.ID != "d1" || gotDoc.Title != "Stored Doc" {
		t.Errorf("doc = %+v", gotDoc)
	}
	if !strings.Contains(gotDoc.Content, "doc body") {
		t.Errorf("doc content = %q", gotDoc.Content)
	}
	if len(gotDoc.Tags) != 1 || gotDoc.Tags[0] != "kept" {
		t.Errorf("doc tags = %v", gotDoc.Tags)
	}
}

func TestReadStoredItemsMissingFolder(t *testing.T) {
	v := newTestVault(t)

	items, err := v.ReadStoredItems("nope")
	if err != nil {
		t.Fatalf("ReadStoredItems: %v", err)
	}
	if len(items.Branches)+len(items.ForgeDocs)+len(items.DocKits) != 0 {
		t.Error("missing folder should read as empty")
	}
}

func TestListAllFolders(t *testing.T) {
	v := newTestVault(t)

	for _, p := range []string{"b/nested", "a"} {
		if _, err := v.EnsureFolder(p); err != nil {
			t.Fatal(err)
		}
	}

	folders, err := v.ListAllFolders()
	if err != nil {
		t.Fatalf("ListAllFolders: %v", err)
	}

	want := []string{"a", "b", "b/nested"}
	if len(folders) != len(want) {
		t.Fatalf("folders = %v, want %v", folders, want)
	}
	for i := range want {
		if folders[i] != want[i] {
			t.Fatalf("folders = %v, want %v", folders, want)
		}
	}
}
