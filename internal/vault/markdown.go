package vault

import (
	"fmt"
	"strings"
	"time"

	"forgesync/internal/domain/models"
)

// referenceOnlyLine is written for branches pushed without messages.
const referenceOnlyLine = "*This is a saved reference to a conversation. Visit the original link to view the full chat.*\n"

// messageTimeLayout renders message timestamps for human readers; the
// machine-readable timestamps live in the header block.
const messageTimeLayout = "2006-01-02 15:04:05"

func formatBranchMarkdown(branch *models.Branch, now time.Time) (string, error) {
	fields := []Field{
		{fmKeyID, branch.ID},
		{fmKeyType, typeTagBranch},
	}
	if branch.FolderID != "" {
		fields = append(fields, Field{fmKeyFolderID, branch.FolderID})
	}
	fields = append(fields,
		Field{fmKeyPlatform, branch.Platform},
		Field{fmKeyURL, branch.URL},
		Field{fmKeyCreated, isoMillis(branch.CreatedAt)},
		Field{fmKeyUpdated, isoMillis(branch.UpdatedAt)},
		Field{fmKeySynced, isoMillis(now.UnixMilli())},
	)

	fm, err := FormatFrontmatter(fields)
	if err != nil {
		return "", err
	}

	title := branch.Title
	if title == "" {
		title = "Untitled Chat"
	}

	var sb strings.Builder
	sb.WriteString(fm)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "> Platform: %s | [Original Link](%s)\n\n", branch.Platform, branch.URL)
	if len(branch.Tags) > 0 {
		sb.WriteString(tagLine(branch.Tags))
	}
	sb.WriteString("---\n\n")

	// A branch without a messages list is a bookmark, not a transcript.
	if branch.Messages == nil {
		sb.WriteString(referenceOnlyLine)
		return sb.String(), nil
	}

	for _, msg := range branch.Messages {
		label := "**Assistant**"
		if msg.Role == models.RoleUser {
			label = "**You**"
		}
		fmt.Fprintf(&sb, "### %s\n", label)
		fmt.Fprintf(&sb, "*%s*\n\n", time.UnixMilli(msg.Timestamp).Local().Format(messageTimeLayout))
		fmt.Fprintf(&sb, "%s\n\n", msg.Content)
		sb.WriteString("---\n\n")
	}

	return sb.String(), nil
}

func formatForgeDocMarkdown(doc *models.ForgeDoc, now time.Time) (string, error) {
	fields := []Field{
		{fmKeyID, doc.ID},
		{fmKeyType, typeTagForgeDoc},
	}
	if doc.FolderID != "" {
		fields = append(fields, Field{fmKeyFolderID, doc.FolderID})
	}
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	fields = append(fields,
		Field{fmKeyTags, tags},
		Field{fmKeyCreated, isoMillis(doc.CreatedAt)},
		Field{fmKeyUpdated, isoMillis(doc.UpdatedAt)},
		Field{fmKeySynced, isoMillis(now.UnixMilli())},
	)

	fm, err := FormatFrontmatter(fields)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fm)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	if len(doc.Tags) > 0 {
		sb.WriteString(tagLine(doc.Tags))
	}
	sb.WriteString("---\n\n")
	sb.WriteString(doc.Content)

	return sb.String(), nil
}

func formatDocKitIndex(kit *models.DocKit, now time.Time) (string, error) {
	fields := []Field{
		{fmKeyID, kit.ID},
		{fmKeyType, typeTagDocKit},
	}
	if kit.FolderID != "" {
		fields = append(fields, Field{fmKeyFolderID, kit.FolderID})
	}
	if kit.Description != "" {
		fields = append(fields, Field{fmKeyDescription, kit.Description})
	}
	fields = append(fields,
		Field{fmKeyCreated, isoMillis(kit.CreatedAt)},
		Field{fmKeyUpdated, isoMillis(kit.UpdatedAt)},
		Field{fmKeySynced, isoMillis(now.UnixMilli())},
	)

	fm, err := FormatFrontmatter(fields)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fm)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "# %s\n\n", kit.Name)
	fmt.Fprintf(&sb, "%s\n\n", kit.Description)
	sb.WriteString("---\n\n")
	sb.WriteString("## Items\n\n")

	for i := range kit.Items {
		item := &kit.Items[i]
		name := item.Title
		if strings.TrimSpace(name) == "" {
			name = "Item " + item.ID
		}
		fmt.Fprintf(&sb, "- [[%s]] (%s)\n", SanitizeFilename(name), item.Type)
	}

	return sb.String(), nil
}

func tagLine(tags []string) string {
	hashed := make([]string, len(tags))
	for i, t := range tags {
		hashed[i] = "#" + t
	}
	return "Tags: " + strings.Join(hashed, " ") + "\n\n"
}
