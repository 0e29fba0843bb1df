package vault

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Frontmatter keys shared between the write and read paths.
const (
	fmKeyID          = "thinkforge_id"
	fmKeyType        = "thinkforge_type"
	fmKeyFolderID    = "folder_id"
	fmKeyPlatform    = "platform"
	fmKeyURL         = "url"
	fmKeyTags        = "tags"
	fmKeyDescription = "description"
	fmKeyCreated     = "created"
	fmKeyUpdated     = "updated"
	fmKeySynced      = "synced"
	fmKeyItemID      = "item_id"
	fmKeyItemType    = "type"
)

// Type tags identifying what kind of item a stored file holds.
const (
	typeTagBranch   = "branch"
	typeTagForgeDoc = "forgeDoc"
	typeTagDocKit   = "docKit"
)

// Field is a single ordered frontmatter entry. Value is either a string or
// a []string; arrays render as an indented dash list under the key.
type Field struct {
	Key   string
	Value any
}

// FormatFrontmatter renders fields as a delimited header block:
//
//	---
//	key: value
//	tags:
//	  - item
//	---
//
// Key order is preserved. Values are encoded through yaml so that anything
// written here survives ParseFrontmatter unchanged.
func FormatFrontmatter(fields []Field) (string, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: f.Key}
		var value *yaml.Node
		switch v := f.Value.(type) {
		case []string:
			value = &yaml.Node{Kind: yaml.SequenceNode}
			for _, item := range v {
				value.Content = append(value.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
			}
		case string:
			value = &yaml.Node{Kind: yaml.ScalarNode, Value: v}
		default:
			value = &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(v)}
		}
		mapping.Content = append(mapping.Content, key, value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	return "---\n" + buf.String() + "---", nil
}

// ParseFrontmatter splits a stored file into its header block and body.
// Files without a recognizable header return a nil map and the full content
// as body; a malformed header is treated the same way rather than failing,
// since stored files may be hand-edited.
func ParseFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return nil, content
	}

	lines := strings.Split(content, "\n")

	// Find the closing delimiter, skipping the opening "---" line.
	closing := 0
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, content
	}

	yamlContent := strings.Join(lines[1:closing], "\n")

	var metadata map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &metadata); err != nil {
		return nil, content
	}

	body := strings.Join(lines[closing+1:], "\n")
	return metadata, body
}

// fmString returns the value under key rendered as a string. yaml decoding
// may have produced a non-string scalar (numbers, timestamps); those are
// converted back to their textual form.
func fmString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return isoMillis(v.UnixMilli())
	default:
		return fmt.Sprint(v)
	}
}

// fmStringSlice returns the array value under key, or nil.
func fmStringSlice(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// fmMillis returns the timestamp under key as epoch milliseconds, or 0.
func fmMillis(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case time.Time:
		return v.UnixMilli()
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// isoMillis formats an epoch-milliseconds timestamp the way the extension
// expects: UTC with millisecond precision.
func isoMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
