package vault

import (
	"errors"
	"strings"
	"testing"

	"forgesync/internal/domain"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "simple relative path", path: "Notes/Inbox", want: "Notes/Inbox"},
		{name: "backslashes normalized", path: "Notes\\Inbox", want: "Notes/Inbox"},
		{name: "separator runs collapsed", path: "Notes//Inbox", want: "Notes/Inbox"},
		{name: "trailing separator stripped", path: "Notes/Inbox/", want: "Notes/Inbox"},
		{name: "empty path allowed", path: "", want: ""},
		{name: "traversal rejected", path: "Notes/../secret", wantErr: true},
		{name: "traversal via backslash rejected", path: "Notes\\..\\secret", wantErr: true},
		{name: "bare dotdot rejected", path: "..", wantErr: true},
		{name: "embedded dotdot rejected", path: "a..b", wantErr: true},
		{name: "absolute path rejected", path: "/etc/passwd", wantErr: true},
		{name: "windows drive rejected", path: "C:/Users/x", wantErr: true},
		{name: "windows drive backslash rejected", path: "c:\\Users\\x", wantErr: true},
		{name: "null byte rejected", path: "Notes/bad\x00name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidatePath(%q) = %q, want error", tt.path, got)
				}
				var pathErr *domain.InvalidPathError
				if !errors.As(err, &pathErr) {
					t.Fatalf("ValidatePath(%q) error = %T, want *domain.InvalidPathError", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidatePath(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ValidatePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSanitizeFolderPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "single segment", path: "Inbox", want: "Inbox"},
		{name: "nested", path: "Work/Projects", want: "Work/Projects"},
		{name: "traversal segments dropped", path: "../etc/passwd", want: "etc/passwd"},
		{name: "dot segments dropped", path: "./a/./b", want: "a/b"},
		{name: "leading and trailing separators trimmed", path: "/a/b/", want: "a/b"},
		{name: "backslash separators", path: "a\\b\\c", want: "a/b/c"},
		{name: "mixed separator runs", path: "a//b\\\\c", want: "a/b/c"},
		{name: "forbidden chars sanitized per segment", path: "Q: stuff/r?d", want: "Q- stuff/r-d"},
		{name: "only traversal yields empty", path: "../..", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFolderPath(tt.path); got != tt.want {
				t.Errorf("SanitizeFolderPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean name unchanged", in: "My Chat", want: "My Chat"},
		{name: "forbidden chars replaced", in: `a/b\c:d*e?f"g<h>i|j`, want: "a-b-c-d-e-f-g-h-i-j"},
		{name: "whitespace collapsed", in: "a \t  b", want: "a b"},
		{name: "trimmed", in: "  padded  ", want: "padded"},
		{name: "empty stays empty", in: "", want: ""},
		{name: "truncated to limit", in: strings.Repeat("x", 150), want: strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameTruncationTrimsTrailingSpace(t *testing.T) {
	// 99 runes + a space + more text truncates right after the space; the
	// result must not keep it, or a second application would differ.
	in := strings.Repeat("x", 99) + " " + strings.Repeat("y", 30)
	got := SanitizeFilename(in)
	if strings.HasSuffix(got, " ") {
		t.Errorf("SanitizeFilename left a trailing space: %q", got)
	}
	if again := SanitizeFilename(got); again != got {
		t.Errorf("SanitizeFilename not idempotent: %q != %q", again, got)
	}
}
