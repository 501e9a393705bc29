package slug

import (
	"regexp"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Tasks", "tasks"},
		{"spaces", "My Tasks", "my-tasks"},
		{"surrounding whitespace", "  My Tasks  ", "my-tasks"},
		{"punctuation run", "Groceries!!! (weekly)", "groceries-weekly"},
		{"mixed case and digits", "Q3 2025 OKRs", "q3-2025-okrs"},
		{"leading punctuation", "--hello--", "hello"},
		{"consecutive separators", "a___b...c", "a-b-c"},
		{"unicode stripped", "café über", "caf-ber"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestMakeShape(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"  lots   of   spaces  ",
		"MiXeD CaSe 123",
		"tabs\tand\nnewlines",
		"trailing dots...",
	}
	for _, title := range titles {
		got := Make(title)
		if got == "" {
			t.Fatalf("Make(%q) unexpectedly empty", title)
		}
		if !slugPattern.MatchString(got) {
			t.Errorf("Make(%q) = %q does not match %v", title, got, slugPattern)
		}
		if again := Make(got); again != got {
			t.Errorf("Make not idempotent: Make(%q) = %q, Make(%q) = %q", title, got, got, again)
		}
	}
}
