package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestRedactString(t *testing.T) {
	r := NewRedactor(nil)

	tests := []struct {
		name  string
		input string
		leak  string
	}{
		{"email", "contact me at sam@example.com please", "sam@example.com"},
		{"ssn", "ssn is 123-45-6789 ok", "123-45-6789"},
		{"phone", "call (555) 123-4567 today", "123-4567"},
		{"ipv4", "client at 10.1.2.3 connected", "10.1.2.3"},
		{"bearer", "header Bearer abc123XYZ sent", "abc123XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.RedactString(tt.input)
			if strings.Contains(out, tt.leak) {
				t.Errorf("RedactString(%q) = %q, still contains %q", tt.input, out, tt.leak)
			}
		})
	}
}

func TestRedactStringPassesCleanText(t *testing.T) {
	r := NewRedactor(nil)
	clean := "analysis finished without findings"
	if got := r.RedactString(clean); got != clean {
		t.Errorf("clean string modified: %q", got)
	}
}

func TestSensitiveKeys(t *testing.T) {
	r := NewRedactor(nil)

	for _, key := range []string{"text", "passage", "submission", "essay", "student_email", "Authorization"} {
		if !r.isSensitiveKey(key) {
			t.Errorf("key %q should be sensitive", key)
		}
	}
	for _, key := range []string{"word_count", "confidence", "duration_ms", "profile"} {
		if r.isSensitiveKey(key) {
			t.Errorf("key %q should not be sensitive", key)
		}
	}
}

func TestRedactAttrReplacesSensitiveValues(t *testing.T) {
	r := NewRedactor(nil)

	attr := r.redactAttr(slog.String("text", "a full student essay goes here"))
	if strings.Contains(attr.Value.String(), "essay goes here") {
		t.Errorf("sensitive attribute not replaced: %q", attr.Value.String())
	}

	attr = r.redactAttr(slog.Int("word_count", 42))
	if attr.Value.Kind() != slog.KindInt64 || attr.Value.Int64() != 42 {
		t.Errorf("non-sensitive attribute modified: %v", attr)
	}
}

func TestRedactEmail(t *testing.T) {
	if got := RedactEmail("jordan@school.edu"); got != "j***@school.edu" {
		t.Errorf("RedactEmail = %q", got)
	}
	if got := RedactEmail("not-an-email"); got != "not-an-email" {
		t.Errorf("RedactEmail on non-email = %q", got)
	}
}

func TestSnippet(t *testing.T) {
	r := NewRedactor(nil)

	long := strings.Repeat("x", 100) + " mail sam@example.com"
	got := r.Snippet(long, 50)
	if len(got) > 54 {
		t.Errorf("snippet too long: %d chars", len(got))
	}
	if strings.Contains(got, "@example.com") {
		t.Errorf("snippet leaked email: %q", got)
	}
	if r.Snippet("anything", 0) != "" {
		t.Error("zero-length snippet should be empty")
	}
}
