package logging

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"edusignal-hq/veritas/pkg/config"
)

// Redactor redacts personal data and submitted text from log fields. The
// service handles student writing; neither the passages nor author
// identities may appear in log output.
type Redactor struct {
	patterns map[string]*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Common redaction pattern names.
const (
	PatternEmail       = "email"
	PatternSSN         = "ssn"
	PatternPhone       = "phone"
	PatternIPv4        = "ipv4"
	PatternBearerToken = "bearer_token"
)

// NewRedactor creates a new Redactor with default and custom patterns.
func NewRedactor(customPatterns []config.RedactPattern) *Redactor {
	r := &Redactor{
		patterns: make(map[string]*redactPattern),
	}

	r.addDefaultPatterns()

	for _, p := range customPatterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			// Invalid custom patterns are skipped; the defaults still apply.
			continue
		}
		r.patterns[p.Name] = &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		}
	}

	return r
}

// addDefaultPatterns adds built-in redaction patterns.
func (r *Redactor) addDefaultPatterns() {
	patterns := map[string]struct {
		regex       string
		replacement string
	}{
		// Email addresses
		PatternEmail: {
			regex:       `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
			replacement: "***@***",
		},

		// Social Security Numbers
		PatternSSN: {
			regex:       `\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`,
			replacement: "***-**-****",
		},

		// Phone numbers
		PatternPhone: {
			regex:       `\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`,
			replacement: "***-***-****",
		},

		// IPv4 addresses
		PatternIPv4: {
			regex:       `\b(?:\d{1,3}\.){3}\d{1,3}\b`,
			replacement: "*.*.*.*",
		},

		// Bearer tokens
		PatternBearerToken: {
			regex:       `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`,
			replacement: "Bearer ***",
		},
	}

	for name, p := range patterns {
		r.patterns[name] = &redactPattern{
			name:        name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		}
	}
}

// RedactString redacts personal data from a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}

	return redacted
}

// redactAttr redacts a single slog attribute. Attributes whose key names
// submitted content are replaced wholesale; other string values pass through
// the pattern set.
func (r *Redactor) redactAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		redacted := make([]slog.Attr, len(group))
		for i, a := range group {
			redacted[i] = r.redactAttr(a)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	}

	if r.isSensitiveKey(attr.Key) {
		return slog.String(attr.Key, r.redactValue(attr.Value))
	}

	if attr.Value.Kind() == slog.KindString {
		return slog.String(attr.Key, r.RedactString(attr.Value.String()))
	}

	return attr
}

// isSensitiveKey checks if a key name indicates submitted content or
// personal data.
func (r *Redactor) isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	sensitiveKeys := []string{
		"text", "passage", "submission", "essay",
		"email", "student", "author",
		"password", "secret", "token", "api_key", "apikey",
		"auth", "authorization",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}

	return false
}

// redactValue redacts a sensitive value completely, keeping a short prefix
// of longer values for debugging.
func (r *Redactor) redactValue(value slog.Value) string {
	if value.Kind() != slog.KindString {
		return "***"
	}
	v := value.String()
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return "***"
	}
	return v[:4] + "***"
}

// RedactEmail redacts an email address partially (shows first char and domain).
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	username := parts[0]
	domain := parts[1]

	if len(username) == 0 {
		return "***@" + domain
	}

	return string(username[0]) + "***@" + domain
}

// Snippet returns a short, redacted preview of submitted text suitable for
// debug logs: at most n characters with personal data patterns removed.
func (r *Redactor) Snippet(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}
	if len(text) > n {
		text = text[:n] + "..."
	}
	return r.RedactString(text)
}

// redactHandler is a slog.Handler that redacts every record's attributes
// before delegating to the wrapped handler.
type redactHandler struct {
	inner    slog.Handler
	redactor *Redactor
}

func newRedactHandler(inner slog.Handler, redactor *Redactor) *redactHandler {
	return &redactHandler{inner: inner, redactor: redactor}
}

// Enabled reports whether the wrapped handler handles records at the level.
func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the record's attributes and message, then delegates.
func (h *redactHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, h.redactor.RedactString(record.Message), record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(h.redactor.redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs returns a handler with the redacted attributes pre-applied.
func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		redacted[i] = h.redactor.redactAttr(attr)
	}
	return &redactHandler{inner: h.inner.WithAttrs(redacted), redactor: h.redactor}
}

// WithGroup returns a handler with the group opened on the wrapped handler.
func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{inner: h.inner.WithGroup(name), redactor: h.redactor}
}
