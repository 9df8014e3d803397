package transcript

import "regexp"

// scrubRule replaces matches of a secret-looking pattern with a fixed token.
type scrubRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Over-redaction is acceptable here; a leaked credential is not. Rules run
// in order over the whole text.
var scrubRules = []scrubRule{
	{regexp.MustCompile(`sk-ant-api\S+`), "[REDACTED_API_KEY]"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "[REDACTED_KEY]"},
	{regexp.MustCompile(`ghp_[a-zA-Z0-9]{36,}`), "[REDACTED_GITHUB_TOKEN]"},
	{regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?[\w-]{20,}`), "[REDACTED_API_KEY]"},
	{regexp.MustCompile(`(?i)password\s*[:=]\s*["'][^"']{8,}["']`), "[REDACTED_PASSWORD]"},
}

// Scrub removes API keys, tokens, and password assignments from text.
// It runs inside extraction, before any text reaches a chunk buffer or
// the database.
func Scrub(text string) string {
	for _, r := range scrubRules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
