package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrub(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		gone  string
		token string
	}{
		{
			"anthropic api key",
			"use sk-ant-api03-abc123XYZ for auth",
			"sk-ant-api03-abc123XYZ",
			"[REDACTED_API_KEY]",
		},
		{
			"long opaque sk token",
			"token sk-" + strings.Repeat("a", 24) + " in config",
			"sk-" + strings.Repeat("a", 24),
			"[REDACTED_KEY]",
		},
		{
			"github token",
			"export GH=ghp_" + strings.Repeat("A", 36),
			"ghp_" + strings.Repeat("A", 36),
			"[REDACTED_GITHUB_TOKEN]",
		},
		{
			"api key assignment",
			"API_KEY=" + strings.Repeat("k", 20),
			strings.Repeat("k", 20),
			"[REDACTED_API_KEY]",
		},
		{
			"password assignment",
			`password: "hunter2hunter2"`,
			"hunter2hunter2",
			"[REDACTED_PASSWORD]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Scrub(tt.in)
			assert.NotContains(t, out, tt.gone)
			assert.Contains(t, out, tt.token)
		})
	}
}

func TestScrub_CleanTextUnchanged(t *testing.T) {
	in := "refactor the session parser and add tests"
	assert.Equal(t, in, Scrub(in))
}
