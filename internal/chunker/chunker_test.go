package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/session-memory/internal/transcript"
)

func userLine(text string) transcript.Line {
	return transcript.Line{Speaker: transcript.SpeakerUser, Text: text}
}

func assistantLine(text string) transcript.Line {
	return transcript.Line{Speaker: transcript.SpeakerAssistant, Text: text}
}

func TestSegment_EmptySession(t *testing.T) {
	s := transcript.Session{Project: "proj", ID: "abc"}
	assert.Nil(t, Segment(s, Budget))
}

func TestSegment_SmallSessionSingleChunk(t *testing.T) {
	s := transcript.Session{
		Project: "c--Users-alice-Development-myapp",
		ID:      "abc123",
		Lines: []transcript.Line{
			userLine("Can you add a stats command to the CLI?"),
			assistantLine("Done, it reports active and deleted counts."),
		},
	}

	chunks := Segment(s, Budget)
	require.Len(t, chunks, 1)
	want := "**User:** Can you add a stats command to the CLI?\n\n" +
		"**Assistant:** Done, it reports active and deleted counts."
	assert.Equal(t, want, chunks[0].Text)
	assert.True(t, strings.HasPrefix(chunks[0].Summary, "Session in myapp: "), "got %q", chunks[0].Summary)
}

func TestSegment_LargeSessionBoundedChunks(t *testing.T) {
	var lines []transcript.Line
	for i := 0; i < 30; i++ {
		lines = append(lines, userLine(fmt.Sprintf("turn %d: %s", i, strings.Repeat("q", 180))))
		lines = append(lines, assistantLine(fmt.Sprintf("reply %d: %s", i, strings.Repeat("a", 180))))
	}
	s := transcript.Session{Project: "proj", ID: "abc", Lines: lines}

	chunks := Segment(s, Budget)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), Budget, "chunk %d", i)
		assert.NotEmpty(t, c.Text)
		assert.True(t, strings.HasPrefix(c.Summary, "Session proj pt"), "chunk %d summary %q", i, c.Summary)
	}

	// No line was split across chunks: reassembling yields the full text.
	var parts []string
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	var rendered []string
	for _, l := range lines {
		rendered = append(rendered, l.Render())
	}
	assert.Equal(t, strings.Join(rendered, "\n\n"), strings.Join(parts, "\n\n"))
}

func TestSegment_OversizedSingleLineNeverTruncated(t *testing.T) {
	long := userLine(strings.Repeat("x", Budget+500))
	s := transcript.Session{
		Project: "proj",
		ID:      "abc",
		Lines:   []transcript.Line{long, assistantLine("short reply here")},
	}

	chunks := Segment(s, Budget)
	require.Len(t, chunks, 2)
	assert.Equal(t, long.Render(), chunks[0].Text)
	assert.Greater(t, len(chunks[0].Text), Budget)
}

func TestSegment_SplitsAtTopicShift(t *testing.T) {
	filler := strings.Repeat("detail ", 40) // ~280 chars per line
	s := transcript.Session{
		Project: "proj",
		ID:      "abc",
		Lines: []transcript.Line{
			userLine("Can you review the chunker code? " + filler),
			assistantLine("Reviewed. " + filler + filler),
			assistantLine("More notes. " + filler + filler),
			assistantLine("Even more notes. " + filler + filler),
			userLine("Now let's talk about the summary generation instead. " + filler),
			assistantLine("Sure. " + filler),
		},
	}

	chunks := Segment(s, 2500)
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasPrefix(chunks[1].Text, "**User:** Now let's talk about"),
		"second chunk starts at the topic shift, got %q", chunks[1].Text[:60])
}

func TestTopicShift(t *testing.T) {
	longMsg := strings.Repeat("m", 90)
	tests := []struct {
		name string
		prev transcript.Line
		cur  transcript.Line
		want bool
	}{
		{"lead-in phrase", assistantLine("ok"), userLine("Can you refactor the storage layer for me today?"), true},
		{"short confirmation", assistantLine("ok"), userLine("yes please"), false},
		{"long after assistant", assistantLine("done"), userLine(longMsg), true},
		{"long after user", userLine("hm"), userLine(longMsg), false},
		{"assistant never shifts", assistantLine("ok"), assistantLine("What should we do next about the failing integration tests?"), false},
		{"annotation stripped before length check", assistantLine("ok"), userLine("[Read: /a/very/long/path/somewhere/deep.go] ok"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicShift(tt.prev, tt.cur))
		})
	}
}
