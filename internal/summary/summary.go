// Package summary derives short human-readable labels for chunks and
// sessions from their text.
package summary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rcliao/session-memory/internal/transcript"
)

// MaxLen caps every stored summary.
const MaxLen = 200

var (
	headingRe    = regexp.MustCompile(`(?m)^#+\s+`)
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	annotationRe = regexp.MustCompile(`\[(?:Read|Write|Edit|Bash|WebSearch|WebFetch|Tool)[^\]]*\]`)
	sentenceRe   = regexp.MustCompile(`^[^.!?\n]+[.!?]`)
)

// Summarize condenses text into roughly 15-25 words: the first sentence if
// it is a reasonable length, else the first 20 words with an ellipsis, else
// a hard cut. Markdown markers and tool annotations are stripped first; only
// the literal marker characters go, content stays.
func Summarize(text string) string {
	text = strings.TrimSpace(text)

	// Skip YAML frontmatter
	if strings.HasPrefix(text, "---") {
		parts := strings.SplitN(text, "---", 3)
		if len(parts) >= 3 {
			text = strings.TrimSpace(parts[2])
		}
	}

	text = headingRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = annotationRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if m := sentenceRe.FindString(text); m != "" {
		s := strings.TrimSpace(m)
		if n := len(strings.Fields(s)); n >= 3 && n <= 25 {
			return s
		}
	}

	words := strings.Fields(text)
	if len(words) > 20 {
		words = words[:20]
	}
	if len(words) > 0 {
		return strings.Join(words, " ") + "..."
	}
	return hardCut(text, 100)
}

// ForSession labels a single-chunk session. The topic seed is the first
// user line with more than 10 characters, else the session's full text.
func ForSession(lines []transcript.Line, fullText, project string) string {
	topic := firstUserTopic(lines, 10, 150)
	if topic == "" {
		topic = fullText
	}
	return hardCut(fmt.Sprintf("Session in %s: %s", project, Summarize(topic)), MaxLen)
}

// ForChunk labels one chunk of a multi-chunk session. User lines say what a
// chunk is about, so the first substantive one (over 20 characters, tool
// annotations removed) seeds the topic; short confirmations never do.
// n is the 1-based chunk number.
func ForChunk(lines []transcript.Line, project string, n int) string {
	var topic string
	for _, l := range lines {
		if l.Speaker != transcript.SpeakerUser || len(l.Text) <= 20 {
			continue
		}
		msg := strings.TrimSpace(annotationRe.ReplaceAllString(l.Text, ""))
		if msg != "" {
			topic = msg
			break
		}
	}

	if topic != "" {
		words := strings.Fields(topic)
		if len(words) > 20 {
			words = words[:20]
		}
		topic = strings.Join(words, " ")
		if len(strings.Fields(topic)) == 20 {
			topic += "..."
		}
	} else if len(lines) > 0 {
		topic = Summarize(lines[0].Render())
	}

	return hardCut(fmt.Sprintf("Session %s pt%d: %s", project, n, topic), MaxLen)
}

func firstUserTopic(lines []transcript.Line, minLen, maxLen int) string {
	for _, l := range lines {
		if l.Speaker == transcript.SpeakerUser && len(l.Text) > minLen {
			return hardCut(l.Text, maxLen)
		}
	}
	return ""
}

func hardCut(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
