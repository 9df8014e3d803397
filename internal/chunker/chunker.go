// Package chunker partitions a session's normalized lines into bounded,
// topic-coherent chunks for indexing.
package chunker

import (
	"regexp"
	"strings"

	"github.com/rcliao/session-memory/internal/summary"
	"github.com/rcliao/session-memory/internal/transcript"
)

// Budget is the soft maximum chunk size in characters. It is a target, not
// a hard limit: a single line longer than the budget is never truncated.
const Budget = 4000

// Chunk is one bounded piece of a session.
type Chunk struct {
	Text    string
	Summary string
}

// Segment splits a session into chunks of at most budget characters,
// preferring to break where the conversation changes topic. A session whose
// whole text fits the budget becomes exactly one chunk; a session with no
// lines yields none.
func Segment(s transcript.Session, budget int) []Chunk {
	if len(s.Lines) == 0 {
		return nil
	}
	if budget <= 0 {
		budget = Budget
	}

	project := transcript.DeriveProjectName(s.Project)

	rendered := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		rendered[i] = l.Render()
	}

	fullText := strings.Join(rendered, "\n\n")
	if len(fullText) <= budget {
		return []Chunk{{
			Text:    fullText,
			Summary: summary.ForSession(s.Lines, fullText, project),
		}}
	}

	var (
		chunks   []Chunk
		curLines []transcript.Line
		curParts []string
		curSize  int
		chunkNum int
	)

	flush := func() {
		chunkNum++
		chunks = append(chunks, Chunk{
			Text:    strings.Join(curParts, "\n\n"),
			Summary: summary.ForChunk(curLines, project, chunkNum),
		})
		curLines = nil
		curParts = nil
		curSize = 0
	}

	for i, part := range rendered {
		var prev transcript.Line
		if i > 0 {
			prev = s.Lines[i-1]
		}

		if len(curParts) > 0 {
			// +2 for the blank-line separator the join will add.
			switch {
			case curSize+len(part)+2 > budget:
				flush()
			case curSize > budget/3 && TopicShift(prev, s.Lines[i]):
				// Splitting on topic alone would produce fragments,
				// so the chunk must already carry enough content.
				flush()
			}
		}

		if len(curParts) > 0 {
			curSize += 2
		}
		curLines = append(curLines, s.Lines[i])
		curParts = append(curParts, part)
		curSize += len(part)
	}
	if len(curParts) > 0 {
		flush()
	}

	return chunks
}

// Topic-shift heuristics.
const (
	minTopicLen = 30 // shorter user lines are confirmations, not new topics
	followUpLen = 80 // a long user line right after an assistant turn
)

// topicLeadIns are the request/question openers that mark a new topic.
var topicLeadIns = []string{
	"can you", "how do", "what", "where", "why", "help me", "i need",
	"i want", "please", "let's", "now ", "next ", "okay so",
	"hey ", "alright",
}

var annotationRe = regexp.MustCompile(`\[(?:Read|Write|Edit|Bash|WebSearch|WebFetch|Tool)[^\]]*\]`)

// TopicShift reports whether cur starts a new topic relative to prev. Only
// substantive user lines qualify: either they open like a fresh request, or
// they are a long message following an assistant turn.
func TopicShift(prev, cur transcript.Line) bool {
	if cur.Speaker != transcript.SpeakerUser {
		return false
	}

	msg := strings.TrimSpace(annotationRe.ReplaceAllString(cur.Text, ""))
	if len(msg) < minTopicLen {
		return false
	}

	lower := strings.ToLower(msg)
	for _, lead := range topicLeadIns {
		if strings.HasPrefix(lower, lead) {
			return true
		}
	}

	return prev.Speaker == transcript.SpeakerAssistant && len(msg) > followUpLen
}
