package conversation

import (
	"regexp"
	"sort"
	"time"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

var (
	tripleBreakRe = regexp.MustCompile(`\r\n\r\n\r\n|\n\n\n|\r\r\r`)
	doubleBreakRe = regexp.MustCompile(`\r\n\r\n|\n\n|\r\r`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\((?:[^)\s]+|(?:\([^)\s]+\))*)\)`)
)

// Sources holds the message streams of one pull request.
type Sources struct {
	Description    []entities.Message
	IssueComments  []entities.Message
	InlineComments []entities.Message
	ReviewComments []entities.Message
}

// Conversation is the merged stream. Raw keeps the bodies as delivered and is
// index-aligned with Messages.
type Conversation struct {
	Messages []entities.Message
	Raw      []entities.Message
}

// Merge concatenates the sources, sorts them by timestamp keeping source order
// on ties, and normalizes the bodies.
func Merge(src Sources) Conversation {
	raw := make([]entities.Message, 0,
		len(src.Description)+len(src.IssueComments)+len(src.InlineComments)+len(src.ReviewComments))
	raw = append(raw, src.Description...)
	raw = append(raw, src.IssueComments...)
	raw = append(raw, src.InlineComments...)
	raw = append(raw, src.ReviewComments...)

	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Timestamp.Before(raw[j].Timestamp)
	})

	messages := make([]entities.Message, len(raw))
	for i, m := range raw {
		m.Message = Normalize(m.Message)
		messages[i] = m
	}
	return Conversation{Messages: messages, Raw: raw}
}

// Normalize collapses paragraph breaks into <br> and reduces Markdown links to
// their label.
func Normalize(body string) string {
	body = tripleBreakRe.ReplaceAllString(body, "<br>")
	body = doubleBreakRe.ReplaceAllString(body, "<br>")
	return linkRe.ReplaceAllString(body, "$1")
}

// LastActivity returns the newest message timestamp, or nil for an empty
// conversation.
func (c Conversation) LastActivity() *time.Time {
	if len(c.Raw) == 0 {
		return nil
	}
	ts := c.Raw[len(c.Raw)-1].Timestamp
	if ts.IsZero() {
		return nil
	}
	return &ts
}
