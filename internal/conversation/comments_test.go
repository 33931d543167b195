package conversation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

func msg(author, body string, offset time.Duration) entities.Message {
	return entities.Message{Author: author, Message: body, Timestamp: t0.Add(offset)}
}

func TestMerge(t *testing.T) {
	src := Sources{
		Description:    []entities.Message{msg("author", "Please review\n\nthanks", 0)},
		IssueComments:  []entities.Message{msg("w3f-bot", "see [guidelines](https://grants.web3.foundation)", 2*time.Hour)},
		InlineComments: []entities.Message{msg("alice", "typo here", time.Hour)},
		ReviewComments: []entities.Message{msg("bob", "", time.Hour)},
	}

	conv := Merge(src)

	require.Equal(t, []entities.Message{
		msg("author", "Please review<br>thanks", 0),
		msg("alice", "typo here", time.Hour),
		msg("bob", "", time.Hour),
		msg("w3f-bot", "see guidelines", 2*time.Hour),
	}, conv.Messages)
	require.Equal(t, "Please review\n\nthanks", conv.Raw[0].Message)

	last := conv.LastActivity()
	require.NotNil(t, last)
	require.Equal(t, t0.Add(2*time.Hour), *last)
}

func TestMerge_Empty(t *testing.T) {
	conv := Merge(Sources{})

	require.Empty(t, conv.Messages)
	require.Nil(t, conv.LastActivity())
}

func TestMerge_SortedPermutation(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))

	for round := 0; round < 100; round++ {
		streams := make([][]entities.Message, 4)
		total := 0
		for s := range streams {
			n := rnd.Intn(6)
			for i := 0; i < n; i++ {
				streams[s] = append(streams[s], msg("u", "m", time.Duration(rnd.Intn(5))*time.Minute))
				streams[s][i].Author = string(rune('a'+s)) + string(rune('0'+i))
			}
			total += n
		}

		conv := Merge(Sources{
			Description:    streams[0],
			IssueComments:  streams[1],
			InlineComments: streams[2],
			ReviewComments: streams[3],
		})

		require.Len(t, conv.Messages, total)
		seen := make(map[string]bool, total)
		for i, m := range conv.Messages {
			seen[m.Author] = true
			if i == 0 {
				continue
			}
			prev := conv.Messages[i-1]
			require.False(t, m.Timestamp.Before(prev.Timestamp))
			if m.Timestamp.Equal(prev.Timestamp) {
				require.Less(t, prev.Author, m.Author, "source order must hold on ties")
			}
		}
		require.Len(t, seen, total)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "triple newline", in: "a\n\n\nb", want: "a<br>b"},
		{name: "double crlf", in: "a\r\n\r\nb", want: "a<br>b"},
		{name: "double cr", in: "a\r\rb", want: "a<br>b"},
		{name: "single newline kept", in: "a\nb", want: "a\nb"},
		{name: "four newlines", in: "a\n\n\n\nb", want: "a<br>\nb"},
		{name: "link", in: "read [the docs](https://x.io/a) now", want: "read the docs now"},
		{name: "empty url", in: "[x]()", want: "x"},
		{name: "link with space in url untouched", in: "[x](a b)", want: "[x](a b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
