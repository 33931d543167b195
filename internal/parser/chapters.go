package parser

import (
	"regexp"
	"strings"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

type chapterTitle struct {
	key     string
	heading *regexp.Regexp
}

func headingRe(title string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*#+\s+` + regexp.QuoteMeta(title))
}

// Chapter titles in the order the application template defines them.
var chapterTitles = []chapterTitle{
	{key: "projectOverview", heading: headingRe("Project Overview")},
	{key: "team", heading: headingRe("Team")},
	{key: "developmentStatus", heading: headingRe("Development Status")},
	{key: "developmentRoadmap", heading: headingRe("Development Roadmap")},
	{key: "futurePlans", heading: headingRe("Future Plans")},
}

func matchChapter(line string) (string, bool) {
	for _, c := range chapterTitles {
		if c.heading.MatchString(line) {
			return c.key, true
		}
	}
	return "", false
}

// ExtractChapters splits document into its recognised chapters, starting at
// the first "Project Overview" heading. Each chapter holds its heading line
// and every following line up to the next recognised heading. A repeated
// heading is dropped and its lines stay with the current chapter.
func ExtractChapters(document string) []entities.Chapter {
	lines := splitLines(document)

	start := -1
	for i, line := range lines {
		if chapterTitles[0].heading.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return make([]entities.Chapter, 0)
	}

	keys := make([]string, 0, len(chapterTitles))
	texts := make([]*strings.Builder, 0, len(chapterTitles))
	seen := make(map[string]struct{}, len(chapterTitles))
	current := -1

	for _, line := range lines[start:] {
		if key, ok := matchChapter(line); ok {
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				keys = append(keys, key)
				texts = append(texts, &strings.Builder{})
				current = len(texts) - 1
				texts[current].WriteString(line + "\n")
			}
			continue
		}
		if current >= 0 {
			texts[current].WriteString(line + "\n")
		}
	}

	chapters := make([]entities.Chapter, 0, len(keys))
	for i, key := range keys {
		chapters = append(chapters, entities.Chapter{Key: key, Text: texts[i].String()})
	}
	return chapters
}
