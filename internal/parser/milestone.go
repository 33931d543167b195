package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

const (
	roadmapHeading    = "## Development Roadmap :nut_and_bolt:\n"
	milestoneSplit    = "### "
	overviewChunkName = "Overview"
)

var (
	durationRe       = regexp.MustCompile(`Estimated duration:\s*\*\*([\s\S]*?)\*\*`)
	fteRe            = regexp.MustCompile(`FTE:\s*\*\*([\s\S]*?)\*\*`)
	costsRe          = regexp.MustCompile(`Costs:\s*\*\*([\s\S]*?)\*\*`)
	licenseRe        = regexp.MustCompile(`License\s*\|\s*([^|]+)`)
	deliverableRowRe = regexp.MustCompile(`\|\s*(\*\*[\w.]+\*\*|\d+\.)\s*\|\s*([\s\S]*?)\s*\|\s*`)
	trailingDashRe   = regexp.MustCompile(`\s*-\s*$`)

	costsCleaner = strings.NewReplacer("\r", "", "\n", "", ",", "", "'", "", "_", "", "USD", "")
)

// HasRoadmap reports whether document contains the development roadmap section.
func HasRoadmap(document string) bool {
	return strings.Contains(normalizeNewlines(document), roadmapHeading)
}

// ParseMilestones parses every milestone of the development roadmap section.
// It returns an empty list when the section is missing.
func ParseMilestones(document string) []entities.Milestone {
	milestones := make([]entities.Milestone, 0)

	document = normalizeNewlines(document)
	idx := strings.Index(document, roadmapHeading)
	if idx < 0 {
		return milestones
	}
	roadmap := document[idx+len(roadmapHeading):]

	for _, chunk := range strings.Split(roadmap, milestoneSplit) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		name, _, _ := strings.Cut(chunk, "\n")
		if name == "" || name == overviewChunkName {
			continue
		}
		milestones = append(milestones, parseMilestone(name, chunk))
	}
	return milestones
}

func parseMilestone(name, chunk string) entities.Milestone {
	m := entities.Milestone{
		Name:         name,
		FTE:          entities.NotAvailable,
		Costs:        entities.NotAvailable,
		Deliverables: parseDeliverables(chunk),
	}
	if v, ok := boldValue(durationRe, chunk); ok {
		m.Duration = v
	}
	if v, ok := boldValue(fteRe, chunk); ok {
		m.FTE = v
	}
	if sm := costsRe.FindStringSubmatch(chunk); sm != nil {
		m.Costs = cleanCosts(sm[1])
	}
	if sm := licenseRe.FindStringSubmatch(chunk); sm != nil {
		m.License = strings.TrimSpace(sm[1])
	}
	return m
}

// boldValue returns the text between a "Label:**" marker and the next "**",
// trimmed and without the list dash of the following line.
func boldValue(re *regexp.Regexp, chunk string) (string, bool) {
	sm := re.FindStringSubmatch(chunk)
	if sm == nil {
		return "", false
	}
	return trailingDashRe.ReplaceAllString(strings.TrimSpace(sm[1]), ""), true
}

// cleanCosts reduces a costs cell to the digits of its amount, or N/A.
func cleanCosts(raw string) string {
	fields := strings.Fields(costsCleaner.Replace(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return entities.NotAvailable
	}
	token := strings.TrimLeftFunc(fields[0], func(r rune) bool { return !unicode.IsDigit(r) })
	end := strings.IndexFunc(token, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		token = token[:end]
	}
	if token == "" {
		return entities.NotAvailable
	}
	return token
}

// parseDeliverables collects every "| number | name | specification" row in
// document order.
func parseDeliverables(chunk string) []entities.Deliverable {
	deliverables := make([]entities.Deliverable, 0)
	pos := 0
	for pos < len(chunk) {
		loc := deliverableRowRe.FindStringSubmatchIndex(chunk[pos:])
		if loc == nil {
			break
		}
		specStart := pos + loc[1]
		specEnd := cellEnd(chunk, specStart)
		deliverables = append(deliverables, entities.Deliverable{
			Number:        strings.ReplaceAll(chunk[pos+loc[2]:pos+loc[3]], "*", ""),
			Name:          chunk[pos+loc[4] : pos+loc[5]],
			Specification: strings.TrimSpace(chunk[specStart:specEnd]),
		})
		pos = specEnd
	}
	return deliverables
}

// cellEnd returns the first index at or after start that is a newline, is
// followed by optional whitespace and a pipe, or is the end of s.
func cellEnd(s string, start int) int {
	for i := start; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j < len(s) && s[j] == '|' {
			return i
		}
	}
	return len(s)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
