package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

const teamMembersHeading = "### Team members"

var (
	digitsRe        = regexp.MustCompile(`\d+`)
	durationLineRe  = regexp.MustCompile(`(?i)^- \**\[?Total Estimated Duration\]?:?\**\s*`)
	fteLineRe       = regexp.MustCompile(`(?i)^- \**\[?Full-Time Equivalent \(?FTE\)?\]?:?\**\s*`)
	totalCostsLabel = "Total Costs"
)

// teamRule fills one Team field from a line that starts with prefix.
type teamRule struct {
	prefix  string
	trimmed bool
	apply   func(team *entities.Team, line string)
}

var teamRules = []teamRule{
	{prefix: "- **Team Name:**", trimmed: true, apply: func(t *entities.Team, line string) {
		t.Name = valueAfter(line, "Team Name")
	}},
	{prefix: "- **Contact Name:**", apply: func(t *entities.Team, line string) {
		t.ContactName = valueAfter(line, "Contact Name")
	}},
	{prefix: "- **Contact Email:**", apply: func(t *entities.Team, line string) {
		t.ContactEmail = valueAfter(line, "Contact Email")
	}},
	{prefix: "- **Registered Address:**", apply: func(t *entities.Team, line string) {
		t.Entity.Address = valueAfter(line, "Registered Address")
	}},
	{prefix: "- **Registered Legal Entity:**", apply: func(t *entities.Team, line string) {
		t.Entity.Name = valueAfter(line, "Registered Legal Entity")
	}},
	{prefix: "- **Website:**", apply: func(t *entities.Team, line string) {
		t.Website = valueAfter(line, "Website")
	}},
	{prefix: "- https://github.com/", apply: func(t *entities.Team, line string) {
		t.Repos = append(t.Repos, listURL(line))
	}},
	{prefix: "- https://www.linkedin.com/", apply: func(t *entities.Team, line string) {
		t.LinkedinProfiles = append(t.LinkedinProfiles, listURL(line))
	}},
}

func (r teamRule) matches(line string) bool {
	if r.trimmed {
		line = strings.TrimSpace(line)
	}
	return strings.HasPrefix(line, r.prefix)
}

func listURL(line string) string {
	return strings.TrimSpace(strings.Replace(line, "-", "", 1))
}

// proposalRule handles one kind of proposal line. Rules are tried in order
// and the first match consumes the line.
type proposalRule struct {
	match func(line string) bool
	apply func(info *entities.ProposalInfo, line string)
}

var proposalRules = []proposalRule{
	{
		match: prefixMatch("- **Total Costs:**"),
		apply: func(info *entities.ProposalInfo, line string) {
			info.CurrencyAmount = parseCurrencyAmount(valueAfter(line, totalCostsLabel))
		},
	},
	{
		match: prefixMatch("- **Level:**"),
		apply: func(info *entities.ProposalInfo, line string) {
			info.Level = 0
			if d := digitsRe.FindString(valueAfter(line, "Level")); d != "" {
				// Levels wider than the stored INTEGER column count as missing.
				if n, err := strconv.ParseInt(d, 10, 32); err == nil {
					info.Level = int(n)
				}
			}
		},
	},
	{
		match: prefixMatch("- **Payment Address:**"),
		apply: func(info *entities.ProposalInfo, line string) {
			info.PaymentAddress = valueAfter(line, "Payment Address")
		},
	},
	{
		match: prefixMatch("# "),
		apply: func(info *entities.ProposalInfo, line string) {
			info.Title = strings.TrimSpace(line[2:])
		},
	},
	{
		match: durationLineRe.MatchString,
		apply: func(info *entities.ProposalInfo, line string) {
			info.TotalDuration, _ = leadingFloat(durationLineRe.ReplaceAllString(line, ""))
		},
	},
	{
		match: fteLineRe.MatchString,
		apply: func(info *entities.ProposalInfo, line string) {
			info.TotalFTE, _ = leadingFloat(fteLineRe.ReplaceAllString(line, ""))
		},
	},
}

func prefixMatch(prefix string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, prefix) }
}

// parseCurrencyAmount reads "<amount> <currency>". An unparsable amount
// yields the zero value.
func parseCurrencyAmount(value string) entities.CurrencyAmount {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return entities.CurrencyAmount{}
	}
	amount, ok := leadingFloat(strings.ReplaceAll(fields[0], ",", ""))
	if !ok {
		return entities.CurrencyAmount{}
	}
	res := entities.CurrencyAmount{Amount: amount}
	if len(fields) > 1 {
		res.Currency = fields[1]
	}
	return res
}

// ExtractTeamMembers returns the list items under "### Team members" up to
// the next "###" heading.
func ExtractTeamMembers(lines []string) []string {
	members := make([]string, 0)
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == teamMembersHeading {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(trimmed, "###") {
			break
		}
		if strings.HasPrefix(trimmed, "- ") {
			members = append(members, strings.TrimSpace(strings.TrimPrefix(trimmed, "- ")))
		}
	}
	return members
}

// ExtractTeamInfo collects the team metadata markers from lines.
func ExtractTeamInfo(lines []string) entities.Team {
	team := entities.Team{
		Repos:            make([]string, 0),
		LinkedinProfiles: make([]string, 0),
	}
	for _, line := range lines {
		for _, rule := range teamRules {
			if rule.matches(line) {
				rule.apply(&team, line)
			}
		}
	}
	team.Members = ExtractTeamMembers(lines)
	return team
}

// ExtractProposalInfo scans document for the proposal header fields and the
// team section. Later occurrences of a field override earlier ones.
func ExtractProposalInfo(document string) entities.ProposalInfo {
	lines := splitLines(document)
	info := entities.ProposalInfo{Team: ExtractTeamInfo(lines)}
	for _, line := range lines {
		for _, rule := range proposalRules {
			if rule.match(line) {
				rule.apply(&info, line)
				break
			}
		}
	}
	return info
}
