// Package mapper converts fetched GitHub data into domain models.
package mapper

import (
	"github.com/Zaniyar/grantmaster/internal/conversation"
	"github.com/Zaniyar/grantmaster/internal/entities"
	"github.com/Zaniyar/grantmaster/internal/github"
)

// ToSources splits a bundle into the message streams of its conversation. The
// pull request description counts as the first message.
func ToSources(b *github.Bundle) conversation.Sources {
	src := conversation.Sources{
		Description:    make([]entities.Message, 0, 1),
		IssueComments:  toMessages(b.IssueComments),
		InlineComments: toMessages(b.InlineComments),
		ReviewComments: make([]entities.Message, 0, len(b.Reviews)),
	}
	if b.IsPullRequest {
		src.Description = append(src.Description, entities.Message{
			Author:    b.Author,
			Message:   b.Body,
			Timestamp: b.CreatedAt,
		})
	}
	for _, r := range b.Reviews {
		src.ReviewComments = append(src.ReviewComments, entities.Message{
			Author:    r.Author,
			Message:   r.Body,
			Timestamp: r.SubmittedAt,
		})
	}
	return src
}

func toMessages(comments []github.Comment) []entities.Message {
	res := make([]entities.Message, 0, len(comments))
	for _, c := range comments {
		res = append(res, entities.Message{
			Author:    c.Author,
			Message:   c.Body,
			Timestamp: c.CreatedAt,
		})
	}
	return res
}

// ToReviewEvents maps submitted reviews.
func ToReviewEvents(reviews []github.Review) []entities.ReviewEvent {
	res := make([]entities.ReviewEvent, 0, len(reviews))
	for _, r := range reviews {
		res = append(res, entities.ReviewEvent{
			Author:      r.Author,
			Status:      entities.ReviewStatus(r.State),
			SubmittedAt: r.SubmittedAt,
		})
	}
	return res
}

// ToLabels maps pull request labels.
func ToLabels(labels []github.Label) []entities.Label {
	res := make([]entities.Label, 0, len(labels))
	for _, l := range labels {
		res = append(res, entities.Label{Name: l.Name, Color: l.Color})
	}
	return res
}

// ToTeam prepares an extracted team for storage. A team without a name is
// stored under N/A.
func ToTeam(team entities.Team) entities.Team {
	team.ID = ""
	team.Name = orNotAvailable(team.Name)
	if team.Members == nil {
		team.Members = []string{}
	}
	if team.Repos == nil {
		team.Repos = []string{}
	}
	if team.LinkedinProfiles == nil {
		team.LinkedinProfiles = []string{}
	}
	return team
}

// ToProposal builds the stored proposal from extracted fields. Missing or zero
// values become the N/A and -1 sentinels.
func ToProposal(info entities.ProposalInfo, teamID, author, document string) entities.Proposal {
	return entities.Proposal{
		Title: orNotAvailable(info.Title),
		Level: orUnsetInt(info.Level),
		CurrencyAmount: entities.CurrencyAmount{
			Amount:   info.CurrencyAmount.Amount,
			Currency: orNotAvailable(info.CurrencyAmount.Currency),
		},
		PaymentAddress: orNotAvailable(info.PaymentAddress),
		TotalFTE:       orUnsetFloat(info.TotalFTE),
		TotalDuration:  orUnsetFloat(info.TotalDuration),
		TeamID:         teamID,
		Author:         author,
		Document:       document,
		Milestones:     []entities.Milestone{},
		Chapters:       []entities.Chapter{},
	}
}

// MissingProposalInfo is used when a pull request does not change exactly one
// file.
func MissingProposalInfo() entities.ProposalInfo {
	return entities.ProposalInfo{
		Title:          entities.NotAvailable,
		Level:          entities.Unset,
		CurrencyAmount: entities.CurrencyAmount{Currency: entities.NotAvailable},
		PaymentAddress: entities.NotAvailable,
		TotalFTE:       entities.Unset,
		TotalDuration:  entities.Unset,
	}
}

// ToSummary builds the stored snapshot of a pull request.
func ToSummary(b *github.Bundle, proposalID string, verdicts conversation.Verdicts, conv conversation.Conversation) entities.PullRequestSummary {
	return entities.PullRequestSummary{
		PRID:                b.Number,
		URL:                 b.URL,
		Status:              b.State,
		Labels:              ToLabels(b.Labels),
		ProposalID:          proposalID,
		Approvers:           verdicts.Approvers,
		Rejectors:           verdicts.Rejectors,
		ParticipantComments: conv.Messages,
		LastParticipationAt: conv.LastActivity(),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return entities.NotAvailable
	}
	return s
}

func orUnsetInt(n int) int {
	if n == 0 {
		return entities.Unset
	}
	return n
}

func orUnsetFloat(f float64) float64 {
	if f == 0 {
		return entities.Unset
	}
	return f
}
