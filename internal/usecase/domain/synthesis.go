package domain

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/Zaniyar/grantmaster/internal/conversation"
	"github.com/Zaniyar/grantmaster/internal/entities"
	"github.com/Zaniyar/grantmaster/internal/github"
	"github.com/Zaniyar/grantmaster/internal/mapper"
	"github.com/Zaniyar/grantmaster/internal/parser"
)

// document is what was read from the single changed file of a pull request.
type document struct {
	text       string
	info       entities.ProposalInfo
	milestones []entities.Milestone
	chapters   []entities.Chapter
}

// SynthesizePullRequest fetches pull request n and stores its team, proposal
// and summary, in that order. The first failing step stops the cascade;
// records already written stay.
func (u *Usecase) SynthesizePullRequest(ctx context.Context, n int) (*entities.PullRequestSummary, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: pull request number must be positive, got %d", entities.ErrInvalidArgument, n)
	}
	log := u.log.With("pr", n)

	bundle, err := u.source.FetchBundle(ctx, n)
	if err != nil {
		log.Errorw("synthesis failed", "stage", "fetch", "error", err)
		return nil, err
	}

	conv := conversation.Merge(mapper.ToSources(bundle))
	verdicts := conversation.Consolidate(mapper.ToReviewEvents(bundle.Reviews))
	doc := readDocument(log, bundle)

	team, err := u.storeTeam(ctx, mapper.ToTeam(doc.info.Team))
	if err != nil {
		log.Errorw("synthesis failed", "stage", "team", "error", err)
		return nil, fmt.Errorf("%w: team: %w", entities.ErrPersistence, err)
	}

	proposal := mapper.ToProposal(doc.info, team.ID, bundle.Author, doc.text)
	proposal.Milestones = doc.milestones
	proposal.Chapters = doc.chapters
	storedProposal, err := u.storeProposal(ctx, proposal)
	if err != nil {
		log.Errorw("synthesis failed", "stage", "proposal", "title", proposal.Title, "error", err)
		return nil, fmt.Errorf("%w: proposal: %w", entities.ErrPersistence, err)
	}

	summary, err := u.storeSummary(ctx, mapper.ToSummary(bundle, storedProposal.ID, verdicts, conv))
	if err != nil {
		log.Errorw("synthesis failed", "stage", "summary", "url", bundle.URL, "error", err)
		return nil, fmt.Errorf("%w: pull request summary: %w", entities.ErrPersistence, err)
	}

	log.Infow("pull request synthesized",
		"status", summary.Status,
		"team", team.Name,
		"proposal", storedProposal.Title,
		"milestones", len(storedProposal.Milestones),
		"comments", len(summary.ParticipantComments),
		"approvers", len(summary.Approvers),
		"rejectors", len(summary.Rejectors),
	)
	return summary, nil
}

// readDocument parses the application document when the pull request changes
// exactly one file. Anything else yields the N/A placeholders.
func readDocument(log *zap.SugaredLogger, b *github.Bundle) document {
	missing := document{
		text:       entities.NotAvailable,
		info:       mapper.MissingProposalInfo(),
		milestones: []entities.Milestone{},
		chapters:   []entities.Chapter{},
	}
	if len(b.Files) != 1 {
		log.Infow("pull request does not change exactly one file", "files", len(b.Files))
		return missing
	}

	text, err := decodeFile(b.Files[0])
	if err != nil {
		log.Warnw("cannot decode application document", "file", b.Files[0].Filename, "error", err)
		return missing
	}
	if !parser.HasRoadmap(text) {
		log.Debugw("no development roadmap section", "file", b.Files[0].Filename)
	}

	return document{
		text:       text,
		info:       parser.ExtractProposalInfo(text),
		milestones: parser.ParseMilestones(text),
		chapters:   parser.ExtractChapters(text),
	}
}

// decodeFile returns the file text. Binary or mis-encoded content is kept in
// cleaned form so the proposal can still be stored.
func decodeFile(f github.File) (string, error) {
	if f.Encoding != "" && f.Encoding != "base64" {
		return parser.CleanText([]byte(f.Content)), nil
	}
	raw, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil {
		return "", err
	}
	return parser.CleanText(raw), nil
}

func (u *Usecase) storeTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.UpsertTeam(ctx, team)
}

func (u *Usecase) storeProposal(ctx context.Context, proposal entities.Proposal) (*entities.Proposal, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.UpsertProposal(ctx, proposal)
}

func (u *Usecase) storeSummary(ctx context.Context, summary entities.PullRequestSummary) (*entities.PullRequestSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.UpsertPullRequestSummary(ctx, summary)
}
