// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// TeamInterface stores teams keyed by name.
type TeamInterface interface {
	UpsertTeam(ctx context.Context, team entities.Team) (*entities.Team, error)
	GetTeam(ctx context.Context, name string) (*entities.Team, error)
}

// ProposalInterface stores proposals keyed by title.
type ProposalInterface interface {
	UpsertProposal(ctx context.Context, proposal entities.Proposal) (*entities.Proposal, error)
	GetProposal(ctx context.Context, title string) (*entities.Proposal, error)
}

// PullRequestInterface stores pull request summaries keyed by url.
type PullRequestInterface interface {
	UpsertPullRequestSummary(ctx context.Context, summary entities.PullRequestSummary) (*entities.PullRequestSummary, error)
	GetPullRequestSummary(ctx context.Context, url string) (*entities.PullRequestSummary, error)
	ListPullRequestIDs(ctx context.Context, onlyOpen bool) ([]int, error)
	ListPullRequestSummaries(ctx context.Context) ([]entities.PullRequestDetail, error)
}
