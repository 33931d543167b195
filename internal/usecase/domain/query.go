package domain

import (
	"context"
	"fmt"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

// Team returns a stored team by name.
func (u *Usecase) Team(ctx context.Context, name string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetTeam(ctx, name)
}

// Proposal returns a stored proposal by title.
func (u *Usecase) Proposal(ctx context.Context, title string) (*entities.Proposal, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if title == "" {
		return nil, fmt.Errorf("%w: proposal title is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetProposal(ctx, title)
}

// PullRequest returns the stored summary of pull request number.
func (u *Usecase) PullRequest(ctx context.Context, number int) (*entities.PullRequestSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if number <= 0 {
		return nil, fmt.Errorf("%w: pull request number must be positive, got %d", entities.ErrInvalidArgument, number)
	}
	return u.repo.GetPullRequestSummary(ctx, u.source.PullRequestURL(number))
}

// PullRequests lists every stored summary with its proposal and team.
func (u *Usecase) PullRequests(ctx context.Context) ([]entities.PullRequestDetail, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListPullRequestSummaries(ctx)
}
