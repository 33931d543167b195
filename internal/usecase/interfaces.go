package usecase

import (
	"context"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

// SynthesisUsecaseInterface rebuilds stored records from GitHub.
type SynthesisUsecaseInterface interface {
	SynthesizePullRequest(ctx context.Context, number int) (*entities.PullRequestSummary, error)
}

// ScanUsecaseInterface runs synthesis over many pull requests.
type ScanUsecaseInterface interface {
	ScanPullRequests(ctx context.Context, includeClosed bool) (entities.ScanReport, error)
	RescanStored(ctx context.Context, onlyOpen bool) (entities.ScanReport, error)
	RunScan(includeClosed bool)
	RunRescanStored(onlyOpen bool)
	Wait()
}

// QueryUsecaseInterface reads stored records.
type QueryUsecaseInterface interface {
	Team(ctx context.Context, name string) (*entities.Team, error)
	Proposal(ctx context.Context, title string) (*entities.Proposal, error)
	PullRequest(ctx context.Context, number int) (*entities.PullRequestSummary, error)
	PullRequests(ctx context.Context) ([]entities.PullRequestDetail, error)
}
