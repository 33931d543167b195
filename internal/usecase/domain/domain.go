// Package domain implements the crawler use cases: synthesizing a pull
// request into stored records and scanning many pull requests.
package domain

import (
	"context"
	"sync"
	"time"

	"github.com/Zaniyar/grantmaster/internal/github"
	"github.com/Zaniyar/grantmaster/internal/repository"

	"go.uber.org/zap"
)

// Source is the read side of GitHub the use cases need.
type Source interface {
	ListPullRequestIDs(ctx context.Context, state github.ListState) []int
	FetchBundle(ctx context.Context, number int) (*github.Bundle, error)
	PullRequestURL(number int) string
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx         context.Context
	log         *zap.SugaredLogger
	repo        repository.Repository
	source      Source
	concurrency int
	timeout     time.Duration

	background sync.WaitGroup
}

// New constructs a new usecase layer with its dependencies. timeout bounds
// every store call; zero disables it.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	source Source,
	concurrency int,
	timeout time.Duration,
) *Usecase {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Usecase{
		ctx:         ctx,
		log:         log.Named("usecase"),
		repo:        repo,
		source:      source,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
