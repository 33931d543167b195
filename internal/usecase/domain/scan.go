package domain

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Zaniyar/grantmaster/internal/entities"
	"github.com/Zaniyar/grantmaster/internal/github"
)

// ScanPullRequests synthesizes every open pull request, or every pull request
// when includeClosed is set.
func (u *Usecase) ScanPullRequests(ctx context.Context, includeClosed bool) (entities.ScanReport, error) {
	state := github.StateOpen
	if includeClosed {
		state = github.StateAll
	}
	ids := u.source.ListPullRequestIDs(ctx, state)
	return u.synthesizeAll(ctx, "github", ids), nil
}

// RescanStored synthesizes the pull requests already in the store.
func (u *Usecase) RescanStored(ctx context.Context, onlyOpen bool) (entities.ScanReport, error) {
	listCtx, cancel := withTimeout(ctx, u.timeout)
	ids, err := u.repo.ListPullRequestIDs(listCtx, onlyOpen)
	cancel()
	if err != nil {
		u.log.Errorw("failed to list stored pull requests", "only_open", onlyOpen, "error", err)
		return entities.ScanReport{}, fmt.Errorf("%w: list stored pull requests: %w", entities.ErrPersistence, err)
	}
	return u.synthesizeAll(ctx, "store", ids), nil
}

// RunScan starts ScanPullRequests on the base context and returns at once.
func (u *Usecase) RunScan(includeClosed bool) {
	u.background.Add(1)
	go func() {
		defer u.background.Done()
		_, _ = u.ScanPullRequests(u.ctx, includeClosed)
	}()
}

// RunRescanStored starts RescanStored on the base context and returns at once.
func (u *Usecase) RunRescanStored(onlyOpen bool) {
	u.background.Add(1)
	go func() {
		defer u.background.Done()
		_, _ = u.RescanStored(u.ctx, onlyOpen)
	}()
}

// Wait blocks until all background scans have returned.
func (u *Usecase) Wait() {
	u.background.Wait()
}

// synthesizeAll runs one synthesis per id with at most u.concurrency in
// flight. Failures are counted, never propagated.
func (u *Usecase) synthesizeAll(ctx context.Context, origin string, ids []int) entities.ScanReport {
	u.log.Infow("scan started", "origin", origin, "pull_requests", len(ids), "concurrency", u.concurrency)

	var succeeded, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if _, err := u.SynthesizePullRequest(ctx, id); err != nil {
				failed.Add(1)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report := entities.ScanReport{
		Total:     len(ids),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}
	u.log.Infow("scan finished", "origin", origin, "total", report.Total, "succeeded", report.Succeeded, "failed", report.Failed)
	return report
}
