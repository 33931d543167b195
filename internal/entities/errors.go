// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSourceUnavailable signals a failed call to the GitHub source.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrPersistence signals a failed store write.
	ErrPersistence = errors.New("persistence failure")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrProposalNotFound signals missing proposal.
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrPullRequestNotFound signals missing pull request summary.
	ErrPullRequestNotFound = errors.New("pull request not found")
)
