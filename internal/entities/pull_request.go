// Package entities contains core business entities.
package entities

import "time"

// PullRequestStatus enumerates PR lifecycle states.
type PullRequestStatus string

const (
	// StatusOpen marks PR as open.
	StatusOpen PullRequestStatus = "open"
	// StatusClosed marks PR as closed without merge.
	StatusClosed PullRequestStatus = "closed"
	// StatusMerged marks PR as merged.
	StatusMerged PullRequestStatus = "merged"
)

// Label is a GitHub label attached to a PR.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Message is one contribution to a PR conversation.
type Message struct {
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewStatus is the state GitHub reports for a submitted review.
type ReviewStatus string

const (
	// ReviewApproved marks an approving review.
	ReviewApproved ReviewStatus = "APPROVED"
	// ReviewChangesRequested marks a rejecting review.
	ReviewChangesRequested ReviewStatus = "CHANGES_REQUESTED"
)

// ReviewEvent is a single submitted review.
type ReviewEvent struct {
	Author      string
	Status      ReviewStatus
	SubmittedAt time.Time
}

// PullRequestSummary is the stored snapshot of a proposal PR. URL is its identity.
type PullRequestSummary struct {
	ID                   string            `json:"id,omitempty"`
	PRID                 int               `json:"prId"`
	URL                  string            `json:"url"`
	Status               PullRequestStatus `json:"status"`
	Labels               []Label           `json:"labels"`
	ProposalID           string            `json:"proposal"`
	Approvers            []string          `json:"approvers"`
	Rejectors            []string          `json:"rejectors"`
	ParticipantComments  []Message         `json:"participantComments"`
	LastParticipationAt  *time.Time        `json:"lastParticipationAt,omitempty"`
	LastUpdateSuccessful bool              `json:"lastUpdateSuccessful"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// PullRequestDetail is a stored summary joined with its proposal and the
// proposal's team. Proposal and Team are nil when the reference is unset.
type PullRequestDetail struct {
	Summary  PullRequestSummary `json:"summary"`
	Proposal *Proposal          `json:"proposal"`
	Team     *Team              `json:"team"`
}
