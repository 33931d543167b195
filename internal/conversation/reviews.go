// Package conversation folds the review activity of a pull request into
// verdicts and a single chronological message stream.
package conversation

import (
	"time"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

// Verdicts lists reviewers by the state of their latest review.
type Verdicts struct {
	Approvers []string
	Rejectors []string
}

type verdict struct {
	status entities.ReviewStatus
	at     time.Time
}

// Consolidate keeps the latest review of every author. Ties on the submit time
// keep the review seen first. Authors are listed in order of first appearance.
func Consolidate(events []entities.ReviewEvent) Verdicts {
	order := make([]string, 0, len(events))
	latest := make(map[string]verdict, len(events))

	for _, e := range events {
		cur, ok := latest[e.Author]
		if !ok {
			order = append(order, e.Author)
			latest[e.Author] = verdict{status: e.Status, at: e.SubmittedAt}
			continue
		}
		if e.SubmittedAt.After(cur.at) {
			latest[e.Author] = verdict{status: e.Status, at: e.SubmittedAt}
		}
	}

	res := Verdicts{Approvers: make([]string, 0), Rejectors: make([]string, 0)}
	for _, author := range order {
		switch latest[author].status {
		case entities.ReviewApproved:
			res.Approvers = append(res.Approvers, author)
		case entities.ReviewChangesRequested:
			res.Rejectors = append(res.Rejectors, author)
		}
	}
	return res
}
