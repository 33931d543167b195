package conversation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func review(author string, status entities.ReviewStatus, offset time.Duration) entities.ReviewEvent {
	return entities.ReviewEvent{Author: author, Status: status, SubmittedAt: t0.Add(offset)}
}

func TestConsolidate(t *testing.T) {
	tests := []struct {
		name      string
		events    []entities.ReviewEvent
		approvers []string
		rejectors []string
	}{
		{
			name:      "empty",
			approvers: []string{},
			rejectors: []string{},
		},
		{
			name: "latest review wins",
			events: []entities.ReviewEvent{
				review("alice", entities.ReviewChangesRequested, 0),
				review("bob", entities.ReviewApproved, time.Minute),
				review("alice", entities.ReviewApproved, time.Hour),
			},
			approvers: []string{"alice", "bob"},
			rejectors: []string{},
		},
		{
			name: "older review later in the list is ignored",
			events: []entities.ReviewEvent{
				review("alice", entities.ReviewChangesRequested, time.Hour),
				review("alice", entities.ReviewApproved, 0),
			},
			approvers: []string{},
			rejectors: []string{"alice"},
		},
		{
			name: "tie keeps the first seen",
			events: []entities.ReviewEvent{
				review("carol", entities.ReviewApproved, 0),
				review("carol", entities.ReviewChangesRequested, 0),
			},
			approvers: []string{"carol"},
			rejectors: []string{},
		},
		{
			name: "comment after approval drops the author",
			events: []entities.ReviewEvent{
				review("dave", entities.ReviewApproved, 0),
				review("dave", "COMMENTED", time.Minute),
				review("erin", entities.ReviewChangesRequested, 0),
			},
			approvers: []string{},
			rejectors: []string{"erin"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Consolidate(tt.events)
			require.Equal(t, tt.approvers, got.Approvers)
			require.Equal(t, tt.rejectors, got.Rejectors)
		})
	}
}

func TestConsolidate_Partition(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	authors := []string{"a", "b", "c", "d", "e", "f"}
	statuses := []entities.ReviewStatus{entities.ReviewApproved, entities.ReviewChangesRequested, "COMMENTED", "DISMISSED"}

	for round := 0; round < 200; round++ {
		events := make([]entities.ReviewEvent, rnd.Intn(25))
		for i := range events {
			events[i] = review(
				authors[rnd.Intn(len(authors))],
				statuses[rnd.Intn(len(statuses))],
				time.Duration(rnd.Intn(10))*time.Minute,
			)
		}

		got := Consolidate(events)

		seen := make(map[string]bool)
		for _, a := range got.Approvers {
			require.False(t, seen[a], "duplicate %s", a)
			seen[a] = true
		}
		for _, r := range got.Rejectors {
			require.False(t, seen[r], "%s is both approver and rejector", r)
			seen[r] = true
		}
		for author := range seen {
			require.Contains(t, authors, author)
		}
	}
}
