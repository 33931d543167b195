// Package memory implements the Proposal Store in process memory. It is meant
// for local runs and tests; nothing survives a restart.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

// Memory keeps teams, proposals and summaries keyed by name, title and url.
type Memory struct {
	log *zap.SugaredLogger

	mu        sync.RWMutex
	teams     map[string]entities.Team
	proposals map[string]entities.Proposal
	summaries map[string]entities.PullRequestSummary
	now       func() time.Time
}

// New creates an empty store.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{
		log:       log.Named("repo.memory"),
		teams:     make(map[string]entities.Team),
		proposals: make(map[string]entities.Proposal),
		summaries: make(map[string]entities.PullRequestSummary),
		now:       time.Now,
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("proposal store ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// UpsertTeam inserts or overwrites the team with the same name.
func (m *Memory) UpsertTeam(_ context.Context, team entities.Team) (*entities.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	team.ID = uuid.NewString()
	if prev, ok := m.teams[team.Name]; ok {
		team.ID = prev.ID
	}
	team.Members = cloneOrEmpty(team.Members)
	team.Repos = cloneOrEmpty(team.Repos)
	team.LinkedinProfiles = cloneOrEmpty(team.LinkedinProfiles)
	m.teams[team.Name] = team
	return &team, nil
}

// GetTeam fetches a team by name.
func (m *Memory) GetTeam(_ context.Context, name string) (*entities.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.teams[name]
	if !ok {
		return nil, entities.ErrTeamNotFound
	}
	return &t, nil
}

// UpsertProposal inserts or overwrites the proposal with the same title.
func (m *Memory) UpsertProposal(_ context.Context, proposal entities.Proposal) (*entities.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if proposal.TeamID != "" && !m.hasTeamID(proposal.TeamID) {
		return nil, fmt.Errorf("%w: unknown team %s", entities.ErrInvalidArgument, proposal.TeamID)
	}

	proposal.ID = uuid.NewString()
	if prev, ok := m.proposals[proposal.Title]; ok {
		proposal.ID = prev.ID
	}
	proposal.Milestones = cloneOrEmpty(proposal.Milestones)
	proposal.Chapters = cloneOrEmpty(proposal.Chapters)
	m.proposals[proposal.Title] = proposal
	return &proposal, nil
}

// GetProposal fetches a proposal by title.
func (m *Memory) GetProposal(_ context.Context, title string) (*entities.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.proposals[title]
	if !ok {
		return nil, entities.ErrProposalNotFound
	}
	return &p, nil
}

// UpsertPullRequestSummary inserts or overwrites the summary with the same url.
func (m *Memory) UpsertPullRequestSummary(_ context.Context, s entities.PullRequestSummary) (*entities.PullRequestSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ProposalID != "" && !m.hasProposalID(s.ProposalID) {
		return nil, fmt.Errorf("%w: unknown proposal %s", entities.ErrInvalidArgument, s.ProposalID)
	}

	now := m.now()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	if prev, ok := m.summaries[s.URL]; ok {
		s.ID = prev.ID
		s.CreatedAt = prev.CreatedAt
	}
	s.UpdatedAt = now
	s.Labels = cloneOrEmpty(s.Labels)
	s.Approvers = cloneOrEmpty(s.Approvers)
	s.Rejectors = cloneOrEmpty(s.Rejectors)
	s.ParticipantComments = cloneOrEmpty(s.ParticipantComments)
	m.summaries[s.URL] = s
	return &s, nil
}

// GetPullRequestSummary fetches a summary by url.
func (m *Memory) GetPullRequestSummary(_ context.Context, url string) (*entities.PullRequestSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.summaries[url]
	if !ok {
		return nil, entities.ErrPullRequestNotFound
	}
	return &s, nil
}

// ListPullRequestIDs returns stored pull request numbers in ascending order.
func (m *Memory) ListPullRequestIDs(_ context.Context, onlyOpen bool) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int, 0, len(m.summaries))
	for _, s := range m.summaries {
		if onlyOpen && s.Status != entities.StatusOpen {
			continue
		}
		ids = append(ids, s.PRID)
	}
	slices.Sort(ids)
	return ids, nil
}

// ListPullRequestSummaries returns every summary ordered by pull request
// number, each with its proposal and team resolved.
func (m *Memory) ListPullRequestSummaries(_ context.Context) ([]entities.PullRequestDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	proposals := make(map[string]entities.Proposal, len(m.proposals))
	for _, p := range m.proposals {
		proposals[p.ID] = p
	}
	teams := make(map[string]entities.Team, len(m.teams))
	for _, t := range m.teams {
		teams[t.ID] = t
	}

	details := make([]entities.PullRequestDetail, 0, len(m.summaries))
	for _, s := range m.summaries {
		d := entities.PullRequestDetail{Summary: s}
		if p, ok := proposals[s.ProposalID]; ok {
			d.Proposal = &p
			if t, ok := teams[p.TeamID]; ok {
				d.Team = &t
			}
		}
		details = append(details, d)
	}
	slices.SortFunc(details, func(a, b entities.PullRequestDetail) int {
		return cmp.Compare(a.Summary.PRID, b.Summary.PRID)
	})
	return details, nil
}

func (m *Memory) hasTeamID(id string) bool {
	for _, t := range m.teams {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (m *Memory) hasProposalID(id string) bool {
	for _, p := range m.proposals {
		if p.ID == id {
			return true
		}
	}
	return false
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
