package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

const (
	upsertSummaryQuery = `
INSERT INTO pull_request_summaries (id, pr_id, url, status, labels, proposal_id, approvers, rejectors, participant_comments, last_participation_at, last_update_successful)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (url) DO UPDATE SET
    pr_id = EXCLUDED.pr_id,
    status = EXCLUDED.status,
    labels = EXCLUDED.labels,
    proposal_id = EXCLUDED.proposal_id,
    approvers = EXCLUDED.approvers,
    rejectors = EXCLUDED.rejectors,
    participant_comments = EXCLUDED.participant_comments,
    last_participation_at = EXCLUDED.last_participation_at,
    last_update_successful = EXCLUDED.last_update_successful,
    updated_at = NOW()
RETURNING id::text, created_at, updated_at`

	summaryColumns = `id::text, pr_id, url, status, labels, COALESCE(proposal_id::text, ''), approvers, rejectors,
       participant_comments, last_participation_at, last_update_successful, created_at, updated_at`

	selectSummaryQuery   = `SELECT ` + summaryColumns + ` FROM pull_request_summaries WHERE url = $1`
	selectSummariesQuery = `SELECT ` + summaryColumns + ` FROM pull_request_summaries ORDER BY pr_id`
	selectAllPRIDsQuery  = `SELECT pr_id FROM pull_request_summaries ORDER BY pr_id`
	selectOpenPRIDsQuery = `SELECT pr_id FROM pull_request_summaries WHERE status = 'open' ORDER BY pr_id`
)

// UpsertPullRequestSummary inserts or overwrites the summary with the same url.
func (p *Postgres) UpsertPullRequestSummary(ctx context.Context, s entities.PullRequestSummary) (*entities.PullRequestSummary, error) {
	proposalID, err := optionalUUID("proposal", s.ProposalID)
	if err != nil {
		return nil, err
	}
	labels, err := toJSON(nonNilSlice(s.Labels))
	if err != nil {
		return nil, err
	}
	comments, err := toJSON(nonNilSlice(s.ParticipantComments))
	if err != nil {
		return nil, err
	}
	s.Approvers = nonNilSlice(s.Approvers)
	s.Rejectors = nonNilSlice(s.Rejectors)

	if err := p.db.QueryRow(ctx, upsertSummaryQuery,
		uuid.New(), s.PRID, s.URL, string(s.Status), labels, proposalID,
		s.Approvers, s.Rejectors, comments, s.LastParticipationAt, s.LastUpdateSuccessful,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		p.log.Errorw("failed to upsert pull request summary", "url", s.URL, "error", err)
		return nil, translate("upsert pull request summary", err)
	}

	p.log.Debugw("pull request summary upserted", "url", s.URL, "id", s.ID)
	return &s, nil
}

// GetPullRequestSummary fetches a summary by url.
func (p *Postgres) GetPullRequestSummary(ctx context.Context, url string) (*entities.PullRequestSummary, error) {
	s, err := scanSummary(p.db.QueryRow(ctx, selectSummaryQuery, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrPullRequestNotFound
		}
		return nil, translate("get pull request summary", err)
	}
	return s, nil
}

// ListPullRequestSummaries returns every summary ordered by pull request
// number, each joined with its proposal and that proposal's team.
func (p *Postgres) ListPullRequestSummaries(ctx context.Context) ([]entities.PullRequestDetail, error) {
	rows, err := p.db.Query(ctx, selectSummariesQuery)
	if err != nil {
		return nil, fmt.Errorf("list pull request summaries: %w", err)
	}
	defer rows.Close()

	details := make([]entities.PullRequestDetail, 0)
	proposalIDs := make([]string, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pull request summary: %w", err)
		}
		if s.ProposalID != "" {
			proposalIDs = append(proposalIDs, s.ProposalID)
		}
		details = append(details, entities.PullRequestDetail{Summary: *s})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pull request summaries: %w", err)
	}

	proposals, err := p.proposalsByID(ctx, proposalIDs)
	if err != nil {
		return nil, err
	}
	teamIDs := make([]string, 0, len(proposals))
	for _, pr := range proposals {
		if pr.TeamID != "" {
			teamIDs = append(teamIDs, pr.TeamID)
		}
	}
	teams, err := p.teamsByID(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	for i := range details {
		pr, ok := proposals[details[i].Summary.ProposalID]
		if !ok {
			continue
		}
		details[i].Proposal = pr
		details[i].Team = teams[pr.TeamID]
	}
	return details, nil
}

func scanSummary(row pgx.Row) (*entities.PullRequestSummary, error) {
	var (
		s                entities.PullRequestSummary
		status           string
		labels, comments []byte
	)
	if err := row.Scan(
		&s.ID, &s.PRID, &s.URL, &status, &labels, &s.ProposalID,
		&s.Approvers, &s.Rejectors, &comments,
		&s.LastParticipationAt, &s.LastUpdateSuccessful, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Status = entities.PullRequestStatus(status)
	var err error
	if s.Labels, err = fromJSON[entities.Label](labels); err != nil {
		return nil, err
	}
	if s.ParticipantComments, err = fromJSON[entities.Message](comments); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListPullRequestIDs returns the pull request numbers of stored summaries,
// restricted to open ones when onlyOpen is set.
func (p *Postgres) ListPullRequestIDs(ctx context.Context, onlyOpen bool) ([]int, error) {
	query := selectAllPRIDsQuery
	if onlyOpen {
		query = selectOpenPRIDsQuery
	}

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pull request ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pull request id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pull request ids: %w", err)
	}
	return ids, nil
}
