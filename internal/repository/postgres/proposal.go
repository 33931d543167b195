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
	upsertProposalQuery = `
INSERT INTO proposals (id, title, level, amount, currency, payment_address, total_fte, total_duration, team_id, author, document, milestones, chapters)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (title) DO UPDATE SET
    level = EXCLUDED.level,
    amount = EXCLUDED.amount,
    currency = EXCLUDED.currency,
    payment_address = EXCLUDED.payment_address,
    total_fte = EXCLUDED.total_fte,
    total_duration = EXCLUDED.total_duration,
    team_id = EXCLUDED.team_id,
    author = EXCLUDED.author,
    document = EXCLUDED.document,
    milestones = EXCLUDED.milestones,
    chapters = EXCLUDED.chapters,
    updated_at = NOW()
RETURNING id::text`

	proposalColumns = `id::text, title, level, amount, currency, payment_address, total_fte, total_duration,
       COALESCE(team_id::text, ''), author, document, milestones, chapters`

	selectProposalQuery      = `SELECT ` + proposalColumns + ` FROM proposals WHERE title = $1`
	selectProposalsByIDQuery = `SELECT ` + proposalColumns + ` FROM proposals WHERE id::text = ANY($1)`
)

// UpsertProposal inserts or overwrites the proposal with the same title.
func (p *Postgres) UpsertProposal(ctx context.Context, proposal entities.Proposal) (*entities.Proposal, error) {
	teamID, err := optionalUUID("team", proposal.TeamID)
	if err != nil {
		return nil, err
	}
	milestones, err := toJSON(nonNilSlice(proposal.Milestones))
	if err != nil {
		return nil, err
	}
	chapters, err := toJSON(nonNilSlice(proposal.Chapters))
	if err != nil {
		return nil, err
	}

	var id string
	if err := p.db.QueryRow(ctx, upsertProposalQuery,
		uuid.New(), proposal.Title, proposal.Level,
		proposal.CurrencyAmount.Amount, proposal.CurrencyAmount.Currency,
		proposal.PaymentAddress, proposal.TotalFTE, proposal.TotalDuration,
		teamID, proposal.Author, proposal.Document, milestones, chapters,
	).Scan(&id); err != nil {
		p.log.Errorw("failed to upsert proposal", "title", proposal.Title, "error", err)
		return nil, translate("upsert proposal", err)
	}

	proposal.ID = id
	p.log.Debugw("proposal upserted", "title", proposal.Title, "id", id)
	return &proposal, nil
}

// GetProposal fetches a proposal by title.
func (p *Postgres) GetProposal(ctx context.Context, title string) (*entities.Proposal, error) {
	pr, err := scanProposal(p.db.QueryRow(ctx, selectProposalQuery, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProposalNotFound
		}
		return nil, translate("get proposal", err)
	}
	return pr, nil
}

// proposalsByID loads the proposals with the given ids, keyed by id.
func (p *Postgres) proposalsByID(ctx context.Context, ids []string) (map[string]*entities.Proposal, error) {
	proposals := make(map[string]*entities.Proposal, len(ids))
	if len(ids) == 0 {
		return proposals, nil
	}

	rows, err := p.db.Query(ctx, selectProposalsByIDQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		pr, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		proposals[pr.ID] = pr
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proposals: %w", err)
	}
	return proposals, nil
}

func scanProposal(row pgx.Row) (*entities.Proposal, error) {
	var (
		pr                   entities.Proposal
		milestones, chapters []byte
	)
	if err := row.Scan(
		&pr.ID, &pr.Title, &pr.Level,
		&pr.CurrencyAmount.Amount, &pr.CurrencyAmount.Currency,
		&pr.PaymentAddress, &pr.TotalFTE, &pr.TotalDuration,
		&pr.TeamID, &pr.Author, &pr.Document, &milestones, &chapters,
	); err != nil {
		return nil, err
	}

	var err error
	if pr.Milestones, err = fromJSON[entities.Milestone](milestones); err != nil {
		return nil, err
	}
	if pr.Chapters, err = fromJSON[entities.Chapter](chapters); err != nil {
		return nil, err
	}
	return &pr, nil
}
