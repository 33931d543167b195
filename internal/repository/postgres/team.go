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
	upsertTeamQuery = `
INSERT INTO teams (id, name, contact_name, contact_email, entity_name, entity_address, website, members, repos, linkedin_profiles)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (name) DO UPDATE SET
    contact_name = EXCLUDED.contact_name,
    contact_email = EXCLUDED.contact_email,
    entity_name = EXCLUDED.entity_name,
    entity_address = EXCLUDED.entity_address,
    website = EXCLUDED.website,
    members = EXCLUDED.members,
    repos = EXCLUDED.repos,
    linkedin_profiles = EXCLUDED.linkedin_profiles,
    updated_at = NOW()
RETURNING id::text`

	teamColumns = `id::text, name, contact_name, contact_email, entity_name, entity_address, website, members, repos, linkedin_profiles`

	selectTeamQuery      = `SELECT ` + teamColumns + ` FROM teams WHERE name = $1`
	selectTeamsByIDQuery = `SELECT ` + teamColumns + ` FROM teams WHERE id::text = ANY($1)`
)

// UpsertTeam inserts or overwrites the team with the same name. The stored id
// is kept on overwrite.
func (p *Postgres) UpsertTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	team.Members = nonNilSlice(team.Members)
	team.Repos = nonNilSlice(team.Repos)
	team.LinkedinProfiles = nonNilSlice(team.LinkedinProfiles)

	var id string
	if err := p.db.QueryRow(ctx, upsertTeamQuery,
		uuid.New(), team.Name, team.ContactName, team.ContactEmail,
		team.Entity.Name, team.Entity.Address, team.Website,
		team.Members, team.Repos, team.LinkedinProfiles,
	).Scan(&id); err != nil {
		p.log.Errorw("failed to upsert team", "team", team.Name, "error", err)
		return nil, translate("upsert team", err)
	}

	team.ID = id
	p.log.Debugw("team upserted", "team", team.Name, "id", id)
	return &team, nil
}

// GetTeam fetches a team by name.
func (p *Postgres) GetTeam(ctx context.Context, name string) (*entities.Team, error) {
	t, err := scanTeam(p.db.QueryRow(ctx, selectTeamQuery, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, translate("get team", err)
	}
	return t, nil
}

// teamsByID loads the teams with the given ids, keyed by id.
func (p *Postgres) teamsByID(ctx context.Context, ids []string) (map[string]*entities.Team, error) {
	teams := make(map[string]*entities.Team, len(ids))
	if len(ids) == 0 {
		return teams, nil
	}

	rows, err := p.db.Query(ctx, selectTeamsByIDQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	if err := row.Scan(
		&t.ID, &t.Name, &t.ContactName, &t.ContactEmail,
		&t.Entity.Name, &t.Entity.Address, &t.Website,
		&t.Members, &t.Repos, &t.LinkedinProfiles,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
