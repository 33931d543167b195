package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Zaniyar/grantmaster/config"
	"github.com/Zaniyar/grantmaster/internal/entities"
	"github.com/Zaniyar/grantmaster/internal/parser"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProposalStoreIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team := entities.Team{
		Name:        "Surf Labs",
		ContactName: "Alice",
		Entity:      entities.LegalEntity{Name: "Surf Labs Lda", Address: "Lisbon"},
		Members:     []string{"Alice", "Bob"},
		Repos:       []string{"https://github.com/surf-labs/app"},
	}
	storedTeam, err := repo.UpsertTeam(ctx, team)
	require.NoError(t, err)
	require.NotEmpty(t, storedTeam.ID)

	team.ID = "ignored"
	team.ContactName = "Bob"
	again, err := repo.UpsertTeam(ctx, team)
	require.NoError(t, err)
	require.Equal(t, storedTeam.ID, again.ID)

	fetchedTeam, err := repo.GetTeam(ctx, "Surf Labs")
	require.NoError(t, err)
	require.Equal(t, "Bob", fetchedTeam.ContactName)
	require.Equal(t, []string{"Alice", "Bob"}, fetchedTeam.Members)
	require.Equal(t, []string{}, fetchedTeam.LinkedinProfiles)

	proposal := entities.Proposal{
		Title:          "Stake Surfer",
		Level:          2,
		CurrencyAmount: entities.CurrencyAmount{Amount: 10000, Currency: "USD"},
		PaymentAddress: "0x1",
		TotalFTE:       1.5,
		TotalDuration:  3,
		TeamID:         storedTeam.ID,
		Author:         "surfer",
		Document:       "# Stake Surfer",
		Milestones: []entities.Milestone{{
			Name: "M1", Duration: "1 month", FTE: "1", Costs: "8000",
			Deliverables: []entities.Deliverable{{Number: "0a.", Name: "License", Specification: "MIT"}},
		}},
		Chapters: []entities.Chapter{{Key: "projectOverview", Text: "## Project Overview\n"}},
	}
	storedProposal, err := repo.UpsertProposal(ctx, proposal)
	require.NoError(t, err)

	fetchedProposal, err := repo.GetProposal(ctx, "Stake Surfer")
	require.NoError(t, err)
	require.Equal(t, storedProposal.ID, fetchedProposal.ID)
	require.Equal(t, proposal.Milestones, fetchedProposal.Milestones)
	require.Equal(t, proposal.Chapters, fetchedProposal.Chapters)
	require.Equal(t, storedTeam.ID, fetchedProposal.TeamID)

	last := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	summary := entities.PullRequestSummary{
		PRID:       7,
		URL:        "https://github.com/w3f/Grants-Program/pull/7",
		Status:     entities.StatusOpen,
		Labels:     []entities.Label{{Name: "ready", Color: "00ff00"}},
		ProposalID: storedProposal.ID,
		Approvers:  []string{"alice"},
		ParticipantComments: []entities.Message{
			{Author: "surfer", Message: "hi", Timestamp: last},
		},
		LastParticipationAt: &last,
	}
	first, err := repo.UpsertPullRequestSummary(ctx, summary)
	require.NoError(t, err)

	summary.Status = entities.StatusMerged
	second, err := repo.UpsertPullRequestSummary(ctx, summary)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	fetched, err := repo.GetPullRequestSummary(ctx, summary.URL)
	require.NoError(t, err)
	require.Equal(t, entities.StatusMerged, fetched.Status)
	require.Equal(t, []string{"alice"}, fetched.Approvers)
	require.Equal(t, []string{}, fetched.Rejectors)
	require.Equal(t, summary.Labels, fetched.Labels)
	require.Len(t, fetched.ParticipantComments, 1)
	require.True(t, last.Equal(*fetched.LastParticipationAt))
	require.False(t, fetched.LastUpdateSuccessful)

	open, err := repo.ListPullRequestIDs(ctx, true)
	require.NoError(t, err)
	require.Empty(t, open)
	all, err := repo.ListPullRequestIDs(ctx, false)
	require.NoError(t, err)
	require.Equal(t, []int{7}, all)

	details, err := repo.ListPullRequestSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, summary.URL, details[0].Summary.URL)
	require.NotNil(t, details[0].Proposal)
	require.Equal(t, storedProposal.ID, details[0].Proposal.ID)
	require.Equal(t, proposal.Milestones, details[0].Proposal.Milestones)
	require.NotNil(t, details[0].Team)
	require.Equal(t, "Surf Labs", details[0].Team.Name)

	_, err = repo.UpsertPullRequestSummary(ctx, entities.PullRequestSummary{
		PRID: 3, URL: "https://github.com/w3f/Grants-Program/pull/3", Status: entities.StatusOpen,
	})
	require.NoError(t, err)
	details, err = repo.ListPullRequestSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, 3, details[0].Summary.PRID)
	require.Nil(t, details[0].Proposal)
	require.Nil(t, details[0].Team)
	require.Equal(t, 7, details[1].Summary.PRID)

	raw := []byte("# Caf\xe9 Grant\n\x00\x89PNG\n")
	_, err = repo.UpsertProposal(ctx, entities.Proposal{Title: "Raw bytes", Document: string(raw)})
	require.Error(t, err)

	cleaned := parser.CleanText(raw)
	_, err = repo.UpsertProposal(ctx, entities.Proposal{Title: "Cleaned bytes", TeamID: storedTeam.ID, Document: cleaned})
	require.NoError(t, err)
	fetchedCleaned, err := repo.GetProposal(ctx, "Cleaned bytes")
	require.NoError(t, err)
	require.Equal(t, cleaned, fetchedCleaned.Document)

	_, err = repo.GetTeam(ctx, "nobody")
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
	_, err = repo.GetProposal(ctx, "nothing")
	require.ErrorIs(t, err, entities.ErrProposalNotFound)
	_, err = repo.GetPullRequestSummary(ctx, "https://example.com")
	require.ErrorIs(t, err, entities.ErrPullRequestNotFound)

	_, err = repo.UpsertProposal(ctx, entities.Proposal{Title: "Orphan", TeamID: "4b0c0d6e-8a39-4c8e-9d8e-5b1f0c6f3a11"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	_, err = repo.UpsertProposal(ctx, entities.Proposal{Title: "Bad ref", TeamID: "not-a-uuid"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=grants_dashboard",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "grants_dashboard",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
