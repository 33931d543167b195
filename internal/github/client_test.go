package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zaniyar/grantmaster/config"
	"github.com/Zaniyar/grantmaster/internal/entities"
)

func newTestClient(t *testing.T, mux *http.ServeMux) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(zap.NewNop().Sugar(), config.GitHubConfig{
		Token:   "tok",
		Org:     "w3f",
		Repo:    "Grants-Program",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return c, srv
}

func TestListPullRequestIDs_FollowsNextPage(t *testing.T) {
	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/w3f/Grants-Program/pulls?page=2>; rel="next"`, srvURL))
			fmt.Fprint(w, `[{"number":1},{"number":2}]`)
		case "2":
			fmt.Fprint(w, `[{"number":3}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})
	c, srv := newTestClient(t, mux)
	srvURL = srv.URL

	ids := c.ListPullRequestIDs(context.Background(), StateAll)

	require.Equal(t, []int{1, 2, 3}, ids)
}

func TestListPullRequestIDs_FailureReturnsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c, _ := newTestClient(t, mux)

	ids := c.ListPullRequestIDs(context.Background(), StateOpen)

	require.NotNil(t, ids)
	require.Empty(t, ids)
}

func bundleMux(t *testing.T, mergeStatus int, srvURL *string) *http.ServeMux {
	t.Helper()
	doc := base64.StdEncoding.EncodeToString([]byte("# Stake Surfer\n"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"number": 7,
			"state": "closed",
			"body": "application",
			"created_at": "2024-03-01T12:00:00Z",
			"user": {"login": "surfer"},
			"labels": [{"name": "ready for review", "color": "0e8a16"}]
		}`)
	})
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls/7/merge", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(mergeStatus)
	})
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls/7/files", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `[{"filename": "applications/stake_surfer.md", "contents_url": "%s/repos/w3f/Grants-Program/contents/applications/stake_surfer.md?ref=abc"}]`, *srvURL)
	})
	mux.HandleFunc("GET /repos/w3f/Grants-Program/contents/applications/stake_surfer.md", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.URL.Query().Get("ref"))
		fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": "%s"}`, doc)
	})
	mux.HandleFunc("GET /repos/w3f/Grants-Program/issues/7/comments", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"body": "thanks", "created_at": "2024-03-02T12:00:00Z", "user": {"login": "bot"}}]`)
	})
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls/7/reviews", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"state": "APPROVED", "body": "lgtm", "submitted_at": "2024-03-03T12:00:00Z", "user": {"login": "alice"}}]`)
	})
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls/7/comments", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"body": "nit", "created_at": "2024-03-04T12:00:00Z", "user": {"login": "bob"}}]`)
	})
	return mux
}

func TestFetchBundle(t *testing.T) {
	var srvURL string
	c, srv := newTestClient(t, bundleMux(t, http.StatusNoContent, &srvURL))
	srvURL = srv.URL

	b, err := c.FetchBundle(context.Background(), 7)
	require.NoError(t, err)

	require.Equal(t, "https://github.com/w3f/Grants-Program/pull/7", b.URL)
	require.Equal(t, entities.StatusMerged, b.State)
	require.Equal(t, "surfer", b.Author)
	require.Equal(t, "application", b.Body)
	require.True(t, b.IsPullRequest)
	require.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), b.CreatedAt.UTC())
	require.Equal(t, []Label{{Name: "ready for review", Color: "0e8a16"}}, b.Labels)

	require.Len(t, b.Files, 1)
	require.Equal(t, "applications/stake_surfer.md", b.Files[0].Filename)
	require.Equal(t, "base64", b.Files[0].Encoding)
	decoded, err := base64.StdEncoding.DecodeString(b.Files[0].Content)
	require.NoError(t, err)
	require.Equal(t, "# Stake Surfer\n", string(decoded))

	require.Equal(t, []Comment{{Author: "bot", Body: "thanks", CreatedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)}}, normalizeComments(b.IssueComments))
	require.Equal(t, []Comment{{Author: "bob", Body: "nit", CreatedAt: time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)}}, normalizeComments(b.InlineComments))
	require.Len(t, b.Reviews, 1)
	require.Equal(t, "alice", b.Reviews[0].Author)
	require.Equal(t, "APPROVED", b.Reviews[0].State)
	require.Equal(t, "lgtm", b.Reviews[0].Body)
}

func TestFetchBundle_MergeProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   entities.PullRequestStatus
	}{
		{name: "merged", status: http.StatusNoContent, want: entities.StatusMerged},
		{name: "not merged", status: http.StatusNotFound, want: entities.StatusClosed},
		{name: "probe error", status: http.StatusInternalServerError, want: entities.StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var srvURL string
			c, srv := newTestClient(t, bundleMux(t, tt.status, &srvURL))
			srvURL = srv.URL

			b, err := c.FetchBundle(context.Background(), 7)

			require.NoError(t, err)
			require.Equal(t, tt.want, b.State)
		})
	}
}

func TestFetchBundle_SourceUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/w3f/Grants-Program/pulls/8", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c, _ := newTestClient(t, mux)

	_, err := c.FetchBundle(context.Background(), 8)

	require.ErrorIs(t, err, entities.ErrSourceUnavailable)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(zap.NewNop().Sugar(), config.GitHubConfig{Token: "t", BaseURL: "://bad"})

	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func normalizeComments(in []Comment) []Comment {
	out := make([]Comment, len(in))
	for i, c := range in {
		c.CreatedAt = c.CreatedAt.UTC()
		out[i] = c
	}
	return out
}
