// Package github reads grant proposal pull requests from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zaniyar/grantmaster/config"
	"github.com/Zaniyar/grantmaster/internal/entities"
)

// Client is a read-only view of one repository.
type Client struct {
	log   *zap.SugaredLogger
	gh    *gh.Client
	owner string
	repo  string
}

// New builds a Client authenticated with the configured token.
func New(log *zap.SugaredLogger, cfg config.GitHubConfig) (*Client, error) {
	client := gh.NewClient(&http.Client{Timeout: cfg.RequestTimeout}).WithAuthToken(cfg.Token)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("%w: github base url: %w", entities.ErrInvalidArgument, err)
		}
		client.BaseURL = u
	}
	return &Client{
		log:   log.Named("github"),
		gh:    client,
		owner: cfg.Org,
		repo:  cfg.Repo,
	}, nil
}

// PullRequestURL is the public web address of pull request n.
func (c *Client) PullRequestURL(n int) string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.owner, c.repo, n)
}

// ListPullRequestIDs returns the numbers of all pull requests in state. On any
// failure it logs and returns an empty list.
func (c *Client) ListPullRequestIDs(ctx context.Context, state ListState) []int {
	prs, err := collectPages(ctx, func(ctx context.Context, opts gh.ListOptions) ([]*gh.PullRequest, *gh.Response, error) {
		return c.gh.PullRequests.List(ctx, c.owner, c.repo, &gh.PullRequestListOptions{
			State:       string(state),
			ListOptions: opts,
		})
	})
	if err != nil {
		c.log.Errorw("list pull requests failed", "state", state, "error", err)
		return []int{}
	}

	ids := make([]int, 0, len(prs))
	for _, pr := range prs {
		ids = append(ids, pr.GetNumber())
	}
	c.log.Infow("listed pull requests", "state", state, "count", len(ids))
	return ids
}

// FetchBundle loads pull request n with its files, comments and reviews.
func (c *Client) FetchBundle(ctx context.Context, n int) (*Bundle, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, n)
	if err != nil {
		return nil, sourceErr("get pull request", n, err)
	}

	b := &Bundle{
		Number:        n,
		URL:           c.PullRequestURL(n),
		State:         entities.PullRequestStatus(pr.GetState()),
		Author:        pr.GetUser().GetLogin(),
		Body:          pr.GetBody(),
		CreatedAt:     pr.GetCreatedAt().Time,
		IsPullRequest: true,
	}
	for _, l := range pr.Labels {
		b.Labels = append(b.Labels, Label{Name: l.GetName(), Color: l.GetColor()})
	}

	if b.State == entities.StatusClosed {
		b.State = c.mergeState(ctx, n)
	}

	if b.Files, err = c.files(ctx, n); err != nil {
		return nil, sourceErr("list files", n, err)
	}
	if b.IssueComments, err = c.issueComments(ctx, n); err != nil {
		return nil, sourceErr("list issue comments", n, err)
	}
	if b.Reviews, err = c.reviews(ctx, n); err != nil {
		return nil, sourceErr("list reviews", n, err)
	}
	if b.InlineComments, err = c.inlineComments(ctx, n); err != nil {
		return nil, sourceErr("list review comments", n, err)
	}
	return b, nil
}

func sourceErr(op string, n int, err error) error {
	return fmt.Errorf("%w: %s %d: %w", entities.ErrSourceUnavailable, op, n, err)
}

// mergeState probes the merge endpoint of a closed pull request.
func (c *Client) mergeState(ctx context.Context, n int) entities.PullRequestStatus {
	merged, _, err := c.gh.PullRequests.IsMerged(ctx, c.owner, c.repo, n)
	switch {
	case err != nil:
		c.log.Errorw("merge status check failed", "pr", n, "error", err)
		return entities.StatusClosed
	case merged:
		c.log.Infow("pull request is merged", "pr", n)
		return entities.StatusMerged
	default:
		c.log.Infow("pull request closed without merge", "pr", n)
		return entities.StatusClosed
	}
}

func (c *Client) files(ctx context.Context, n int) ([]File, error) {
	commitFiles, err := collectPages(ctx, func(ctx context.Context, opts gh.ListOptions) ([]*gh.CommitFile, *gh.Response, error) {
		return c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, n, &opts)
	})
	if err != nil {
		return nil, err
	}

	files := make([]File, len(commitFiles))
	g, gctx := errgroup.WithContext(ctx)
	for i, cf := range commitFiles {
		i, cf := i, cf
		g.Go(func() error {
			content, encoding, err := c.content(gctx, cf.GetContentsURL())
			if err != nil {
				return fmt.Errorf("content of %s: %w", cf.GetFilename(), err)
			}
			files[i] = File{Filename: cf.GetFilename(), Content: content, Encoding: encoding}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.log.Infow("fetched changed files", "pr", n, "count", len(files))
	return files, nil
}

// content follows a contents_url and returns the payload undecoded.
func (c *Client) content(ctx context.Context, contentsURL string) (string, string, error) {
	req, err := c.gh.NewRequest(http.MethodGet, contentsURL, nil)
	if err != nil {
		return "", "", err
	}
	var rc gh.RepositoryContent
	if _, err := c.gh.Do(ctx, req, &rc); err != nil {
		return "", "", err
	}
	raw := ""
	if rc.Content != nil {
		raw = *rc.Content
	}
	return raw, rc.GetEncoding(), nil
}

func (c *Client) issueComments(ctx context.Context, n int) ([]Comment, error) {
	items, err := collectPages(ctx, func(ctx context.Context, opts gh.ListOptions) ([]*gh.IssueComment, *gh.Response, error) {
		return c.gh.Issues.ListComments(ctx, c.owner, c.repo, n, &gh.IssueListCommentsOptions{ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(items))
	for _, ic := range items {
		comments = append(comments, Comment{
			Author:    ic.GetUser().GetLogin(),
			Body:      ic.GetBody(),
			CreatedAt: ic.GetCreatedAt().Time,
		})
	}
	return comments, nil
}

func (c *Client) inlineComments(ctx context.Context, n int) ([]Comment, error) {
	items, err := collectPages(ctx, func(ctx context.Context, opts gh.ListOptions) ([]*gh.PullRequestComment, *gh.Response, error) {
		return c.gh.PullRequests.ListComments(ctx, c.owner, c.repo, n, &gh.PullRequestListCommentsOptions{ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(items))
	for _, pc := range items {
		comments = append(comments, Comment{
			Author:    pc.GetUser().GetLogin(),
			Body:      pc.GetBody(),
			CreatedAt: pc.GetCreatedAt().Time,
		})
	}
	return comments, nil
}

func (c *Client) reviews(ctx context.Context, n int) ([]Review, error) {
	items, err := collectPages(ctx, func(ctx context.Context, opts gh.ListOptions) ([]*gh.PullRequestReview, *gh.Response, error) {
		return c.gh.PullRequests.ListReviews(ctx, c.owner, c.repo, n, &opts)
	})
	if err != nil {
		return nil, err
	}
	reviews := make([]Review, 0, len(items))
	for _, r := range items {
		reviews = append(reviews, Review{
			Author:      r.GetUser().GetLogin(),
			State:       r.GetState(),
			Body:        r.GetBody(),
			SubmittedAt: r.GetSubmittedAt().Time,
		})
	}
	return reviews, nil
}
