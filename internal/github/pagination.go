package github

import (
	"context"

	gh "github.com/google/go-github/v66/github"
)

const perPage = 100

type pageFunc[T any] func(ctx context.Context, opts gh.ListOptions) ([]T, *gh.Response, error)

// collectPages walks the pages of a listing from the first one, following the
// next page reported by the Link header.
func collectPages[T any](ctx context.Context, fetch pageFunc[T]) ([]T, error) {
	all := make([]T, 0)
	opts := gh.ListOptions{Page: 1, PerPage: perPage}
	for {
		items, resp, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}
