package github

import (
	"time"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

// ListState selects which pull requests a listing returns.
type ListState string

const (
	StateOpen ListState = "open"
	StateAll  ListState = "all"
)

// File is a changed file of a pull request with its content as delivered by
// the contents API.
type File struct {
	Filename string
	Content  string
	Encoding string
}

// Comment is an issue or inline review comment.
type Comment struct {
	Author    string
	Body      string
	CreatedAt time.Time
}

// Review is a submitted pull request review.
type Review struct {
	Author      string
	State       string
	Body        string
	SubmittedAt time.Time
}

// Label is a label attached to the pull request.
type Label struct {
	Name  string
	Color string
}

// Bundle is everything fetched for one pull request.
type Bundle struct {
	Number        int
	URL           string
	State         entities.PullRequestStatus
	Author        string
	Body          string
	CreatedAt     time.Time
	IsPullRequest bool
	Labels        []Label
	Files         []File
	IssueComments []Comment
	// InlineComments are the comments attached to diff lines.
	InlineComments []Comment
	Reviews        []Review
}
