package ghclient

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v57/github"

	"github.com/glosskit/glossflow/internal/log"
	"github.com/glosskit/glossflow/internal/model"
)

// IssueState is the issue data the pipeline re-derives a contribution from.
type IssueState struct {
	Number int
	Title  string
	Body   string
	Labels []string
}

// GetIssue fetches the current state of an issue.
func (c *Client) GetIssue(ctx context.Context, number int) (*IssueState, error) {
	issue, _, err := c.client.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}

	state := &IssueState{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
	}
	for _, label := range issue.Labels {
		state.Labels = append(state.Labels, label.GetName())
	}
	return state, nil
}

// ListComments fetches the full comment history of an issue, oldest first.
func (c *Client) ListComments(ctx context.Context, number int) ([]model.Comment, error) {
	opts := &gh.IssueListCommentsOptions{
		Sort:        gh.String("created"),
		Direction:   gh.String("asc"),
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var comments []model.Comment
	for {
		page, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for issue #%d: %w", number, err)
		}
		for _, comment := range page {
			comments = append(comments, model.Comment{
				Author:    comment.GetUser().GetLogin(),
				Body:      comment.GetBody(),
				CreatedAt: comment.GetCreatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// AddLabels applies labels to an issue. Adding an existing label is a no-op
// on the platform side, so this is safe to repeat.
func (c *Client) AddLabels(ctx context.Context, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	_, _, err := c.client.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to issue #%d: %w", number, err)
	}
	log.Debug("labels added", "issue", number, "labels", labels)
	return nil
}

// RemoveLabel removes one label from an issue. A 404 means the label was
// not present, which is fine for idempotent re-runs.
func (c *Client) RemoveLabel(ctx context.Context, number int, label string) error {
	resp, err := c.client.Issues.RemoveLabelForIssue(ctx, c.owner, c.repo, number, label)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to remove label %q from issue #%d: %w", label, number, err)
	}
	log.Debug("label removed", "issue", number, "label", label)
	return nil
}

// AddComment posts a comment on an issue.
func (c *Client) AddComment(ctx context.Context, number int, body string) error {
	comment := &gh.IssueComment{Body: gh.String(body)}
	_, _, err := c.client.Issues.CreateComment(ctx, c.owner, c.repo, number, comment)
	if err != nil {
		return fmt.Errorf("failed to add comment to issue #%d: %w", number, err)
	}
	return nil
}

// AddAssignees assigns reviewers to an issue.
func (c *Client) AddAssignees(ctx context.Context, number int, assignees []string) error {
	if len(assignees) == 0 {
		return nil
	}
	_, _, err := c.client.Issues.AddAssignees(ctx, c.owner, c.repo, number, assignees)
	if err != nil {
		return fmt.Errorf("failed to assign reviewers to issue #%d: %w", number, err)
	}
	log.Info("reviewers assigned", "issue", number, "assignees", assignees)
	return nil
}
