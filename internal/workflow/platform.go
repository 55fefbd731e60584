// Package workflow sequences the contribution pipeline: labeling,
// validation, reviewer assignment and approval tracking. Every transition
// re-derives state from the platform's current labels and comment history,
// so repeated or concurrent event delivery converges on the same outcome.
package workflow

import (
	"context"
	"errors"

	"github.com/glosskit/glossflow/internal/ghclient"
	"github.com/glosskit/glossflow/internal/model"
)

// Platform is the narrow issue-tracking surface the orchestrator consumes.
// ghclient.Client implements it; tests substitute a fake.
type Platform interface {
	GetIssue(ctx context.Context, number int) (*ghclient.IssueState, error)
	ListComments(ctx context.Context, number int) ([]model.Comment, error)
	AddLabels(ctx context.Context, number int, labels []string) error
	RemoveLabel(ctx context.Context, number int, label string) error
	AddComment(ctx context.Context, number int, body string) error
	AddAssignees(ctx context.Context, number int, assignees []string) error
	FileContent(ctx context.Context, path string) ([]byte, error)
	CollaboratorPermissions(ctx context.Context) (map[string]string, error)
	Dispatch(ctx context.Context, eventType string, payload any) error
}

// Ensure the real client satisfies the platform surface.
var _ Platform = (*ghclient.Client)(nil)

// ErrDirectoryUnavailable reports that no reviewer directory could be
// loaded from any source. This is an operator problem, never silently
// treated as an empty-but-valid roster.
var ErrDirectoryUnavailable = errors.New("reviewer directory unavailable")

// ErrNoEligibleReviewers reports that the directory loaded but no reviewer
// satisfies the routing rule. The contribution stays valid and waits for
// manual assignment.
var ErrNoEligibleReviewers = errors.New("no eligible reviewers")
