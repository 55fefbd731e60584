package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v57/github"

	"github.com/glosskit/glossflow/internal/log"
)

// FileContent fetches a file from the repository's default branch. Returns
// (nil, nil) when the file does not exist so callers can distinguish
// absence from fetch failure.
func (c *Client) FileContent(ctx context.Context, path string) ([]byte, error) {
	file, _, resp, err := c.client.Repositories.GetContents(ctx, c.owner, c.repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			log.Debug("repository file not found", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}

// CollaboratorPermissions lists repository collaborators and their
// permission levels, keyed by login.
func (c *Client) CollaboratorPermissions(ctx context.Context) (map[string]string, error) {
	opts := &gh.ListCollaboratorsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	permissions := make(map[string]string)
	for {
		collaborators, resp, err := c.client.Repositories.ListCollaborators(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list collaborators: %w", err)
		}
		for _, user := range collaborators {
			permissions[user.GetLogin()] = highestPermission(user.GetPermissions())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return permissions, nil
}

// highestPermission collapses the platform's permission flags to the single
// most privileged level.
func highestPermission(perms map[string]bool) string {
	for _, level := range []string{"admin", "maintain", "push", "triage", "pull"} {
		if perms[level] {
			return level
		}
	}
	return ""
}

// Dispatch emits a repository dispatch event, used to trigger downstream
// materialization workflows.
func (c *Client) Dispatch(ctx context.Context, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode dispatch payload: %w", err)
	}
	rawMsg := json.RawMessage(raw)

	_, _, err = c.client.Repositories.Dispatch(ctx, c.owner, c.repo, gh.DispatchRequestOptions{
		EventType:     eventType,
		ClientPayload: &rawMsg,
	})
	if err != nil {
		return fmt.Errorf("failed to dispatch %s event: %w", eventType, err)
	}
	log.Info("dispatch event emitted", "event_type", eventType)
	return nil
}
