package model

import "time"

// Inbound events from the hosting automation. Each carries enough data to
// re-run the pipeline, though stages may additionally fetch current label
// and comment state from the platform.

// ContributionCreated fires when a new issue is opened.
type ContributionCreated struct {
	ID    int
	Title string
	Body  string
}

// ContributionEdited fires when an issue body is edited.
type ContributionEdited struct {
	ID   int
	Body string
}

// CommentPosted fires when any comment lands on an issue.
type CommentPosted struct {
	ContributionID int
	Author         string
	Body           string
	CreatedAt      time.Time
}
