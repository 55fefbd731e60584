// Package model defines the shared data types that flow through the
// contribution pipeline.
package model

import (
	"time"

	"github.com/glosskit/glossflow/internal/constants"
)

// Kind identifies what a contribution proposes to change in the dataset.
type Kind string

const (
	KindUnknown              Kind = ""
	KindTermAddition         Kind = "term-addition"
	KindTermModification     Kind = "term-modification"
	KindContributorAddition  Kind = "contributor-addition"
	KindOrganizationAddition Kind = "organization-addition"
)

// Label returns the bare category label for the kind.
func (k Kind) Label() string {
	return string(k)
}

// TypeLabel returns the type: prefixed label variant applied alongside the
// bare label.
func (k Kind) TypeLabel() string {
	if k == KindUnknown {
		return ""
	}
	return constants.LabelTypePrefix + string(k)
}

// KindFromLabels derives a contribution kind from the labels currently on
// the issue. Returns KindUnknown if no type label is present.
func KindFromLabels(labels []string) Kind {
	known := []Kind{
		KindTermAddition,
		KindTermModification,
		KindContributorAddition,
		KindOrganizationAddition,
	}
	for _, label := range labels {
		for _, k := range known {
			if label == k.Label() || label == k.TypeLabel() {
				return k
			}
		}
	}
	return KindUnknown
}

// Contribution is the unit of work: one issue proposing a dataset change.
// It is created when a submission event arrives and re-derived from platform
// state on every pipeline run.
type Contribution struct {
	// ID is the platform-assigned issue number. Immutable.
	ID int

	Title   string
	RawBody string

	// Kind is derived from labels or, before labeling, from body heuristics.
	Kind Kind

	// Fields holds the extracted named fields.
	Fields map[string]string

	// CheckedAgreements holds the labels of checked consent checkboxes,
	// in body order.
	CheckedAgreements []string

	// Category is the short domain tag (ML, DL, NLP, ...) resolved from the
	// category field, empty if unknown.
	Category string

	// Labels mirrors the issue's current label set.
	Labels []string
}

// HasLabel reports whether the contribution currently carries the label.
func (c *Contribution) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Field returns the named extracted field, or "" if absent.
func (c *Contribution) Field(name string) string {
	return c.Fields[name]
}

// Comment is one issue comment, the raw material for approval aggregation.
type Comment struct {
	Author    string
	Body      string
	CreatedAt time.Time
}
