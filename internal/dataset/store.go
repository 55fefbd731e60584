// Package dataset reads and writes the persisted glossary datasets: one
// JSON array each for terms, contributors and organizations. Writers keep
// every file alphabetically ordered by primary key and deduplicate by
// identifier before append.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/model"
)

// Store accesses the dataset files under a repository checkout root.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the repository checkout directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// LoadTerms reads the term dataset. A missing file yields an empty slice,
// matching read-modify-write semantics for first writes.
func (s *Store) LoadTerms() ([]model.Term, error) {
	data, err := os.ReadFile(s.path(constants.TermsDatasetPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read term dataset: %w", err)
	}
	return DecodeTerms(data)
}

// SaveTerms writes the term dataset, sorted and deduplicated.
func (s *Store) SaveTerms(terms []model.Term) error {
	data, err := EncodeTerms(terms)
	if err != nil {
		return err
	}
	return s.write(constants.TermsDatasetPath, data)
}

// LoadContributors reads the contributor roster.
func (s *Store) LoadContributors() ([]model.Contributor, error) {
	data, err := os.ReadFile(s.path(constants.ContributorsDatasetPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contributor dataset: %w", err)
	}
	var out []model.Contributor
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse contributor dataset: %w", err)
	}
	return out, nil
}

// SaveContributors writes the contributor roster sorted by username.
func (s *Store) SaveContributors(contributors []model.Contributor) error {
	sort.SliceStable(contributors, func(i, j int) bool {
		return strings.ToLower(contributors[i].GithubUsername) < strings.ToLower(contributors[j].GithubUsername)
	})
	data, err := encodeJSON(contributors)
	if err != nil {
		return fmt.Errorf("failed to encode contributor dataset: %w", err)
	}
	return s.write(constants.ContributorsDatasetPath, data)
}

// LoadOrganizations reads the organization roster.
func (s *Store) LoadOrganizations() ([]model.Organization, error) {
	data, err := os.ReadFile(s.path(constants.OrganizationsDatasetPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read organization dataset: %w", err)
	}
	var out []model.Organization
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse organization dataset: %w", err)
	}
	return out, nil
}

// SaveOrganizations writes the organization roster sorted by name.
func (s *Store) SaveOrganizations(orgs []model.Organization) error {
	sort.SliceStable(orgs, func(i, j int) bool {
		return strings.ToLower(orgs[i].Name) < strings.ToLower(orgs[j].Name)
	})
	data, err := encodeJSON(orgs)
	if err != nil {
		return fmt.Errorf("failed to encode organization dataset: %w", err)
	}
	return s.write(constants.OrganizationsDatasetPath, data)
}

func (s *Store) write(rel string, data []byte) error {
	path := s.path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// DecodeTerms parses a term dataset document.
func DecodeTerms(data []byte) ([]model.Term, error) {
	var terms []model.Term
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("failed to parse term dataset: %w", err)
	}
	return terms, nil
}

// EncodeTerms serializes terms sorted alphabetically by English term and
// deduplicated by ID (first occurrence wins).
func EncodeTerms(terms []model.Term) ([]byte, error) {
	deduped := DedupeTerms(terms)
	SortTerms(deduped)
	data, err := encodeJSON(deduped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode term dataset: %w", err)
	}
	return data, nil
}

// SortTerms orders terms alphabetically by case-folded English term.
func SortTerms(terms []model.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return strings.ToLower(terms[i].English) < strings.ToLower(terms[j].English)
	})
}

// DedupeTerms drops entries whose ID was already seen, preserving order.
func DedupeTerms(terms []model.Term) []model.Term {
	seen := make(map[string]bool, len(terms))
	out := make([]model.Term, 0, len(terms))
	for _, t := range terms {
		if t.ID != "" && seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// encodeJSON marshals with two-space indentation and without escaping the
// Korean text to \u sequences.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
