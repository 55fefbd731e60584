package dataset

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/glosskit/glossflow/internal/extract"
	"github.com/glosskit/glossflow/internal/model"
)

var termIDCleanRe = regexp.MustCompile(`[^a-z0-9-]`)

// TermID derives the stable slug identifier for a term from its English
// form: lowercased, spaces and underscores become hyphens, everything else
// is stripped.
func TermID(english string) string {
	id := strings.ToLower(strings.TrimSpace(english))
	id = strings.NewReplacer(" ", "-", "_", "-").Replace(id)
	return termIDCleanRe.ReplaceAllString(id, "")
}

// TermFromContribution builds a validated term record from the extracted
// fields of an approved contribution.
func TermFromContribution(c *model.Contribution, discussionURL string, now time.Time) model.Term {
	timestamp := now.UTC().Format(time.RFC3339)

	term := model.Term{
		ID:            TermID(c.Field(extract.FieldTermEnglish)),
		English:       c.Field(extract.FieldTermEnglish),
		Korean:        c.Field(extract.FieldTermKorean),
		Alternatives:  extract.SplitList(c.Field(extract.FieldAlternatives)),
		Pronunciation: c.Field(extract.FieldPronunciation),
		Definition: model.Definition{
			Korean:  c.Field(extract.FieldDefinitionKorean),
			English: c.Field(extract.FieldDefinitionEng),
		},
		Category:     c.Category,
		RelatedTerms: extract.SplitList(c.Field(extract.FieldRelatedTerms)),
		Status:       "validated",
		Metadata: model.TermMetadata{
			CreatedAt:     timestamp,
			UpdatedAt:     timestamp,
			Version:       1,
			DiscussionURL: discussionURL,
		},
	}

	if username := c.Field(extract.FieldGithubUsername); username != "" {
		term.Contributors = []model.TermContributor{
			{GithubUsername: strings.TrimPrefix(username, "@")},
		}
	}

	for _, line := range strings.Split(c.Field(extract.FieldUsageExamples), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		example := model.Example{}
		switch {
		case strings.HasPrefix(line, "한국어:"):
			example.Korean = strings.TrimSpace(strings.TrimPrefix(line, "한국어:"))
		case strings.HasPrefix(line, "영어:"):
			example.English = strings.TrimSpace(strings.TrimPrefix(line, "영어:"))
		default:
			example.Korean = line
		}
		term.Examples = append(term.Examples, example)
	}

	for _, line := range strings.Split(c.Field(extract.FieldReferences), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref := model.Reference{Title: line, Type: "website", Year: now.Year()}
		if url := firstURL(line); url != "" {
			ref.URL = url
		}
		term.References = append(term.References, ref)
	}

	return term
}

var urlInLineRe = regexp.MustCompile(`https?://\S+`)

func firstURL(line string) string {
	return urlInLineRe.FindString(line)
}

// UpsertTerm adds the term to the dataset or, when an entry with the same
// ID exists, updates it in place: contributors are appended (deduplicated
// by username) and the metadata version is bumped.
func UpsertTerm(terms []model.Term, incoming model.Term, now time.Time) []model.Term {
	timestamp := now.UTC().Format(time.RFC3339)

	for i := range terms {
		if terms[i].ID != incoming.ID {
			continue
		}

		existing := &terms[i]
		existing.English = incoming.English
		existing.Korean = incoming.Korean
		existing.Alternatives = incoming.Alternatives
		existing.Pronunciation = incoming.Pronunciation
		existing.Definition = incoming.Definition
		existing.Category = incoming.Category
		existing.Examples = incoming.Examples
		existing.References = incoming.References
		existing.RelatedTerms = incoming.RelatedTerms

		for _, c := range incoming.Contributors {
			credited := false
			for _, have := range existing.Contributors {
				if have.GithubUsername == c.GithubUsername {
					credited = true
					break
				}
			}
			if !credited {
				existing.Contributors = append(existing.Contributors, c)
			}
		}

		existing.Metadata.UpdatedAt = timestamp
		if existing.Metadata.Version == 0 {
			existing.Metadata.Version = 1
		}
		existing.Metadata.Version++
		return terms
	}

	return append(terms, incoming)
}

// ContributorFromContribution builds a contributor roster entry.
func ContributorFromContribution(c *model.Contribution, now time.Time) model.Contributor {
	return model.Contributor{
		GithubUsername:   strings.TrimPrefix(c.Field(extract.FieldGithubUsername), "@"),
		Name:             c.Field(extract.FieldFullName),
		Email:            c.Field(extract.FieldEmail),
		Organization:     c.Field(extract.FieldOrganization),
		Expertise:        extract.SplitList(c.Field(extract.FieldExpertiseAreas)),
		Bio:              c.Field(extract.FieldBio),
		Website:          c.Field(extract.FieldWebsite),
		ContributionType: "contributor",
		JoinDate:         now.UTC().Format("2006-01-02"),
		Status:           "active",
	}
}

// OrganizationFromContribution builds an organization roster entry. New
// organizations start unverified and pending.
func OrganizationFromContribution(c *model.Contribution) model.Organization {
	return model.Organization{
		Name:        c.Field(extract.FieldOrgName),
		Type:        c.Field(extract.FieldOrgType),
		Description: c.Field(extract.FieldOrgDescription),
		Website:     c.Field(extract.FieldWebsite),
		Contact:     c.Field(extract.FieldContactEmail),
		Logo:        c.Field(extract.FieldLogoURL),
		Established: c.Field(extract.FieldEstablished),
		Location:    c.Field(extract.FieldLocation),
		Specialties: extract.SplitList(c.Field(extract.FieldSpecialties)),
		Status:      "pending",
		Verified:    false,
	}
}

// UpsertContributor appends the contributor unless the username already
// exists, in which case the existing entry is left untouched.
func UpsertContributor(contributors []model.Contributor, incoming model.Contributor) []model.Contributor {
	for _, have := range contributors {
		if strings.EqualFold(have.GithubUsername, incoming.GithubUsername) {
			return contributors
		}
	}
	return append(contributors, incoming)
}

// UpsertOrganization appends the organization unless one with the same name
// already exists.
func UpsertOrganization(orgs []model.Organization, incoming model.Organization) []model.Organization {
	for _, have := range orgs {
		if strings.EqualFold(have.Name, incoming.Name) {
			return orgs
		}
	}
	return append(orgs, incoming)
}

// DiscussionURL renders the canonical discussion link recorded in term
// metadata.
func DiscussionURL(owner, repo string, issueNumber int) string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, issueNumber)
}
