package model

// Persisted dataset record shapes. These mirror the JSON documents under
// data/ in the glossary repository; field order is irrelevant but names are
// part of the published dataset contract.

// Definition is a term definition in both language variants.
type Definition struct {
	Korean  string `json:"korean"`
	English string `json:"english"`
}

// Example is one usage example attached to a term.
type Example struct {
	Korean  string `json:"korean"`
	English string `json:"english"`
	Source  string `json:"source,omitempty"`
}

// Reference is one citation attached to a term.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"`
	Year  int    `json:"year,omitempty"`
}

// TermContributor credits a contributor on a term record.
type TermContributor struct {
	GithubUsername string `json:"githubUsername"`
	Name           string `json:"name,omitempty"`
}

// TermMetadata tracks record provenance.
type TermMetadata struct {
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
	Version       int    `json:"version"`
	DiscussionURL string `json:"discussionUrl,omitempty"`
}

// Term is one glossary entry.
type Term struct {
	ID            string            `json:"id"`
	English       string            `json:"english"`
	Korean        string            `json:"korean"`
	Alternatives  []string          `json:"alternatives,omitempty"`
	Pronunciation string            `json:"pronunciation,omitempty"`
	Definition    Definition        `json:"definition"`
	Category      string            `json:"category,omitempty"`
	Examples      []Example         `json:"examples,omitempty"`
	References    []Reference       `json:"references,omitempty"`
	RelatedTerms  []string          `json:"relatedTerms,omitempty"`
	Status        string            `json:"status"`
	Contributors  []TermContributor `json:"contributors,omitempty"`
	Metadata      TermMetadata      `json:"metadata"`
}

// Contributor is one entry in the contributor roster.
type Contributor struct {
	GithubUsername   string   `json:"githubUsername"`
	Name             string   `json:"name"`
	Email            string   `json:"email,omitempty"`
	Organization     string   `json:"organization,omitempty"`
	Expertise        []string `json:"expertise,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	Website          string   `json:"website,omitempty"`
	ContributionType string   `json:"contributionType"`
	JoinDate         string   `json:"joinDate"`
	Status           string   `json:"status"`
}

// Organization is one entry in the organization roster.
type Organization struct {
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Established string   `json:"established,omitempty"`
	Location    string   `json:"location,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Status      string   `json:"status"`
	Verified    bool     `json:"verified"`
}
