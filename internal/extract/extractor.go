// Package extract converts a free-form issue body into a flat field mapping
// plus the list of checked agreement boxes. Extraction is total: malformed
// input degrades to a partial mapping and correctness enforcement is left to
// the validator.
package extract

import (
	"regexp"
	"strings"
)

// Field names shared with the validator and materializer. These match the
// ids used by the glossary issue templates.
const (
	FieldContributionType = "contribution_type"
	FieldTermEnglish      = "term_english"
	FieldTermKorean       = "term_korean"
	FieldCategory         = "category"
	FieldAlternatives     = "alternative_translations"
	FieldPronunciation    = "pronunciation"
	FieldDefinitionKorean = "definition_korean"
	FieldDefinitionEng    = "definition_english"
	FieldUsageExamples    = "usage_examples"
	FieldReferences       = "references"
	FieldRelatedTerms     = "related_terms"
	FieldGithubUsername   = "github_username"
	FieldEmail            = "email"
	FieldAdditionalNotes  = "additional_notes"

	FieldFullName       = "full_name"
	FieldOrganization   = "organization"
	FieldExpertiseAreas = "expertise_areas"
	FieldBio            = "bio"
	FieldWebsite        = "website"

	FieldOrgName        = "organization_name"
	FieldOrgType        = "organization_type"
	FieldOrgDescription = "description"
	FieldContactEmail   = "contact_email"
	FieldLogoURL        = "logo_url"
	FieldEstablished    = "established_year"
	FieldLocation       = "location"
	FieldSpecialties    = "specialties"
)

// fieldSpec declares how one field is recovered from the body: exact section
// headings in priority order, then loose keyword matches against any heading.
type fieldSpec struct {
	name     string
	headings []string
	keywords []string

	// dropdown fields render their selected value as a single list bullet.
	dropdown bool
}

// fieldTable is the single declarative pattern table consumed for every
// contribution kind. Order fixes the canonical field order used in
// validation reports.
var fieldTable = []fieldSpec{
	{name: FieldContributionType, headings: []string{"기여 유형"}, keywords: []string{"기여 유형", "contribution type"}, dropdown: true},
	{name: FieldTermEnglish, headings: []string{"영어 용어"}, keywords: []string{"영어 용어", "english term"}},
	{name: FieldTermKorean, headings: []string{"한국어 번역"}, keywords: []string{"한국어 번역", "korean translation"}},
	{name: FieldCategory, headings: []string{"카테고리"}, keywords: []string{"카테고리", "category"}, dropdown: true},
	{name: FieldAlternatives, headings: []string{"대안 번역"}, keywords: []string{"대안 번역", "alternative"}},
	{name: FieldPronunciation, headings: []string{"발음"}, keywords: []string{"발음", "pronunciation"}},
	{name: FieldDefinitionKorean, headings: []string{"한국어 정의"}, keywords: []string{"한국어 정의"}},
	{name: FieldDefinitionEng, headings: []string{"영어 정의"}, keywords: []string{"영어 정의", "english definition"}},
	{name: FieldUsageExamples, headings: []string{"사용 예시"}, keywords: []string{"사용 예시", "usage example"}},
	{name: FieldReferences, headings: []string{"참고 문헌"}, keywords: []string{"참고 문헌", "reference"}},
	{name: FieldRelatedTerms, headings: []string{"관련 용어"}, keywords: []string{"관련 용어", "related term"}},
	{name: FieldGithubUsername, headings: []string{"GitHub 사용자명"}, keywords: []string{"github 사용자명", "github username"}},
	{name: FieldEmail, headings: []string{"이메일"}, keywords: []string{"이메일", "email"}},
	{name: FieldAdditionalNotes, headings: []string{"추가 설명"}, keywords: []string{"추가 설명", "additional note"}},

	{name: FieldFullName, headings: []string{"이름"}, keywords: []string{"full name"}},
	{name: FieldOrganization, headings: []string{"소속"}, keywords: []string{"affiliation"}},
	{name: FieldExpertiseAreas, headings: []string{"전문 분야"}, keywords: []string{"expertise"}},
	{name: FieldBio, headings: []string{"자기소개"}, keywords: []string{"bio"}},
	{name: FieldWebsite, headings: []string{"웹사이트"}, keywords: []string{"웹사이트", "website"}},

	{name: FieldOrgName, headings: []string{"조직명"}, keywords: []string{"organization name"}},
	{name: FieldOrgType, headings: []string{"조직 유형"}, keywords: []string{"organization type"}, dropdown: true},
	{name: FieldOrgDescription, headings: []string{"조직 소개"}, keywords: []string{"조직 소개"}},
	{name: FieldContactEmail, headings: []string{"연락처 이메일"}, keywords: []string{"contact email"}},
	{name: FieldLogoURL, headings: []string{"로고 URL"}, keywords: []string{"logo"}},
	{name: FieldEstablished, headings: []string{"설립 연도"}, keywords: []string{"established"}},
	{name: FieldLocation, headings: []string{"위치"}, keywords: []string{"location"}},
	{name: FieldSpecialties, headings: []string{"전문 영역"}, keywords: []string{"specialt"}},
}

var (
	headingRe = regexp.MustCompile(`^#{2,3}\s+(.+?)\s*$`)
	checkedRe = regexp.MustCompile(`^\s*-\s*\[[xX]\]\s*(.+?)\s*$`)
)

// noResponseSentinel is the placeholder the issue form inserts for untouched
// optional fields.
const noResponseSentinel = "_no response_"

// section is one labeled chunk of the body, preserving document order.
type section struct {
	heading string
	content string
}

// Extract parses the raw body into a field mapping and the ordered list of
// checked agreement items. It never fails; unmatched or placeholder fields
// are simply absent from the mapping.
//
// Exact heading matches run for every field before any keyword fallback, and
// a section bound by heading is claimed: the keyword pass skips it. Without
// the claim, a short keyword such as "이메일" would also capture the distinct
// "연락처 이메일" section.
func Extract(rawBody string) (map[string]string, []string) {
	sections := splitSections(rawBody)

	fields := make(map[string]string)
	claimed := make(map[int]bool)
	for _, spec := range fieldTable {
		if idx, value, ok := lookupHeading(sections, spec); ok {
			fields[spec.name] = value
			claimed[idx] = true
		}
	}
	for _, spec := range fieldTable {
		if _, bound := fields[spec.name]; bound {
			continue
		}
		if value, ok := lookupKeyword(sections, claimed, spec); ok {
			fields[spec.name] = value
		}
	}

	return fields, checkedItems(rawBody)
}

// splitSections walks the body line by line, opening a new section at every
// heading line. Content before the first heading is discarded.
func splitSections(body string) []section {
	var sections []section
	var current *section
	var lines []string

	flush := func() {
		if current != nil {
			current.content = strings.TrimSpace(strings.Join(lines, "\n"))
			sections = append(sections, *current)
		}
		lines = nil
	}

	for _, line := range strings.Split(body, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &section{heading: m[1]}
			continue
		}
		if current != nil {
			lines = append(lines, line)
		}
	}
	flush()

	return sections
}

// lookupHeading resolves one field by exact heading match, returning the
// index of the section that supplied the value.
func lookupHeading(sections []section, spec fieldSpec) (int, string, bool) {
	for _, heading := range spec.headings {
		for i, s := range sections {
			if s.heading != heading {
				continue
			}
			if v := cleanValue(s.content, spec.dropdown); v != "" {
				return i, v, true
			}
		}
	}
	return 0, "", false
}

// lookupKeyword resolves one field by loose keyword match against any
// heading not already claimed by an exact match.
func lookupKeyword(sections []section, claimed map[int]bool, spec fieldSpec) (string, bool) {
	for _, keyword := range spec.keywords {
		for i, s := range sections {
			if claimed[i] {
				continue
			}
			if !strings.Contains(strings.ToLower(s.heading), strings.ToLower(keyword)) {
				continue
			}
			if v := cleanValue(s.content, spec.dropdown); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// cleanValue normalizes section content and maps placeholders to absence.
// Dropdown selections arrive as a single list bullet and are unwrapped.
func cleanValue(content string, dropdown bool) string {
	v := strings.TrimSpace(content)
	if v == "" {
		return ""
	}
	if strings.EqualFold(v, noResponseSentinel) {
		return ""
	}
	// Untouched template hint text is rendered fully italicized.
	if len(v) > 2 && strings.HasPrefix(v, "_") && strings.HasSuffix(v, "_") && !strings.Contains(v, "\n") {
		return ""
	}
	if dropdown && !strings.Contains(v, "\n") {
		if after, ok := strings.CutPrefix(v, "-"); ok {
			v = strings.TrimSpace(after)
		}
	}
	return v
}

// checkedItems collects the label text of every checked checkbox line, in
// body order.
func checkedItems(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		if m := checkedRe.FindStringSubmatch(line); m != nil {
			items = append(items, m[1])
		}
	}
	return items
}

// SplitList parses a comma-separated field value into trimmed, non-empty
// entries. Used for alternatives, related terms, expertise areas and
// specialties.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
