// Package validate applies the blocking and advisory checks that decide
// whether a contribution may proceed to review. A single pass runs every
// check and collects every finding; nothing short-circuits.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/extract"
	"github.com/glosskit/glossflow/internal/model"
)

// DuplicateConflict references an existing dataset entry that collides with
// the candidate term.
type DuplicateConflict struct {
	ExistingID string
	Message    string
}

// Result is the outcome of one validation pass. It is recomputed from
// current contribution state on every run and never persisted.
type Result struct {
	// MissingFields lists absent required fields by human-readable label,
	// in canonical field order.
	MissingFields []string

	// FormatErrors lists per-field format violations.
	FormatErrors []string

	// MissingAgreements lists required consent statements that were not
	// checked. Blocking, reported separately from MissingFields.
	MissingAgreements []string

	// QualityIssues lists improvement suggestions. Never blocking.
	QualityIssues []string

	// Duplicate is set when the candidate collides with an existing entry.
	Duplicate *DuplicateConflict
}

// Eligible reports whether the contribution may proceed to review.
// Quality issues never block.
func (r Result) Eligible() bool {
	return len(r.MissingFields) == 0 &&
		len(r.FormatErrors) == 0 &&
		len(r.MissingAgreements) == 0 &&
		r.Duplicate == nil
}

// requiredField pairs a field name with the label used in reports.
type requiredField struct {
	name  string
	label string
}

// Required field lists per contribution kind, in report order.
var (
	termRequiredFields = []requiredField{
		{extract.FieldContributionType, "기여 유형"},
		{extract.FieldTermEnglish, "영어 용어"},
		{extract.FieldTermKorean, "한국어 번역"},
		{extract.FieldCategory, "카테고리"},
		{extract.FieldDefinitionKorean, "한국어 정의"},
		{extract.FieldDefinitionEng, "영어 정의"},
		{extract.FieldUsageExamples, "사용 예시"},
		{extract.FieldReferences, "참고 문헌"},
		{extract.FieldGithubUsername, "GitHub 사용자명"},
	}
	contributorRequiredFields = []requiredField{
		{extract.FieldGithubUsername, "GitHub 사용자명"},
		{extract.FieldFullName, "이름"},
		{extract.FieldEmail, "이메일"},
		{extract.FieldExpertiseAreas, "전문 분야"},
	}
	organizationRequiredFields = []requiredField{
		{extract.FieldOrgName, "조직명"},
		{extract.FieldOrgType, "조직 유형"},
		{extract.FieldOrgDescription, "조직 소개"},
		{extract.FieldWebsite, "웹사이트"},
		{extract.FieldContactEmail, "연락처 이메일"},
	}
)

// RequiredAgreements are the consent statements every contribution must
// check. A checked item satisfies a statement by exact or prefix match.
var RequiredAgreements = []string{
	"이 기여는 오픈소스 라이선스 하에 제공됩니다",
	"제공한 정보가 정확하고 검증되었음을 확인합니다",
	"커뮤니티 가이드라인을 읽고 준수합니다",
}

var (
	englishTermRe    = regexp.MustCompile(`^[A-Za-z0-9\s\-_()]+$`)
	githubHandleRe   = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)
	emailRe          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlRe            = regexp.MustCompile(`https?://\S+`)
	koreanExampleRe  = regexp.MustCompile(`한국어:`)
	englishExampleRe = regexp.MustCompile(`영어:`)
)

// reliableSources are hosts recognized as authoritative for references.
var reliableSources = []string{
	"arxiv.org",
	"scholar.google",
	"ieee.org",
	"acm.org",
	"springer.com",
	"nature.com",
	"sciencedirect.com",
}

// Validate runs every check tier against the extracted fields and returns
// the collected findings. snapshot is the current term dataset, used only
// for duplicate detection.
func Validate(kind model.Kind, fields map[string]string, checkedAgreements []string, snapshot []model.Term) Result {
	var r Result

	r.MissingFields = missingFields(kind, fields)
	r.FormatErrors = formatErrors(fields)
	r.MissingAgreements = missingAgreements(checkedAgreements)
	r.QualityIssues = qualityIssues(fields)
	r.Duplicate = duplicateConflict(fields, snapshot)

	return r
}

func requiredFieldsFor(kind model.Kind) []requiredField {
	switch kind {
	case model.KindTermAddition, model.KindTermModification:
		return termRequiredFields
	case model.KindContributorAddition:
		return contributorRequiredFields
	case model.KindOrganizationAddition:
		return organizationRequiredFields
	default:
		return nil
	}
}

func missingFields(kind model.Kind, fields map[string]string) []string {
	var missing []string
	for _, rf := range requiredFieldsFor(kind) {
		if strings.TrimSpace(fields[rf.name]) == "" {
			missing = append(missing, rf.label)
		}
	}
	return missing
}

func formatErrors(fields map[string]string) []string {
	var errs []string

	if v, ok := fields[extract.FieldTermEnglish]; ok {
		if !englishTermRe.MatchString(v) {
			errs = append(errs, "영어 용어는 영문자, 숫자, 공백, 하이픈, 언더스코어, 괄호만 포함해야 합니다")
		}
	}

	if v, ok := fields[extract.FieldTermKorean]; ok {
		if utf8.RuneCountInString(v) < constants.KoreanTermMinLength {
			errs = append(errs, fmt.Sprintf("한국어 번역은 최소 %d자 이상이어야 합니다", constants.KoreanTermMinLength))
		}
	}

	if v, ok := fields[extract.FieldDefinitionKorean]; ok {
		if utf8.RuneCountInString(v) < constants.KoreanDefinitionMinLength {
			errs = append(errs, fmt.Sprintf("한국어 정의는 최소 %d자 이상이어야 합니다", constants.KoreanDefinitionMinLength))
		}
	}

	if v, ok := fields[extract.FieldDefinitionEng]; ok {
		if utf8.RuneCountInString(v) < constants.EnglishDefinitionMinLength {
			errs = append(errs, fmt.Sprintf("영어 정의는 최소 %d자 이상이어야 합니다", constants.EnglishDefinitionMinLength))
		}
	}

	if v, ok := fields[extract.FieldGithubUsername]; ok {
		handle := strings.TrimPrefix(strings.TrimSpace(v), "@")
		if !githubHandleRe.MatchString(handle) {
			errs = append(errs, "GitHub 사용자명 형식이 올바르지 않습니다")
		}
	}

	for _, name := range []string{extract.FieldEmail, extract.FieldContactEmail} {
		if v, ok := fields[name]; ok && v != "" {
			if !emailRe.MatchString(strings.TrimSpace(v)) {
				errs = append(errs, "이메일 형식이 올바르지 않습니다")
				break
			}
		}
	}

	return errs
}

func missingAgreements(checked []string) []string {
	var missing []string
	for _, required := range RequiredAgreements {
		satisfied := false
		for _, item := range checked {
			if item == required || strings.HasPrefix(item, required) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			missing = append(missing, fmt.Sprintf("필수 동의 항목: '%s'", required))
		}
	}
	return missing
}

func qualityIssues(fields map[string]string) []string {
	var issues []string

	if examples, ok := fields[extract.FieldUsageExamples]; ok {
		korean := len(koreanExampleRe.FindAllString(examples, -1))
		english := len(englishExampleRe.FindAllString(examples, -1))
		switch {
		case korean < 1 || english < 1:
			issues = append(issues, "사용 예시에 한국어와 영어 예시를 각각 최소 1개씩 포함하는 것을 권장합니다")
		case korean == 1 && english == 1:
			issues = append(issues, "더 다양한 사용 맥락을 보여주기 위해 예시를 2개 이상 제공하는 것을 권장합니다")
		}
	}

	if references, ok := fields[extract.FieldReferences]; ok {
		if !urlRe.MatchString(references) {
			issues = append(issues, "온라인으로 접근 가능한 참고 문헌 URL을 1개 이상 포함하는 것을 권장합니다")
		}
		lower := strings.ToLower(references)
		reliable := false
		for _, source := range reliableSources {
			if strings.Contains(lower, source) {
				reliable = true
				break
			}
		}
		if !reliable {
			issues = append(issues, "학술 논문이나 신뢰할 수 있는 출판사의 자료를 참고 문헌에 포함하는 것을 권장합니다")
		}
	}

	korDef, korOK := fields[extract.FieldDefinitionKorean]
	engDef, engOK := fields[extract.FieldDefinitionEng]
	if korOK && engOK {
		if utf8.RuneCountInString(korDef) < constants.KoreanDefinitionAdvisoryLength {
			issues = append(issues, fmt.Sprintf("더 상세하고 이해하기 쉬운 한국어 정의를 제공해주세요 (%d자 이상 권장)", constants.KoreanDefinitionAdvisoryLength))
		}
		if utf8.RuneCountInString(engDef) < constants.EnglishDefinitionAdvisoryLength {
			issues = append(issues, fmt.Sprintf("더 상세하고 이해하기 쉬운 영어 정의를 제공해주세요 (%d자 이상 권장)", constants.EnglishDefinitionAdvisoryLength))
		}
	}

	return issues
}

// duplicateConflict compares the case-folded candidate terms against every
// snapshot entry. Skipped entirely when the English term is absent: no
// duplicate check without a subject.
func duplicateConflict(fields map[string]string, snapshot []model.Term) *DuplicateConflict {
	english, ok := fields[extract.FieldTermEnglish]
	if !ok || strings.TrimSpace(english) == "" {
		return nil
	}

	englishLower := strings.ToLower(strings.TrimSpace(english))
	koreanLower := strings.ToLower(strings.TrimSpace(fields[extract.FieldTermKorean]))

	for _, term := range snapshot {
		if strings.ToLower(term.English) == englishLower {
			return &DuplicateConflict{
				ExistingID: term.ID,
				Message:    fmt.Sprintf("영어 용어 '%s'는 이미 존재합니다 (ID: %s)", english, term.ID),
			}
		}
		if koreanLower != "" && strings.ToLower(term.Korean) == koreanLower {
			return &DuplicateConflict{
				ExistingID: term.ID,
				Message:    fmt.Sprintf("한국어 용어 '%s'는 이미 존재합니다 (ID: %s)", fields[extract.FieldTermKorean], term.ID),
			}
		}
	}

	return nil
}
