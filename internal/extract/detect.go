package extract

import (
	"regexp"
	"strings"

	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/model"
)

// Keyword patterns used to classify a submission before any labels exist.
// Matched against the lowercased concatenation of body and title.
var (
	termPatterns = compileAll(
		`영어 용어`,
		`한국어 번역`,
		`term.*translation`,
		`기여 유형.*새로운 용어`,
		`기여 유형.*용어.*추가`,
		`새로운.*용어.*추가`,
		`용어.*등록`,
		`term.*addition`,
		`new.*term`,
	)
	termModificationPatterns = compileAll(
		`기존 용어 수정`,
		`용어.*수정`,
		`term.*modification`,
		`기여 유형.*수정`,
	)
	contributorPatterns = compileAll(
		`기여자.*추가`,
		`contributor.*addition`,
		`github.*사용자명`,
		`새로운.*기여자`,
	)
	organizationPatterns = compileAll(
		`조직.*추가`,
		`organization.*addition`,
		`회사.*등록`,
		`기관.*추가`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

func anyMatch(patterns []*regexp.Regexp, content string) bool {
	for _, re := range patterns {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// DetectKind classifies a submission from its title and body text.
// Modification is checked before addition because modification bodies also
// carry the generic term keywords.
func DetectKind(title, body string) model.Kind {
	content := strings.ToLower(body + " " + title)

	switch {
	case anyMatch(termModificationPatterns, content):
		return model.KindTermModification
	case anyMatch(termPatterns, content):
		return model.KindTermAddition
	case anyMatch(contributorPatterns, content):
		return model.KindContributorAddition
	case anyMatch(organizationPatterns, content):
		return model.KindOrganizationAddition
	default:
		return model.KindUnknown
	}
}

// FallbackLabel picks a generic label for submissions that match no
// contribution kind.
func FallbackLabel(title, body string) string {
	content := strings.ToLower(body + " " + title)
	switch {
	case strings.Contains(content, "bug") || strings.Contains(content, "오류") || strings.Contains(content, "error"):
		return constants.LabelBug
	case strings.Contains(content, "enhancement") || strings.Contains(content, "개선") || strings.Contains(content, "향상"):
		return constants.LabelEnhancement
	case strings.Contains(content, "feature") || strings.Contains(content, "기능"):
		return constants.LabelFeature
	default:
		return constants.LabelNeedsTriage
	}
}
