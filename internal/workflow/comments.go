package workflow

import (
	"fmt"
	"strings"

	"github.com/glosskit/glossflow/internal/approval"
	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/model"
	"github.com/glosskit/glossflow/internal/validate"
)

const commentFooter = "\n---\n*이 댓글은 자동으로 생성되었습니다.*\n"

func welcomeComment() string {
	var b strings.Builder
	b.WriteString("## 🤖 자동 처리 시작\n\n")
	b.WriteString("안녕하세요! 새로운 용어 기여에 관심을 가져주셔서 감사합니다! 🎉\n\n")
	b.WriteString("이 이슈는 자동으로 **용어 추가** 유형으로 분류되었습니다.\n\n")
	b.WriteString("### 🔄 자동 처리 단계\n")
	b.WriteString("1. **✅ 자동 라벨링 완료** ← 현재 단계\n")
	b.WriteString("2. **🔍 자동 검증 진행** ← 다음 단계\n")
	b.WriteString("3. **👥 전문가 검토** ← 검증 통과 후\n")
	b.WriteString("4. **🚀 용어집 반영** ← 승인 후\n")
	b.WriteString(commentFooter)
	return b.String()
}

// validationFailureComment enumerates every blocking finding in one
// consolidated comment. A run never splits findings across comments.
func validationFailureComment(result validate.Result) string {
	var b strings.Builder
	b.WriteString("## 🤖 자동 검증 결과: 보완이 필요합니다\n\n")
	b.WriteString("안녕하세요! 용어 기여에 관심을 가져주셔서 감사합니다.\n")
	b.WriteString("자동 검증 결과 몇 가지 항목에서 보완이 필요합니다.\n\n")

	if result.Duplicate != nil {
		b.WriteString("### ❌ 중복 용어 발견\n\n")
		b.WriteString(result.Duplicate.Message)
		b.WriteString("\n\n기존 용어를 개선하고 싶다면 \"기존 용어 수정\" 유형으로 이슈를 다시 작성해주세요.\n\n")
	}

	if len(result.MissingFields) > 0 {
		b.WriteString("### ❌ 필수 필드 누락\n\n")
		for _, field := range result.MissingFields {
			fmt.Fprintf(&b, "- **%s**: 이 필드는 반드시 작성해야 합니다\n", field)
		}
		b.WriteString("\n**해결 방법:** 이슈 편집 버튼을 클릭하여 누락된 필드들을 모두 작성해주세요.\n\n")
	}

	if len(result.FormatErrors) > 0 {
		b.WriteString("### ❌ 형식 오류\n\n")
		for _, err := range result.FormatErrors {
			fmt.Fprintf(&b, "- %s\n", err)
		}
		b.WriteString("\n**해결 방법:** 위의 형식 요구사항에 맞게 수정해주세요.\n\n")
	}

	if len(result.MissingAgreements) > 0 {
		b.WriteString("### ❌ 필수 동의 항목 누락\n\n")
		for _, agreement := range result.MissingAgreements {
			fmt.Fprintf(&b, "- %s\n", agreement)
		}
		b.WriteString("\n**해결 방법:** 동의 사항을 읽어보시고 해당 체크박스들을 체크해주세요.\n\n")
	}

	b.WriteString("## 🔄 다음 단계\n\n")
	b.WriteString("1. 위의 문제들을 해결한 후 이슈를 수정해주세요\n")
	b.WriteString("2. 수정하면 자동으로 다시 검증됩니다\n")
	b.WriteString("3. 모든 검증을 통과하면 관리자 검토 단계로 진행됩니다\n")
	b.WriteString(commentFooter)
	return b.String()
}

func validationSuccessComment() string {
	var b strings.Builder
	b.WriteString("## ✅ 자동 검증 완료\n\n")
	b.WriteString("모든 자동 검증을 통과했습니다! 🎉\n\n")
	b.WriteString("다음 단계에서는 전문가 관리자들이 내용을 검토합니다:\n")
	b.WriteString("- 용어 번역의 정확성\n")
	b.WriteString("- 정의의 명확성과 완전성\n")
	b.WriteString("- 사용 예시의 적절성\n")
	b.WriteString("- 참고 문헌의 신뢰성\n\n")
	b.WriteString("**예상 검토 시간:** 1-3일\n")
	b.WriteString(commentFooter)
	return b.String()
}

func suggestionsComment(issues []string) string {
	var b strings.Builder
	b.WriteString("## 💡 품질 개선 제안\n\n")
	b.WriteString("자동 검증은 통과했지만, 더 나은 품질을 위한 개선 제안이 있습니다:\n\n")
	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue)
	}
	b.WriteString("\n이러한 개선사항들은 선택사항이며, 현재 상태로도 검토를 진행할 수 있습니다.\n")
	b.WriteString(commentFooter)
	return b.String()
}

var roleEmoji = map[model.Role]string{
	model.RoleOwner:      "👑",
	model.RoleMaintainer: "🛠️",
	model.RoleReviewer:   "📝",
}

func assignmentComment(assignees []string, dir directory.Directory, rule directory.RoutingRule, domain string) string {
	var b strings.Builder
	b.WriteString("## 👥 관리자 자동 할당\n\n")
	b.WriteString("검증이 완료되어 다음 관리자들이 자동 할당되었습니다:\n\n")

	for _, login := range assignees {
		profile := dir[login]
		emoji, ok := roleEmoji[profile.Role]
		if !ok {
			emoji = "👤"
		}
		fmt.Fprintf(&b, "- %s @%s - %s", emoji, login, profile.Role)
		if domain != "" && hasExplicitSpecialization(profile, domain) {
			fmt.Fprintf(&b, " ⭐ **%s 전문가**", domain)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n### 📋 검토 요청 사항\n\n")
	fmt.Fprintf(&b, "**카테고리**: %s\n", rule.Category)
	if domain != "" {
		fmt.Fprintf(&b, "**전문 분야**: %s\n", domain)
	}
	fmt.Fprintf(&b, "**필요한 승인 수**: %d개\n\n", rule.MinApprovals)

	b.WriteString("### 💬 승인 방법\n\n")
	b.WriteString("검토가 완료되면 다음과 같이 댓글을 남겨주세요:\n")
	b.WriteString("- ✅ **승인**: `승인` 또는 `approve` 또는 `LGTM`\n")
	b.WriteString("- ❌ **수정 요청**: `반려` 또는 `needs work` + 구체적인 피드백\n")
	b.WriteString(commentFooter)
	return b.String()
}

func hasExplicitSpecialization(p model.ReviewerProfile, domain string) bool {
	for _, s := range p.Specializations {
		if s == domain {
			return true
		}
	}
	return false
}

func approvalCompleteComment(tally approval.Tally, rule directory.RoutingRule) string {
	var b strings.Builder
	b.WriteString("## ✅ 관리자 승인 완료\n\n")
	b.WriteString("**승인 현황:**\n")
	fmt.Fprintf(&b, "- 필요한 승인 수: %d개\n", rule.MinApprovals)
	fmt.Fprintf(&b, "- 현재 승인 수: %d개\n\n", len(tally.Approvals))
	b.WriteString("**승인 관리자:**\n")
	for _, vote := range tally.Approvals {
		fmt.Fprintf(&b, "- @%s (%s)\n", vote.Login, vote.Role)
	}
	b.WriteString("\n**다음 단계:**\n")
	b.WriteString("🔄 자동 PR 생성이 시작됩니다\n")
	b.WriteString("📝 PR에서 최종 검토가 진행됩니다\n")
	b.WriteString(commentFooter)
	return b.String()
}

func rejectionComment(tally approval.Tally) string {
	var b strings.Builder
	b.WriteString("## ❌ 관리자 반려\n\n")
	b.WriteString("다음 관리자가 수정을 요청했습니다:\n\n")
	for _, vote := range tally.Rejections {
		fmt.Fprintf(&b, "- @%s (%s)\n", vote.Login, vote.Role)
	}
	b.WriteString("\n**다음 단계:**\n")
	b.WriteString("1. 관리자의 피드백을 참고하여 이슈를 수정해주세요\n")
	b.WriteString("2. 수정 완료 후 관리자에게 재검토를 요청하세요\n")
	b.WriteString(commentFooter)
	return b.String()
}

func pendingComment(tally approval.Tally, rule directory.RoutingRule) string {
	var b strings.Builder
	b.WriteString("## ⏳ 승인 대기 중\n\n")
	b.WriteString("**현재 승인 현황:**\n")
	fmt.Fprintf(&b, "- 필요한 승인 수: %d개\n", rule.MinApprovals)
	fmt.Fprintf(&b, "- 현재 승인 수: %d개\n", len(tally.Approvals))
	fmt.Fprintf(&b, "- 남은 승인 수: %d개\n\n", rule.MinApprovals-len(tally.Approvals))
	if len(tally.Approvals) > 0 {
		b.WriteString("**이미 승인한 관리자:**\n")
		for _, vote := range tally.Approvals {
			fmt.Fprintf(&b, "- @%s (%s)\n", vote.Login, vote.Role)
		}
		b.WriteString("\n")
	}
	b.WriteString("더 많은 관리자의 승인이 필요합니다.\n")
	b.WriteString(commentFooter)
	return b.String()
}
