package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glosskit/glossflow/internal/assign"
	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/ghclient"
	"github.com/glosskit/glossflow/internal/model"
)

// fakePlatform is an in-memory Platform. Writes mutate its state, so a
// second pipeline run observes the labels and comments the first one left
// behind.
type fakePlatform struct {
	issue       ghclient.IssueState
	comments    []model.Comment
	files       map[string][]byte
	permissions map[string]string

	assignees  []string
	dispatches []string
}

func (f *fakePlatform) GetIssue(_ context.Context, _ int) (*ghclient.IssueState, error) {
	state := f.issue
	state.Labels = append([]string(nil), f.issue.Labels...)
	return &state, nil
}

func (f *fakePlatform) ListComments(_ context.Context, _ int) ([]model.Comment, error) {
	return append([]model.Comment(nil), f.comments...), nil
}

func (f *fakePlatform) AddLabels(_ context.Context, _ int, labels []string) error {
	for _, label := range labels {
		if !f.hasLabel(label) {
			f.issue.Labels = append(f.issue.Labels, label)
		}
	}
	return nil
}

func (f *fakePlatform) RemoveLabel(_ context.Context, _ int, label string) error {
	kept := f.issue.Labels[:0]
	for _, l := range f.issue.Labels {
		if l != label {
			kept = append(kept, l)
		}
	}
	f.issue.Labels = kept
	return nil
}

func (f *fakePlatform) AddComment(_ context.Context, _ int, body string) error {
	f.comments = append(f.comments, model.Comment{Author: "glossflow[bot]", Body: body, CreatedAt: time.Now()})
	return nil
}

func (f *fakePlatform) AddAssignees(_ context.Context, _ int, assignees []string) error {
	f.assignees = append(f.assignees, assignees...)
	return nil
}

func (f *fakePlatform) FileContent(_ context.Context, path string) ([]byte, error) {
	return f.files[path], nil
}

func (f *fakePlatform) CollaboratorPermissions(_ context.Context) (map[string]string, error) {
	return f.permissions, nil
}

func (f *fakePlatform) Dispatch(_ context.Context, eventType string, _ any) error {
	f.dispatches = append(f.dispatches, eventType)
	return nil
}

func (f *fakePlatform) hasLabel(label string) bool {
	for _, l := range f.issue.Labels {
		if l == label {
			return true
		}
	}
	return false
}

var _ Platform = (*fakePlatform)(nil)

const governanceJSON = `{
  "admins": {
    "owner-kim": {"role": "owner", "specializations": ["전체 영역"]},
    "maint-lee": {"role": "maintainer", "specializations": ["ML", "DL"]}
  },
  "approval_rules": {
    "term-addition": {
      "min_approvals": 2,
      "required_roles": ["owner", "maintainer"]
    }
  }
}`

const validTermBody = `### 기여 유형

- 새로운 용어 추가

### 영어 용어

Machine Learning

### 한국어 번역

머신러닝

### 카테고리

- ML (Machine Learning)

### 한국어 정의

기계가 명시적인 프로그래밍 없이 데이터로부터 패턴을 학습하여 예측이나 결정을 수행하는 인공지능의 핵심 분야입니다. 데이터 기반 학습이 특징입니다.

### 영어 정의

A core field of artificial intelligence where machines learn patterns from data to make predictions or decisions.

### 사용 예시

한국어: 머신러닝 모델을 학습시켰다.
영어: We trained a machine learning model.
한국어: 머신러닝은 데이터가 핵심이다.
영어: Data is central to machine learning.

### 참고 문헌

https://arxiv.org/abs/1234.5678

### GitHub 사용자명

hong-gildong

### 기여 동의

- [x] 이 기여는 오픈소스 라이선스 하에 제공됩니다
- [x] 제공한 정보가 정확하고 검증되었음을 확인합니다
- [x] 커뮤니티 가이드라인을 읽고 준수합니다
`

func newTermPlatform(body string) *fakePlatform {
	return &fakePlatform{
		issue: ghclient.IssueState{
			Number: 42,
			Title:  "[용어 추가] Machine Learning",
			Body:   body,
		},
		files: map[string][]byte{
			constants.GovernanceConfigPath: []byte(governanceJSON),
		},
	}
}

func newOrchestrator(platform Platform) *Orchestrator {
	return New(platform, assign.New(nil))
}

func TestHandleCreatedFullPipeline(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	orch := newOrchestrator(platform)

	if err := orch.HandleCreated(context.Background(), model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	for _, label := range []string{
		constants.LabelTermAddition,
		"type:term-addition",
		constants.LabelAutoValidated,
		constants.LabelReadyForReview,
	} {
		if !platform.hasLabel(label) {
			t.Errorf("missing label %q, have %v", label, platform.issue.Labels)
		}
	}

	// The ML specialist is preferred over the wildcard owner.
	if len(platform.assignees) == 0 || platform.assignees[0] != "maint-lee" {
		t.Errorf("assignees = %v, want maint-lee first", platform.assignees)
	}

	var welcome, success, assignment bool
	for _, c := range platform.comments {
		welcome = welcome || strings.Contains(c.Body, marker(commentWelcome, fingerprint(commentWelcome)))
		success = success || strings.Contains(c.Body, markerPrefix+commentValidationOK)
		assignment = assignment || strings.Contains(c.Body, markerPrefix+commentAssignment)
	}
	if !welcome || !success || !assignment {
		t.Errorf("comment set incomplete: welcome=%v success=%v assignment=%v", welcome, success, assignment)
	}
}

func TestHandleCreatedIdempotent(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	orch := newOrchestrator(platform)
	ctx := context.Background()

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	labelsAfterFirst := append([]string(nil), platform.issue.Labels...)
	commentsAfterFirst := len(platform.comments)

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(platform.comments) != commentsAfterFirst {
		t.Errorf("second run posted %d extra comment(s)", len(platform.comments)-commentsAfterFirst)
	}
	if len(platform.issue.Labels) != len(labelsAfterFirst) {
		t.Errorf("labels changed across identical runs: %v -> %v", labelsAfterFirst, platform.issue.Labels)
	}
}

func TestHandleCreatedInvalidThenFixed(t *testing.T) {
	broken := strings.Replace(validTermBody, "### 한국어 번역\n\n머신러닝\n", "### 한국어 번역\n\n_No response_\n", 1)
	platform := newTermPlatform(broken)
	orch := newOrchestrator(platform)
	ctx := context.Background()

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	for _, label := range []string{constants.LabelNeedsMoreInfo, constants.LabelIncomplete} {
		if !platform.hasLabel(label) {
			t.Errorf("missing failure label %q, have %v", label, platform.issue.Labels)
		}
	}
	if platform.hasLabel(constants.LabelReadyForReview) {
		t.Error("invalid contribution must not be ready-for-review")
	}
	if len(platform.assignees) != 0 {
		t.Errorf("no reviewers should be assigned, got %v", platform.assignees)
	}

	// Fixing the body and re-running flips the state.
	platform.issue.Body = validTermBody
	if err := orch.HandleEdited(ctx, model.ContributionEdited{ID: 42}); err != nil {
		t.Fatalf("HandleEdited: %v", err)
	}

	if platform.hasLabel(constants.LabelNeedsMoreInfo) || platform.hasLabel(constants.LabelIncomplete) {
		t.Errorf("failure labels should be cleared, have %v", platform.issue.Labels)
	}
	if !platform.hasLabel(constants.LabelReadyForReview) {
		t.Error("fixed contribution should be ready-for-review")
	}
	if len(platform.assignees) == 0 {
		t.Error("reviewers should be assigned after the fix")
	}
}

func TestHandleCreatedDuplicate(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	platform.files[constants.TermsDatasetPath] = []byte(`[
		{"id": "machine-learning", "english": "machine learning", "korean": "기계학습", "definition": {"korean": "", "english": ""}, "status": "active", "metadata": {"createdAt": "", "updatedAt": "", "version": 1}}
	]`)
	orch := newOrchestrator(platform)

	if err := orch.HandleCreated(context.Background(), model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	if !platform.hasLabel(constants.LabelDuplicateFound) {
		t.Errorf("missing duplicate-found label, have %v", platform.issue.Labels)
	}
	if platform.hasLabel(constants.LabelReadyForReview) {
		t.Error("duplicate must block review")
	}
}

func TestHandleCreatedNonContribution(t *testing.T) {
	platform := &fakePlatform{
		issue: ghclient.IssueState{
			Number: 7,
			Title:  "Bug: search page crashes",
			Body:   "The search page shows an error.",
		},
		files: map[string][]byte{},
	}
	orch := newOrchestrator(platform)

	if err := orch.HandleCreated(context.Background(), model.ContributionCreated{ID: 7}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	if !platform.hasLabel(constants.LabelBug) {
		t.Errorf("fallback label missing, have %v", platform.issue.Labels)
	}
	if len(platform.comments) != 0 {
		t.Errorf("non-contributions must not receive comments, got %d", len(platform.comments))
	}
}

func TestDirectoryFallsBackToPermissions(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	delete(platform.files, constants.GovernanceConfigPath)
	platform.permissions = map[string]string{
		"admin-cho": "admin",
		"bystander": "pull",
	}
	orch := newOrchestrator(platform)

	if err := orch.HandleCreated(context.Background(), model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	if len(platform.assignees) != 1 || platform.assignees[0] != "admin-cho" {
		t.Errorf("assignees = %v, want [admin-cho]", platform.assignees)
	}
}

func TestDirectoryUnavailable(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	delete(platform.files, constants.GovernanceConfigPath)
	platform.permissions = map[string]string{"bystander": "pull"}
	orch := newOrchestrator(platform)

	err := orch.HandleCreated(context.Background(), model.ContributionCreated{ID: 42})
	if !errors.Is(err, ErrDirectoryUnavailable) {
		t.Errorf("err = %v, want ErrDirectoryUnavailable", err)
	}
}

func TestApprovalLifecycle(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	orch := newOrchestrator(platform)
	ctx := context.Background()

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	// First approval: quorum of two not yet met.
	platform.comments = append(platform.comments, model.Comment{Author: "owner-kim", Body: "승인", CreatedAt: time.Now()})
	if err := orch.HandleComment(ctx, model.CommentPosted{ContributionID: 42, Author: "owner-kim", Body: "승인"}); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if platform.hasLabel(constants.LabelApproved) {
		t.Error("one approval must not reach a quorum of two")
	}
	if len(platform.dispatches) != 0 {
		t.Errorf("no dispatch expected yet, got %v", platform.dispatches)
	}

	// Second approval reaches quorum and fires the merge trigger once.
	platform.comments = append(platform.comments, model.Comment{Author: "maint-lee", Body: "lgtm", CreatedAt: time.Now()})
	if err := orch.HandleComment(ctx, model.CommentPosted{ContributionID: 42, Author: "maint-lee", Body: "lgtm"}); err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if !platform.hasLabel(constants.LabelApproved) {
		t.Errorf("approved label missing, have %v", platform.issue.Labels)
	}
	if platform.hasLabel(constants.LabelReadyForReview) {
		t.Error("ready-for-review should be cleared on approval")
	}
	if len(platform.dispatches) != 1 || platform.dispatches[0] != constants.MergeDispatchEventType {
		t.Errorf("dispatches = %v, want exactly one merge trigger", platform.dispatches)
	}

	// Redelivery of the same event must not dispatch again.
	if err := orch.HandleComment(ctx, model.CommentPosted{ContributionID: 42, Author: "maint-lee", Body: "lgtm"}); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if len(platform.dispatches) != 1 {
		t.Errorf("redelivery dispatched again: %v", platform.dispatches)
	}
}

func TestRejectionVetoesAndRelabels(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	orch := newOrchestrator(platform)
	ctx := context.Background()

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	platform.comments = append(platform.comments,
		model.Comment{Author: "owner-kim", Body: "승인", CreatedAt: time.Now()},
		model.Comment{Author: "maint-lee", Body: "승인", CreatedAt: time.Now()},
		model.Comment{Author: "owner-kim", Body: "반려", CreatedAt: time.Now()},
	)

	// owner-kim already approved; the rejection still vetoes.
	if err := orch.HandleComment(ctx, model.CommentPosted{ContributionID: 42, Author: "owner-kim", Body: "반려"}); err != nil {
		t.Fatalf("HandleComment: %v", err)
	}

	if platform.hasLabel(constants.LabelApproved) {
		t.Error("a rejection must veto approval")
	}
	if !platform.hasLabel(constants.LabelNeedsChanges) {
		t.Errorf("needs-changes label missing, have %v", platform.issue.Labels)
	}
	if len(platform.dispatches) != 0 {
		t.Errorf("no merge trigger on veto, got %v", platform.dispatches)
	}
}

func TestHandleCommentIgnoresNonVotes(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	orch := newOrchestrator(platform)
	ctx := context.Background()

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}
	before := len(platform.comments)

	if err := orch.HandleComment(ctx, model.CommentPosted{ContributionID: 42, Author: "owner-kim", Body: "정의가 잘 쓰였네요"}); err != nil {
		t.Fatalf("HandleComment: %v", err)
	}
	if len(platform.comments) != before {
		t.Error("non-vote comments must not trigger state comments")
	}
}

func TestApprovalVotesFromNonReviewersIgnored(t *testing.T) {
	platform := newTermPlatform(validTermBody)
	orch := newOrchestrator(platform)
	ctx := context.Background()

	if err := orch.HandleCreated(ctx, model.ContributionCreated{ID: 42}); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	platform.comments = append(platform.comments,
		model.Comment{Author: "drive-by", Body: "승인", CreatedAt: time.Now()},
		model.Comment{Author: "passerby", Body: "lgtm", CreatedAt: time.Now()},
	)

	if err := orch.HandleComment(ctx, model.CommentPosted{ContributionID: 42, Author: "drive-by", Body: "승인"}); err != nil {
		t.Fatalf("HandleComment: %v", err)
	}
	if platform.hasLabel(constants.LabelApproved) {
		t.Error("votes from outside the directory must not count")
	}
}

func TestMarkerFingerprint(t *testing.T) {
	if fingerprint("a", "b") == fingerprint("ab") {
		t.Error("fingerprint must separate joined parts")
	}
	if fingerprint("x") != fingerprint("x") {
		t.Error("fingerprint must be stable")
	}

	comments := []model.Comment{{Body: "hello\n" + marker("welcome", fingerprint("welcome"))}}
	if !alreadyPosted(comments, "welcome", fingerprint("welcome")) {
		t.Error("marker in history should suppress")
	}
	if alreadyPosted(comments, "pending", fingerprint("pending")) {
		t.Error("different kind must not suppress")
	}
}
