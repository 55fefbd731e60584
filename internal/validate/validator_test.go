package validate

import (
	"strings"
	"testing"

	"github.com/glosskit/glossflow/internal/extract"
	"github.com/glosskit/glossflow/internal/model"
)

func completeTermFields() map[string]string {
	return map[string]string{
		extract.FieldContributionType: "새로운 용어 추가",
		extract.FieldTermEnglish:      "Machine Learning",
		extract.FieldTermKorean:       "머신러닝",
		extract.FieldCategory:         "ML (Machine Learning)",
		extract.FieldDefinitionKorean: strings.Repeat("기계가 데이터로부터 스스로 학습하는 인공지능 분야입니다. ", 4),
		extract.FieldDefinitionEng:    "A field of artificial intelligence where machines learn patterns from data without explicit programming.",
		extract.FieldUsageExamples:    "한국어: 머신러닝 모델을 학습시켰다.\n영어: We trained a model.\n한국어: 머신러닝은 데이터가 핵심이다.\n영어: Data is central to machine learning.",
		extract.FieldReferences:       "https://arxiv.org/abs/1234.5678",
		extract.FieldGithubUsername:   "hong-gildong",
	}
}

func allAgreements() []string {
	return append([]string(nil), RequiredAgreements...)
}

func TestValidateComplete(t *testing.T) {
	r := Validate(model.KindTermAddition, completeTermFields(), allAgreements(), nil)

	if !r.Eligible() {
		t.Errorf("complete contribution should be eligible, got %+v", r)
	}
	if len(r.QualityIssues) != 0 {
		t.Errorf("expected no quality issues, got %v", r.QualityIssues)
	}
}

func TestValidateCollectsEveryMissingField(t *testing.T) {
	// Every finding must surface in one pass; nothing short-circuits.
	fields := completeTermFields()
	delete(fields, extract.FieldTermKorean)
	delete(fields, extract.FieldDefinitionKorean)
	delete(fields, extract.FieldReferences)

	r := Validate(model.KindTermAddition, fields, allAgreements(), nil)

	want := []string{"한국어 번역", "한국어 정의", "참고 문헌"}
	if len(r.MissingFields) != len(want) {
		t.Fatalf("MissingFields = %v, want %v", r.MissingFields, want)
	}
	for i, label := range want {
		if r.MissingFields[i] != label {
			t.Errorf("MissingFields[%d] = %q, want %q", i, r.MissingFields[i], label)
		}
	}
	if r.Eligible() {
		t.Error("contribution with missing fields should not be eligible")
	}
}

func TestValidateShortKoreanDefinition(t *testing.T) {
	fields := completeTermFields()
	fields[extract.FieldDefinitionKorean] = strings.Repeat("가", 40)

	r := Validate(model.KindTermAddition, fields, allAgreements(), nil)

	want := "한국어 정의는 최소 50자 이상이어야 합니다"
	found := false
	for _, msg := range r.FormatErrors {
		if msg == want {
			found = true
		}
	}
	if !found {
		t.Errorf("FormatErrors = %v, want to contain %q", r.FormatErrors, want)
	}
	if r.Eligible() {
		t.Error("short definition should block")
	}
}

func TestValidateFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"korean characters in english term", extract.FieldTermEnglish, "머신러닝"},
		{"single character korean translation", extract.FieldTermKorean, "머"},
		{"invalid github handle", extract.FieldGithubUsername, "-leading-hyphen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := completeTermFields()
			fields[tt.field] = tt.value

			r := Validate(model.KindTermAddition, fields, allAgreements(), nil)
			if len(r.FormatErrors) == 0 {
				t.Errorf("expected a format error for %s=%q", tt.field, tt.value)
			}
		})
	}
}

func TestValidateGithubHandleWithAtPrefix(t *testing.T) {
	fields := completeTermFields()
	fields[extract.FieldGithubUsername] = "@hong-gildong"

	r := Validate(model.KindTermAddition, fields, allAgreements(), nil)
	if len(r.FormatErrors) != 0 {
		t.Errorf("@-prefixed handle should be accepted, got %v", r.FormatErrors)
	}
}

func TestValidateMissingAgreements(t *testing.T) {
	checked := []string{RequiredAgreements[0]}

	r := Validate(model.KindTermAddition, completeTermFields(), checked, nil)

	if len(r.MissingAgreements) != 2 {
		t.Fatalf("MissingAgreements = %v, want 2 entries", r.MissingAgreements)
	}
	if r.Eligible() {
		t.Error("unchecked agreements should block")
	}
}

func TestValidateAgreementPrefixMatch(t *testing.T) {
	// Checked items may carry trailing remarks appended by the template.
	var checked []string
	for _, required := range RequiredAgreements {
		checked = append(checked, required+" (필수)")
	}

	r := Validate(model.KindTermAddition, completeTermFields(), checked, nil)
	if len(r.MissingAgreements) != 0 {
		t.Errorf("prefix-matched agreements should satisfy, got %v", r.MissingAgreements)
	}
}

func TestValidateDuplicateDetection(t *testing.T) {
	snapshot := []model.Term{
		{ID: "neural-network", English: "Neural Network", Korean: "신경망"},
	}

	tests := []struct {
		name    string
		english string
		korean  string
		wantDup bool
	}{
		{"exact english match", "Neural Network", "뉴럴넷", true},
		{"case folded english match", "neural network", "뉴럴넷", true},
		{"korean match", "Neural Net", "신경망", true},
		{"no conflict", "Transformer", "트랜스포머", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := completeTermFields()
			fields[extract.FieldTermEnglish] = tt.english
			fields[extract.FieldTermKorean] = tt.korean

			r := Validate(model.KindTermAddition, fields, allAgreements(), snapshot)
			if got := r.Duplicate != nil; got != tt.wantDup {
				t.Errorf("duplicate = %v, want %v", got, tt.wantDup)
			}
			if tt.wantDup {
				if r.Duplicate.ExistingID != "neural-network" {
					t.Errorf("ExistingID = %q, want neural-network", r.Duplicate.ExistingID)
				}
				if r.Eligible() {
					t.Error("duplicate should block")
				}
			}
		})
	}
}

func TestValidateDuplicateSkippedWithoutEnglishTerm(t *testing.T) {
	snapshot := []model.Term{
		{ID: "neural-network", English: "Neural Network", Korean: "신경망"},
	}
	fields := completeTermFields()
	delete(fields, extract.FieldTermEnglish)
	fields[extract.FieldTermKorean] = "신경망"

	r := Validate(model.KindTermAddition, fields, allAgreements(), snapshot)
	if r.Duplicate != nil {
		t.Errorf("duplicate check should be skipped without an English term, got %+v", r.Duplicate)
	}
}

func TestValidateQualityNeverBlocks(t *testing.T) {
	fields := completeTermFields()
	// One example pair and a non-academic reference: advisory only.
	fields[extract.FieldUsageExamples] = "한국어: 예시 문장.\n영어: An example sentence."
	fields[extract.FieldReferences] = "https://example.com/blog-post"

	r := Validate(model.KindTermAddition, fields, allAgreements(), nil)

	if len(r.QualityIssues) == 0 {
		t.Fatal("expected quality issues")
	}
	if !r.Eligible() {
		t.Errorf("quality issues must not block, got %+v", r)
	}
}

func TestValidateMissingExampleLanguage(t *testing.T) {
	fields := completeTermFields()
	fields[extract.FieldUsageExamples] = "한국어: 예시만 있음."

	r := Validate(model.KindTermAddition, fields, allAgreements(), nil)

	want := "사용 예시에 한국어와 영어 예시를 각각 최소 1개씩 포함하는 것을 권장합니다"
	found := false
	for _, issue := range r.QualityIssues {
		if issue == want {
			found = true
		}
	}
	if !found {
		t.Errorf("QualityIssues = %v, want to contain %q", r.QualityIssues, want)
	}
}

func TestValidateContributorKind(t *testing.T) {
	fields := map[string]string{
		extract.FieldGithubUsername: "hong-gildong",
		extract.FieldFullName:       "홍길동",
		extract.FieldEmail:          "hong@example.com",
	}

	r := Validate(model.KindContributorAddition, fields, allAgreements(), nil)

	if len(r.MissingFields) != 1 || r.MissingFields[0] != "전문 분야" {
		t.Errorf("MissingFields = %v, want [전문 분야]", r.MissingFields)
	}
}

func TestValidateInvalidEmail(t *testing.T) {
	fields := map[string]string{
		extract.FieldGithubUsername: "hong-gildong",
		extract.FieldFullName:       "홍길동",
		extract.FieldEmail:          "not-an-email",
		extract.FieldExpertiseAreas: "NLP",
	}

	r := Validate(model.KindContributorAddition, fields, allAgreements(), nil)

	if len(r.FormatErrors) != 1 {
		t.Errorf("FormatErrors = %v, want exactly the email error", r.FormatErrors)
	}
}

func TestValidateUnknownKindHasNoRequiredFields(t *testing.T) {
	r := Validate(model.KindUnknown, nil, allAgreements(), nil)
	if len(r.MissingFields) != 0 {
		t.Errorf("unknown kind should require nothing, got %v", r.MissingFields)
	}
}
