package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/model"
)

func sampleTerms() []model.Term {
	return []model.Term{
		{ID: "transformer", English: "Transformer", Korean: "트랜스포머"},
		{ID: "attention", English: "Attention", Korean: "어텐션"},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	terms, err := store.LoadTerms()
	if err != nil {
		t.Fatalf("LoadTerms on empty root: %v", err)
	}
	if terms != nil {
		t.Errorf("missing dataset should load as nil, got %v", terms)
	}

	if err := store.SaveTerms(sampleTerms()); err != nil {
		t.Fatalf("SaveTerms: %v", err)
	}
	loaded, err := store.LoadTerms()
	if err != nil {
		t.Fatalf("LoadTerms: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d terms", len(loaded))
	}
	// Save orders by English term.
	if loaded[0].ID != "attention" || loaded[1].ID != "transformer" {
		t.Errorf("terms not sorted: %v, %v", loaded[0].ID, loaded[1].ID)
	}
}

func TestSaveTermsKeepsKoreanReadable(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	if err := store.SaveTerms(sampleTerms()); err != nil {
		t.Fatalf("SaveTerms: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(constants.TermsDatasetPath)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "트랜스포머") {
		t.Error("Korean text should be written verbatim, not as escape sequences")
	}
}

func TestDecodeTermsInvalid(t *testing.T) {
	if _, err := DecodeTerms([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestDedupeTerms(t *testing.T) {
	terms := []model.Term{
		{ID: "attention", English: "Attention", Korean: "어텐션"},
		{ID: "attention", English: "Attention", Korean: "주의"},
		{ID: "transformer", English: "Transformer"},
	}
	out := DedupeTerms(terms)
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].Korean != "어텐션" {
		t.Errorf("first occurrence should win, got %q", out[0].Korean)
	}
}

func TestContributorRosterRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	roster := []model.Contributor{
		{GithubUsername: "zoe"},
		{GithubUsername: "Adam"},
	}
	if err := store.SaveContributors(roster); err != nil {
		t.Fatalf("SaveContributors: %v", err)
	}
	loaded, err := store.LoadContributors()
	if err != nil {
		t.Fatalf("LoadContributors: %v", err)
	}
	if len(loaded) != 2 || loaded[0].GithubUsername != "Adam" {
		t.Errorf("roster not sorted by username: %v", loaded)
	}
}

func TestCheckIntegrity(t *testing.T) {
	tests := []struct {
		name  string
		terms []model.Term
		want  []string
	}{
		{
			name:  "clean",
			terms: []model.Term{{ID: "a", English: "A"}, {ID: "b", English: "B"}},
		},
		{
			name:  "duplicate id",
			terms: []model.Term{{ID: "a", English: "A"}, {ID: "a", English: "B"}},
			want:  []string{`duplicate term ID "a"`},
		},
		{
			name:  "duplicate english case folded",
			terms: []model.Term{{ID: "a", English: "Attention"}, {ID: "b", English: "attention"}},
			want:  []string{`duplicate English term`},
		},
		{
			name:  "duplicate korean",
			terms: []model.Term{{ID: "a", English: "A", Korean: "어텐션"}, {ID: "b", English: "B", Korean: "어텐션"}},
			want:  []string{`duplicate Korean term`},
		},
		{
			name:  "out of order",
			terms: []model.Term{{ID: "b", English: "B"}, {ID: "a", English: "A"}},
			want:  []string{`out of alphabetical order`},
		},
		{
			name:  "missing id",
			terms: []model.Term{{English: "A"}},
			want:  []string{`has no ID`},
		},
		{
			name: "multiple findings reported together",
			terms: []model.Term{
				{ID: "b", English: "B"},
				{ID: "b", English: "b"},
			},
			want: []string{`duplicate term ID`, `duplicate English term`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := CheckIntegrity(tt.terms)
			if len(tt.want) == 0 && len(findings) != 0 {
				t.Fatalf("unexpected findings: %v", findings)
			}
			for _, fragment := range tt.want {
				found := false
				for _, f := range findings {
					if strings.Contains(f, fragment) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("missing finding containing %q, got %v", fragment, findings)
				}
			}
		})
	}
}
