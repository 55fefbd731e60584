package dataset

import (
	"fmt"
	"strings"

	"github.com/glosskit/glossflow/internal/model"
)

// CheckIntegrity verifies an existing term dataset: unique IDs, unique
// case-folded English and Korean terms, and alphabetical ordering. Every
// violation is reported; the check never stops at the first finding.
func CheckIntegrity(terms []model.Term) []string {
	var findings []string

	seenIDs := make(map[string]int)
	seenEnglish := make(map[string]int)
	seenKorean := make(map[string]int)

	for i, term := range terms {
		if term.ID == "" {
			findings = append(findings, fmt.Sprintf("entry %d (%q) has no ID", i, term.English))
		} else if prev, ok := seenIDs[term.ID]; ok {
			findings = append(findings, fmt.Sprintf("duplicate term ID %q (entries %d and %d)", term.ID, prev, i))
		} else {
			seenIDs[term.ID] = i
		}

		english := strings.ToLower(term.English)
		if prev, ok := seenEnglish[english]; ok {
			findings = append(findings, fmt.Sprintf("duplicate English term %q (entries %d and %d)", term.English, prev, i))
		} else {
			seenEnglish[english] = i
		}

		if term.Korean != "" {
			korean := strings.ToLower(term.Korean)
			if prev, ok := seenKorean[korean]; ok {
				findings = append(findings, fmt.Sprintf("duplicate Korean term %q (entries %d and %d)", term.Korean, prev, i))
			} else {
				seenKorean[korean] = i
			}
		}

		if i > 0 {
			prev := strings.ToLower(terms[i-1].English)
			if prev > english {
				findings = append(findings, fmt.Sprintf("entry %d (%q) is out of alphabetical order after %q", i, term.English, terms[i-1].English))
			}
		}
	}

	return findings
}
