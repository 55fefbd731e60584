package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/glosskit/glossflow/internal/model"
)

// Bot comments carry an invisible HTML marker naming the comment kind and a
// fingerprint of its inputs. Before posting, the orchestrator scans the
// existing history for the same marker: identical state across repeated
// runs must never produce a second comment.

const markerPrefix = "<!-- glossflow:"

// Comment kinds used in markers.
const (
	commentWelcome          = "welcome"
	commentValidationFailed = "validation-failed"
	commentValidationOK     = "validation-ok"
	commentSuggestions      = "suggestions"
	commentAssignment       = "assignment"
	commentApproved         = "approved"
	commentRejected         = "rejected"
	commentPending          = "pending"
)

// fingerprint hashes the inputs that shaped a comment, so an unchanged
// finding set maps to the same marker.
func fingerprint(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h[:])[:12]
}

// marker renders the suppression marker line.
func marker(kind, fp string) string {
	return fmt.Sprintf("%s%s:%s -->", markerPrefix, kind, fp)
}

// alreadyPosted reports whether a comment with this exact marker exists in
// the history.
func alreadyPosted(comments []model.Comment, kind, fp string) bool {
	m := marker(kind, fp)
	for _, c := range comments {
		if strings.Contains(c.Body, m) {
			return true
		}
	}
	return false
}
