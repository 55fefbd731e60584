package extract

import "strings"

// Serialize renders a field mapping back into the section-heading body
// format the extractor parses. Only fields known to the pattern table are
// emitted, in canonical table order, under their canonical headings.
// Serialize is the inverse of Extract for values free of heading-delimiter
// collisions.
func Serialize(fields map[string]string) string {
	var b strings.Builder
	for _, spec := range fieldTable {
		value, ok := fields[spec.name]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		b.WriteString("### ")
		b.WriteString(spec.headings[0])
		b.WriteString("\n\n")
		if spec.dropdown {
			b.WriteString("- ")
		}
		b.WriteString(value)
		b.WriteString("\n\n")
	}
	return b.String()
}

// CanonicalHeading returns the canonical section heading for a field name,
// or "" if the field is unknown.
func CanonicalHeading(field string) string {
	for _, spec := range fieldTable {
		if spec.name == field {
			return spec.headings[0]
		}
	}
	return ""
}
