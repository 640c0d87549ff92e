package registry

import "strings"

const bom = "\uFEFF"

// NormalizeKey canonicalizes a tail registration or reference code for
// comparison: leading BOM, surrounding whitespace and wrapping quotes are
// stripped, interior spaces and hyphens are removed, and the result is
// uppercased. Lookups compare normalized key against normalized field, so
// query casing and punctuation never matter.
func NormalizeKey(s string) string {
	s = strings.TrimPrefix(s, bom)
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " -") {
		s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	}
	return strings.ToUpper(s)
}

// normalizeHeader canonicalizes a header field name for schema detection.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, bom)
	s = strings.Trim(strings.TrimSpace(s), `"`)
	return strings.ToUpper(strings.TrimSpace(s))
}
