package triage

import "strings"

// MatchAnswer resolves the oracle's free-form reply to exactly one canonical
// candidate. A candidate matches when its lower-cased text appears as a
// substring of the lower-cased reply; candidates are tried in catalog order
// and the first match wins. Candidates whose text is a substring of an
// earlier candidate's text will be shadowed, so the catalog must avoid such
// overlaps.
func MatchAnswer(oracleText string, candidates []string) (string, bool) {
	lowered := strings.ToLower(oracleText)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(candidate)) {
			return candidate, true
		}
	}
	return "", false
}
