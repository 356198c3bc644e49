package discover

import "strings"

// TokenSet splits a comma-separated field into a canonical token set:
// trimmed, lowercased, empties dropped, duplicates collapsed.
// Empty or blank input yields an empty set, never an error.
func TokenSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// TokenList applies the same normalization as TokenSet but preserves the
// original order, for callers that display or slice the tokens.
func TokenList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
