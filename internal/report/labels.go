package report

import "strings"

// NormalizePrefixes splits raw flag values on commas, trims whitespace,
// drops empty segments and de-duplicates while keeping first-seen order.
func NormalizePrefixes(raw []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, arg := range raw {
		for _, part := range strings.Split(arg, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// MatchesPrefixes reports whether any label starts with any of the
// prefixes. Comparison is case-sensitive.
func MatchesPrefixes(labels, prefixes []string) bool {
	for _, label := range labels {
		for _, prefix := range prefixes {
			if strings.HasPrefix(label, prefix) {
				return true
			}
		}
	}
	return false
}
