package util

import "strings"

// ParseTags splits a raw comma-separated tag string and normalizes the
// result. An empty input yields an empty slice
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims every tag, drops empties and dedupes the rest,
// preserving first-seen order. Tags are canonicalized to lower case so
// that "Cat" and "cat" resolve to the same tag row
func NormalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))

	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
