package model

import "strings"

// ParseTags splits comma separated input, trims each entry, drops empty
// ones and exact duplicates. Case is preserved.
func ParseTags(input string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
