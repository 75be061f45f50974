package models

import (
	"strings"
)

// removedPunctuation is dropped outright before separator collapsing, matching
// the admin panel's slug rules.
const removedPunctuation = `*+~.()'"!:@`

// Slugify derives a URL-safe slug from a post title: lowercase, a fixed
// punctuation set removed, every other non-alphanumeric run collapsed to a
// single hyphen, and leading/trailing hyphens trimmed. Pure and deterministic;
// uniqueness is the repository's job, not this function's.
func Slugify(title string) string {
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	pendingSep := false
	for _, r := range title {
		if strings.ContainsRune(removedPunctuation, r) {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}
