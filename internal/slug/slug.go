// Package slug normalises free text into short snake_case identifiers. The
// console matches typed command names against them and the category
// dictionary uses them as codes.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

const maxLen = 40

var reSlug = regexp.MustCompile(`^[a-z0-9_]{2,40}$`)

// IsSlug reports whether s matches ^[a-z0-9_]{2,40}$.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// Slugify lowercases s, turns every run of other characters (spaces,
// hyphens, punctuation) into a single '_', trims it to 40 characters and
// strips leading/trailing '_'. "Create Account", "create-account" and
// "create_account" all become "create_account".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range strings.ToLower(s) {
		if b.Len() >= maxLen {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	out := b.String()
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return strings.TrimRight(out, "_")
}
