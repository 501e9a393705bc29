// Package slug derives URL-safe identifiers from titles.
package slug

import "strings"

// Make lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen, with no hyphen at either end. The
// result is empty only if the input contains no letters or digits.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
