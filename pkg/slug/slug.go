// Package slug turns display names into URL fragments.
package slug

import (
	"strings"
	"unicode"
)

// accents folds the Latin letters that turn up in jewelry names.
var accents = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "å", "a",
	"ç", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ñ", "n",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ß", "ss", "æ", "ae", "œ", "oe",
)

// Generate lowercases name, folds common accents and joins the remaining runs
// of ASCII letters and digits with single hyphens:
//
//	"Victorian Ruby Pendant" -> "victorian-ruby-pendant"
//	"18K Gold • Ruby"        -> "18k-gold-ruby"
//	"Art Déco"               -> "art-deco"
func Generate(name string) string {
	folded := accents.Replace(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// Match reports whether a and b produce the same slug.
func Match(a, b string) bool {
	return Generate(a) == Generate(b)
}
