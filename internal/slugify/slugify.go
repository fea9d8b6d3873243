// Package slugify turns note titles into URL slugs.
//
// Cyrillic is transliterated with the pytils table, so "Новый заголовок"
// becomes "novyij-zagolovok". Latin letters with diacritics are folded to their
// base letter. Everything else is dropped.
package slugify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ampersand  = regexp.MustCompile(`&amp;|&`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// translit maps lowercase Cyrillic letters to Latin. Hard and soft signs map
// to nothing because their Latin forms are stripped as punctuation anyway.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "yi", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	// Ukrainian
	'є': "ye", 'і': "i", 'ї': "yi", 'ґ': "g",
	// typographic dashes become hyphens
	'–': "-", '—': "-", '‒': "-", '−': "-",
}

// Slugify returns the slug for s. The result only contains [a-z0-9-].
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = ampersand.ReplaceAllString(s, " and ")
	s = separators.ReplaceAllString(s, "-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
			continue
		}
		if isSlugRune(r) {
			b.WriteRune(r)
			continue
		}
		if r > unicode.MaxASCII {
			b.WriteString(fold(r))
		}
	}
	return b.String()
}

// Truncate cuts a slug to at most max bytes. Slugs are ASCII, so bytes are runes.
func Truncate(slug string, max int) string {
	if max > 0 && len(slug) > max {
		return slug[:max]
	}
	return slug
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

// fold strips combining marks from r ("é" -> "e") and keeps the result only
// if it is made of slug runes.
func fold(r rune) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, string(r))
	if err != nil || folded == "" {
		return ""
	}
	for _, f := range folded {
		if !isSlugRune(f) {
			return ""
		}
	}
	return folded
}
