package generic

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when a holiday has no name in the requested locale.
const DefaultLocale = "en_US"

// NormalizeLocale turns "nl_NL", "nl-nl" or "NL_nl" into the canonical
// BCP 47 tag ("nl-NL"). Unparseable input is returned lower-cased so lookups
// still behave deterministically.
func NormalizeLocale(locale string) string {
	raw := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return tag.String()
}

// LocaleCandidates lists the tags tried for a locale, most specific first:
// "nl_BE" yields ["nl-BE", "nl"].
func LocaleCandidates(locale string) []string {
	norm := NormalizeLocale(locale)
	if norm == "" {
		return nil
	}
	candidates := []string{norm}

	tag, err := language.Parse(norm)
	if err != nil {
		return candidates
	}
	base, confidence := tag.Base()
	if confidence != language.No && base.String() != norm {
		candidates = append(candidates, base.String())
	}
	return candidates
}

// resolveName picks a name for locale from names, falling back to the default
// locale. names is keyed by normalized tag.
func resolveName(names map[string]string, locale string) (string, bool) {
	for _, tag := range LocaleCandidates(locale) {
		if name, ok := names[tag]; ok && name != "" {
			return name, true
		}
	}
	for _, tag := range LocaleCandidates(DefaultLocale) {
		if name, ok := names[tag]; ok && name != "" {
			return name, true
		}
	}
	return "", false
}
