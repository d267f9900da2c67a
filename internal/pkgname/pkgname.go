package pkgname

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the registry limit on package name length.
const MaxLength = 214

var namePattern = regexp.MustCompile(`^(?:@[a-z0-9-][a-z0-9._-]*/)?[a-z0-9-][a-z0-9._-]*$`)

// IsValid reports whether name can be used verbatim as a manifest name.
func IsValid(name string) bool {
	if name == "" || len(name) > MaxLength {
		return false
	}
	return namePattern.MatchString(name)
}

// Normalize converts name into a form accepted by IsValid. It lower-cases,
// folds accented letters to their base letter, turns runs of whitespace or
// other disallowed characters into a single "-", and drops leading dots and
// underscores. A leading "@scope/" is kept when both halves survive.
//
// The result is empty only when nothing usable remains; callers re-prompt then.
func Normalize(name string) string {
	s := foldAccents(lower(strings.TrimSpace(name)))

	scope, rest, ok := splitScope(s)
	if !ok {
		return truncate(normalizePart(s), MaxLength)
	}

	scope, rest = normalizePart(scope), normalizePart(rest)
	switch {
	case scope == "":
		return truncate(rest, MaxLength)
	case rest == "":
		return truncate(scope, MaxLength)
	}

	prefix := "@" + scope + "/"
	if len(prefix) >= MaxLength {
		return truncate(rest, MaxLength)
	}
	return prefix + truncate(rest, MaxLength-len(prefix))
}

func splitScope(s string) (scope, rest string, ok bool) {
	if !strings.HasPrefix(s, "@") {
		return "", "", false
	}
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return "", "", false
	}
	return s[1:i], s[i+1:], true
}

// normalizePart rewrites one unscoped segment.
func normalizePart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if !isNameRune(r) {
			pending = true
			continue
		}
		if pending {
			b.WriteByte('-')
			pending = false
		}
		b.WriteRune(r)
	}
	if pending {
		b.WriteByte('-')
	}
	return strings.TrimLeft(b.String(), "._")
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '.', r == '_':
		return true
	}
	return false
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// truncate cuts an ASCII string to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
