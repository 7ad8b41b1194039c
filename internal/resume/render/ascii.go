package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The core PDF fonts cover Latin-1 at best; anything else is folded to ASCII
// before layout. The substitution is lossy.
var punctuation = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‒", "-",
	"−", "-",
	"‐", "-",
	"‑", "-",
	"‘", "'",
	"’", "'",
	"‚", "'",
	"′", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"″", `"`,
	"•", "-", // bullet
	"·", "-",
	"●", "-",
	"…", "...",
	"\u00a0", " ", // no-break space
	"\u2009", " ",
	"\u200b", "", // zero-width space
	"™", "(TM)",
	"®", "(R)",
	"©", "(C)",
	"→", "->",
	"←", "<-",
	"×", "x",
	"ß", "ss",
	"æ", "ae",
	"Æ", "AE",
	"œ", "oe",
	"Œ", "OE",
	"ø", "o",
	"Ø", "O",
	"ł", "l",
	"Ł", "L",
	"€", "EUR",
	"£", "GBP",
)

// ToASCII folds s to printable ASCII: typographic punctuation is mapped first,
// accents are stripped by decomposition, and any remaining rune becomes '?'.
func ToASCII(s string) string {
	if isASCII(s) {
		return s
	}
	s = punctuation.Replace(s)
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			continue
		case r < 0x80:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
