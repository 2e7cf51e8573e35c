package parse

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// preNorm maps prime, quote, dash, and multiplication variants to ASCII.
// It runs before NFKC: compatibility decomposition would otherwise turn a
// double prime into two single primes and lose the inch mark.
var preNorm = runes.Map(func(r rune) rune {
	switch r {
	case '′', '‘', '’', 'ʹ', '´', '`': // primes, smart single quotes
		return '\''
	case '″', '“', '”', 'ʺ', '〃': // double primes, smart double quotes
		return '"'
	case '‐', '‑', '‒', '–', '—', '―', '−': // hyphens, dashes, minus
		return '-'
	case '×', '✕', '⨉': // multiplication signs
		return 'x'
	}
	return r
})

// postNorm fixes what NFKC introduces: fraction glyphs decompose to digits
// joined by the fraction slash, which the dimension patterns expect as an
// ASCII solidus.
var postNorm = runes.Map(func(r rune) rune {
	if r == '⁄' { // fraction slash
		return '/'
	}
	return r
})

var normalizer = transform.Chain(preNorm, norm.NFKC, postNorm)

// Normalize maps unicode typography to the ASCII forms the pattern tables
// expect: primes and smart quotes to ' and ", dash variants to -,
// multiplication signs to x, and fraction glyphs like ½ to 1/2. Input that
// fails to transform is returned unchanged; every parser in this package
// degrades gracefully on odd bytes rather than failing.
func Normalize(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		return s
	}
	return out
}
