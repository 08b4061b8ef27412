package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	cyrillicIE = '\u0415'
	diaeresis  = '\u0308'
)

// NameNormalizer canonicalizes venue names so that presentation-only
// differences (case, surrounding whitespace, Ё/Е) collapse to one identity.
// A NameNormalizer holds a stateful caser and must not be shared between
// goroutines.
type NameNormalizer struct {
	upper cases.Caser
}

// NewNameNormalizer creates a normalizer using Russian case mapping rules.
func NewNameNormalizer() *NameNormalizer {
	return &NameNormalizer{upper: cases.Upper(language.Russian)}
}

// Normalize returns the canonical form of name. It is idempotent.
//
// Ё is folded on the decomposed text, so no diaeresis attached to an Е
// survives to compose into Ё on a later pass.
func (n *NameNormalizer) Normalize(name string) string {
	s := norm.NFD.String(name)
	s = norm.NFD.String(n.upper.String(s))
	s = foldDiaeresis(s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}

// foldDiaeresis removes U+0308 from the combining sequence of every Е in
// the decomposed string s.
func foldDiaeresis(s string) string {
	if !strings.ContainsRune(s, diaeresis) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	afterIE := false
	for i, r := range s {
		if norm.NFD.PropertiesString(s[i:]).CCC() == 0 {
			afterIE = r == cyrillicIE
		} else if r == diaeresis && afterIE {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeName is a convenience wrapper around a fresh NameNormalizer.
func NormalizeName(name string) string {
	return NewNameNormalizer().Normalize(name)
}
