package pipeline

import "testing"

func TestNameNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "upper cases cyrillic", in: "кофемания", want: "КОФЕМАНИЯ"},
		{name: "trims surrounding whitespace", in: "  Шоколадница \t", want: "ШОКОЛАДНИЦА"},
		{name: "unifies yo lowercase", in: "Ёлки-палки", want: "ЕЛКИ-ПАЛКИ"},
		{name: "unifies yo inside word", in: "Пчёлка", want: "ПЧЕЛКА"},
		{name: "composes decomposed yo", in: "Пч\u0435\u0308лка", want: "ПЧЕЛКА"},
		{name: "latin names", in: "Starbucks Coffee", want: "STARBUCKS COFFEE"},
		{name: "keeps inner spacing", in: "Coffee  Way", want: "COFFEE  WAY"},
		{name: "trims nbsp", in: "\u00a0Додо Пицца\u00a0", want: "ДОДО ПИЦЦА"},
		{name: "empty", in: "", want: ""},
		{name: "only spaces", in: "   ", want: ""},
	}

	n := NewNameNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// idempotenceAlphabet mixes Е/Ё in both cases and forms with the combining
// marks that interact with them under composition.
var idempotenceAlphabet = []string{
	"е", "Е", "ё", "Ё", "\u0308", "\u0323", "\u0300", " ", "ß", "a",
}

func TestNameNormalizer_Idempotent(t *testing.T) {
	n := NewNameNormalizer()
	check := func(in string) {
		once := n.Normalize(in)
		if twice := n.Normalize(once); once != twice {
			t.Errorf("Normalize not idempotent for %+q: %+q then %+q", in, once, twice)
		}
	}

	// every string of up to four symbols over the alphabet
	var walk func(prefix string, depth int)
	walk = func(prefix string, depth int) {
		check(prefix)
		if depth == 0 {
			return
		}
		for _, sym := range idempotenceAlphabet {
			walk(prefix+sym, depth-1)
		}
	}
	walk("", 4)

	for _, in := range []string{
		"  Ёжик в тумане ", "McDonald's", "ǅemal", "Теремок\n", "Кафе «Ёлка»",
		"ё\u0308", "ЁЁ\u0308", "Е\u0323\u0308", "\u00a0Ё\u0308\u00a0",
	} {
		check(in)
	}
}

func TestNameNormalizer_FoldsDiaeresis(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ё\u0308", want: "Е"},
		{in: "ЁЁ\u0308", want: "ЕЕ"},
		{in: "е\u0323\u0308", want: "Е\u0323"},
		{in: "е\u0300", want: "\u0400"},
		{in: "а\u0308", want: "\u04d2"},
	}
	n := NewNameNormalizer()
	for _, tt := range tests {
		if got := n.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%+q) = %+q, want %+q", tt.in, got, tt.want)
		}
	}
}

func FuzzNormalizeName(f *testing.F) {
	for _, seed := range []string{"Пчёлка", "ё\u0308", "ЁЁ\u0308", "Е\u0323\u0308", " Кафе ", "ǅ"} {
		f.Add(seed)
	}
	n := NewNameNormalizer()
	f.Fuzz(func(t *testing.T, in string) {
		once := n.Normalize(in)
		if twice := n.Normalize(once); once != twice {
			t.Errorf("Normalize not idempotent for %+q: %+q then %+q", in, once, twice)
		}
	})
}

func TestNormalizeName_CollapsesVariants(t *testing.T) {
	variants := []string{"Шоколадница", "шоколадница ", " ШОКОЛАДНИЦА"}
	want := NormalizeName(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeName(v); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", v, got, want)
		}
	}
}
