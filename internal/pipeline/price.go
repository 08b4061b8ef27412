package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrPriceParse is returned when a bill string starts with a known prefix but
// the amount after it cannot be read.
var ErrPriceParse = errors.New("price parse error")

// BillKind tells which derived column a bill description feeds.
type BillKind int

const (
	BillUnknown BillKind = iota
	BillAverage
	BillCappuccino
)

func (k BillKind) String() string {
	switch k {
	case BillAverage:
		return "average_bill"
	case BillCappuccino:
		return "cappuccino"
	default:
		return "unknown"
	}
}

// BillPrefix maps the leading text of a bill description to its kind.
type BillPrefix struct {
	Kind   BillKind
	Prefix string
}

// DefaultBillPrefixes are the prefixes found in the venues dataset.
var DefaultBillPrefixes = []BillPrefix{
	{Kind: BillAverage, Prefix: "Средний счёт"},
	{Kind: BillCappuccino, Prefix: "Цена чашки капучино"},
	{Kind: BillCappuccino, Prefix: "Цена одной чашки капучино"},
}

// BillEstimate is the point value extracted from a bill description.
type BillEstimate struct {
	Kind  BillKind
	Value float64
}

var (
	// amountPattern matches "<low>" or "<low>–<high>" with an optional
	// currency suffix. Separators inside the numbers are resolved by parseAmount.
	amountPattern = regexp.MustCompile(`^(?P<low>\d[\d .,]*?)(?:\s*[-–—]\s*(?P<high>\d[\d .,]*?))?\s*(?:₽|руб\.?)?$`)
	lowGroup      = amountPattern.SubexpIndex("low")
	highGroup     = amountPattern.SubexpIndex("high")

	spaceThousands = regexp.MustCompile(`^\d{1,3}(?: \d{3})+$`)
	commaThousands = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
	dotThousands   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	plainNumber    = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	spaceVariants = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ", "\t", " ")
)

// PriceExtractor turns free text bill descriptions into point estimates.
type PriceExtractor struct {
	prefixes []BillPrefix
}

// NewPriceExtractor builds an extractor for the given prefixes, or for
// DefaultBillPrefixes when none are given. Longer prefixes win over shorter
// ones that share a start.
func NewPriceExtractor(prefixes ...BillPrefix) *PriceExtractor {
	if len(prefixes) == 0 {
		prefixes = DefaultBillPrefixes
	}
	sorted := append([]BillPrefix(nil), prefixes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &PriceExtractor{prefixes: sorted}
}

// Extract classifies bill and computes its point value: the single amount,
// or the median of the two range endpoints (their arithmetic mean).
//
// A nil or unrecognized bill yields a BillUnknown estimate and no error. A
// recognized prefix followed by an unreadable amount yields ErrPriceParse.
func (e *PriceExtractor) Extract(bill *string) (BillEstimate, error) {
	if bill == nil {
		return BillEstimate{}, nil
	}
	text := strings.TrimSpace(spaceVariants.Replace(norm.NFC.String(*bill)))

	kind, tail, ok := e.match(text)
	if !ok {
		return BillEstimate{}, nil
	}

	tail = strings.TrimSpace(tail)
	tail = strings.TrimSpace(strings.TrimPrefix(tail, ":"))

	m := amountPattern.FindStringSubmatch(tail)
	if m == nil {
		return BillEstimate{}, fmt.Errorf("%w: %s amount %q", ErrPriceParse, kind, tail)
	}

	low, err := parseAmount(m[lowGroup])
	if err != nil {
		return BillEstimate{}, fmt.Errorf("%w: %s low %q: %v", ErrPriceParse, kind, m[lowGroup], err)
	}
	value := low
	if m[highGroup] != "" {
		high, err := parseAmount(m[highGroup])
		if err != nil {
			return BillEstimate{}, fmt.Errorf("%w: %s high %q: %v", ErrPriceParse, kind, m[highGroup], err)
		}
		value = median2(low, high)
	}

	return BillEstimate{Kind: kind, Value: value}, nil
}

// match finds the prefix text starts with. The prefix must end at a word
// boundary: a colon, whitespace, or the end of text.
func (e *PriceExtractor) match(text string) (BillKind, string, bool) {
	for _, p := range e.prefixes {
		rest, ok := strings.CutPrefix(text, p.Prefix)
		if ok && prefixEnds(rest) {
			return p.Kind, rest, true
		}
	}
	return BillUnknown, "", false
}

func prefixEnds(rest string) bool {
	if rest == "" || rest[0] == ':' {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r)
}

// median2 is the median of two values, which for two values is their mean.
func median2(a, b float64) float64 {
	return (a + b) / 2
}

// parseAmount reads a number that may carry space, comma or dot thousands
// separators, or a decimal comma. A space anywhere but between digit groups
// of three is an error, so two bare figures never merge into one.
func parseAmount(token string) (float64, error) {
	compact := strings.TrimSpace(token)
	switch {
	case spaceThousands.MatchString(compact):
		compact = strings.ReplaceAll(compact, " ", "")
	case commaThousands.MatchString(compact):
		compact = strings.ReplaceAll(compact, ",", "")
	case dotThousands.MatchString(compact):
		compact = strings.ReplaceAll(compact, ".", "")
	case strings.Contains(compact, ",") && !strings.Contains(compact, "."):
		compact = strings.ReplaceAll(compact, ",", ".")
	}
	if !plainNumber.MatchString(compact) {
		return 0, fmt.Errorf("not a number: %q", token)
	}
	return strconv.ParseFloat(compact, 64)
}
