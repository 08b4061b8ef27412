package pipeline

// Stats counts how records fared in each stage. Malformed addresses and
// price parse errors are soft failures: the record stays in the table.
type Stats struct {
	Rows             int `json:"rows"`
	MalformedAddress int `json:"malformed_address"`
	AllDay           int `json:"all_day"`
	AverageBill      int `json:"average_bill"`
	CoffeeCup        int `json:"coffee_cup"`
	UnrecognizedBill int `json:"unrecognized_bill"`
	MissingBill      int `json:"missing_bill"`
	PriceParseErrors int `json:"price_parse_errors"`
}

// Kinds returns the counters keyed by the metric kind they are reported under.
func (s Stats) Kinds() map[string]int {
	return map[string]int{
		"processed":         s.Rows,
		"malformed_address": s.MalformedAddress,
		"all_day":           s.AllDay,
		"average_bill":      s.AverageBill,
		"coffee_cup":        s.CoffeeCup,
		"unrecognized_bill": s.UnrecognizedBill,
		"missing_bill":      s.MissingBill,
		"price_parse_error": s.PriceParseErrors,
	}
}

// LogArgs flattens the counters into slog key/value pairs.
func (s Stats) LogArgs() []any {
	return []any{
		"rows", s.Rows,
		"malformed_address", s.MalformedAddress,
		"all_day", s.AllDay,
		"average_bill", s.AverageBill,
		"coffee_cup", s.CoffeeCup,
		"unrecognized_bill", s.UnrecognizedBill,
		"missing_bill", s.MissingBill,
		"price_parse_errors", s.PriceParseErrors,
	}
}
