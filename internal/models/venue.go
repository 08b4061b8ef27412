package models

// Venue is one row of the raw venues table as supplied by the loader.
type Venue struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Category string  `json:"category"`
	Hours    *string `json:"hours"`
	Location
	Rating   float64  `json:"rating"`
	Price    *string  `json:"price"`
	AvgBill  *string  `json:"avg_bill"`
	Chain    int      `json:"chain"` // 1 for chain venues, 0 otherwise
	District string   `json:"district"`
	Seats    *float64 `json:"seats"`
}

// EnrichedVenue is a Venue with the derived columns attached by the cleaning pipeline.
type EnrichedVenue struct {
	Venue
	Street          *string  `json:"street"`
	Is247           bool     `json:"is_24_7"`
	MiddleAvgBill   *float64 `json:"middle_avg_bill"`
	MiddleCoffeeCup *float64 `json:"middle_coffee_cup"`
}

// IsChain reports whether the venue belongs to a chain.
func (v *Venue) IsChain() bool {
	return v.Chain == 1
}
