package util

import "strings"

// Option maps sets accepted literal menu inputs (a digit shortcut or the
// keyword itself, any case) to a canonical value. Canonicalization lives here,
// at the input boundary; the store only ever sees canonical values.

var (
	ExchangeOptions = map[string]string{
		"1": "NSE", "2": "BSE",
		"nse": "NSE", "bse": "BSE",
	}
	TransactionOptions = map[string]string{
		"1": "BUY", "2": "SELL",
		"buy": "BUY", "sell": "SELL",
	}
	OrderTypeOptions = map[string]string{
		"1": "MARKET", "2": "LIMIT",
		"market": "MARKET", "limit": "LIMIT",
	}
	ProductOptions = map[string]string{
		"1": "MIS", "2": "CNC",
		"mis": "MIS", "cnc": "CNC",
	}
)

// ParseOption resolves raw user input against an option map. The second return
// is false when the input matches nothing.
func ParseOption(input string, options map[string]string) (string, bool) {
	canonical, ok := options[strings.ToLower(strings.TrimSpace(input))]
	return canonical, ok
}
