package oracle

import "strings"

var tickerAliases = map[string]string{
	"apple":     "AAPL",
	"aapl":      "AAPL",
	"tesla":     "TSLA",
	"tsla":      "TSLA",
	"microsoft": "MSFT",
	"msft":      "MSFT",
	"google":    "GOOGL",
	"googl":     "GOOGL",
	"alphabet":  "GOOGL",
	"nvidia":    "NVDA",
	"nvda":      "NVDA",
}

// ExtractSymbols maps whitespace-separated words of the query to canonical
// tickers. Matching is exact after lower-casing, so "apple?" is not "apple".
// Each ticker appears once, in order of first mention.
func ExtractSymbols(query string) []string {
	var symbols []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(query)) {
		ticker, ok := tickerAliases[word]
		if !ok {
			continue
		}
		if _, dup := seen[ticker]; dup {
			continue
		}
		seen[ticker] = struct{}{}
		symbols = append(symbols, ticker)
	}
	return symbols
}
