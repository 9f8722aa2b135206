package command

import (
	"sort"

	"github.com/sandevgo/orac/internal/core"
)

func sortedSymbols(stocks map[string]core.StockQuote) []string {
	out := make([]string, 0, len(stocks))
	for sym := range stocks {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
