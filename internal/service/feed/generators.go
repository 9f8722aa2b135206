package feed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sandevgo/orac/internal/core"
)

// Generator produces a fresh snapshot for one source.
type Generator interface {
	Source() core.Source
	Generate(now time.Time) (core.Snapshot, error)
}

type instrument struct {
	symbol string
	low    float64 // price lands in [low, high)
	high   float64
	swing  float64 // change lands in ± swing
}

// MSFT and GOOGL ranges sit off-center around their nominal 420 and 140.
var instruments = []instrument{
	{symbol: "AAPL", low: 175, high: 195, swing: 5},
	{symbol: "TSLA", low: 225, high: 255, swing: 7.5},
	{symbol: "MSFT", low: 408, high: 433, swing: 4},
	{symbol: "GOOGL", low: 133, high: 148, swing: 3},
	{symbol: "NVDA", low: 855, high: 905, swing: 10},
}

const (
	sp500Base   = 4200.0
	sp500Spread = 50.0
)

var (
	weatherConditions = []string{"Sunny", "Cloudy", "Rainy", "Clear"}
	headlines         = []string{
		"Tech stocks surge on AI breakthrough",
		"Global markets react to Fed announcement",
		"Climate summit reaches key agreement",
		"Crypto regulation updates pending",
	}
)

// between returns a uniform value in [low, high).
func between(rnd *rand.Rand, low, high float64) float64 {
	return low + rnd.Float64()*(high-low)
}

// around returns a uniform value in [base-spread, base+spread).
func around(rnd *rand.Rand, base, spread float64) float64 {
	return between(rnd, base-spread, base+spread)
}

type MarketGenerator struct {
	rnd *rand.Rand
}

func NewMarketGenerator(rnd *rand.Rand) *MarketGenerator {
	return &MarketGenerator{rnd: rnd}
}

func (g *MarketGenerator) Source() core.Source { return core.SourceMarket }

func (g *MarketGenerator) Generate(now time.Time) (core.Snapshot, error) {
	stocks := make(map[string]core.StockQuote, len(instruments))
	for _, in := range instruments {
		stocks[in.symbol] = core.StockQuote{
			Price:  between(g.rnd, in.low, in.high),
			Change: around(g.rnd, 0, in.swing),
		}
	}

	sp500 := around(g.rnd, sp500Base, sp500Spread)
	trend := "down"
	if g.rnd.Float64() > 0.5 {
		trend = "up"
	}
	volatility := g.rnd.Float64()*2 + 1

	return core.Snapshot{
		Source:    core.SourceMarket,
		Status:    fmt.Sprintf("S&P 500: %.2f (%s)", sp500, trend),
		Timestamp: now,
		Market: &core.MarketData{
			SP500:      sp500,
			Trend:      trend,
			Volatility: volatility,
			Stocks:     stocks,
		},
	}, nil
}

type WeatherGenerator struct {
	rnd *rand.Rand
}

func NewWeatherGenerator(rnd *rand.Rand) *WeatherGenerator {
	return &WeatherGenerator{rnd: rnd}
}

func (g *WeatherGenerator) Source() core.Source { return core.SourceWeather }

func (g *WeatherGenerator) Generate(now time.Time) (core.Snapshot, error) {
	temp := 50 + g.rnd.IntN(30)
	condition := weatherConditions[g.rnd.IntN(len(weatherConditions))]
	return core.Snapshot{
		Source:    core.SourceWeather,
		Status:    fmt.Sprintf("%d°F, %s", temp, condition),
		Timestamp: now,
	}, nil
}

type NewsGenerator struct {
	rnd *rand.Rand
}

func NewNewsGenerator(rnd *rand.Rand) *NewsGenerator {
	return &NewsGenerator{rnd: rnd}
}

func (g *NewsGenerator) Source() core.Source { return core.SourceNews }

func (g *NewsGenerator) Generate(now time.Time) (core.Snapshot, error) {
	return core.Snapshot{
		Source:    core.SourceNews,
		Status:    headlines[g.rnd.IntN(len(headlines))],
		Timestamp: now,
	}, nil
}

// DefaultGenerators builds the market, weather and news generators sharing rnd.
func DefaultGenerators(rnd *rand.Rand) []Generator {
	return []Generator{
		NewMarketGenerator(rnd),
		NewWeatherGenerator(rnd),
		NewNewsGenerator(rnd),
	}
}
