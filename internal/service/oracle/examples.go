package oracle

// Examples are the canned shortcut queries offered by every surface.
var Examples = []string{
	"What's Apple stock doing today?",
	"Should I buy Tesla stock?",
	"How is Microsoft performing?",
	"Give me analysis on Google and Apple",
	"What's the NVDA outlook?",
	"Plan a weekend trip based on weather",
	"What's the current market outlook?",
}

const ExamplesHint = "Try asking about: Apple, Tesla, Microsoft, Google, Nvidia, or use stock symbols like AAPL, TSLA, MSFT, GOOGL, NVDA"
