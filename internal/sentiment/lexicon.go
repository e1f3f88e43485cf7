package sentiment

// Keyword lexicons for deterministic headline scoring. Matching is
// case-insensitive over word tokens, never substrings.

var positiveWords = wordSet(
	"beat", "beats", "growth", "strong", "record", "upside", "surge", "profit",
	"profits", "improve", "improves", "improved", "expands", "expansion",
	"outperform", "outperformed", "bullish", "upgrade", "momentum", "resilient",
	"advantage", "leadership", "discipline", "cashflow", "buyback",
)

var negativeWords = wordSet(
	"miss", "misses", "weak", "drop", "plunge", "decline", "declines", "downside",
	"warning", "warns", "loss", "losses", "lawsuit", "downgrade", "bearish",
	"investigation", "cut", "cuts", "slump", "recession", "fraud", "restatement",
	"bankruptcy", "dilution", "liquidity",
)

// redFlagWords mark narrative risk regardless of sentiment polarity.
var redFlagWords = wordSet(
	"fraud", "investigation", "restatement", "bankruptcy", "default",
	"insolvency", "probe", "subpoena", "whistleblower", "accounting",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
