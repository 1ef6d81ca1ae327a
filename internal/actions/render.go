package actions

import (
	"fmt"

	"github.com/navid-fn/dexscout/internal/dexscreener"
)

// formatPairPrice runs the pair's USD price (a string upstream) through the
// tiered price formatter.
func formatPairPrice(p *dexscreener.TradingPair) string {
	return dexscreener.FormatPriceString(p.PriceUSD)
}

func formatUSD(value float64) string {
	return dexscreener.FormatUsdValue(value)
}

func formatChange(change float64) string {
	return dexscreener.FormatPriceChange(change)
}

// pairTitle is the "BASE/QUOTE (chain)" heading used across action replies.
func pairTitle(p *dexscreener.TradingPair) string {
	return fmt.Sprintf("%s/%s (%s)", p.BaseToken.Symbol, p.QuoteToken.Symbol, p.ChainID)
}

// liquidityUSD reads the pair's USD liquidity, zero when upstream omitted it.
func liquidityUSD(p *dexscreener.TradingPair) float64 {
	if p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.USD
}

// windowFor picks the volume and price-change values matching a timeframe
// token. Anything but 1h/6h falls back to the 24h window.
func windowFor(p *dexscreener.TradingPair, timeframe string) (volume, change float64) {
	switch timeframe {
	case "1h":
		return p.Volume.H1, p.PriceChange.H1
	case "6h":
		return p.Volume.H6, p.PriceChange.H6
	default:
		return p.Volume.H24, p.PriceChange.H24
	}
}
