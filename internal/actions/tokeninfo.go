package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/navid-fn/dexscout/utils"
)

const tokenInfoDisplayLimit = 3

func (s *set) tokenInfo() Action {
	return Action{
		Name:        "token-info",
		Description: "Show market data for a token contract address",
		Examples: []string{
			"token info for 0x6982508145454ce325ddbe47a25d4ec3d2311933",
			"what's the price of 0x6982508145454ce325ddbe47a25d4ec3d2311933?",
		},
		Match:  matchTokenInfo,
		Handle: s.handleTokenInfo,
	}
}

func matchTokenInfo(lowered string) bool {
	if !reAddress.MatchString(lowered) {
		return false
	}
	return containsAny(lowered, "token", "price", "info", "details", "about")
}

// handleTokenInfo resolves every pair for the address and presents the one
// with the deepest USD liquidity as the canonical market, plus up to two more.
func (s *set) handleTokenInfo(ctx context.Context, text string) Reply {
	address := extractAddress(text)
	if address == "" {
		return Reply{Text: "Please include the token contract address (0x...) you want to look up."}
	}

	pairs, err := s.dex.TokenPairs(ctx, address)
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to fetch token data: %v", err)}
	}
	if len(pairs) == 0 {
		return Reply{Text: fmt.Sprintf("No pairs found for token %s.", utils.ShortAddress(address))}
	}

	canonical := &pairs[0]
	for i := range pairs {
		if liquidityUSD(&pairs[i]) > liquidityUSD(canonical) {
			canonical = &pairs[i]
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Token Info: %s (%s)\n\n", canonical.BaseToken.Name, canonical.BaseToken.Symbol))
	sb.WriteString(fmt.Sprintf("Chain: %s\n", canonical.ChainID))
	sb.WriteString(fmt.Sprintf("Price: $%s\n", formatPairPrice(canonical)))
	sb.WriteString(fmt.Sprintf("24h Change: %s\n", formatChange(canonical.PriceChange.H24)))
	sb.WriteString(fmt.Sprintf("24h Volume: %s\n", formatUSD(canonical.Volume.H24)))
	if canonical.Liquidity != nil {
		sb.WriteString(fmt.Sprintf("Liquidity: %s\n", formatUSD(canonical.Liquidity.USD)))
	}
	if canonical.FDV > 0 {
		sb.WriteString(fmt.Sprintf("FDV: %s\n", formatUSD(canonical.FDV)))
	}
	if canonical.PairCreatedAt > 0 {
		sb.WriteString(fmt.Sprintf("Pair Created: %s\n", utils.TimeAgo(canonical.PairCreatedAt)))
	}

	shown := pairs
	if len(shown) > tokenInfoDisplayLimit {
		shown = shown[:tokenInfoDisplayLimit]
	}
	sb.WriteString("\nPairs:\n")
	for i, p := range shown {
		sb.WriteString(fmt.Sprintf("%d. %s on %s, Liquidity: %s\n",
			i+1, pairTitle(&p), p.DexID, formatUSD(liquidityUSD(&p))))
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: pairs}
}
