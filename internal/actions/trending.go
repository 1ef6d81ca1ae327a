package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/navid-fn/dexscout/internal/dexscreener"
)

func (s *set) trending() Action {
	return Action{
		Name:        "trending",
		Description: "List trending tokens, approximated from active boosts",
		Examples: []string{
			"show me trending tokens",
			"top 5 hot tokens in the last 6h",
			"what's popular right now?",
		},
		Match:  matchTrending,
		Handle: s.handleTrending,
	}
}

func matchTrending(lowered string) bool {
	return containsAny(lowered, "trending", "hot", "popular")
}

func (s *set) handleTrending(ctx context.Context, text string) Reply {
	lowered := strings.ToLower(text)

	timeframe := extractTimeframe(lowered)
	display := timeframe
	if display == "" {
		display = "24h"
	}
	limit := extractCount(lowered)
	if limit <= 0 {
		limit = dexscreener.DefaultTrendingLimit
	}
	s.log.Debugf("trending action: timeframe=%q limit=%d", timeframe, limit)

	pairs, err := s.dex.Trending(ctx, dexscreener.TrendingOpts{Timeframe: timeframe, Limit: limit})
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to fetch trending tokens: %v", err)}
	}
	if len(pairs) == 0 {
		return Reply{Text: "No trending tokens found right now."}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Trending Tokens (%s)\n\n", display))
	for i, p := range pairs {
		volume, change := windowFor(&p, display)
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, pairTitle(&p)))
		sb.WriteString(fmt.Sprintf("   Price: $%s (%s)\n", formatPairPrice(&p), formatChange(change)))
		sb.WriteString(fmt.Sprintf("   %s Volume: %s\n", display, formatUSD(volume)))
		if p.Liquidity != nil {
			sb.WriteString(fmt.Sprintf("   Liquidity: %s\n", formatUSD(p.Liquidity.USD)))
		}
		sb.WriteString("\n")
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: pairs}
}
