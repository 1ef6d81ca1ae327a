package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/navid-fn/dexscout/internal/dexscreener"
	"github.com/navid-fn/dexscout/utils"
)

const boostedDisplayLimit = 10

func (s *set) boosted() Action {
	return Action{
		Name:        "boosted-tokens",
		Description: "List tokens with purchased visibility boosts",
		Examples: []string{
			"show me boosted tokens",
			"top boosted tokens",
			"latest boosts",
		},
		Match:  matchBoosted,
		Handle: s.handleBoosted,
	}
}

func matchBoosted(lowered string) bool {
	return containsAny(lowered, "boost", "promoted")
}

func (s *set) handleBoosted(ctx context.Context, text string) Reply {
	lowered := strings.ToLower(text)

	var (
		boosts []dexscreener.BoostedToken
		err    error
		title  string
	)
	if strings.Contains(lowered, "top") {
		boosts, err = s.dex.TopBoostedTokens(ctx)
		title = "Top Boosted Tokens"
	} else {
		boosts, err = s.dex.LatestBoostedTokens(ctx)
		title = "Latest Boosted Tokens"
	}
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to fetch boosted tokens: %v", err)}
	}
	if len(boosts) == 0 {
		return Reply{Text: "No boosted tokens right now."}
	}

	shown := boosts
	if len(shown) > boostedDisplayLimit {
		shown = shown[:boostedDisplayLimit]
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, b := range shown {
		sb.WriteString(fmt.Sprintf("%d. %s on %s\n", i+1, utils.ShortAddress(b.TokenAddress), b.ChainID))
		sb.WriteString(fmt.Sprintf("   Boost: %.0f (total %.0f)\n", b.Amount, b.TotalAmount))
		if b.Description != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", utils.Truncate(b.Description, 80)))
		}
		sb.WriteString("\n")
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: boosts}
}
