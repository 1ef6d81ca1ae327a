package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/navid-fn/dexscout/utils"
)

const profilesDisplayLimit = 5

func (s *set) profiles() Action {
	return Action{
		Name:        "token-profiles",
		Description: "List the latest token profiles",
		Examples: []string{
			"show me the latest token profiles",
			"recent token profiles",
		},
		Match:  matchProfiles,
		Handle: s.handleProfiles,
	}
}

func matchProfiles(lowered string) bool {
	return strings.Contains(lowered, "profile")
}

func (s *set) handleProfiles(ctx context.Context, _ string) Reply {
	profiles, err := s.dex.LatestTokenProfiles(ctx)
	if err != nil {
		return Reply{Text: fmt.Sprintf("Failed to fetch token profiles: %v", err)}
	}
	if len(profiles) == 0 {
		return Reply{Text: "No token profiles right now."}
	}

	shown := profiles
	if len(shown) > profilesDisplayLimit {
		shown = shown[:profilesDisplayLimit]
	}

	var sb strings.Builder
	sb.WriteString("Latest Token Profiles\n\n")
	for i, p := range shown {
		sb.WriteString(fmt.Sprintf("%d. %s on %s\n", i+1, utils.ShortAddress(p.TokenAddress), p.ChainID))
		if p.Description != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", utils.Truncate(p.Description, 100)))
		}
		if len(p.Links) > 0 {
			sb.WriteString(fmt.Sprintf("   Links: %d\n", len(p.Links)))
		}
		sb.WriteString("\n")
	}

	return Reply{Text: strings.TrimRight(sb.String(), "\n"), Data: profiles}
}
