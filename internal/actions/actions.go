// Package actions maps natural-language requests onto market data lookups.
// Each action pairs a validity predicate over lowercased message text with a
// handler that pulls parameters out of the text, calls the DexScreener
// client and renders a plain-text reply. Matching is deliberately dumb:
// substring tests and fixed regular expressions, not a parser.
package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dexscout/internal/dexscreener"
)

// Reply is what a handler produces: display text, the structured payload
// behind it, and the action name stamped on by the dispatcher.
type Reply struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// Action is one user intent. Match receives the lowercased message text;
// Handle receives the original text so extracted parameters keep their case.
// Handlers never return an error: client failures and unusable input both
// render as reply text.
type Action struct {
	Name        string
	Description string
	Examples    []string
	Match       func(lowered string) bool
	Handle      func(ctx context.Context, text string) Reply
}

type set struct {
	dex *dexscreener.Client
	log *logrus.Logger
}

// All returns the intent actions in dispatch order. Predicates overlap
// ("find new pairs on solana" mentions search, new-pairs and chain-pairs
// vocabulary), so the most specific intents sit in front and plain search
// comes last.
func All(dex *dexscreener.Client, logger *logrus.Logger) []Action {
	s := &set{dex: dex, log: logger}
	return []Action{
		s.tokenInfo(),
		s.boosted(),
		s.profiles(),
		s.newPairs(),
		s.trending(),
		s.chainPairs(),
		s.search(),
	}
}
