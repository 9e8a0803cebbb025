// Package chatbot answers natural-language questions about the triage queue.
// Classification is a fixed bag-of-words match over configured trigger
// phrases; responses are templates filled from live queue reads. There is no
// learned model, by contract: the same input against the same configuration
// and queue state always produces the same answer.
package chatbot

import (
	"strings"

	"backend-triage/internal/queue"
)

// Bot binds an immutable intent configuration to a queue engine for read-only
// lookups.
type Bot struct {
	cfg    Config
	engine *queue.Engine
}

func New(cfg Config, engine *queue.Engine) *Bot {
	return &Bot{cfg: cfg, engine: engine}
}

// GetResponse classifies the input and renders the answer. It never returns
// an error: blank input, unknown intents and internal lookup failures all
// degrade to fixed fallback text.
func (b *Bot) GetResponse(input string) string {
	if strings.TrimSpace(input) == "" {
		return fallbackEmpty
	}

	if len(b.cfg.Intents) == 0 {
		return fallbackGeneric
	}

	tag, _ := b.cfg.classify(input)
	return b.respond(tag, input)
}
