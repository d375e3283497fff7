package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/fibank-ai/bankbot/internal/language"
)

// Turn is one recorded user interaction.
type Turn struct {
	Text       string
	Response   string
	Timestamp  time.Time
	Language   string
	Intent     string
	Confidence float64
}

// ConversationContext holds per-session state: the detected language, the
// turn history, free-form memory and tracked product interests. It is
// owned by a single session and discarded with it.
type ConversationContext struct {
	SessionID string
	Language  string

	history   []Turn
	memory    map[string]string
	interests []string
}

// NewConversationContext creates a fresh session context.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		SessionID: uuid.NewString(),
		Language:  language.English,
		memory:    make(map[string]string),
	}
}

// AppendTurn records one interaction. History is append-only.
func (c *ConversationContext) AppendTurn(turn Turn) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	c.history = append(c.history, turn)
}

// SetLastResponse attaches the bot reply to the most recent turn.
func (c *ConversationContext) SetLastResponse(response string) {
	if len(c.history) == 0 {
		return
	}
	c.history[len(c.history)-1].Response = response
}

// RecentHistory returns a copy of the last n turns. Callers can hold the
// slice without observing later appends.
func (c *ConversationContext) RecentHistory(n int) []Turn {
	if n <= 0 || len(c.history) == 0 {
		return nil
	}
	start := len(c.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(c.history)-start)
	copy(out, c.history[start:])
	return out
}

// HistoryLen reports the number of recorded turns.
func (c *ConversationContext) HistoryLen() int {
	return len(c.history)
}

// Remember stores a free-form memory value.
func (c *ConversationContext) Remember(key, value string) {
	c.memory[key] = value
}

// Recall reads a free-form memory value.
func (c *ConversationContext) Recall(key string) (string, bool) {
	v, ok := c.memory[key]
	return v, ok
}

// TrackInterest records a product the user has shown interest in, once.
func (c *ConversationContext) TrackInterest(product string) {
	for _, p := range c.interests {
		if p == product {
			return
		}
	}
	c.interests = append(c.interests, product)
}

// Interests returns a copy of the tracked product interests.
func (c *ConversationContext) Interests() []string {
	out := make([]string, len(c.interests))
	copy(out, c.interests)
	return out
}
