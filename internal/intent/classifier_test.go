package intent

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibank-ai/bankbot/internal/config"
)

func TestClassifyDefaultPatterns(t *testing.T) {
	c := NewClassifier(config.DefaultIntentPatterns())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bulgarian credit cards", "Какви кредитни карти предлагате?", "credit_cards"},
		{"english credit card", "tell me about your credit cards", "credit_cards"},
		{"bulgarian loans", "Искам потребителски кредит", "loans"},
		{"english loan", "what loans do you offer", "loans"},
		{"rates", "каква е лихвата", "rates"},
		{"application", "как да кандидатствам за карта", "credit_cards"},
		{"greeting is general", "добър ден", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := c.Classify(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.want == General {
				assert.Zero(t, score)
			} else {
				assert.Equal(t, matchConfidence, score)
			}
		})
	}
}

func TestClassifyUnmatchedReturnsGeneralZero(t *testing.T) {
	c := NewClassifier(config.DefaultIntentPatterns())

	for _, input := range []string{"", "   ", "weather tomorrow", "какво е времето днес"} {
		intent, score := c.Classify(input)
		assert.Equal(t, General, intent, "input %q", input)
		assert.Zero(t, score, "input %q", input)
	}
}

func TestClassifyFirstMatchingCategoryWins(t *testing.T) {
	first := config.IntentGroup{
		Intent:   "first",
		Patterns: []*regexp.Regexp{regexp.MustCompile(`card`)},
	}
	second := config.IntentGroup{
		Intent:   "second",
		Patterns: []*regexp.Regexp{regexp.MustCompile(`card`)},
	}

	c := NewClassifier([]config.IntentGroup{first, second})

	intent, score := c.Classify("card")
	require.Equal(t, "first", intent)
	assert.Equal(t, matchConfidence, score)

	c = NewClassifier([]config.IntentGroup{second, first})
	intent, _ = c.Classify("card")
	assert.Equal(t, "second", intent)
}

func TestClassifyStopsAtFirstPatternWithinGroup(t *testing.T) {
	group := config.IntentGroup{
		Intent: "multi",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`alpha`),
			regexp.MustCompile(`beta`),
		},
	}

	c := NewClassifier([]config.IntentGroup{group})

	intent, score := c.Classify("alpha and beta together")
	assert.Equal(t, "multi", intent)
	assert.Equal(t, matchConfidence, score)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c := NewClassifier(config.DefaultIntentPatterns())

	intent, _ := c.Classify("CREDIT CARD")
	assert.Equal(t, "credit_cards", intent)
}
