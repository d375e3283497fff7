package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/language"
	"github.com/fibank-ai/bankbot/internal/retrieval"
)

func TestBuildPromptBulgarian(t *testing.T) {
	prompt := BuildPrompt(PromptData{
		Language: language.Bulgarian,
		Question: "Какви карти предлагате?",
		Products: []retrieval.Result{
			{Product: &catalog.Product{Name: "Visa Gold", Description: "златна карта"}, Score: 0.9},
		},
	})

	assert.Contains(t, prompt, "банков асистент")
	assert.Contains(t, prompt, "Релевантни продукти")
	assert.Contains(t, prompt, "- Visa Gold: златна карта")
	assert.Contains(t, prompt, "Въпрос: Какви карти предлагате?")
	assert.NotContains(t, prompt, "Relevant products")
}

func TestBuildPromptEnglish(t *testing.T) {
	prompt := BuildPrompt(PromptData{
		Language: language.English,
		Question: "What cards do you offer?",
	})

	assert.Contains(t, prompt, "banking assistant")
	assert.Contains(t, prompt, "Question: What cards do you offer?")
	assert.NotContains(t, prompt, "Relevant products")
	assert.NotContains(t, prompt, "Recent conversation")
}

func TestBuildPromptKeepsLastThreeTurns(t *testing.T) {
	prompt := BuildPrompt(PromptData{
		Language: language.English,
		Question: "and the fees?",
		History: []HistoryEntry{
			{User: "turn one"},
			{User: "turn two"},
			{User: "turn three"},
			{User: "turn four"},
		},
	})

	assert.NotContains(t, prompt, "turn one")
	assert.Contains(t, prompt, "turn two")
	assert.Contains(t, prompt, "turn four")
}

func TestBuildPromptTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("а", 300)
	prompt := BuildPrompt(PromptData{
		Language: language.Bulgarian,
		Question: "въпрос",
		Products: []retrieval.Result{
			{Product: &catalog.Product{Name: "Продукт", Description: long}},
		},
	})

	want := strings.Repeat("а", 200) + "..."
	assert.Contains(t, prompt, want)
	assert.NotContains(t, prompt, strings.Repeat("а", 201))
}

func TestTruncateRunesIsRuneSafe(t *testing.T) {
	text := "кредитна карта"

	out := truncateRunes(text, 8)
	require.Equal(t, "кредитна...", out)
	assert.True(t, strings.HasPrefix(text, "кредитна"))
}

func TestTruncateRunesShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "карта", truncateRunes("карта", 200))
}
