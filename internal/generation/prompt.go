package generation

import (
	"fmt"
	"strings"

	"github.com/fibank-ai/bankbot/internal/language"
	"github.com/fibank-ai/bankbot/internal/retrieval"
)

const (
	maxHistoryTurns     = 3
	maxDescriptionRunes = 200
)

// HistoryEntry is one prior exchange included in the prompt.
type HistoryEntry struct {
	User string
	Bot  string
}

// PromptData carries everything the prompt builder needs for one answer.
type PromptData struct {
	Language string
	Question string
	History  []HistoryEntry
	Products []retrieval.Result
}

// BuildPrompt assembles the model prompt: a role instruction in the user's
// language, recent conversation turns, the retrieved products, answer
// guidelines, and the question itself.
func BuildPrompt(data PromptData) string {
	var sb strings.Builder

	if data.Language == language.Bulgarian {
		sb.WriteString("Ти си любезен банков асистент на Първа инвестиционна банка (Fibank). ")
		sb.WriteString("Отговаряй на български език, кратко и точно, само за банковите продукти по-долу.\n\n")
	} else {
		sb.WriteString("You are a helpful banking assistant for First Investment Bank (Fibank). ")
		sb.WriteString("Answer in English, briefly and precisely, using only the bank products below.\n\n")
	}

	history := data.History
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	if len(history) > 0 {
		if data.Language == language.Bulgarian {
			sb.WriteString("Последни реплики:\n")
		} else {
			sb.WriteString("Recent conversation:\n")
		}
		for _, turn := range history {
			fmt.Fprintf(&sb, "User: %s\n", turn.User)
			if turn.Bot != "" {
				fmt.Fprintf(&sb, "Assistant: %s\n", turn.Bot)
			}
		}
		sb.WriteString("\n")
	}

	if len(data.Products) > 0 {
		if data.Language == language.Bulgarian {
			sb.WriteString("Релевантни продукти:\n")
		} else {
			sb.WriteString("Relevant products:\n")
		}
		for _, res := range data.Products {
			fmt.Fprintf(&sb, "- %s: %s\n", res.Product.Name, truncateRunes(res.Product.Description, maxDescriptionRunes))
		}
		sb.WriteString("\n")
	}

	if data.Language == language.Bulgarian {
		sb.WriteString("Правила: не измисляй продукти или условия, които не са описани. ")
		sb.WriteString("Ако информацията липсва, насочи клиента към обслужване на клиенти.\n\n")
		fmt.Fprintf(&sb, "Въпрос: %s", data.Question)
	} else {
		sb.WriteString("Rules: do not invent products or terms that are not described. ")
		sb.WriteString("If the information is missing, refer the customer to customer service.\n\n")
		fmt.Fprintf(&sb, "Question: %s", data.Question)
	}

	return sb.String()
}

// truncateRunes shortens text to at most n runes, appending an ellipsis
// when something was cut. Byte-based truncation would split Cyrillic
// characters.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
