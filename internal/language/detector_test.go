package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fibank-ai/bankbot/internal/observability"
)

func TestDetectEmptyInputDefaultsToEnglish(t *testing.T) {
	d := NewDetector(observability.Nop())

	assert.Equal(t, English, d.Detect(""))
	assert.Equal(t, English, d.Detect("   \t  "))
}

func TestDetectCyrillicIsBulgarian(t *testing.T) {
	d := NewDetector(observability.Nop())

	cases := []string{
		"Какви кредитни карти предлагате?",
		"Здравейте",
		"hello, искам карта",
		"щ",
	}
	for _, text := range cases {
		assert.Equal(t, Bulgarian, d.Detect(text), "input %q", text)
	}
}

func TestDetectMixedScriptIsBulgarian(t *testing.T) {
	d := NewDetector(observability.Nop())

	assert.Equal(t, Bulgarian, d.Detect("tell me about онлайн banking"))
}

func TestDetectEnglish(t *testing.T) {
	d := NewDetector(observability.Nop())

	assert.Equal(t, English, d.Detect("What credit cards do you offer and what are the annual fees?"))
}
