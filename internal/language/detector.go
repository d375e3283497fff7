// Package language detects whether user input is Bulgarian or English.
package language

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/fibank-ai/bankbot/internal/observability"
)

// Language codes returned by the detector.
const (
	Bulgarian = "bg"
	English   = "en"
)

// bulgarianAlphabet is the Cyrillic subset used by Bulgarian.
const bulgarianAlphabet = "абвгдежзийклмнопрстуфхцчшщъьюя"

// bulgarianTerms are common banking terms that identify Bulgarian input even
// when mixed with Latin text.
var bulgarianTerms = []string{
	"заем", "кредит", "карта", "лихва", "банка", "пари", "плащане",
	"ипотека", "потребителски", "овърдрафт", "филиал", "клон",
	"документи", "заявка", "процес", "онлайн", "помощ", "информация",
}

// Detector classifies input text as Bulgarian or English. Steps 1-3 are
// deterministic heuristics; the statistical model is a lazily built
// best-effort fallback.
type Detector struct {
	logger *observability.Logger

	once  sync.Once
	model lingua.LanguageDetector
}

// NewDetector creates a language detector.
func NewDetector(logger *observability.Logger) *Detector {
	return &Detector{logger: logger.WithComponent("language")}
}

// Detect returns "bg" or "en" for the given text. Empty input defaults to
// English.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return English
	}

	lower := strings.ToLower(text)

	for _, r := range lower {
		if strings.ContainsRune(bulgarianAlphabet, r) {
			return Bulgarian
		}
	}

	for _, term := range bulgarianTerms {
		if strings.Contains(lower, term) {
			return Bulgarian
		}
	}

	return d.statistical(text)
}

// statistical runs the lingua model restricted to Bulgarian and English.
// Anything the model is not confident about defaults to English.
func (d *Detector) statistical(text string) string {
	d.once.Do(func() {
		d.model = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Bulgarian, lingua.English).
			Build()
	})

	lang, ok := d.model.DetectLanguageOf(text)
	if !ok {
		d.logger.Warn().Str("text", truncate(text, 50)).Msg("Language detection inconclusive")
		return English
	}

	switch lang {
	case lingua.Bulgarian:
		return Bulgarian
	default:
		return English
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
