package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// IntentGroup holds the compiled match patterns for one intent category.
// Group order is significant: the classifier keeps the first matching
// category, so groups must be evaluated in config order.
type IntentGroup struct {
	Intent   string
	Patterns []*regexp.Regexp
}

// KeywordGroup holds the literal trigger phrases for one keyword category.
type KeywordGroup struct {
	Name    string
	Phrases []string
}

// BrandKeywords holds the generic brand-mention phrases.
type BrandKeywords struct {
	Visa       []string
	Mastercard []string
}

// Keywords holds the keyword configuration for the inquiry handlers.
type Keywords struct {
	Visa       []KeywordGroup
	Mastercard []KeywordGroup
	Brands     BrandKeywords
	Loans      []KeywordGroup
}

// LoadIntentPatterns reads and compiles intent patterns from a YAML file.
// The file is a mapping from intent name to a list of regular expressions;
// mapping order is preserved. Callers fall back to DefaultIntentPatterns
// on error.
func LoadIntentPatterns(path string) ([]IntentGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intents file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse intents file: %w", err)
	}

	mapping, err := documentMapping(&root)
	if err != nil {
		return nil, fmt.Errorf("intents file: %w", err)
	}

	groups := make([]IntentGroup, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		val := mapping.Content[i+1]

		var raw []string
		if err := val.Decode(&raw); err != nil {
			return nil, fmt.Errorf("intent %q: %w", key.Value, err)
		}

		patterns, err := compilePatterns(raw)
		if err != nil {
			return nil, fmt.Errorf("intent %q: %w", key.Value, err)
		}

		groups = append(groups, IntentGroup{Intent: key.Value, Patterns: patterns})
	}

	return groups, nil
}

// LoadKeywords reads keyword configuration from a YAML file, preserving the
// group order within each brand and loan section. Callers fall back to
// DefaultKeywords on error.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse keywords file: %w", err)
	}

	mapping, err := documentMapping(&root)
	if err != nil {
		return nil, fmt.Errorf("keywords file: %w", err)
	}

	kw := &Keywords{}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		val := mapping.Content[i+1]

		switch key.Value {
		case "visa":
			groups, err := decodeKeywordGroups(val)
			if err != nil {
				return nil, fmt.Errorf("visa keywords: %w", err)
			}
			kw.Visa = groups
		case "mastercard":
			groups, err := decodeKeywordGroups(val)
			if err != nil {
				return nil, fmt.Errorf("mastercard keywords: %w", err)
			}
			kw.Mastercard = groups
		case "brands":
			var brands struct {
				Visa       []string `yaml:"visa"`
				Mastercard []string `yaml:"mastercard"`
			}
			if err := val.Decode(&brands); err != nil {
				return nil, fmt.Errorf("brand keywords: %w", err)
			}
			kw.Brands = BrandKeywords(brands)
		case "loans":
			groups, err := decodeKeywordGroups(val)
			if err != nil {
				return nil, fmt.Errorf("loan keywords: %w", err)
			}
			kw.Loans = groups
		}
	}

	return kw, nil
}

// documentMapping unwraps a YAML document node down to its top-level mapping.
func documentMapping(root *yaml.Node) (*yaml.Node, error) {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a top-level mapping")
	}
	return node, nil
}

// decodeKeywordGroups decodes an ordered mapping of group name to phrases.
func decodeKeywordGroups(node *yaml.Node) ([]KeywordGroup, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of groups")
	}

	groups := make([]KeywordGroup, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var phrases []string
		if err := node.Content[i+1].Decode(&phrases); err != nil {
			return nil, fmt.Errorf("group %q: %w", node.Content[i].Value, err)
		}
		groups = append(groups, KeywordGroup{Name: node.Content[i].Value, Phrases: phrases})
	}

	return groups, nil
}

func compilePatterns(raw []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, expr := range raw {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// DefaultIntentPatterns returns the built-in intent patterns used when the
// intents file is missing or malformed. Word boundaries are applied to the
// Latin alternatives only: RE2 treats Cyrillic letters as non-word
// characters, so \b around them never matches.
func DefaultIntentPatterns() []IntentGroup {
	defaults := []struct {
		intent   string
		patterns []string
	}{
		{"credit_cards", []string{
			`\b(credit\s*cards?)\b|кредитна\s*карта|карта|карти`,
			`\b(visa|viza|mastercard)\b|виза|визa|виса|мастеркард|мастър\s*кард|мастер\s*кард|мастеркарт`,
			`\b(standard|gold|platinum)\b|платина|златна|класик|стандартна|голд|платинум`,
			`\b(first\s*lady)\b|плащане|плащания|покупки|фърст\s*лейди|за\s*дами`,
		}},
		{"loans", []string{
			`\bloans?\b|заем|кредит|ипотека|жилищен`,
			`\b(consumer|overdraft)\b|потребителски|овърдрафт`,
			`финансиране|пари|сума`,
		}},
		{"rates", []string{
			`\brate\b|лихва|лихвен|процент`,
			`\bprice\b|цена|такса|комисионна`,
			`\bhow\s*much\b|колко\s*струва|цената`,
		}},
		{"application", []string{
			`\bapply\b|кандидатствам|заявка|процес`,
			`\bhow\s*to\b|как\s*да|документи|изисквания`,
			`\bonline\b|онлайн|клон|филиал`,
		}},
		{"help", []string{
			`\bhelp\b|помощ|помогнете|информация`,
			`\bwhat\s*can\s*you\b|какво\s*можеш|възможности`,
			`\bguide\b|ръководство|инструкции`,
		}},
	}

	groups := make([]IntentGroup, 0, len(defaults))
	for _, d := range defaults {
		patterns, err := compilePatterns(d.patterns)
		if err != nil {
			// Built-in patterns are fixed strings, a compile failure here
			// is a programming error.
			panic(err)
		}
		groups = append(groups, IntentGroup{Intent: d.intent, Patterns: patterns})
	}
	return groups
}

// DefaultKeywords returns the built-in keyword configuration used when the
// keywords file is missing or malformed.
func DefaultKeywords() *Keywords {
	return &Keywords{
		Visa: []KeywordGroup{
			{Name: "classic", Phrases: []string{"visa classic", "виза класик", "класическа виза"}},
			{Name: "gold", Phrases: []string{"visa gold", "виза голд", "златна виза"}},
			{Name: "platinum", Phrases: []string{"visa platinum", "виза платинум", "платинена виза"}},
		},
		Mastercard: []KeywordGroup{
			{Name: "standard", Phrases: []string{"mastercard standard", "мастеркард стандартна"}},
			{Name: "gold", Phrases: []string{"mastercard gold", "мастеркард златна"}},
			{Name: "platinum", Phrases: []string{"mastercard platinum", "мастеркард платинена"}},
			{Name: "first_lady", Phrases: []string{"first lady", "фърст лейди", "за дами"}},
		},
		Brands: BrandKeywords{
			Visa:       []string{"visa", "виза", "виса"},
			Mastercard: []string{"mastercard", "мастеркард", "мастър кард"},
		},
		Loans: []KeywordGroup{
			{Name: "housing", Phrases: []string{"жилищен", "ипотечен", "ипотека", "mortgage"}},
			{Name: "consumer", Phrases: []string{"потребителски", "consumer", "personal loan"}},
			{Name: "overdraft", Phrases: []string{"овърдрафт", "overdraft"}},
		},
	}
}
