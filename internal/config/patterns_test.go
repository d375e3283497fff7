package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIntentPatternsPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "intents.yml", `
zulu:
  - 'z'
alpha:
  - 'a'
mike:
  - 'm'
`)

	groups, err := LoadIntentPatterns(path)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "zulu", groups[0].Intent)
	assert.Equal(t, "alpha", groups[1].Intent)
	assert.Equal(t, "mike", groups[2].Intent)
}

func TestLoadIntentPatternsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "intents.yml", `
cards:
  - 'visa'
`)

	groups, err := LoadIntentPatterns(path)
	require.NoError(t, err)
	assert.True(t, groups[0].Patterns[0].MatchString("VISA card"))
}

func TestLoadIntentPatternsBadRegex(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "intents.yml", `
cards:
  - '[unclosed'
`)

	_, err := LoadIntentPatterns(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cards")
}

func TestLoadIntentPatternsMissingFile(t *testing.T) {
	_, err := LoadIntentPatterns("does/not/exist.yml")
	require.Error(t, err)
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "keywords.yml", `
visa:
  classic:
    - visa classic
  gold:
    - visa gold
mastercard:
  first_lady:
    - first lady
brands:
  visa:
    - visa
  mastercard:
    - mastercard
loans:
  housing:
    - ипотека
`)

	kw, err := LoadKeywords(path)
	require.NoError(t, err)

	require.Len(t, kw.Visa, 2)
	assert.Equal(t, "classic", kw.Visa[0].Name)
	assert.Equal(t, "gold", kw.Visa[1].Name)
	require.Len(t, kw.Mastercard, 1)
	assert.Equal(t, []string{"first lady"}, kw.Mastercard[0].Phrases)
	assert.Equal(t, []string{"visa"}, kw.Brands.Visa)
	require.Len(t, kw.Loans, 1)
	assert.Equal(t, "housing", kw.Loans[0].Name)
}

func TestDefaultIntentPatternsOrder(t *testing.T) {
	groups := DefaultIntentPatterns()
	require.Len(t, groups, 5)

	want := []string{"credit_cards", "loans", "rates", "application", "help"}
	for i, group := range groups {
		assert.Equal(t, want[i], group.Intent)
		assert.NotEmpty(t, group.Patterns)
	}
}

func TestDefaultIntentPatternsMatchCyrillic(t *testing.T) {
	groups := DefaultIntentPatterns()

	// RE2 word boundaries never match around Cyrillic, so the built-in
	// patterns must hit these without \b.
	assert.True(t, groups[0].Patterns[0].MatchString("кредитна карта"))
	assert.True(t, groups[1].Patterns[0].MatchString("потребителски кредит"))
}

func TestDefaultKeywordsShape(t *testing.T) {
	kw := DefaultKeywords()

	assert.Len(t, kw.Visa, 3)
	assert.Len(t, kw.Mastercard, 4)
	assert.Equal(t, "first_lady", kw.Mastercard[3].Name)
	assert.NotEmpty(t, kw.Brands.Visa)
	assert.Len(t, kw.Loans, 3)
}
