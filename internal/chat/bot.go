// Package chat orchestrates one conversation session: intent dispatch,
// inquiry handling and the AI fallback chain.
package chat

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/config"
	"github.com/fibank-ai/bankbot/internal/generation"
	"github.com/fibank-ai/bankbot/internal/intent"
	"github.com/fibank-ai/bankbot/internal/language"
	"github.com/fibank-ai/bankbot/internal/observability"
	"github.com/fibank-ai/bankbot/internal/respond"
	"github.com/fibank-ai/bankbot/internal/retrieval"
)

const (
	fallbackRetrieveLimit = 5
	fallbackRenderLimit   = 3
	fallbackDescRunes     = 200
	promptHistoryTurns    = 3
)

// loanCategoryNames maps keyword group names to the Bulgarian catalog
// category names.
var loanCategoryNames = map[string]string{
	"housing":   "Жилищни и ипотечни кредити",
	"consumer":  "Потребителски кредити",
	"overdraft": "Овърдрафт",
	"other":     "Други кредити",
}

// Options carries the collaborators a Bot needs.
type Options struct {
	Catalog    *catalog.Catalog
	Detector   *language.Detector
	Classifier *intent.Classifier
	Retriever  *retrieval.Retriever
	Generator  generation.Generator
	Composer   *respond.Composer
	Keywords   *config.Keywords
	MaxRetries int
	Logger     *observability.Logger
}

// Bot handles one conversation session. It is not safe for concurrent use;
// each session owns its own Bot.
type Bot struct {
	logger     *observability.Logger
	catalog    *catalog.Catalog
	detector   *language.Detector
	classifier *intent.Classifier
	retriever  *retrieval.Retriever
	generator  generation.Generator
	composer   *respond.Composer
	keywords   *config.Keywords
	maxRetries int
	session    *ConversationContext
}

// NewBot creates a bot with a fresh session context.
func NewBot(opts Options) *Bot {
	keywords := opts.Keywords
	if keywords == nil {
		keywords = config.DefaultKeywords()
	}
	logger := opts.Logger
	if logger == nil {
		logger = observability.Nop()
	}

	session := NewConversationContext()
	return &Bot{
		logger:     logger.WithComponent("chat").WithSession(session.SessionID),
		catalog:    opts.Catalog,
		detector:   opts.Detector,
		classifier: opts.Classifier,
		retriever:  opts.Retriever,
		generator:  opts.Generator,
		composer:   opts.Composer,
		keywords:   keywords,
		maxRetries: opts.MaxRetries,
		session:    session,
	}
}

// Session exposes the conversation context, mainly for the interactive loop
// and tests.
func (b *Bot) Session() *ConversationContext {
	return b.session
}

// GenerateResponse handles one turn and always returns a reply string. A
// panic anywhere below collapses to the localized generic apology, so the
// caller never sees a failure.
func (b *Bot) GenerateResponse(ctx context.Context, input string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("turn failed")
			response = genericErrorResponse(b.session.Language)
		}
	}()

	if strings.TrimSpace(input) == "" {
		return enterQuestionPrompt(b.session.Language)
	}

	b.session.Language = b.detector.Detect(input)

	userIntent, confidence := b.classifier.Classify(input)
	b.session.AppendTurn(Turn{
		Text:       input,
		Language:   b.session.Language,
		Intent:     userIntent,
		Confidence: confidence,
	})

	b.logger.Debug().
		Str("language", b.session.Language).
		Str("intent", userIntent).
		Float64("confidence", confidence).
		Msg("turn classified")

	switch userIntent {
	case "credit_cards":
		response = b.handleCreditCardInquiry(input)
	case "loans":
		response = b.handleLoanInquiry(input)
	default:
		response = b.generateWithFallback(ctx, input)
	}

	response += "\n\n" + contactFooter(b.session.Language)
	b.session.SetLastResponse(response)
	return response
}

// handleCreditCardInquiry resolves card questions from keyword config and
// the catalog alone. Specific Visa variants are checked before Mastercard;
// the first matching group wins.
func (b *Bot) handleCreditCardInquiry(input string) string {
	lower := strings.ToLower(input)

	for _, group := range b.keywords.Visa {
		if matchesAny(lower, group.Phrases) {
			return b.showSpecificCard("Visa " + titleCase(group.Name))
		}
	}

	for _, group := range b.keywords.Mastercard {
		if matchesAny(lower, group.Phrases) {
			if group.Name == "first_lady" {
				return b.showSpecificCard("Mastercard Platinum First Lady")
			}
			return b.showSpecificCard("Mastercard " + titleCase(group.Name))
		}
	}

	visaMentioned := matchesAny(lower, b.keywords.Brands.Visa)
	mastercardMentioned := matchesAny(lower, b.keywords.Brands.Mastercard)

	switch {
	case visaMentioned && !mastercardMentioned:
		return b.showBrandCards("Visa")
	case mastercardMentioned && !visaMentioned:
		return b.showBrandCards("Mastercard")
	default:
		return b.showAllCreditCards()
	}
}

// handleLoanInquiry resolves loan questions from keyword config and the
// catalog alone. Exactly one mentioned loan type selects its category;
// anything else shows the overview.
func (b *Bot) handleLoanInquiry(input string) string {
	lower := strings.ToLower(input)

	var mentioned []string
	for _, group := range b.keywords.Loans {
		if matchesAny(lower, group.Phrases) {
			mentioned = append(mentioned, group.Name)
		}
	}

	if len(mentioned) == 1 {
		if category, ok := loanCategoryNames[mentioned[0]]; ok {
			return b.showLoanCategory(category)
		}
	}

	return b.showAllLoanCategories()
}

func (b *Bot) showSpecificCard(cardName string) string {
	product, ok := b.catalog.Get(catalog.NormalizeKey(cardName))
	if !ok {
		return cardNotFound(cardName, b.session.Language)
	}

	b.session.TrackInterest(product.Name)
	return b.composer.RenderSpecificProduct(product, b.session.Language)
}

func (b *Bot) showBrandCards(brand string) string {
	products := b.sortedProducts(b.catalog.CardBrand(brand))
	return b.composer.RenderProductList(
		brandListHeader(brand, b.session.Language),
		products,
		respond.CardSummary{},
		brandLinkLabel(b.session.Language),
		b.session.Language,
	)
}

func (b *Bot) showAllCreditCards() string {
	brands := b.sortedGroups(b.catalog.Cards())
	return b.composer.RenderAllCards(brands, b.session.Language)
}

func (b *Bot) showLoanCategory(category string) string {
	products := b.sortedProducts(b.catalog.LoanCategory(category))
	return b.composer.RenderProductList(
		loanCategoryHeader(category, b.session.Language),
		products,
		respond.LoanSummary{},
		loanLinkLabel(b.session.Language),
		b.session.Language,
	)
}

func (b *Bot) showAllLoanCategories() string {
	groups := b.sortedGroups(b.catalog.Loans())
	overview := b.composer.RenderCategoryOverview(groups, b.session.Language)
	return overview + loanCategoryHints(b.session.Language)
}

// generateWithFallback runs the response chain: AI generation with bounded
// retries, then semantic search rendering, then the no-info notice.
func (b *Bot) generateWithFallback(ctx context.Context, input string) string {
	if b.generator != nil && b.generator.Available() {
		if answer, ok := b.tryGenerate(ctx, input); ok {
			return answer
		}
	}
	return b.semanticFallback(ctx, input)
}

func (b *Bot) tryGenerate(ctx context.Context, input string) (string, bool) {
	products := b.retriever.Retrieve(ctx, input)

	prompt := generation.BuildPrompt(generation.PromptData{
		Language: b.session.Language,
		Question: input,
		History:  b.promptHistory(),
		Products: products,
	})

	attempts := b.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		answer, err := b.generator.Generate(ctx, prompt)
		if err == nil && answer != "" {
			return answer, true
		}
		b.logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Err(err).
			Msg("generation attempt failed")
	}

	return "", false
}

func (b *Bot) semanticFallback(ctx context.Context, input string) string {
	results := b.retriever.RetrieveN(ctx, input, fallbackRetrieveLimit)
	if len(results) == 0 {
		return noRelevantInfo(b.session.Language)
	}

	if len(results) > fallbackRenderLimit {
		results = results[:fallbackRenderLimit]
	}

	var sb strings.Builder
	sb.WriteString(semanticFallbackHeader(b.session.Language))
	sb.WriteString("\n\n")

	for i, res := range results {
		b.session.TrackInterest(res.Product.Name)
		sb.WriteString(strconv.Itoa(i+1) + ". **" + res.Product.Name + "**\n")
		if res.Product.Description != "" {
			sb.WriteString("   " + truncateRunes(res.Product.Description, fallbackDescRunes) + "\n\n")
		}
	}

	sb.WriteString(semanticFallbackFollowup(b.session.Language))
	return sb.String()
}

// promptHistory converts the recent turns for the prompt builder.
func (b *Bot) promptHistory() []generation.HistoryEntry {
	turns := b.session.RecentHistory(promptHistoryTurns)
	entries := make([]generation.HistoryEntry, 0, len(turns))
	for _, t := range turns {
		entries = append(entries, generation.HistoryEntry{User: t.Text, Bot: t.Response})
	}
	return entries
}

// sortedProducts resolves a raw category view into catalog products in
// stable name order.
func (b *Bot) sortedProducts(raw map[string]map[string]any) []*catalog.Product {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	products := make([]*catalog.Product, 0, len(names))
	for _, name := range names {
		if p, ok := b.catalog.Get(catalog.NormalizeKey(name)); ok {
			products = append(products, p)
		}
	}
	return products
}

// sortedGroups resolves a source tree into display groups in stable name
// order.
func (b *Bot) sortedGroups(tree catalog.SourceTree) []respond.Group {
	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]respond.Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, respond.Group{
			Name:     name,
			Products: b.sortedProducts(tree[name]),
		})
	}
	return groups
}

func matchesAny(lowerInput string, phrases []string) bool {
	for _, phrase := range phrases {
		if phrase != "" && strings.Contains(lowerInput, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
