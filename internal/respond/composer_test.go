package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/language"
	"github.com/fibank-ai/bankbot/internal/observability"
)

func cardProduct() *catalog.Product {
	return &catalog.Product{
		Name: "Visa Gold",
		Kind: catalog.KindCreditCard,
		Description: "Златна карта за ежедневни плащания; Кредитен лимит: до 20000 лв.; Годишна такса: 60 лв.; Cashback: 1%; Валидност: 4 години",
		RawAttributes: map[string]any{
			catalog.LinkAttr: "https://fibank.bg/visa-gold",
		},
	}
}

func loanProduct() *catalog.Product {
	return &catalog.Product{
		Name: "Кредит Комфорт",
		Kind: catalog.KindCredit,
		Description: "Потребителски кредит до 80000 лева\nБез поръчители\n- срок до 10 години\n- фиксирана лихва",
	}
}

func TestCardSummaryKeepsKeyLines(t *testing.T) {
	summary := CardSummary{}.Summarize(cardProduct())

	assert.Contains(t, summary, "Кредитен лимит: до 20000 лв.")
	assert.Contains(t, summary, "Годишна такса: 60 лв.")
	assert.Contains(t, summary, "Cashback: 1%")
	assert.NotContains(t, summary, "Валидност")
	assert.NotContains(t, summary, "ежедневни плащания")
}

func TestCardSummaryCapsAtThreeLines(t *testing.T) {
	p := &catalog.Product{
		Description: "Лимит: а; Лимит: б; Лимит: в; Лимит: г",
	}

	summary := CardSummary{}.Summarize(p)
	assert.NotContains(t, summary, "Лимит: г")
}

func TestCardSummaryEmptyDescription(t *testing.T) {
	assert.Empty(t, CardSummary{}.Summarize(&catalog.Product{}))
	assert.Empty(t, CardSummary{}.Summarize(nil))
}

func TestLoanSummaryTakesLeadingLines(t *testing.T) {
	summary := LoanSummary{}.Summarize(loanProduct())

	assert.Contains(t, summary, "Потребителски кредит до 80000 лева")
	assert.Contains(t, summary, "Без поръчители")
	assert.NotContains(t, summary, "срок до 10 години")
}

func TestLoanSummarySkipsBullets(t *testing.T) {
	p := &catalog.Product{Description: "- само булети\n- навсякъде"}
	assert.Empty(t, LoanSummary{}.Summarize(p))
}

func TestRenderProductList(t *testing.T) {
	c := NewComposer(observability.Nop())

	out := c.RenderProductList("Всички Visa карти", []*catalog.Product{cardProduct()}, CardSummary{}, "Повече информация", language.Bulgarian)

	assert.Contains(t, out, "Всички Visa карти")
	assert.Contains(t, out, "**Visa Gold**")
	assert.Contains(t, out, "Кредитен лимит")
	assert.Contains(t, out, "https://fibank.bg/visa-gold")
	assert.Contains(t, out, "просто го споменете по име")
}

func TestRenderProductListEmpty(t *testing.T) {
	c := NewComposer(observability.Nop())

	out := c.RenderProductList("Карти", nil, CardSummary{}, "линк", language.Bulgarian)
	assert.Contains(t, out, "Няма налични продукти в тази категория.")

	out = c.RenderProductList("Cards", nil, CardSummary{}, "link", language.English)
	assert.Contains(t, out, "No products available in this category.")
}

func TestRenderProductListNilExtractor(t *testing.T) {
	c := NewComposer(observability.Nop())

	out := c.RenderProductList("Карти", []*catalog.Product{cardProduct()}, nil, "линк", language.Bulgarian)
	assert.Contains(t, out, "**Visa Gold**")
}

func TestRenderSpecificProductSections(t *testing.T) {
	c := NewComposer(observability.Nop())

	p := &catalog.Product{
		Name:        "Visa Platinum",
		Description: "Премиум карта с консиерж услуги\n- лимит до 50000 лв.\n- годишна такса 200 лв.",
		RawAttributes: map[string]any{
			catalog.LinkAttr: "https://fibank.bg/visa-platinum",
		},
	}

	out := c.RenderSpecificProduct(p, language.Bulgarian)

	assert.Contains(t, out, "Информация за Visa Platinum")
	assert.Contains(t, out, "**Основни предимства:**")
	assert.Contains(t, out, "Премиум карта с консиерж услуги")
	assert.Contains(t, out, "**Технически детайли:**")
	assert.Contains(t, out, "- лимит до 50000 лв.")
	assert.Contains(t, out, "https://fibank.bg/visa-platinum")
}

func TestRenderSpecificProductEnglishLabels(t *testing.T) {
	c := NewComposer(observability.Nop())

	out := c.RenderSpecificProduct(cardProduct(), language.English)
	assert.Contains(t, out, "**Key Benefits:**")
	assert.Contains(t, out, "Information about Visa Gold")
}

func TestRenderSpecificProductNilIsApology(t *testing.T) {
	c := NewComposer(observability.Nop())

	out := c.RenderSpecificProduct(nil, language.Bulgarian)
	assert.Contains(t, out, "възникна грешка")
}

func TestRenderCategoryOverview(t *testing.T) {
	c := NewComposer(observability.Nop())

	products := make([]*catalog.Product, 5)
	for i := range products {
		products[i] = &catalog.Product{Name: "Кредит " + string(rune('А'+i))}
	}

	out := c.RenderCategoryOverview([]Group{
		{Name: "Потребителски кредити", Products: products},
		{Name: "Овърдрафт", Products: products[:1]},
	}, language.Bulgarian)

	assert.Contains(t, out, "**Потребителски кредити** (5 продукта)")
	assert.Contains(t, out, "Кредит А")
	assert.Contains(t, out, "Кредит В")
	assert.NotContains(t, out, "Кредит Г")
	assert.Contains(t, out, "и още 2 продукта...")
	assert.Contains(t, out, "**Овърдрафт** (1 продукта)")
}

func TestRenderAllCardsHasBrandSections(t *testing.T) {
	c := NewComposer(observability.Nop())

	out := c.RenderAllCards([]Group{
		{Name: "Visa", Products: []*catalog.Product{cardProduct()}},
		{Name: "Mastercard", Products: []*catalog.Product{{Name: "Mastercard Gold"}}},
	}, language.Bulgarian)

	require.Contains(t, out, "Всички налични кредитни карти от Fibank")
	assert.Contains(t, out, "Visa карти:")
	assert.Contains(t, out, "Mastercard карти:")
	assert.Contains(t, out, "**Visa Gold**")
	assert.Contains(t, out, "**Mastercard Gold**")
}
