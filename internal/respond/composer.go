// Package respond renders product data into localized reply text. It is
// pure presentation: callers resolve all data before handing it over, and
// every renderer returns a string even on internal failure.
package respond

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/observability"
)

var (
	headerColor  = color.New(color.FgBlue)
	sectionColor = color.New(color.FgMagenta)
	tipColor     = color.New(color.FgYellow)
	linkColor    = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// SummaryExtractor produces a short summary line for one product. An empty
// result means no summary; extraction never fails the whole list.
type SummaryExtractor interface {
	Summarize(p *catalog.Product) string
}

// CardSummary extracts the limit, annual fee and cashback lines from a
// card description.
type CardSummary struct{}

// Summarize keeps up to three key detail lines from the semicolon-separated
// card description.
func (CardSummary) Summarize(p *catalog.Product) string {
	if p == nil || p.Description == "" {
		return ""
	}

	var keyInfo []string
	for _, line := range strings.Split(p.Description, ";") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if strings.Contains(lower, "лимит:") ||
			strings.Contains(lower, "годишна такса:") ||
			strings.Contains(lower, "cashback:") {
			keyInfo = append(keyInfo, line)
		}
	}

	if len(keyInfo) > 3 {
		keyInfo = keyInfo[:3]
	}
	return strings.Join(keyInfo, "\n   ")
}

// LoanSummary extracts the leading free-text lines from a loan description.
type LoanSummary struct{}

// Summarize keeps the first two non-empty lines that are not bullets.
func (LoanSummary) Summarize(p *catalog.Product) string {
	if p == nil || p.Description == "" {
		return ""
	}

	lines := strings.Split(p.Description, "\n")
	if len(lines) > 2 {
		lines = lines[:2]
	}

	var keyInfo []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "-") {
			keyInfo = append(keyInfo, line)
		}
	}

	return strings.Join(keyInfo, "\n   ")
}

// Group is a named set of products, ordered for display.
type Group struct {
	Name     string
	Products []*catalog.Product
}

// Composer renders localized product displays.
type Composer struct {
	logger *observability.Logger
}

// NewComposer creates a composer.
func NewComposer(logger *observability.Logger) *Composer {
	return &Composer{logger: logger}
}

// RenderProductList renders a header followed by one block per product:
// name, optional summary, optional link. An empty product list renders the
// localized no-products notice.
func (c *Composer) RenderProductList(header string, products []*catalog.Product, extractor SummaryExtractor, linkLabel, lang string) string {
	var sb strings.Builder
	sb.WriteString(headerColor.Sprintf("💳 %s", header))
	sb.WriteString("\n\n")

	if len(products) == 0 {
		sb.WriteString(tipColor.Sprint(noProductsNotice(lang)))
		return sb.String()
	}

	for _, p := range products {
		fmt.Fprintf(&sb, "🔹 **%s**\n", p.Name)

		if extractor != nil {
			if summary := extractor.Summarize(p); summary != "" {
				fmt.Fprintf(&sb, "   %s\n", summary)
			}
		}

		if link := p.Link(); link != "" {
			fmt.Fprintf(&sb, "   🔗 %s: %s\n\n", linkLabel, link)
		} else {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(tipColor.Sprint(productDetailsTip(lang)))
	return sb.String()
}

// RenderSpecificProduct renders the full detail view for one product. The
// description splits on "\n- ": the first segment is the benefits summary,
// each further segment one technical detail.
func (c *Composer) RenderSpecificProduct(p *catalog.Product, lang string) string {
	if p == nil {
		c.logger.Warn().Msg("specific product render called with no product")
		return errorColor.Sprint(renderingApology(lang))
	}

	var sb strings.Builder
	sb.WriteString(headerColor.Sprint(productInfoHeader(p.Name, lang)))
	sb.WriteString("\n\n")

	if p.Description != "" {
		sections := strings.Split(p.Description, "\n- ")
		for i, section := range sections {
			if i == 0 {
				fmt.Fprintf(&sb, "%s\n%s\n\n", keyBenefitsLabel(lang), strings.TrimSpace(section))
			} else {
				fmt.Fprintf(&sb, "%s\n- %s\n\n", technicalDetailsLabel(lang), strings.TrimSpace(section))
			}
		}
	}

	if link := p.Link(); link != "" {
		sb.WriteString(linkColor.Sprint(moreInfoLabel(lang) + link))
		sb.WriteString("\n\n")
	}

	sb.WriteString(tipColor.Sprint(compareTip(lang)))
	return sb.String()
}

// RenderCategoryOverview renders each category with its product count and
// up to three example names.
func (c *Composer) RenderCategoryOverview(groups []Group, lang string) string {
	var sb strings.Builder
	sb.WriteString(headerColor.Sprint(categoryOverviewHeader(lang)))
	sb.WriteString("\n\n")

	for _, group := range groups {
		fmt.Fprintf(&sb, "🔹 **%s** (%d %s)\n", group.Name, len(group.Products), productCountSuffix(lang))

		examples := group.Products
		if len(examples) > 3 {
			examples = examples[:3]
		}
		for _, p := range examples {
			fmt.Fprintf(&sb, "   • %s\n", p.Name)
		}

		if extra := len(group.Products) - 3; extra > 0 {
			fmt.Fprintf(&sb, "   • %s\n", moreProductsSuffix(extra, lang))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderAllCards renders the full card catalog grouped by brand.
func (c *Composer) RenderAllCards(brands []Group, lang string) string {
	var sb strings.Builder
	sb.WriteString(headerColor.Sprint(allCardsHeader(lang)))
	sb.WriteString("\n\n")

	extractor := CardSummary{}
	for _, brand := range brands {
		sb.WriteString(sectionColor.Sprint(brandSectionHeader(brand.Name, lang)))
		sb.WriteString("\n")

		for _, p := range brand.Products {
			fmt.Fprintf(&sb, "🔹 **%s**\n", p.Name)

			if summary := extractor.Summarize(p); summary != "" {
				fmt.Fprintf(&sb, "   %s\n", summary)
			}

			if link := p.Link(); link != "" {
				fmt.Fprintf(&sb, "   🔗 %s: %s\n\n", moreInfoShortLabel(lang), link)
			} else {
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString(tipColor.Sprint(cardDetailsTip(lang)))
	return sb.String()
}
