// Package catalog holds the in-memory product index built from the bank's
// product datasets.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Kind distinguishes the two product source datasets.
type Kind string

const (
	KindCreditCard Kind = "credit_card"
	KindCredit     Kind = "credit"
)

// DescriptionAttr is the raw attribute carrying the localized free-text
// product description in the source datasets.
const DescriptionAttr = "информация за продукта"

// LinkAttr is the raw attribute carrying the product detail URL.
const LinkAttr = "link"

// Product is one catalog entry. Products are immutable after load and owned
// by the Catalog.
type Product struct {
	Name          string
	Kind          Kind
	Category      string
	Description   string
	RawAttributes map[string]any
}

// Link returns the product detail URL, or "" when absent.
func (p *Product) Link() string {
	if v, ok := p.RawAttributes[LinkAttr].(string); ok {
		return v
	}
	return ""
}

// SourceTree is a two-level source dataset: category → product name →
// attribute mapping.
type SourceTree map[string]map[string]map[string]any

// Catalog is the unified product index plus the two source trees the keyword
// inquiry handlers render from.
type Catalog struct {
	products map[string]*Product
	cards    SourceTree
	loans    SourceTree
}

// Load reads the two catalog source files and builds the catalog. Missing or
// malformed files are fatal: the assistant must not start with a half-loaded
// catalog.
func Load(cardsPath, loansPath string) (*Catalog, error) {
	cards, err := readSource(cardsPath)
	if err != nil {
		return nil, fmt.Errorf("credit cards dataset: %w", err)
	}

	loans, err := readSource(loansPath)
	if err != nil {
		return nil, fmt.Errorf("credits dataset: %w", err)
	}

	return Build(cards, loans), nil
}

func readSource(path string) (SourceTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var tree SourceTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return tree, nil
}

// Build merges the two source datasets into a unified index keyed by
// normalized product name. Later writes win on key collision, loans after
// cards.
func Build(cards, loans SourceTree) *Catalog {
	c := &Catalog{
		products: make(map[string]*Product),
		cards:    cards,
		loans:    loans,
	}

	c.merge(cards, KindCreditCard)
	c.merge(loans, KindCredit)

	return c
}

func (c *Catalog) merge(tree SourceTree, kind Kind) {
	for category, entries := range tree {
		for name, attrs := range entries {
			description, _ := attrs[DescriptionAttr].(string)
			c.products[NormalizeKey(name)] = &Product{
				Name:          name,
				Kind:          kind,
				Category:      category,
				Description:   description,
				RawAttributes: attrs,
			}
		}
	}
}

// NormalizeKey strips the quote characters that vary between the datasets so
// the same product resolves to one key.
func NormalizeKey(name string) string {
	r := strings.NewReplacer(`"`, "", "„", "", "“", "", "”", "")
	return r.Replace(name)
}

// Get returns the product for a normalized key.
func (c *Catalog) Get(key string) (*Product, bool) {
	p, ok := c.products[key]
	return p, ok
}

// Len returns the number of indexed products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Keys returns the normalized keys of all indexed products. Order is not
// defined.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.products))
	for k := range c.products {
		keys = append(keys, k)
	}
	return keys
}

// Cards returns the credit card source tree (brand → card → attributes).
func (c *Catalog) Cards() SourceTree {
	return c.cards
}

// Loans returns the loan source tree (category → loan → attributes).
func (c *Catalog) Loans() SourceTree {
	return c.loans
}

// CardBrand returns the card entries for one brand, or nil.
func (c *Catalog) CardBrand(brand string) map[string]map[string]any {
	return c.cards[brand]
}

// Card returns the raw attributes of a specific card, or nil.
func (c *Catalog) Card(brand, name string) map[string]any {
	return c.cards[brand][name]
}

// LoanCategory returns the loan entries for one category, or nil.
func (c *Catalog) LoanCategory(category string) map[string]map[string]any {
	return c.loans[category]
}
