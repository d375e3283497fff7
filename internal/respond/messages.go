package respond

import (
	"strconv"

	"github.com/fibank-ai/bankbot/internal/language"
)

// Localized UI strings. Every pair keeps the Bulgarian text first since
// that is the primary audience.

func noProductsNotice(lang string) string {
	if lang == language.Bulgarian {
		return "Няма налични продукти в тази категория."
	}
	return "No products available in this category."
}

func productDetailsTip(lang string) string {
	if lang == language.Bulgarian {
		return "За повече детайли за конкретен продукт, просто го споменете по име."
	}
	return "For more details about a specific product, just mention it by name."
}

func cardDetailsTip(lang string) string {
	if lang == language.Bulgarian {
		return "За повече детайли за конкретна карта, просто я споменете по име."
	}
	return "For more details about a specific card, just mention it by name."
}

func productInfoHeader(name, lang string) string {
	if lang == language.Bulgarian {
		return "💳 Информация за " + name + ":"
	}
	return "💳 Information about " + name + ":"
}

func keyBenefitsLabel(lang string) string {
	if lang == language.Bulgarian {
		return "**Основни предимства:**"
	}
	return "**Key Benefits:**"
}

func technicalDetailsLabel(lang string) string {
	if lang == language.Bulgarian {
		return "**Технически детайли:**"
	}
	return "**Technical Details:**"
}

func moreInfoLabel(lang string) string {
	if lang == language.Bulgarian {
		return "🔗 За повече информация: "
	}
	return "🔗 For more information: "
}

func compareTip(lang string) string {
	if lang == language.Bulgarian {
		return "💡 Можете да попитате за други продукти или да сравните с друг продукт."
	}
	return "💡 You can ask about other products or compare with another product."
}

func categoryOverviewHeader(lang string) string {
	if lang == language.Bulgarian {
		return "💰 Предлагаме продукти в следните категории:"
	}
	return "💰 We offer products in the following categories:"
}

func productCountSuffix(lang string) string {
	if lang == language.Bulgarian {
		return "продукта"
	}
	return "products"
}

func moreProductsSuffix(n int, lang string) string {
	if lang == language.Bulgarian {
		return "и още " + strconv.Itoa(n) + " продукта..."
	}
	return "and " + strconv.Itoa(n) + " more products..."
}

func allCardsHeader(lang string) string {
	if lang == language.Bulgarian {
		return "💳 Всички налични кредитни карти от Fibank:"
	}
	return "💳 All available credit cards from Fibank:"
}

func brandSectionHeader(brand, lang string) string {
	if lang == language.Bulgarian {
		return "📱 " + brand + " карти:"
	}
	return "📱 " + brand + " cards:"
}

func moreInfoShortLabel(lang string) string {
	if lang == language.Bulgarian {
		return "Повече информация"
	}
	return "More info"
}

func renderingApology(lang string) string {
	if lang == language.Bulgarian {
		return "Съжалявам, възникна грешка при показването на продуктите."
	}
	return "Sorry, an error occurred while displaying the products."
}
