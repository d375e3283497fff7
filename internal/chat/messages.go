package chat

import "github.com/fibank-ai/bankbot/internal/language"

func enterQuestionPrompt(lang string) string {
	if lang == language.Bulgarian {
		return "💡 Моля, въведете вашия въпрос."
	}
	return "💡 Please enter your question."
}

func contactFooter(lang string) string {
	if lang == language.Bulgarian {
		return "📞 За повече информация: *2265 или посетете някой от нашите 119 клона в България."
	}
	return "📞 For more information: *2265 or visit any of our 119 branches in Bulgaria."
}

func genericErrorResponse(lang string) string {
	if lang == language.Bulgarian {
		return "Съжалявам, възникна грешка. Моля, опитайте отново."
	}
	return "Sorry, an error occurred. Please try again."
}

func cardNotFound(name, lang string) string {
	if lang == language.Bulgarian {
		return "Съжалявам, не намерих информация за " + name + "."
	}
	return "Sorry, I couldn't find information for " + name + "."
}

func brandListHeader(brand, lang string) string {
	if lang == language.Bulgarian {
		return "Всички налични " + brand + " карти от Fibank"
	}
	return "All available " + brand + " cards from Fibank"
}

func brandLinkLabel(lang string) string {
	if lang == language.Bulgarian {
		return "Повече информация"
	}
	return "More information"
}

func loanCategoryHeader(category, lang string) string {
	if lang == language.Bulgarian {
		return "Продукти от категория \"" + category + "\""
	}
	return "Products from category \"" + category + "\""
}

func loanLinkLabel(lang string) string {
	if lang == language.Bulgarian {
		return "За повече информация посетете"
	}
	return "For more information visit"
}

func loanCategoryHints(lang string) string {
	if lang == language.Bulgarian {
		return "За да видите конкретна категория, моля уточнете:\n" +
			"• \"Жилищни кредити\" или \"ипотечни кредити\"\n" +
			"• \"Потребителски кредити\"\n" +
			"• \"Овърдрафт\"\n" +
			"• \"Други кредити\"\n\n" +
			"Или можете да споменете конкретен продукт по име."
	}
	return "To see a specific category, please specify:\n" +
		"• \"Housing loans\" or \"mortgage loans\"\n" +
		"• \"Consumer loans\"\n" +
		"• \"Overdraft\"\n" +
		"• \"Other loans\"\n\n" +
		"Or you can mention a specific product by name."
}

func noRelevantInfo(lang string) string {
	if lang == language.Bulgarian {
		return "Съжалявам, не намерих релевантна информация за вашия въпрос. " +
			"Можете да попитате за кредитни карти или кредити."
	}
	return "Sorry, I couldn't find relevant information for your question. " +
		"You can ask about credit cards or loans."
}

func semanticFallbackHeader(lang string) string {
	if lang == language.Bulgarian {
		return "Въз основа на вашия въпрос, ето някои продукти, които биха могли да ви интересуват:"
	}
	return "Based on your question, here are some products that might interest you:"
}

func semanticFallbackFollowup(lang string) string {
	if lang == language.Bulgarian {
		return "Искате ли да научите повече за някой от тези продукти?"
	}
	return "Would you like to learn more about any of these products?"
}

func goodbyeMessage(lang string) string {
	if lang == language.Bulgarian {
		return "Довиждане! Благодарим ви, че избрахте Fibank! 🌟"
	}
	return "Goodbye! Thank you for choosing Fibank! 🌟"
}
