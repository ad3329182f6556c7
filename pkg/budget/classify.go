package budget

import "strings"

// keywordRule matches a category when any keyword appears in the transaction
// text and none of the excluded words do.
type keywordRule struct {
	category Category
	keywords []string
	exclude  []string
}

// classifierRules are evaluated in order and the first match wins. The order
// is load-bearing: keywords overlap ("gas" appears under both Utilities and
// Transportation) and earlier rules take priority.
var classifierRules = []keywordRule{
	{
		category: CategoryHousing,
		keywords: []string{"rent", "mortgage", "property tax", "hoa"},
	},
	{
		category: CategoryUtilities,
		keywords: []string{"electric", "pg&e", "gas", "water", "internet", "comcast", "verizon", "at&t", "t-mobile", "phone bill"},
	},
	{
		category: CategoryGroceries,
		keywords: []string{"grocery", "supermarket", "whole foods", "trader joe", "safeway", "kroger", "walmart grocery", "costco", "target grocery"},
	},
	{
		category: CategoryTransportation,
		keywords: []string{"gas", "shell", "chevron", "bp", "exxon", "uber", "lyft", "parking", "metro", "transit", "car payment", "auto insurance"},
	},
	{
		category: CategoryInsurance,
		keywords: []string{"health insurance", "life insurance", "disability insurance", "insurance premium"},
		exclude:  []string{"auto", "car"},
	},
	{
		category: CategoryMinimumDebt,
		keywords: []string{"credit card payment", "loan payment", "student loan", "minimum payment"},
	},
	{
		category: CategoryEatingOut,
		keywords: []string{"restaurant", "cafe", "coffee", "starbucks", "chipotle", "mcdonald", "pizza", "doordash", "uber eats", "grubhub", "takeout"},
	},
	{
		category: CategoryEntertainment,
		keywords: []string{"movie", "cinema", "netflix", "spotify", "hulu", "concert", "theater", "game", "steam", "xbox", "playstation"},
	},
	{
		category: CategoryShopping,
		keywords: []string{"amazon", "target", "walmart", "best buy", "clothing", "clothes", "apparel", "electronics"},
	},
	{
		category: CategorySubscriptions,
		keywords: []string{"subscription", "membership", "gym", "planet fitness", "amazon prime"},
	},
	{
		category: CategoryPersonalCare,
		keywords: []string{"salon", "haircut", "barber", "spa", "cosmetic", "sephora", "ulta"},
	},
}

// savingsKeywords trigger the savings disambiguation step
var savingsKeywords = []string{"transfer to savings", "emergency fund", "401k", "ira", "retirement"}

// Classify maps a transaction's merchant and description to exactly one
// category. The function is pure and deterministic; text that matches no
// rule resolves to CategoryOther.
func Classify(merchant, description string) Category {
	text := strings.ToLower(merchant + " " + description)

	for _, rule := range classifierRules {
		if rule.matches(text) {
			return rule.category
		}
	}

	// Savings transfers get split between the emergency fund, retirement,
	// and named goals based on what the text mentions.
	if containsAny(text, savingsKeywords) {
		switch {
		case strings.Contains(text, "emergency"):
			return CategoryEmergencyFund
		case strings.Contains(text, "retirement"),
			strings.Contains(text, "401k"),
			strings.Contains(text, "ira"):
			return CategoryRetirement
		default:
			return CategorySavingsGoals
		}
	}

	return CategoryOther
}

func (r keywordRule) matches(text string) bool {
	if !containsAny(text, r.keywords) {
		return false
	}
	return !containsAny(text, r.exclude)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
