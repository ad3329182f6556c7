package budget

// Category is one of the fixed budgeting categories. Classification and
// allocation never produce a value outside this set.
type Category string

const (
	// Essential/Needs (50% of income)
	CategoryHousing        Category = "Housing"
	CategoryUtilities      Category = "Utilities"
	CategoryGroceries      Category = "Groceries"
	CategoryTransportation Category = "Transportation"
	CategoryInsurance      Category = "Insurance"
	CategoryMinimumDebt    Category = "Minimum Debt Payments"

	// Wants (30% of income)
	CategoryEatingOut     Category = "Eating Out"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategorySubscriptions Category = "Subscriptions"
	CategoryPersonalCare  Category = "Personal Care"

	// Savings & Goals (20% of income)
	CategoryEmergencyFund Category = "Emergency Fund"
	CategoryRetirement    Category = "Retirement"
	CategorySavingsGoals  Category = "Savings Goals"
	CategoryExtraDebt     Category = "Extra Debt Payments"

	// Other
	CategoryOther Category = "Other"
)

// CategoryInfo holds static metadata about a budget category
type CategoryInfo struct {
	Name              Category `json:"name"`
	Description       string   `json:"description"`
	TypicalPercentage float64  `json:"typicalPercentage"`
	IsEssential       bool     `json:"isEssential"`
	Examples          []string `json:"examples,omitempty"`
}

// allCategories fixes the iteration order used everywhere. Group accessors
// and the allocation engine filter this slice rather than ranging over the
// metadata map, so output ordering is stable across runs.
var allCategories = []Category{
	CategoryHousing,
	CategoryUtilities,
	CategoryGroceries,
	CategoryTransportation,
	CategoryInsurance,
	CategoryMinimumDebt,
	CategoryEatingOut,
	CategoryEntertainment,
	CategoryShopping,
	CategorySubscriptions,
	CategoryPersonalCare,
	CategoryEmergencyFund,
	CategoryRetirement,
	CategorySavingsGoals,
	CategoryExtraDebt,
	CategoryOther,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryHousing: {
		Name:              CategoryHousing,
		Description:       "Your home costs like rent or mortgage",
		TypicalPercentage: 30.0,
		IsEssential:       true,
		Examples:          []string{"Rent", "Mortgage payment", "Property tax", "HOA fees"},
	},
	CategoryUtilities: {
		Name:              CategoryUtilities,
		Description:       "Bills to keep your home running",
		TypicalPercentage: 5.0,
		IsEssential:       true,
		Examples:          []string{"Electric bill", "Gas/heating", "Water", "Internet", "Phone bill"},
	},
	CategoryGroceries: {
		Name:              CategoryGroceries,
		Description:       "Food you buy to cook at home",
		TypicalPercentage: 10.0,
		IsEssential:       true,
		Examples:          []string{"Supermarket", "Whole Foods", "Trader Joe's", "Costco"},
	},
	CategoryTransportation: {
		Name:              CategoryTransportation,
		Description:       "Getting around - car or public transit",
		TypicalPercentage: 15.0,
		IsEssential:       true,
		Examples:          []string{"Gas", "Car payment", "Car insurance", "Metro card", "Uber", "Parking"},
	},
	CategoryInsurance: {
		Name:              CategoryInsurance,
		Description:       "Protection for your health and life",
		TypicalPercentage: 5.0,
		IsEssential:       true,
		Examples:          []string{"Health insurance", "Life insurance", "Disability insurance"},
	},
	CategoryMinimumDebt: {
		Name:              CategoryMinimumDebt,
		Description:       "Required monthly payments on debts",
		TypicalPercentage: 5.0,
		IsEssential:       true,
		Examples:          []string{"Credit card minimum", "Student loan payment", "Personal loan"},
	},
	CategoryEatingOut: {
		Name:              CategoryEatingOut,
		Description:       "Restaurants and takeout",
		TypicalPercentage: 10.0,
		IsEssential:       false,
		Examples:          []string{"Restaurants", "Fast food", "Coffee shops", "Delivery", "Doordash"},
	},
	CategoryEntertainment: {
		Name:              CategoryEntertainment,
		Description:       "Fun activities and hobbies",
		TypicalPercentage: 5.0,
		IsEssential:       false,
		Examples:          []string{"Movies", "Concerts", "Games", "Sports tickets", "Hobbies"},
	},
	CategoryShopping: {
		Name:              CategoryShopping,
		Description:       "Clothes and things you want but don't need",
		TypicalPercentage: 10.0,
		IsEssential:       false,
		Examples:          []string{"Clothes", "Electronics", "Amazon", "Target", "Home decor"},
	},
	CategorySubscriptions: {
		Name:              CategorySubscriptions,
		Description:       "Monthly services and memberships",
		TypicalPercentage: 3.0,
		IsEssential:       false,
		Examples:          []string{"Netflix", "Spotify", "Gym membership", "Amazon Prime"},
	},
	CategoryPersonalCare: {
		Name:              CategoryPersonalCare,
		Description:       "Taking care of yourself",
		TypicalPercentage: 2.0,
		IsEssential:       false,
		Examples:          []string{"Haircuts", "Salon", "Cosmetics", "Skincare"},
	},
	CategoryEmergencyFund: {
		Name:              CategoryEmergencyFund,
		Description:       "Money saved for unexpected problems",
		TypicalPercentage: 10.0,
		IsEssential:       true,
		Examples:          []string{"Savings account transfer", "Emergency savings"},
	},
	CategoryRetirement: {
		Name:              CategoryRetirement,
		Description:       "Saving for when you stop working",
		TypicalPercentage: 5.0,
		IsEssential:       true,
		Examples:          []string{"401k", "IRA", "Roth IRA"},
	},
	CategorySavingsGoals: {
		Name:              CategorySavingsGoals,
		Description:       "Saving for specific things you want",
		TypicalPercentage: 5.0,
		IsEssential:       true,
		Examples:          []string{"Vacation fund", "New car fund", "House down payment"},
	},
	CategoryExtraDebt: {
		Name:              CategoryExtraDebt,
		Description:       "Paying extra to get rid of debt faster",
		TypicalPercentage: 5.0,
		IsEssential:       true,
		Examples:          []string{"Extra credit card payment", "Extra student loan payment"},
	},
	CategoryOther: {
		Name:              CategoryOther,
		Description:       "Other expenses that don't fit elsewhere",
		TypicalPercentage: 5.0,
		IsEssential:       false,
		Examples:          []string{"Gifts", "Donations", "Misc"},
	},
}

// 50/30/20 rule
const (
	needsShare   = 0.50
	wantsShare   = 0.30
	savingsShare = 0.20
)

// Valid reports whether c is a member of the fixed category set
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns static metadata for the category. The second return value is
// false for values outside the fixed set.
func (c Category) Info() (CategoryInfo, bool) {
	info, ok := categoryInfo[c]
	return info, ok
}

// AllCategories returns every category in its fixed order
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// EssentialCategories returns the needs categories. Savings-type categories
// are excluded even though their metadata marks them essential.
func EssentialCategories() []Category {
	var out []Category
	for _, c := range allCategories {
		if categoryInfo[c].IsEssential && !isSavingsCategory(c) {
			out = append(out, c)
		}
	}
	return out
}

// WantsCategories returns the discretionary categories
func WantsCategories() []Category {
	var out []Category
	for _, c := range allCategories {
		if !categoryInfo[c].IsEssential {
			out = append(out, c)
		}
	}
	return out
}

// SavingsCategories returns the savings and goal categories. This set is
// fixed rather than derived from the essential flag.
func SavingsCategories() []Category {
	return []Category{
		CategoryEmergencyFund,
		CategoryRetirement,
		CategorySavingsGoals,
		CategoryExtraDebt,
	}
}

func isSavingsCategory(c Category) bool {
	switch c {
	case CategoryEmergencyFund, CategoryRetirement, CategorySavingsGoals, CategoryExtraDebt:
		return true
	}
	return false
}
