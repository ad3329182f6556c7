package stripefc

import (
	"strings"
	"time"
	"unicode"
)

// AccountType is a simplified bank account type
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeMortgage   AccountType = "mortgage"
	AccountTypeOther      AccountType = "other"
)

// Account is a linked bank account with its current balance in dollars
type Account struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            AccountType `json:"type"`
	Balance         float64     `json:"balance"`
	Currency        string      `json:"currency"`
	InstitutionName string      `json:"institutionName,omitempty"`
	LastFour        string      `json:"lastFour,omitempty"`
}

// Transaction is a bank transaction in dollars. Negative amounts are money
// out, positive amounts money in.
type Transaction struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"accountId"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	MerchantName string    `json:"merchantName,omitempty"`
	Amount       float64   `json:"amount"`
	Pending      bool      `json:"pending"`
}

// Transfer is an initiated ACH transfer between two linked accounts.
// Settlement typically takes 1-3 business days.
type Transfer struct {
	ID             string    `json:"id"`
	FromAccountID  string    `json:"fromAccountId"`
	ToAccountID    string    `json:"toAccountId"`
	Amount         float64   `json:"amount"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	IdempotencyKey string    `json:"idempotencyKey"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Wire types for the Stripe Financial Connections API.

type apiSession struct {
	ID       string `json:"id"`
	Accounts struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	} `json:"accounts"`
}

type apiAccount struct {
	ID                 string           `json:"id"`
	DisplayName        string           `json:"display_name"`
	InstitutionName    string           `json:"institution_name"`
	Last4              string           `json:"last4"`
	Category           string           `json:"category"`
	Subcategory        string           `json:"subcategory"`
	Status             string           `json:"status"`
	Balance            *apiBalance      `json:"balance"`
	Subscriptions      []string         `json:"subscriptions"`
	TransactionRefresh *apiRefreshState `json:"transaction_refresh"`
}

type apiBalance struct {
	AsOf int64 `json:"as_of"`
	// Current maps lowercase currency code to the balance in minor units
	Current map[string]int64 `json:"current"`
}

type apiRefreshState struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	LastAttemptedAt int64  `json:"last_attempted_at"`
}

type apiTransaction struct {
	ID           string `json:"id"`
	Account      string `json:"account"`
	Amount       int64  `json:"amount"` // minor units
	Currency     string `json:"currency"`
	Description  string `json:"description"`
	Status       string `json:"status"` // pending, posted, void
	TransactedAt int64  `json:"transacted_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

type apiTransactionList struct {
	Data    []*apiTransaction `json:"data"`
	HasMore bool              `json:"has_more"`
}

// simplifyAccountType maps Stripe's account subcategory to our simple types
func simplifyAccountType(subcategory string) AccountType {
	switch strings.ToLower(subcategory) {
	case "checking", "cash_management":
		return AccountTypeChecking
	case "savings":
		return AccountTypeSavings
	case "credit_card":
		return AccountTypeCreditCard
	case "brokerage":
		return AccountTypeInvestment
	case "loan":
		return AccountTypeLoan
	case "mortgage":
		return AccountTypeMortgage
	default:
		return AccountTypeOther
	}
}

// fallbackAccountName builds a display name for accounts without one,
// e.g. "credit_card" -> "Credit Card Account".
func fallbackAccountName(t AccountType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ") + " Account"
}
