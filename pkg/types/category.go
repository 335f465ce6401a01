// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category is one entry of the controlled category vocabulary that scraped
// central-bank publications are tagged with. The vocabulary is closed: every
// resolved document carries exactly one flag per Category.
type Category int

const (
	CategoryMonetaryPolicy Category = iota
	CategoryFinancialStability
	CategoryBankingSupervision
	CategoryPaymentSystems
	CategoryCurrency
	CategoryForeignExchange
	CategoryMarketOperations
	CategoryReserveManagement
	CategoryEconomicResearch
	CategoryStatistics
	CategoryAnnualReport
	CategorySpeeches
	CategoryPressReleases
	CategoryGovernance
	CategoryInternationalCooperation
	CategoryLegalRegulatory
	CategoryClimate
	CategoryFintech
	CategoryOther

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryMonetaryPolicy:           "Monetary Policy",
	CategoryFinancialStability:       "Financial Stability",
	CategoryBankingSupervision:       "Banking Supervision",
	CategoryPaymentSystems:           "Payment Systems",
	CategoryCurrency:                 "Currency",
	CategoryForeignExchange:          "Foreign Exchange",
	CategoryMarketOperations:         "Market Operations",
	CategoryReserveManagement:        "Reserve Management",
	CategoryEconomicResearch:         "Economic Research",
	CategoryStatistics:               "Statistics",
	CategoryAnnualReport:             "Annual Report",
	CategorySpeeches:                 "Speeches",
	CategoryPressReleases:            "Press Releases",
	CategoryGovernance:               "Institutional & Governance",
	CategoryInternationalCooperation: "International Cooperation",
	CategoryLegalRegulatory:          "Legal & Regulatory",
	CategoryClimate:                  "Climate & Sustainability",
	CategoryFintech:                  "Fintech & Innovation",
	CategoryOther:                    "Other",
}

// categoryKeys holds the normalized form of every name: lower-case words
// joined with '_', punctuation dropped.
var categoryKeys = [numCategories]string{
	CategoryMonetaryPolicy:           "monetary_policy",
	CategoryFinancialStability:       "financial_stability",
	CategoryBankingSupervision:       "banking_supervision",
	CategoryPaymentSystems:           "payment_systems",
	CategoryCurrency:                 "currency",
	CategoryForeignExchange:          "foreign_exchange",
	CategoryMarketOperations:         "market_operations",
	CategoryReserveManagement:        "reserve_management",
	CategoryEconomicResearch:         "economic_research",
	CategoryStatistics:               "statistics",
	CategoryAnnualReport:             "annual_report",
	CategorySpeeches:                 "speeches",
	CategoryPressReleases:            "press_releases",
	CategoryGovernance:               "institutional_governance",
	CategoryInternationalCooperation: "international_cooperation",
	CategoryLegalRegulatory:          "legal_regulatory",
	CategoryClimate:                  "climate_sustainability",
	CategoryFintech:                  "fintech_innovation",
	CategoryOther:                    "other",
}

var categoryByKey = make(map[string]Category, numCategories)

func init() {
	for c := range numCategories {
		categoryByKey[categoryKeys[c]] = c
	}
}

// Categories returns the full vocabulary in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c belongs to the vocabulary.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// String returns the display name of the category.
func (c Category) String() string {
	if !c.Valid() {
		return "Category(invalid)"
	}
	return categoryNames[c]
}

// Key returns the normalized name used as the metadata field key.
func (c Category) Key() string {
	if !c.Valid() {
		return ""
	}
	return categoryKeys[c]
}

// CategoryByKey returns the category whose normalized key is key. The key
// must already be normalized; free-text names go through resolve.ParseCategory.
func CategoryByKey(key string) (Category, bool) {
	c, ok := categoryByKey[key]
	return c, ok
}

// CategorySet holds one flag per vocabulary entry. The zero value has every
// flag cleared.
type CategorySet [numCategories]bool

// Add sets the flag for c. Invalid categories are ignored.
func (s *CategorySet) Add(c Category) {
	if c.Valid() {
		s[c] = true
	}
}

// Has reports whether the flag for c is set.
func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s[c]
}

// Members returns the set categories in declaration order.
func (s CategorySet) Members() []Category {
	var out []Category
	for i, set := range s {
		if set {
			out = append(out, Category(i))
		}
	}
	return out
}

// Flags returns the 0/1 value of every vocabulary entry keyed by Category.Key.
func (s CategorySet) Flags() map[string]int {
	out := make(map[string]int, numCategories)
	for i, set := range s {
		v := 0
		if set {
			v = 1
		}
		out[Category(i).Key()] = v
	}
	return out
}
