// Package salary computes salary estimates: gross pay from a base figure
// plus allowances, progressive income tax per country, and net pay. All of
// it is pure computation over static configuration tables.
package salary

import "math"

// Bracket taxes the slice of income in [Min, Max) at Rate. Tables are
// sorted ascending, contiguous, and end with an unbounded top bracket.
type Bracket struct {
	Min  float64
	Max  float64 // math.Inf(1) for the top bracket
	Rate float64
}

// countryTable is the tax configuration for one jurisdiction.
type countryTable struct {
	brackets          []Bracket
	standardDeduction float64

	// surchargeAbove adds surchargeRate of the computed tax when gross
	// income exceeds it; zero disables the surcharge.
	surchargeAbove float64
	surchargeRate  float64

	// cessRate is a flat levy on the final tax amount.
	cessRate float64

	currency string
}

// DefaultCountry is used when a country code has no table of its own.
const DefaultCountry = "IN"

var countryTables = map[string]countryTable{
	"IN": {
		brackets: []Bracket{
			{0, 250000, 0},
			{250000, 500000, 0.05},
			{500000, 750000, 0.10},
			{750000, 1000000, 0.15},
			{1000000, 1250000, 0.20},
			{1250000, 1500000, 0.25},
			{1500000, math.Inf(1), 0.30},
		},
		standardDeduction: 50000,
		surchargeAbove:    5000000,
		surchargeRate:     0.10,
		cessRate:          0.04,
		currency:          "INR",
	},
	"US": {
		brackets: []Bracket{
			{0, 10275, 0.10},
			{10275, 41775, 0.12},
			{41775, 89075, 0.22},
			{89075, 170050, 0.24},
			{170050, 215950, 0.32},
			{215950, 539900, 0.35},
			{539900, math.Inf(1), 0.37},
		},
		standardDeduction: 12950,
		currency:          "USD",
	},
	"UK": {
		brackets: []Bracket{
			{0, 12570, 0},
			{12570, 50270, 0.20},
			{50270, 150000, 0.40},
			{150000, math.Inf(1), 0.45},
		},
		standardDeduction: 12570,
		currency:          "GBP",
	},
}

// tableFor returns the country's table, falling back to the default for
// unknown codes. Unknown countries are expected input, not an error.
func tableFor(country string) countryTable {
	if t, ok := countryTables[country]; ok {
		return t
	}
	return countryTables[DefaultCountry]
}

// Countries lists the jurisdictions with their own tax table.
func Countries() []string {
	return []string{"IN", "UK", "US"}
}

// TaxDetail is the result of one tax computation.
type TaxDetail struct {
	GrossIncome      float64 `json:"gross_income"`
	TaxableIncome    float64 `json:"taxable_income"`
	TaxAmount        float64 `json:"tax_amount"`
	EffectiveRatePct float64 `json:"effective_tax_rate"`
}

// Tax applies the country's progressive brackets to income after the
// standard deduction and any extra pre-tax deductions. Each bracket taxes
// only its own slice.
func Tax(grossIncome float64, country string, preTaxDeductions float64) TaxDetail {
	t := tableFor(country)

	taxable := grossIncome - t.standardDeduction - preTaxDeductions
	if taxable < 0 {
		taxable = 0
	}

	tax := 0.0
	for _, b := range t.brackets {
		if taxable <= b.Min {
			break
		}
		upper := math.Min(taxable, b.Max)
		tax += (upper - b.Min) * b.Rate
	}

	if t.surchargeAbove > 0 && grossIncome > t.surchargeAbove {
		tax += tax * t.surchargeRate
	}
	tax *= 1 + t.cessRate

	detail := TaxDetail{
		GrossIncome:   grossIncome,
		TaxableIncome: taxable,
		TaxAmount:     round2(tax),
	}
	if grossIncome > 0 {
		detail.EffectiveRatePct = round2(tax / grossIncome * 100)
	}
	return detail
}

// CurrencyFor returns the ISO currency code for a country, with the default
// table's currency for unknown codes.
func CurrencyFor(country string) string {
	return tableFor(country).currency
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
