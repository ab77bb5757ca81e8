package salary

import "strings"

// Profile is the input to one estimate. Immutable per calculation.
type Profile struct {
	Role            string   `json:"role"`
	ExperienceYears int      `json:"experience_years"`
	Location        string   `json:"location"`
	Country         string   `json:"country"`
	Education       string   `json:"education,omitempty"`
	Skills          []string `json:"skills,omitempty"`

	// Bonuses are yearly amounts added to gross (signing, performance).
	Bonuses map[string]float64 `json:"bonuses,omitempty"`

	// PreTaxDeductions reduce taxable income; PostTaxDeductions reduce
	// net pay after tax.
	PreTaxDeductions  map[string]float64 `json:"pre_tax_deductions,omitempty"`
	PostTaxDeductions map[string]float64 `json:"post_tax_deductions,omitempty"`
}

// Allowance caps and rates for the gross computation.
const (
	hraRate        = 0.50
	hraCap         = 600000
	ltaRate        = 0.10
	ltaCap         = 50000
	specialRate    = 0.30
	rangeLowRatio  = 0.85
	rangeHighRatio = 1.15
)

// Breakdown itemizes the gross computation.
type Breakdown struct {
	Base             float64 `json:"base"`
	HRA              float64 `json:"hra"`
	LTA              float64 `json:"lta"`
	SpecialAllowance float64 `json:"special_allowance"`
	Bonuses          float64 `json:"bonuses"`
}

// MarketView positions the estimate against a salary band. The percentiles
// are fixed multiplicative offsets of the computed gross, not statistics
// over real market data; they exist to render a comparison widget.
type MarketView struct {
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	Average      float64 `json:"average"`
}

// Result is one complete estimate.
type Result struct {
	Breakdown  Breakdown  `json:"breakdown"`
	Gross      float64    `json:"gross"`
	Tax        TaxDetail  `json:"tax"`
	NetYearly  float64    `json:"net_yearly"`
	NetMonthly float64    `json:"net_monthly"`
	RangeMin   float64    `json:"range_min"`
	RangeMax   float64    `json:"range_max"`
	Median     float64    `json:"median"`
	Market     MarketView `json:"market"`
	Currency   string     `json:"currency"`
}

// BaseSource supplies the base yearly figure for a profile. The static
// table below is the builtin implementation; a deployment can swap in a
// live source.
type BaseSource interface {
	BaseFigure(p Profile) float64
}

// Estimator turns a profile into a salary estimate.
type Estimator struct {
	base BaseSource

	// DefaultCountry substitutes for an empty profile country. Empty
	// means the package default jurisdiction.
	DefaultCountry string
}

// NewEstimator creates an estimator over the given base source; nil uses
// the builtin static table.
func NewEstimator(base BaseSource) *Estimator {
	if base == nil {
		base = NewStaticBaseSource()
	}
	return &Estimator{base: base}
}

// Estimate is a pure computation: the same profile always yields the same
// result.
func (e *Estimator) Estimate(p Profile) Result {
	if strings.TrimSpace(p.Country) == "" && e.DefaultCountry != "" {
		p.Country = e.DefaultCountry
	}

	base := e.base.BaseFigure(p)

	b := Breakdown{
		Base:             base,
		HRA:              capAt(base*hraRate, hraCap),
		LTA:              capAt(base*ltaRate, ltaCap),
		SpecialAllowance: base * specialRate,
		Bonuses:          sumValues(p.Bonuses),
	}
	gross := b.Base + b.HRA + b.LTA + b.SpecialAllowance + b.Bonuses

	tax := Tax(gross, p.Country, sumValues(p.PreTaxDeductions))

	netYearly := gross - tax.TaxAmount - sumValues(p.PostTaxDeductions)
	rangeMin := round2(gross * rangeLowRatio)
	rangeMax := round2(gross * rangeHighRatio)

	return Result{
		Breakdown:  b,
		Gross:      round2(gross),
		Tax:        tax,
		NetYearly:  round2(netYearly),
		NetMonthly: round2(netYearly / 12),
		RangeMin:   rangeMin,
		RangeMax:   rangeMax,
		Median:     round2(gross),
		Market: MarketView{
			Percentile25: rangeMin,
			Percentile75: rangeMax,
			Average:      round2((rangeMin + rangeMax) / 2),
		},
		Currency: CurrencyFor(p.Country),
	}
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func sumValues(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}
