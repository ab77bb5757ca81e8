package salary

import "strings"

// StaticBaseSource derives a base figure from configuration tables keyed by
// role, scaled by experience and location tier. The numbers are seed
// configuration, not market data.
type StaticBaseSource struct {
	roleBases map[string]map[string]float64
}

// NewStaticBaseSource returns the builtin base table.
func NewStaticBaseSource() *StaticBaseSource {
	return &StaticBaseSource{roleBases: roleBases}
}

// roleBases maps country to role to a yearly base at zero experience in a
// standard location.
var roleBases = map[string]map[string]float64{
	"IN": {
		"software_engineer": 800000,
		"data_scientist":    900000,
		"product_manager":   1200000,
		"designer":          600000,
		"devops_engineer":   850000,
	},
	"US": {
		"software_engineer": 95000,
		"data_scientist":    100000,
		"product_manager":   110000,
		"designer":          75000,
		"devops_engineer":   98000,
	},
	"UK": {
		"software_engineer": 45000,
		"data_scientist":    48000,
		"product_manager":   55000,
		"designer":          38000,
		"devops_engineer":   47000,
	},
}

// locationTiers scales the base for expensive or cheap locations. Unlisted
// locations use 1.0.
var locationTiers = map[string]float64{
	"bangalore":     1.15,
	"mumbai":        1.10,
	"delhi":         1.05,
	"san francisco": 1.35,
	"new york":      1.30,
	"seattle":       1.20,
	"london":        1.25,
	"remote":        0.95,
}

const (
	experienceStep = 0.08 // per year
	experienceCap  = 15   // years counted toward the multiplier
	fallbackRole   = "software_engineer"
)

// BaseFigure looks up the role base for the profile's country and scales it
// by experience and location. Unknown roles use the software engineer base;
// unknown countries use the default tax jurisdiction's table.
func (s *StaticBaseSource) BaseFigure(p Profile) float64 {
	country := strings.ToUpper(strings.TrimSpace(p.Country))
	bases, ok := s.roleBases[country]
	if !ok {
		bases = s.roleBases[DefaultCountry]
	}

	role := normalizeKey(p.Role)
	base, ok := bases[role]
	if !ok {
		base = bases[fallbackRole]
	}

	years := p.ExperienceYears
	if years < 0 {
		years = 0
	}
	if years > experienceCap {
		years = experienceCap
	}
	base *= 1 + float64(years)*experienceStep

	if tier, ok := locationTiers[normalizeKey(p.Location)]; ok {
		base *= tier
	}
	return base
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", "_")))
}
