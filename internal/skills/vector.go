// Package skills models a candidate's skill profile as a fixed vector of
// named axes and turns per-answer assessments into profile updates.
package skills

import (
	"math/rand"
	"sort"
)

// The six axes every profile carries. Axis names double as JSON keys and as
// the skill_impact keys on questions.
const (
	Communication      = "communication"
	ProblemSolving     = "problem_solving"
	TechnicalExpertise = "technical_expertise"
	Adaptability       = "adaptability"
	CriticalThinking   = "critical_thinking"
	Confidence         = "confidence"
)

// Axes lists every skill axis in canonical order.
var Axes = []string{
	Communication,
	ProblemSolving,
	TechnicalExpertise,
	Adaptability,
	CriticalThinking,
	Confidence,
}

const (
	// MinLevel and MaxLevel bound every axis value.
	MinLevel = 0
	MaxLevel = 100

	// seedLow and seedHigh bound the starting level of a fresh profile.
	seedLow  = 40
	seedHigh = 70
)

// Vector is a skill profile: axis name to level in [MinLevel, MaxLevel].
// Only the canonical axes are ever present.
type Vector map[string]int

// NewVector returns a fresh profile with every axis seeded uniformly in
// [40, 70). The rand source is injected so tests can fix the levels; nil
// falls back to the global source.
func NewVector(rng *rand.Rand) Vector {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	v := make(Vector, len(Axes))
	for _, axis := range Axes {
		v[axis] = seedLow + intn(seedHigh-seedLow)
	}
	return v
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for axis, level := range v {
		out[axis] = level
	}
	return out
}

// IsAxis reports whether name is a canonical skill axis.
func IsAxis(name string) bool {
	for _, axis := range Axes {
		if axis == name {
			return true
		}
	}
	return false
}

// Apply adds delta to the named axis, clamping the result to the valid
// range. Unknown axes are ignored.
func (v Vector) Apply(axis string, delta int) {
	if !IsAxis(axis) {
		return
	}
	v[axis] = clampLevel(v[axis] + delta)
}

// Sorted returns (axis, level) pairs in canonical axis order, for stable
// serialization and display.
func (v Vector) Sorted() []AxisLevel {
	out := make([]AxisLevel, 0, len(Axes))
	for _, axis := range Axes {
		out = append(out, AxisLevel{Axis: axis, Level: v[axis]})
	}
	return out
}

// AxisLevel pairs an axis name with its level.
type AxisLevel struct {
	Axis  string `json:"axis"`
	Level int    `json:"level"`
}

// Strongest returns the n highest axes, ties broken by canonical order.
func (v Vector) Strongest(n int) []AxisLevel {
	levels := v.Sorted()
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Level > levels[j].Level
	})
	if n > len(levels) {
		n = len(levels)
	}
	return levels[:n]
}

// Weakest returns the n lowest axes, ties broken by canonical order.
func (v Vector) Weakest(n int) []AxisLevel {
	levels := v.Sorted()
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Level < levels[j].Level
	})
	if n > len(levels) {
		n = len(levels)
	}
	return levels[:n]
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
