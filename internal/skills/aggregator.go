package skills

import "math"

// Aggregator accumulates fractional skill deltas over an interview and
// applies them to a vector in one rounded step at the end. Accumulating in
// float and rounding once keeps a run of small updates from vanishing to
// zero question by question.
type Aggregator struct {
	deltas map[string]float64
}

// NewAggregator returns an empty accumulator.
func NewAggregator() *Aggregator {
	return &Aggregator{deltas: make(map[string]float64)}
}

// Record accumulates one answer's contribution: for each impacted axis,
// weight scaled by the answer score. A score of 100 contributes the full
// weight, a score of 0 contributes nothing. Unknown axes are ignored.
func (a *Aggregator) Record(impact map[string]int, score int) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	for axis, weight := range impact {
		if !IsAxis(axis) || weight <= 0 {
			continue
		}
		a.deltas[axis] += float64(weight) * float64(score) / 100
	}
}

// RecordUpdates accumulates oracle-supplied per-axis updates directly, each
// already in the 0-10 weight range.
func (a *Aggregator) RecordUpdates(updates map[string]float64) {
	for axis, delta := range updates {
		if !IsAxis(axis) {
			continue
		}
		a.deltas[axis] += delta
	}
}

// Deltas returns the rounded accumulated delta per axis. Axes that
// accumulated nothing are omitted.
func (a *Aggregator) Deltas() map[string]int {
	out := make(map[string]int, len(a.deltas))
	for axis, delta := range a.deltas {
		rounded := int(math.Round(delta))
		if rounded == 0 {
			continue
		}
		out[axis] = rounded
	}
	return out
}

// ApplyTo applies the rounded deltas to v, clamping each axis, and returns
// the applied deltas.
func (a *Aggregator) ApplyTo(v Vector) map[string]int {
	deltas := a.Deltas()
	for axis, delta := range deltas {
		v.Apply(axis, delta)
	}
	return deltas
}
