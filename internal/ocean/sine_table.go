package ocean

import "math"

const sineTableSize = 8192

// SineTable is a precalculated periodic function over one period [0, 1),
// sampled at sineTableSize points and read back with linear interpolation.
type SineTable struct {
	table [sineTableSize + 1]float32
}

// Recalculate rebuilds the table from fn, which is evaluated over [0, 1].
// The extra trailing entry keeps interpolation at the period end in range.
func (st *SineTable) Recalculate(fn func(x float64) float64) {
	for i := 0; i <= sineTableSize; i++ {
		st.table[i] = float32(fn(float64(i) / sineTableSize))
	}
}

// LinearlyInterpolatedPeriodic returns the table value at x periods, for
// any real x.
func (st *SineTable) LinearlyInterpolatedPeriodic(x float64) float32 {
	pos := x * sineTableSize
	whole := math.Floor(pos)
	frac := float32(pos - whole)
	i := int64(whole) & (sineTableSize - 1)
	return st.table[i] + (st.table[i+1]-st.table[i])*frac
}
