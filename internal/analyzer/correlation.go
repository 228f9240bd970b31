package analyzer

import (
	"math"
	"sort"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

const dayFormat = "2006-01-02"

// Align intersects two series on the calendar dates where both carry a
// present value and returns the paired values in ascending date order. The
// two returned slices always have equal length.
func Align(a, b model.Series) (xs, ys []float64) {
	bValues := make(map[string]float64, len(b.Observations))
	for _, obs := range b.Observations {
		if obs.Valid {
			bValues[obs.Date.Format(dayFormat)] = obs.Value
		}
	}

	type pair struct {
		date string
		x, y float64
	}
	var pairs []pair
	for _, obs := range a.Observations {
		if !obs.Valid {
			continue
		}
		key := obs.Date.Format(dayFormat)
		if y, ok := bValues[key]; ok {
			pairs = append(pairs, pair{date: key, x: obs.Value, y: y})
		}
	}
	// ISO dates sort lexically.
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].date < pairs[j].date })

	xs = make([]float64, len(pairs))
	ys = make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i] = p.x
		ys[i] = p.y
	}
	return xs, ys
}

// Correlate computes the Pearson product-moment correlation over the dates
// where both series have present values. Means are taken over the aligned
// subset only, not over each full series. The result is undefined (never
// NaN or ±Inf) when fewer than two aligned points exist or either aligned
// subset is constant.
func Correlate(a, b model.Series) model.CorrelationResult {
	xs, ys := Align(a, b)
	res := model.CorrelationResult{SampleSize: len(xs)}
	if len(xs) < 2 {
		return res
	}

	meanX := kahanSum(xs) / float64(len(xs))
	meanY := kahanSum(ys) / float64(len(ys))

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return res
	}

	rho := cov / math.Sqrt(varX*varY)
	// Clamp rounding drift past the theoretical bounds.
	if rho > 1 {
		rho = 1
	} else if rho < -1 {
		rho = -1
	}
	res.Rho = rho
	res.Defined = true
	return res
}
