package mathgen

import (
	"math"
	"math/rand"
	"sort"
)

// integer-valued parameter names (counts, compounding frequency)
func isIntegerParam(name string) bool {
	return name == "n" || name == "k" || name == "compounds_per_year"
}

// currency-amount parameter names, rounded to the nearest 100 units
func isMoneyParam(name string) bool {
	return name == "fv" || name == "pv" || name == "principal"
}

// GenerateParams samples a parameter assignment within the template's
// declared ranges. The random source is injected so callers (and tests)
// control determinism. Parameter names are visited in sorted order, which
// keeps a seeded source reproducible.
//
// Rounding per parameter kind:
//   - counts (n, k, compounds_per_year): uniform integer
//   - probability (p) and rate: uniform float, 2 decimals
//   - currency amounts (fv, pv, principal): uniform float, nearest 100
//   - anything else: uniform float, 1 decimal
//
// If both a trial count n and a success count k are present, k is clamped
// to not exceed n.
func (t *Template) GenerateParams(rng *rand.Rand) Params {
	names := make([]string, 0, len(t.ParamRanges))
	for name := range t.ParamRanges {
		names = append(names, name)
	}
	sort.Strings(names)

	params := Params{}
	for _, name := range names {
		r := t.ParamRanges[name]
		switch {
		case isIntegerParam(name):
			params[name] = float64(int(r.Min) + rng.Intn(int(r.Max)-int(r.Min)+1))
		case name == "p" || name == "rate":
			params[name] = roundTo(uniform(rng, r), 2)
		case isMoneyParam(name):
			params[name] = math.Round(uniform(rng, r)/100) * 100
		default:
			params[name] = roundTo(uniform(rng, r), 1)
		}
	}

	if k, hasK := params["k"]; hasK {
		if n, hasN := params["n"]; hasN && k > n {
			params["k"] = n
		}
	}

	return params
}

func uniform(rng *rand.Rand, r Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
