package mathgen

import (
	"math"
	"math/rand"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	tmpl, ok := Get("poisson_pmf")
	if !ok {
		t.Fatal("poisson_pmf should exist in the registry")
	}
	if tmpl.Topic != "probability" {
		t.Errorf("Topic = %q, want probability", tmpl.Topic)
	}

	if _, ok := Get("no_such_template"); ok {
		t.Error("unknown type id should not resolve")
	}
}

func TestRegistryTopics(t *testing.T) {
	topics := Topics()
	if len(topics) != 2 || topics[0] != "finance" || topics[1] != "probability" {
		t.Errorf("Topics() = %v, want [finance probability]", topics)
	}

	for _, tmpl := range ByTopic("finance") {
		if tmpl.Topic != "finance" {
			t.Errorf("ByTopic(finance) returned %s with topic %s", tmpl.TypeID, tmpl.Topic)
		}
	}

	if len(TypeIDs("")) != len(All()) {
		t.Error("TypeIDs with no topic should cover the whole registry")
	}
}

func TestGenerateParamsWithinRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, tmpl := range All() {
		for i := 0; i < 100; i++ {
			params := tmpl.GenerateParams(rng)
			for name, r := range tmpl.ParamRanges {
				v, ok := params[name]
				if !ok {
					t.Fatalf("%s: missing parameter %s", tmpl.TypeID, name)
				}
				if v < r.Min || v > r.Max {
					t.Errorf("%s: %s = %v outside [%v, %v]", tmpl.TypeID, name, v, r.Min, r.Max)
				}
			}
		}
	}
}

func TestGenerateParamsIntegerCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tmpl, _ := Get("compound_interest")

	for i := 0; i < 50; i++ {
		params := tmpl.GenerateParams(rng)
		if v := params["compounds_per_year"]; v != math.Trunc(v) {
			t.Errorf("compounds_per_year = %v, want integer", v)
		}
		// money rounded to the nearest 100
		if v := params["principal"]; math.Mod(v, 100) != 0 {
			t.Errorf("principal = %v, want multiple of 100", v)
		}
	}
}

func TestGenerateParamsSuccessCountClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tmpl, _ := Get("binomial_pmf")

	for i := 0; i < 500; i++ {
		params := tmpl.GenerateParams(rng)
		if params["k"] > params["n"] {
			t.Fatalf("generated k = %v exceeds n = %v", params["k"], params["n"])
		}
	}
}

func TestGenerateParamsDeterministicWithSeed(t *testing.T) {
	tmpl, _ := Get("normal_cdf")

	a := tmpl.GenerateParams(rand.New(rand.NewSource(99)))
	b := tmpl.GenerateParams(rand.New(rand.NewSource(99)))

	for name := range tmpl.ParamRanges {
		if a[name] != b[name] {
			t.Errorf("%s differs across identically seeded sources: %v vs %v", name, a[name], b[name])
		}
	}
}

func TestComputeAnswerKnownValues(t *testing.T) {
	tests := []struct {
		typeID string
		params Params
		want   float64
		within float64
	}{
		// P(X = 8) for Poisson(12)
		{"poisson_pmf", Params{"lambda": 12, "k": 8}, 0.0655, 1e-3},
		// P(X <= 10) for Poisson(15)
		{"poisson_cdf", Params{"lambda": 15, "k": 10}, 0.1185, 1e-3},
		// P(X = 7) for Binomial(10, 0.7)
		{"binomial_pmf", Params{"n": 10, "p": 0.7, "k": 7}, 0.2668, 1e-3},
		// P(X <= 180) for Normal(175, 10)
		{"normal_cdf", Params{"mu": 175, "sigma": 10, "x": 180}, 0.6915, 1e-3},
		// z = (84 - 72) / 8
		{"normal_zscore", Params{"mu": 72, "sigma": 8, "x": 84}, 1.5, 1e-9},
		// P(X <= 0.5) for Exponential(2)
		{"exponential_cdf", Params{"lambda": 2, "x": 0.5}, 0.6321, 1e-3},
		// P(X > 5) for Exponential(0.25)
		{"exponential_survival", Params{"lambda": 0.25, "x": 5}, 0.2865, 1e-3},
		// 50000 / 1.06^10
		{"present_value", Params{"fv": 50000, "r": 0.06, "n": 10}, 27919.74, 0.01},
		// 10000 * 1.05^15
		{"future_value", Params{"pv": 10000, "r": 0.05, "n": 15}, 20789.28, 0.01},
		// 5000 * (1 + 0.04/12)^(12*8)
		{"compound_interest", Params{"principal": 5000, "rate": 0.04, "compounds_per_year": 12, "years": 8}, 6881.98, 0.05},
	}

	for _, tc := range tests {
		tmpl, ok := Get(tc.typeID)
		if !ok {
			t.Fatalf("template %s not found", tc.typeID)
		}
		got := tmpl.ComputeAnswer(tc.params)
		if math.Abs(got-tc.want) > tc.within {
			t.Errorf("%s: ComputeAnswer(%v) = %v, want %v (±%v)", tc.typeID, tc.params, got, tc.want, tc.within)
		}
	}
}

func TestGradeExactAnswerAlwaysCorrect(t *testing.T) {
	for _, v := range []float64{0, 0.5, -3.2, 12345.678} {
		result := Grade(v, v, 0.01)
		if !result.IsCorrect {
			t.Errorf("Grade(%v, %v) should be correct", v, v)
		}
		if result.Difference != 0 {
			t.Errorf("Difference = %v, want 0", result.Difference)
		}
	}
}

func TestGradeNearZeroUsesAbsoluteDifference(t *testing.T) {
	// Correct answer below the 1e-4 threshold: the relative error would be
	// 20% here, but only the absolute branch applies.
	result := Grade(0.00006, 0.00005, 0.01)
	if !result.IsCorrect {
		t.Error("near-zero grading should pass on absolute difference")
	}
}

func TestGradeRelativeOrAbsolute(t *testing.T) {
	// 1% relative error on a large magnitude, absolute difference 10.
	if !Grade(1010, 1000, 0.02).IsCorrect {
		t.Error("answer within relative tolerance should pass")
	}
	// absolute difference under a £1 money tolerance
	if !Grade(27919.5, 27919.74, 1.0).IsCorrect {
		t.Error("answer within absolute tolerance should pass")
	}
	// both criteria failing
	if Grade(2000, 1000, 0.01).IsCorrect {
		t.Error("answer outside both tolerances should fail")
	}
}
