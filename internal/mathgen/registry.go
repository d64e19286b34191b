package mathgen

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

func poissonPMF(p Params) float64 {
	return distuv.Poisson{Lambda: p["lambda"]}.Prob(p["k"])
}

func poissonCDF(p Params) float64 {
	return distuv.Poisson{Lambda: p["lambda"]}.CDF(p["k"])
}

func poissonSurvival(p Params) float64 {
	return 1 - distuv.Poisson{Lambda: p["lambda"]}.CDF(p["k"])
}

func binomialPMF(p Params) float64 {
	return distuv.Binomial{N: p["n"], P: p["p"]}.Prob(p["k"])
}

func binomialCDF(p Params) float64 {
	return distuv.Binomial{N: p["n"], P: p["p"]}.CDF(p["k"])
}

func normalCDF(p Params) float64 {
	return distuv.Normal{Mu: p["mu"], Sigma: p["sigma"]}.CDF(p["x"])
}

func normalZScore(p Params) float64 {
	return (p["x"] - p["mu"]) / p["sigma"]
}

func exponentialCDF(p Params) float64 {
	return distuv.Exponential{Rate: p["lambda"]}.CDF(p["x"])
}

func exponentialSurvival(p Params) float64 {
	return distuv.Exponential{Rate: p["lambda"]}.Survival(p["x"])
}

// PV = FV / (1 + r)^n
func presentValue(p Params) float64 {
	return p["fv"] / math.Pow(1+p["r"], p["n"])
}

// FV = PV * (1 + r)^n
func futureValue(p Params) float64 {
	return p["pv"] * math.Pow(1+p["r"], p["n"])
}

// A = P * (1 + r/n)^(n*t)
func compoundInterest(p Params) float64 {
	n := p["compounds_per_year"]
	return p["principal"] * math.Pow(1+p["rate"]/n, n*p["years"])
}

// registry holds every template, keyed by type id. Read-only after init.
var registry = map[string]*Template{
	"poisson_pmf": {
		TypeID:      "poisson_pmf",
		Topic:       "probability",
		Concept:     "Poisson distribution - probability of exactly k events occurring",
		ParamRanges: map[string]Range{"lambda": {2, 20}, "k": {0, 15}},
		AsksFor:     "P(X = k), the probability of exactly k events",
		Example:     "A busy coffee shop serves an average of 12 customers per hour. What's the probability of serving exactly 8 customers in the next hour?",
		Hint:        "**Poisson PMF:** P(X = k) = e^(-λ) × λ^k / k!\n\nWhere λ (lambda) is the average rate and k is the exact count you want.",
		Tolerance:   0.01,
		compute:     poissonPMF,
	},
	"poisson_cdf": {
		TypeID:      "poisson_cdf",
		Topic:       "probability",
		Concept:     "Poisson distribution - probability of k or fewer events",
		ParamRanges: map[string]Range{"lambda": {3, 20}, "k": {1, 12}},
		AsksFor:     "P(X ≤ k), the probability of at most k events",
		Example:     "A website receives an average of 15 visitors per minute. What's the probability of receiving 10 or fewer visitors in the next minute?",
		Hint:        "**Poisson CDF:** P(X ≤ k) = Σ P(X = i) for i = 0 to k\n\nSum the PMF from 0 to k: Σ e^(-λ) × λ^i / i!",
		Tolerance:   0.01,
		compute:     poissonCDF,
	},
	"poisson_survival": {
		TypeID:      "poisson_survival",
		Topic:       "probability",
		Concept:     "Poisson distribution - probability of more than k events",
		ParamRanges: map[string]Range{"lambda": {5, 25}, "k": {3, 15}},
		AsksFor:     "P(X > k), the probability of more than k events",
		Example:     "A call center receives an average of 18 calls per hour. What's the probability of receiving more than 20 calls in the next hour?",
		Hint:        "**Poisson Survival:** P(X > k) = 1 - P(X ≤ k)\n\nCalculate P(X ≤ k) first, then subtract from 1.",
		Tolerance:   0.01,
		compute:     poissonSurvival,
	},
	"binomial_pmf": {
		TypeID:      "binomial_pmf",
		Topic:       "probability",
		Concept:     "Binomial distribution - probability of exactly k successes in n trials",
		ParamRanges: map[string]Range{"n": {5, 20}, "p": {0.2, 0.8}, "k": {1, 15}},
		AsksFor:     "P(X = k), the probability of exactly k successes",
		Example:     "A basketball player has a 70% free throw success rate. If she takes 10 free throws, what's the probability she makes exactly 7?",
		Hint:        "**Binomial PMF:** P(X = k) = C(n,k) × p^k × (1-p)^(n-k)\n\nWhere C(n,k) = n! / (k! × (n-k)!)",
		Tolerance:   0.01,
		compute:     binomialPMF,
	},
	"binomial_cdf": {
		TypeID:      "binomial_cdf",
		Topic:       "probability",
		Concept:     "Binomial distribution - probability of k or fewer successes",
		ParamRanges: map[string]Range{"n": {8, 25}, "p": {0.3, 0.7}, "k": {2, 18}},
		AsksFor:     "P(X ≤ k), the probability of at most k successes",
		Example:     "A multiple choice test has 15 questions with 4 options each. If a student guesses randomly, what's the probability they get 5 or fewer correct?",
		Hint:        "**Binomial CDF:** P(X ≤ k) = Σ P(X = i) for i = 0 to k\n\nSum the binomial PMF from 0 to k.",
		Tolerance:   0.01,
		compute:     binomialCDF,
	},
	"normal_cdf": {
		TypeID:      "normal_cdf",
		Topic:       "probability",
		Concept:     "Normal distribution - probability of a value being less than or equal to x",
		ParamRanges: map[string]Range{"mu": {50, 150}, "sigma": {5, 25}, "x": {30, 180}},
		AsksFor:     "P(X ≤ x), the probability of a value being at most x",
		Example:     "Adult male heights are normally distributed with mean 175cm and standard deviation 10cm. What's the probability a randomly selected man is 180cm or shorter?",
		Hint:        "**Normal CDF:** First calculate z = (x - μ) / σ\n\nThen look up Φ(z) in a z-table, or use: Φ(z) ≈ 0.5 × (1 + erf(z/√2))",
		Tolerance:   0.01,
		compute:     normalCDF,
	},
	"normal_zscore": {
		TypeID:      "normal_zscore",
		Topic:       "probability",
		Concept:     "Z-score calculation - how many standard deviations from the mean",
		ParamRanges: map[string]Range{"mu": {40, 100}, "sigma": {5, 20}, "x": {20, 130}},
		AsksFor:     "The z-score (number of standard deviations from mean)",
		Example:     "Exam scores have a mean of 72 and standard deviation of 8. What is the z-score for a student who scored 84?",
		Hint:        "**Z-score:** z = (x - μ) / σ\n\nSubtract the mean from the value, then divide by standard deviation.",
		Tolerance:   0.1,
		compute:     normalZScore,
	},
	"exponential_cdf": {
		TypeID:      "exponential_cdf",
		Topic:       "probability",
		Concept:     "Exponential distribution - probability of event occurring within time x",
		ParamRanges: map[string]Range{"lambda": {0.5, 5}, "x": {0.5, 4}},
		AsksFor:     "P(X ≤ x), the probability of the event occurring within time x",
		Example:     "Light bulbs fail at a rate of 2 per year on average. What's the probability a bulb fails within the first 6 months?",
		Hint:        "**Exponential CDF:** P(X ≤ x) = 1 - e^(-λx)\n\nWhere λ is the rate parameter (events per unit time).",
		Tolerance:   0.01,
		compute:     exponentialCDF,
	},
	"exponential_survival": {
		TypeID:      "exponential_survival",
		Topic:       "probability",
		Concept:     "Exponential distribution - probability of surviving beyond time x",
		ParamRanges: map[string]Range{"lambda": {0.2, 3}, "x": {0.5, 5}},
		AsksFor:     "P(X > x), the probability of lasting longer than time x",
		Example:     "A machine breaks down on average once every 4 hours. What's the probability it runs for more than 5 hours without breaking?",
		Hint:        "**Exponential Survival:** P(X > x) = e^(-λx)\n\nWhere λ is the rate (events per unit time). Note: if given mean time between events, λ = 1/mean.",
		Tolerance:   0.01,
		compute:     exponentialSurvival,
	},
	"present_value": {
		TypeID:      "present_value",
		Topic:       "finance",
		Concept:     "Present Value - what a future sum is worth today given a discount rate",
		ParamRanges: map[string]Range{"fv": {1000, 100000}, "r": {0.03, 0.12}, "n": {1, 20}},
		AsksFor:     "The present value (PV = FV / (1 + r)^n)",
		Example:     "You will receive £50,000 in 10 years. If the discount rate is 6% per year, what is that payment worth today?",
		Hint:        "**Present Value:** PV = FV / (1 + r)^n\n\nDivide the future value by (1 + interest rate) raised to the number of periods.",
		Tolerance:   1.0, // within £1 for money
		compute:     presentValue,
	},
	"future_value": {
		TypeID:      "future_value",
		Topic:       "finance",
		Concept:     "Future Value - what an investment today will be worth in the future",
		ParamRanges: map[string]Range{"pv": {500, 50000}, "r": {0.02, 0.10}, "n": {2, 25}},
		AsksFor:     "The future value (FV = PV * (1 + r)^n)",
		Example:     "You invest £10,000 today at 5% annual interest. What will it be worth in 15 years?",
		Hint:        "**Future Value:** FV = PV × (1 + r)^n\n\nMultiply the present value by (1 + interest rate) raised to the number of periods.",
		Tolerance:   1.0,
		compute:     futureValue,
	},
	"compound_interest": {
		TypeID:      "compound_interest",
		Topic:       "finance",
		Concept:     "Compound Interest - final amount with periodic compounding",
		ParamRanges: map[string]Range{"principal": {1000, 50000}, "rate": {0.03, 0.10}, "compounds_per_year": {1, 12}, "years": {1, 15}},
		AsksFor:     "The final amount A = P(1 + r/n)^(nt)",
		Example:     "You deposit £5,000 in a savings account with 4% annual interest, compounded monthly. How much will you have after 8 years?",
		Hint:        "**Compound Interest:** A = P × (1 + r/n)^(n×t)\n\nWhere P = principal, r = annual rate, n = compounds per year, t = years.",
		Tolerance:   1.0,
		compute:     compoundInterest,
	},
}
