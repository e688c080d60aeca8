package accounting

import (
	"strconv"
	"time"
)

// Default per-token rates in USD.
const (
	DefaultRateIn  = 0.0000025
	DefaultRateOut = 0.00001
)

// Rates holds the per-token prices of one model.
type Rates struct {
	InputPerToken  float64
	OutputPerToken float64
}

// DefaultRates are applied to models without an explicit entry.
var DefaultRates = Rates{InputPerToken: DefaultRateIn, OutputPerToken: DefaultRateOut}

// Usage is the accounted consumption of one LLM call.
type Usage struct {
	TokensIn    int
	TokensOut   int
	TokensTotal int
	CostUSD     float64
	DurationMs  int64
}

// Accountant computes cost estimates from token counts.
type Accountant struct {
	fallback Rates
	byModel  map[string]Rates
}

// NewAccountant creates an Accountant using fallback for unknown models.
// Zero-valued fallback rates are replaced by DefaultRates.
func NewAccountant(fallback Rates, byModel map[string]Rates) *Accountant {
	if fallback.InputPerToken == 0 && fallback.OutputPerToken == 0 {
		fallback = DefaultRates
	}
	if byModel == nil {
		byModel = map[string]Rates{}
	}
	return &Accountant{fallback: fallback, byModel: byModel}
}

// RatesFor returns the rates applied to model.
func (a *Accountant) RatesFor(model string) Rates {
	if r, ok := a.byModel[model]; ok {
		return r
	}
	return a.fallback
}

// Account computes the usage record of one call. Negative counts are treated as 0.
func (a *Accountant) Account(model string, tokensIn, tokensOut int, duration time.Duration) Usage {
	if tokensIn < 0 {
		tokensIn = 0
	}
	if tokensOut < 0 {
		tokensOut = 0
	}
	if duration < 0 {
		duration = 0
	}
	r := a.RatesFor(model)
	return Usage{
		TokensIn:    tokensIn,
		TokensOut:   tokensOut,
		TokensTotal: tokensIn + tokensOut,
		CostUSD:     Cost(r, tokensIn, tokensOut),
		DurationMs:  duration.Milliseconds(),
	}
}

// Cost returns tokensIn*r.InputPerToken + tokensOut*r.OutputPerToken.
func Cost(r Rates, tokensIn, tokensOut int) float64 {
	return float64(tokensIn)*r.InputPerToken + float64(tokensOut)*r.OutputPerToken
}

// FormatUSD renders a cost as a 6-decimal fixed-point string.
func FormatUSD(cost float64) string {
	return strconv.FormatFloat(cost, 'f', 6, 64)
}
