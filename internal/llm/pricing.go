package llm

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// modelPricing holds USD rates per million tokens.
type modelPricing struct {
	input  decimal.Decimal
	output decimal.Decimal
}

var pricingTable = map[string]modelPricing{
	"gemini-2.0-flash":      {usd("0.10"), usd("0.40")},
	"gemini-2.0-flash-lite": {usd("0.075"), usd("0.30")},
	"gemini-1.5-flash":      {usd("0.075"), usd("0.30")},
	"gemini-1.5-pro":        {usd("1.25"), usd("5.00")},
	"gpt-4o":                {usd("2.50"), usd("10.00")},
	"gpt-4o-mini":           {usd("0.15"), usd("0.60")},
	"gpt-3.5-turbo":         {usd("0.50"), usd("1.50")},
}

func usd(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var tokensPerPrice = decimal.NewFromInt(1_000_000)

// CompletionCost computes the USD cost of a completion from its token
// usage. It returns an error for models missing from the pricing table;
// callers treat cost as best-effort and fall back to zero.
func CompletionCost(model string, usage Usage) (float64, error) {
	p, ok := pricingTable[model]
	if !ok {
		return 0, fmt.Errorf("no pricing known for model %q", model)
	}
	in := decimal.NewFromInt(int64(usage.PromptTokens)).Mul(p.input)
	out := decimal.NewFromInt(int64(usage.CompletionTokens)).Mul(p.output)
	return in.Add(out).Div(tokensPerPrice).InexactFloat64(), nil
}
