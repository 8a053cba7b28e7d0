package pricing

import (
	"fmt"
	"math/big"
)

// Scale is the number of decimal places cost strings are formatted with.
const Scale = 6

// ModelPrice holds USD prices per million tokens, kept as decimal strings so
// the arithmetic below stays exact.
type ModelPrice struct {
	InputPerMTok  string
	OutputPerMTok string
}

// Prices per million tokens for the models the gateway is allowed to route to.
var prices = map[string]ModelPrice{
	"openai/gpt-4o":                     {InputPerMTok: "2.50", OutputPerMTok: "10.00"},
	"openai/gpt-4o-mini":                {InputPerMTok: "0.15", OutputPerMTok: "0.60"},
	"anthropic/claude-3.5-sonnet":       {InputPerMTok: "3.00", OutputPerMTok: "15.00"},
	"anthropic/claude-3.5-haiku":        {InputPerMTok: "0.80", OutputPerMTok: "4.00"},
	"google/gemini-2.0-flash":           {InputPerMTok: "0.10", OutputPerMTok: "0.40"},
	"deepseek/deepseek-chat":            {InputPerMTok: "0.27", OutputPerMTok: "1.10"},
	"meta-llama/llama-3.1-70b-instruct": {InputPerMTok: "0.40", OutputPerMTok: "0.40"},
}

// Known reports whether a per-token price is registered for the model.
func Known(model string) bool {
	_, ok := prices[model]
	return ok
}

// Models returns the identifiers with a registered price.
func Models() []string {
	out := make([]string, 0, len(prices))
	for m := range prices {
		out = append(out, m)
	}
	return out
}

var million = new(big.Rat).SetInt64(1_000_000)

// Cost maps (model, input tokens, output tokens) to a cost string with Scale
// decimal places. The second return is false for unrecognized models, in
// which case the caller treats the contribution as zero.
func Cost(model string, inputTokens, outputTokens int64) (string, bool) {
	price, ok := prices[model]
	if !ok {
		return "", false
	}

	inRate, ok1 := new(big.Rat).SetString(price.InputPerMTok)
	outRate, ok2 := new(big.Rat).SetString(price.OutputPerMTok)
	if !ok1 || !ok2 {
		return "", false
	}

	in := new(big.Rat).Mul(new(big.Rat).SetInt64(inputTokens), inRate)
	in.Quo(in, million)
	out := new(big.Rat).Mul(new(big.Rat).SetInt64(outputTokens), outRate)
	out.Quo(out, million)

	total := new(big.Rat).Add(in, out)
	return total.FloatString(Scale), true
}

// Add sums two decimal cost strings, returning a string with Scale places.
// Used for accumulating session cost across generation rounds.
func Add(a, b string) (string, error) {
	if a == "" {
		a = "0"
	}
	if b == "" {
		b = "0"
	}
	ra, ok := new(big.Rat).SetString(a)
	if !ok {
		return "", fmt.Errorf("invalid decimal %q", a)
	}
	rb, ok := new(big.Rat).SetString(b)
	if !ok {
		return "", fmt.Errorf("invalid decimal %q", b)
	}
	return new(big.Rat).Add(ra, rb).FloatString(Scale), nil
}
