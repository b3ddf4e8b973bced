package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every model offered to clients must be priceable, otherwise cost
// reporting silently degrades to zero for it.
func TestCatalogPricingCovered(t *testing.T) {
	for _, m := range AvailableModels() {
		_, err := CompletionCost(m.ID, Usage{PromptTokens: 1, CompletionTokens: 1})
		assert.NoError(t, err, "model %s has no pricing entry", m.ID)
	}
}

func TestModelListsPartitionCatalog(t *testing.T) {
	all := AvailableModels()
	textOnly := TextOnlyModels()
	vision := VisionModels()

	assert.Equal(t, len(all), len(textOnly)+len(vision))
	for _, m := range textOnly {
		assert.False(t, m.Vision)
	}
	for _, m := range vision {
		assert.True(t, m.Vision)
	}
}

func TestCompletionCostArithmetic(t *testing.T) {
	// One million tokens each way on gpt-4o: $2.50 in, $10.00 out.
	cost, err := CompletionCost("gpt-4o", Usage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000})
	require.NoError(t, err)
	assert.InDelta(t, 12.50, cost, 1e-9)

	cost, err = CompletionCost("gemini-2.0-flash", Usage{})
	require.NoError(t, err)
	assert.Zero(t, cost)
}

func TestCompletionCostUnknownModel(t *testing.T) {
	_, err := CompletionCost("never-heard-of-it", Usage{PromptTokens: 5})
	assert.Error(t, err)
}
