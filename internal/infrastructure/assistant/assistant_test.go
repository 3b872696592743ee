package assistant

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dracma/presale/internal/domain"
)

func TestSimulated_Keywords(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		lang   string
		want   string
	}{
		{"philosophy", "Tell me the philosophy behind DRACMA", "en", cannedAnswers[0].en},
		{"spanish ecosystem", "Explícame el Ecosistema DRACMA", "es", cannedAnswers[2].es},
		{"ai ecosystem keyword", "What role does Artificial Intelligence (AI) play?", "en", cannedAnswers[2].en},
		{"roadmap", "What is the roadmap impact for DRACMA?", "en", cannedAnswers[3].en},
		{"contact form", "Write a reply to this contact form sent to DRACMA", "en", cannedAnswers[4].en},
		{"contact spanish", "Confirmando la recepción del mensaje", "es-ES", cannedAnswers[4].es},
		{"crowdfunding project", "Háblame del proyecto de crowdfunding", "es", cannedAnswers[5].es},
		{"generic", "hello", "en", genericAnswer.en},
		{"generic spanish", "hola", "es", genericAnswer.es},
		{"unknown language falls back to english", "hello", "fr", genericAnswer.en},
		{"partial group does not match", "philosophy of life", "en", genericAnswer.en},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Simulated{}.Generate(context.Background(), tt.prompt, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvestmentPrompt(t *testing.T) {
	quote := domain.PurchaseQuote{
		TotalTokens: decimal.NewFromInt(2875),
		Rate:        decimal.RequireFromString("0.15"),
		TierLabel:   "phase-1",
	}

	prompt, err := InvestmentPrompt(decimal.NewFromInt(500), "BSC", quote, "en")
	require.NoError(t, err)
	assert.Contains(t, prompt, "500 USD")
	assert.Contains(t, prompt, "2875 $DRC")
	assert.Contains(t, prompt, "phase-1 bonus of 15%")
	assert.Contains(t, prompt, "Language: en")

	answer, err := Simulated{}.Generate(context.Background(), prompt, "en")
	require.NoError(t, err)
	assert.Equal(t, cannedAnswers[1].en, answer)
}

func TestInvestmentPrompt_BelowMinimum(t *testing.T) {
	_, err := InvestmentPrompt(decimal.RequireFromString("99.99"), "BSC", domain.PurchaseQuote{}, "en")
	assert.ErrorIs(t, err, ErrAmountTooSmall)
}

func TestNew_WithoutKeyIsSimulated(t *testing.T) {
	gen, err := New(context.Background(), "", "", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, Simulated{}, gen)
}
