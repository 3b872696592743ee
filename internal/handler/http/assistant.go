package http

import (
	"net/http"
	"strings"

	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/infrastructure/assistant"
	"github.com/dracma/presale/internal/tokenomics"
)

type askRequest struct {
	Prompt string `json:"prompt"`
	Lang   string `json:"lang"`
}

type analyzeRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Lang     string `json:"lang"`
}

type assistantResponse struct {
	Answer string               `json:"answer"`
	Quote  *domain.PurchaseQuote `json:"quote,omitempty"`
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		badRequest(w, "prompt is required")
		return
	}

	answer, err := h.assistant.Generate(r.Context(), req.Prompt, langOrDefault(req.Lang))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assistantResponse{Answer: answer})
}

// AnalyzeInvestment asks the assistant about a projected purchase of at least 100
func (h *Handler) AnalyzeInvestment(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount := tokenomics.ParseAmount(req.Amount)
	quote, err := h.presale.Quote(req.Amount, req.Currency)
	if err != nil {
		h.writeError(w, err)
		return
	}

	prompt, err := assistant.InvestmentPrompt(amount, h.network, quote, langOrDefault(req.Lang))
	if err != nil {
		h.writeError(w, err)
		return
	}

	answer, err := h.assistant.Generate(r.Context(), prompt, langOrDefault(req.Lang))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assistantResponse{Answer: answer, Quote: &quote})
}

func langOrDefault(lang string) string {
	if lang == "" {
		return "en"
	}
	return lang
}
