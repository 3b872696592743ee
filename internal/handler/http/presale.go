package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dracma/presale/internal/domain"
)

type quoteResponse struct {
	domain.PurchaseQuote
	Amount     string   `json:"amount"`
	Currency   string   `json:"currency,omitempty"`
	Currencies []string `json:"currencies"`
}

// GetQuote projects a purchase; malformed amounts give a zero quote, unknown currencies a 422
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	amount := r.URL.Query().Get("amount")
	currency := r.URL.Query().Get("currency")

	quote, err := h.presale.Quote(amount, currency)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncQuote()
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		PurchaseQuote: quote,
		Amount:        amount,
		Currency:      currency,
		Currencies:    h.presale.Currencies(),
	})
}

func (h *Handler) GetPresaleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.presale.PresaleStatus(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) GetStaking(w http.ResponseWriter, r *http.Request) {
	info, err := h.presale.Staking(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) GetVesting(w http.ResponseWriter, r *http.Request) {
	info, err := h.presale.Vesting(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) GetPurchasesByBuyer(w http.ResponseWriter, r *http.Request) {
	buyer := r.URL.Query().Get("buyer")
	if buyer == "" {
		badRequest(w, "buyer parameter is required")
		return
	}
	limit, offset := pagination(r)

	purchases, err := h.purchases.GetPurchasesByBuyer(r.Context(), buyer, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if purchases == nil {
		purchases = []*domain.PurchaseEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"purchases": purchases,
		"total":     len(purchases),
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) GetWeeklyStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.purchases.GetWeeklyStatistics(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		badRequest(w, "start and end parameters are required (RFC3339 format)")
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		badRequest(w, "invalid start time format, use RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		badRequest(w, "invalid end time format, use RFC3339")
		return
	}
	if end.Before(start) {
		badRequest(w, "end must not be before start")
		return
	}

	stats, err := h.purchases.GetStatistics(r.Context(), start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// SyncPurchases runs one indexer pass on demand
func (h *Handler) SyncPurchases(w http.ResponseWriter, r *http.Request) {
	err := h.purchases.SyncPurchases(r.Context())

	response := map[string]interface{}{
		"success": err == nil,
	}
	status := http.StatusOK
	if err != nil {
		h.logger.Warn("on-demand purchase sync failed", zap.Error(err))
		response["message"] = "synchronization failed"
		status = http.StatusBadGateway
	} else {
		response["message"] = "synchronization completed successfully"
	}
	writeJSON(w, status, response)
}
