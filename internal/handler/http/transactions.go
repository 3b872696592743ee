package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/service"
)

type startRequest struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

func operationVar(r *http.Request) (domain.Operation, error) {
	op, err := domain.ParseOperation(mux.Vars(r)["operation"])
	if err != nil {
		return "", errors.Wrap(service.ErrUnknownOperation, err.Error())
	}
	return op, nil
}

// StartTransaction accepts a request for an idle slot and runs it in the background
func (h *Handler) StartTransaction(w http.ResponseWriter, r *http.Request) {
	op, err := operationVar(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req startRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	state, err := h.presale.Start(r.Context(), op, req.Currency, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, state)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	op, err := operationVar(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	state, err := h.presale.State(op)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ResetTransaction dismisses a finished result
func (h *Handler) ResetTransaction(w http.ResponseWriter, r *http.Request) {
	op, err := operationVar(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.presale.Reset(op); err != nil {
		h.writeError(w, err)
		return
	}

	state, err := h.presale.State(op)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) GetStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.presale.States())
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	account := r.URL.Query().Get("account")

	records, err := h.presale.History(r.Context(), account, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if records == nil {
		records = []*domain.TransactionRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   len(records),
		"limit":   limit,
		"offset":  offset,
	})
}
