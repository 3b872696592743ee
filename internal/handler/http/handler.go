package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/infrastructure/assistant"
	"github.com/dracma/presale/internal/metrics"
	"github.com/dracma/presale/internal/service"
)

const (
	defaultLimit = 50
	maxLimit     = 1000
	maxBodyBytes = 1 << 16
)

// Presale is the part of service.PresaleService the handlers use
type Presale interface {
	Quote(amount, currency string) (domain.PurchaseQuote, error)
	Currencies() []string
	Start(ctx context.Context, op domain.Operation, currency, amount string) (domain.TransactionState, error)
	State(op domain.Operation) (domain.TransactionState, error)
	States() map[domain.Operation]domain.TransactionState
	Reset(op domain.Operation) error
	History(ctx context.Context, account string, limit, offset int) ([]*domain.TransactionRecord, error)
	PresaleStatus(ctx context.Context) (*domain.PresaleStatus, error)
	Staking(ctx context.Context) (*domain.StakingInfo, error)
	Vesting(ctx context.Context) (*domain.VestingInfo, error)
}

// Purchases is the part of service.PurchaseIndexer the handlers use
type Purchases interface {
	SyncPurchases(ctx context.Context) error
	GetPurchasesByBuyer(ctx context.Context, buyer string, limit, offset int) ([]*domain.PurchaseEvent, error)
	GetWeeklyStatistics(ctx context.Context) (*domain.PresaleStatistics, error)
	GetStatistics(ctx context.Context, start, end time.Time) (*domain.PresaleStatistics, error)
}

// Deps are the collaborators of the HTTP API; Purchases, Assistant and Stream are optional
type Deps struct {
	Presale   Presale
	Purchases Purchases
	Assistant assistant.TextGenerator
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Stream    *StreamHub
	Network   string // shown to the assistant, e.g. "BSC"
	Logger    *zap.Logger
}

type Handler struct {
	presale   Presale
	purchases Purchases
	assistant assistant.TextGenerator
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	stream    *StreamHub
	network   string
	logger    *zap.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		presale:   d.Presale,
		purchases: d.Purchases,
		assistant: d.Assistant,
		metrics:   d.Metrics,
		gatherer:  d.Gatherer,
		stream:    d.Stream,
		network:   d.Network,
		logger:    d.Logger.With(zap.String("component", "http")),
	}
}

// Router builds the route table
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/presale/quote", h.GetQuote).Methods(http.MethodGet)
	api.HandleFunc("/presale/status", h.GetPresaleStatus).Methods(http.MethodGet)
	api.HandleFunc("/staking", h.GetStaking).Methods(http.MethodGet)
	api.HandleFunc("/vesting", h.GetVesting).Methods(http.MethodGet)

	if h.purchases != nil {
		api.HandleFunc("/presale/purchases", h.GetPurchasesByBuyer).Methods(http.MethodGet)
		api.HandleFunc("/presale/statistics/weekly", h.GetWeeklyStatistics).Methods(http.MethodGet)
		api.HandleFunc("/presale/statistics", h.GetStatistics).Methods(http.MethodGet)
		api.HandleFunc("/presale/sync", h.SyncPurchases).Methods(http.MethodPost)
	}

	// history before {operation} so it is not taken for a slot name
	api.HandleFunc("/tx/history", h.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/tx", h.GetStates).Methods(http.MethodGet)
	api.HandleFunc("/tx/{operation}", h.StartTransaction).Methods(http.MethodPost)
	api.HandleFunc("/tx/{operation}", h.GetTransaction).Methods(http.MethodGet)
	api.HandleFunc("/tx/{operation}", h.ResetTransaction).Methods(http.MethodDelete)

	if h.stream != nil {
		api.Handle("/stream", h.stream).Methods(http.MethodGet)
	}
	if h.assistant != nil {
		api.HandleFunc("/assistant", h.Ask).Methods(http.MethodPost)
		api.HandleFunc("/assistant/analyze", h.AnalyzeInvestment).Methods(http.MethodPost)
	}
	return r
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type errorResponse struct {
	Error string            `json:"error"`
	Class domain.ErrorClass `json:"class,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to status codes; anything unexpected is logged and hidden
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message, Class: verr.Class})
	case errors.Is(err, service.ErrUnknownOperation):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrSlotBusy), errors.Is(err, service.ErrSlotNotReset):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrWalletNotConnected):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error(), Class: domain.ErrorClassWalletNotConnected})
	case errors.Is(err, assistant.ErrAmountTooSmall):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Class: domain.ErrorClassBelowMinimum})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
