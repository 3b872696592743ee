package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// TransactionRequest is created when the user confirms an action and is consumed once by a flow
type TransactionRequest struct {
	ID        uuid.UUID `json:"id"`
	Operation Operation `json:"operation"`
	Currency  string    `json:"currency,omitempty"`
	Amount    string    `json:"amount,omitempty"` // human-readable decimal, converted at the chain boundary
	CreatedAt time.Time `json:"created_at"`
}

// NewTransactionRequest builds a request with a fresh ID
func NewTransactionRequest(op Operation, currency, amount string) TransactionRequest {
	return TransactionRequest{
		ID:        uuid.New(),
		Operation: op,
		Currency:  currency,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// TransactionState is the record a flow owns for the lifetime of one request
type TransactionState struct {
	Step         Step                `json:"step"`
	TxHash       *common.Hash        `json:"tx_hash,omitempty"`
	ErrorClass   ErrorClass          `json:"error_class,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Request      *TransactionRequest `json:"request,omitempty"`
	Quote        *PurchaseQuote      `json:"quote,omitempty"` // buy only, snapshot taken at submission
	UpdatedAt    time.Time           `json:"updated_at"`
}

// IdleState returns the state every flow starts in
func IdleState() TransactionState {
	return TransactionState{Step: StepIdle}
}

// Clone returns a copy that shares no pointers with s
func (s TransactionState) Clone() TransactionState {
	out := s
	if s.TxHash != nil {
		h := *s.TxHash
		out.TxHash = &h
	}
	if s.Request != nil {
		r := *s.Request
		out.Request = &r
	}
	if s.Quote != nil {
		q := *s.Quote
		out.Quote = &q
	}
	return out
}

// Transition is published every time a flow changes step
type Transition struct {
	Operation Operation        `json:"operation"`
	From      Step             `json:"from"`
	To        Step             `json:"to"`
	State     TransactionState `json:"state"`
	Account   common.Address   `json:"account"`
}

// TransactionRecord is the journal entry written for a request that reached a terminal step
type TransactionRecord struct {
	ID           string     `json:"id"`
	RequestID    string     `json:"request_id"`
	Operation    Operation  `json:"operation"`
	Account      string     `json:"account"`
	Currency     string     `json:"currency,omitempty"`
	Amount       string     `json:"amount,omitempty"`
	TxHash       string     `json:"tx_hash,omitempty"`
	Status       Step       `json:"status"` // success or error
	ErrorClass   ErrorClass `json:"error_class,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	BaseTokens   string     `json:"base_tokens,omitempty"` // stored as string to preserve precision
	BonusTokens  string     `json:"bonus_tokens,omitempty"`
	TotalTokens  string     `json:"total_tokens,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   time.Time  `json:"finished_at"`
}
