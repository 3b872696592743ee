package domain

import "time"

// PurchaseEvent is one TokensPurchased log emitted by the presale contract
type PurchaseEvent struct {
	ID            string    `json:"id"`
	TxHash        string    `json:"tx_hash"`
	LogIndex      uint      `json:"log_index"`
	Buyer         string    `json:"buyer"`
	TokenIndex    int64     `json:"token_index"`
	PaymentAmount string    `json:"payment_amount"` // base units of the payment token
	TokenAmount   string    `json:"token_amount"`   // base units of DRACMA
	BlockNumber   uint64    `json:"block_number"`
	Timestamp     time.Time `json:"timestamp"`
}

// PresaleStatistics aggregates indexed purchases over a period
type PresaleStatistics struct {
	PeriodStart   time.Time         `json:"period_start"`
	PeriodEnd     time.Time         `json:"period_end"`
	PurchaseCount int64             `json:"purchase_count"`
	UniqueBuyers  int64             `json:"unique_buyers"`
	TokensSold    string            `json:"tokens_sold"`
	RaisedByToken map[string]string `json:"raised_by_token"` // payment symbol -> base units
}
