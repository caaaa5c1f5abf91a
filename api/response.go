package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/ingest"
	"github.com/shopspring/decimal"
)

const userIDHeader = "X-User-ID"

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Limit string `json:"limit,omitempty"`
}

type statementSummary struct {
	AccountName    string          `json:"account_name"`
	AccountNumber  string          `json:"account_number,omitempty"`
	ClientName     string          `json:"client_name"`
	StatementNo    string          `json:"statement_number"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
}

type statementResponse struct {
	CardID         int64             `json:"card_id"`
	MovementsCount int               `json:"movements_count"`
	CardCreated    bool              `json:"card_created"`
	Summary        *statementSummary `json:"summary,omitempty"`
}

type scraperPayload struct {
	Movements []ingest.ScraperMovement `json:"movements"`
}

func summarize(doc *common.StatementDocument) *statementSummary {
	if doc == nil {
		return nil
	}
	return &statementSummary{
		AccountName:    doc.AccountName,
		AccountNumber:  doc.AccountNumber,
		ClientName:     doc.Client.Name,
		StatementNo:    doc.Metadata.Number,
		PeriodStart:    doc.Metadata.PeriodStart,
		PeriodEnd:      doc.Metadata.PeriodEnd,
		OpeningBalance: doc.Metadata.OpeningBalance,
		ClosingBalance: doc.Metadata.ClosingBalance,
		TotalCredits:   doc.Metadata.TotalCredits,
		TotalDebits:    doc.Metadata.TotalDebits,
	}
}

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeErrorBody(w, status, errorBody{Error: msg})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}
