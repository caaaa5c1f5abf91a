package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind is the coarse transaction type derived from a description.
type MovementKind string

const (
	KindTransferReceived MovementKind = "TRANSFERENCIA_RECIBIDA"
	KindTransferSent     MovementKind = "TRANSFERENCIA_ENVIADA"
	KindWebPurchase      MovementKind = "COMPRA_WEB"
	KindStorePurchase    MovementKind = "COMPRA_NACIONAL"
	KindAutomaticPayment MovementKind = "PAGO_AUTOMATICO"
	KindOther            MovementKind = "OTRO"
)

// StatementDocument is everything parsed out of one cartola upload.
type StatementDocument struct {
	Title         string         `json:"title"`
	AccountName   string         `json:"account_name"`
	AccountNumber string         `json:"account_number"`
	Client        ClientIdentity `json:"client"`
	Metadata      Metadata       `json:"metadata"`
	Items         []LineItem     `json:"items"`
}

type ClientIdentity struct {
	Name      string    `json:"name"`
	RUT       string    `json:"rut,omitempty"`
	RUTValid  bool      `json:"rut_valid"`
	QueriedAt time.Time `json:"queried_at"`
	// Structured is false when the identity came from the separate fallback matchers.
	Structured bool `json:"structured"`
}

type Metadata struct {
	Number         string          `json:"number"`
	IssueDate      time.Time       `json:"issue_date"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	Defaulted      DefaultedFields `json:"defaulted"`
}

// DefaultedFields marks metadata groups that were absent from the text and
// filled with a default value.
type DefaultedFields struct {
	Number    bool `json:"number,omitempty"`
	IssueDate bool `json:"issue_date,omitempty"`
	Period    bool `json:"period,omitempty"`
	Balances  bool `json:"balances,omitempty"`
	Totals    bool `json:"totals,omitempty"`
}

// Any reports whether at least one group was defaulted.
func (d DefaultedFields) Any() bool {
	return d.Number || d.IssueDate || d.Period || d.Balances || d.Totals
}

// LineItem is one transaction row. Exactly one of Credit and Debit is set.
type LineItem struct {
	Date            time.Time        `json:"date"`
	OperationNumber string           `json:"operation_number"`
	Description     string           `json:"description"`
	Credit          *decimal.Decimal `json:"credit,omitempty"`
	Debit           *decimal.Decimal `json:"debit,omitempty"`
	Balance         decimal.Decimal  `json:"balance"`
	Kind            MovementKind     `json:"kind"`
	Label           string           `json:"label,omitempty"`
}

// IsCredit reports whether the row adds money to the account.
func (li LineItem) IsCredit() bool {
	return li.Credit != nil
}

// Amount returns the unsigned amount of the row.
func (li LineItem) Amount() decimal.Decimal {
	if li.Credit != nil {
		return *li.Credit
	}
	if li.Debit != nil {
		return *li.Debit
	}
	return decimal.Zero
}
