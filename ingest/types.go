package ingest

import (
	"time"

	"github.com/finantrack/cartola/extractor/common"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

type MovementSource string

const (
	SourceManual  MovementSource = "manual"
	SourceCartola MovementSource = "cartola"
	SourceScraper MovementSource = "scraper"
)

// Movement is a persisted transaction. Amount is positive for income and
// negative for expenses.
type Movement struct {
	CardID          int64                  `json:"card_id"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	Type            MovementType           `json:"movement_type"`
	Source          MovementSource         `json:"movement_source"`
	CategoryID      *int64                 `json:"category_id"`
	TransactionDate time.Time              `json:"transaction_date"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// CardSpec identifies the destination card of a statement and the values
// used when it has to be created.
type CardSpec struct {
	UserID         int64
	Name           string
	Alias          string
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
	Source         string
	AccountTypeID  int64
	BankID         *int64
	Currency       string
}

// StatementRecord is everything written for one statement upload. The
// movements' CardID is filled in by the store once the card is resolved.
type StatementRecord struct {
	UserID      int64
	FileHash    string
	Card        CardSpec
	Number      string
	IssueDate   time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Movements   []Movement
}

// SaveResult reports what the store did with a StatementRecord.
type SaveResult struct {
	CardID      int64
	CardCreated bool
	StatementID int64
}

// Result is returned to callers of a successful ingestion.
type Result struct {
	CardID         int64                     `json:"card_id"`
	MovementsCount int                       `json:"movements_count"`
	CardCreated    bool                      `json:"card_created"`
	StatementID    int64                     `json:"statement_id,omitempty"`
	Document       *common.StatementDocument `json:"-"`
}
