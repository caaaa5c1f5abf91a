package cartola

import (
	"context"
	"strings"
	"time"

	"github.com/finantrack/cartola/categorize"
	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/logger"
	"github.com/shopspring/decimal"
)

// extractItems applies the line item pattern across the flattened movements
// segment. previous is the opening balance when known and is used to decide
// the direction of rows that carry a single amount.
func extractItems(ctx context.Context, segment string, cfg patterns, now time.Time, previous *decimal.Decimal) ([]common.LineItem, error) {
	log := logger.FromContext(ctx)
	items := []common.LineItem{}

	for _, m := range cfg.LineItem.FindAllStringSubmatch(segment, -1) {
		description := strings.TrimSpace(m[3])
		if isSkipRow(description, cfg.SkipTokens) {
			log.Debug().Str("description", description).Msg("skipping header/footer row")
			continue
		}

		date, err := common.ParseStatementDate(m[1], now.Year(), now.Location())
		if err != nil {
			log.Warn().Err(err).Str("row", m[0]).Msg("rejected row with invalid date")
			continue
		}

		balance := common.ParseAmount(m[6])
		item := common.LineItem{
			Date:            date,
			OperationNumber: m[2],
			Description:     description,
			Balance:         balance,
			Kind:            categorize.ClassifyKind(description),
			Label:           categorize.ClassifyLabel(description),
		}

		switch {
		case m[4] != "" && m[5] != "":
			item.Credit = nonZero(common.ParseAmount(m[4]))
			item.Debit = nonZero(common.ParseAmount(m[5]))
		case m[4] != "":
			item.Credit, item.Debit = direction(common.ParseAmount(m[4]), balance, previous, item.Kind)
		}

		if (item.Credit == nil) == (item.Debit == nil) {
			log.Warn().Str("row", m[0]).Msg("rejected row without exactly one of credit/debit")
			continue
		}

		previous = &balance
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, common.NewExtractionError("items", "no movements found")
	}
	return items, nil
}

// direction decides whether a lone amount is a credit or a debit, first by the
// running balance delta and then by the movement kind.
func direction(amount, balance decimal.Decimal, previous *decimal.Decimal, kind common.MovementKind) (*decimal.Decimal, *decimal.Decimal) {
	if amount.IsZero() {
		return nil, nil
	}
	if amount.IsNegative() {
		return nil, nonZero(amount.Abs())
	}
	if previous != nil {
		delta := balance.Sub(*previous)
		if delta.Equal(amount) {
			return &amount, nil
		}
		if delta.Equal(amount.Neg()) {
			return nil, &amount
		}
	}
	if categorize.IsIncomeKind(kind) {
		return &amount, nil
	}
	return nil, &amount
}

func nonZero(amount decimal.Decimal) *decimal.Decimal {
	if amount.IsZero() {
		return nil
	}
	return &amount
}

func isSkipRow(description string, tokens []string) bool {
	upper := strings.ToUpper(description)
	for _, token := range tokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}
