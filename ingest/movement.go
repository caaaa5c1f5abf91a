package ingest

import (
	"context"

	"github.com/finantrack/cartola/categorize"
	"github.com/finantrack/cartola/extractor/common"
)

// buildMovements turns classified line items into movements. Credits become
// positive income, debits negative expenses.
func buildMovements(ctx context.Context, doc *common.StatementDocument, session *categorize.Session) []Movement {
	movements := make([]Movement, 0, len(doc.Items))
	for _, item := range doc.Items {
		m := Movement{
			Description:     item.Description,
			Source:          SourceCartola,
			CategoryID:      session.Resolve(ctx, item.Description),
			TransactionDate: item.Date,
			Metadata: map[string]interface{}{
				"operation_number": item.OperationNumber,
				"running_balance":  item.Balance.String(),
				"movement_kind":    string(item.Kind),
				"statement_number": doc.Metadata.Number,
			},
		}
		if item.Label != "" {
			m.Metadata["category_label"] = item.Label
		}

		if item.IsCredit() {
			m.Amount = item.Amount()
			m.Type = MovementIncome
		} else {
			m.Amount = item.Amount().Neg()
			m.Type = MovementExpense
		}
		movements = append(movements, m)
	}
	return movements
}
