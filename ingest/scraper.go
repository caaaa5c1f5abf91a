package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/logger"
	"github.com/shopspring/decimal"
)

// ScraperMovement is one movement as reported by the bank scraper. Monto is
// signed, negative for charges.
type ScraperMovement struct {
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Categoria   string          `json:"categoria,omitempty"`
	Tipo        string          `json:"tipo,omitempty"`
	Cuenta      string          `json:"cuenta,omitempty"`
	Referencia  string          `json:"referencia,omitempty"`
	Estado      string          `json:"estado,omitempty"`
}

var scraperDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// IngestScraperMovements normalizes scraper output and stores it on cardID
// in one transaction.
func (s *Service) IngestScraperMovements(ctx context.Context, userID, cardID int64, input []ScraperMovement) (int, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Int64("card_id", cardID).Logger()
	ctx = logger.WithContext(ctx, log)

	owned, err := s.store.CardOwnedBy(ctx, cardID, userID)
	if err != nil {
		return 0, persistenceError("check card owner", err)
	}
	if !owned {
		return 0, ErrCardNotFound
	}

	session := s.resolver.ForUser(userID)
	movements := make([]Movement, 0, len(input))
	for i, sm := range input {
		m, err := s.normalizeScraperMovement(ctx, sm, cardID, session.Resolve)
		if err != nil {
			return 0, common.NewExtractionError(fmt.Sprintf("movements[%d]", i), err.Error())
		}
		movements = append(movements, m)
	}
	if len(movements) == 0 {
		return 0, nil
	}

	if err := s.store.InsertMovements(ctx, movements); err != nil {
		return 0, persistenceError("insert scraper movements", err)
	}
	log.Info().Int("movements", len(movements)).Msg("scraper movements stored")
	return len(movements), nil
}

func (s *Service) normalizeScraperMovement(ctx context.Context, sm ScraperMovement, cardID int64, resolve func(context.Context, string) *int64) (Movement, error) {
	date, err := s.parseScraperDate(sm.Fecha)
	if err != nil {
		return Movement{}, err
	}

	m := Movement{
		CardID:          cardID,
		Amount:          sm.Monto,
		Description:     strings.TrimSpace(sm.Descripcion),
		Type:            MovementIncome,
		Source:          SourceScraper,
		TransactionDate: date,
		Metadata: map[string]interface{}{
			"tipo":       sm.Tipo,
			"cuenta":     sm.Cuenta,
			"referencia": sm.Referencia,
			"estado":     sm.Estado,
		},
	}
	if sm.Monto.IsNegative() {
		m.Type = MovementExpense
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(sm.Categoria), 10, 64); err == nil && id > 0 {
		m.CategoryID = &id
	} else {
		m.CategoryID = resolve(ctx, m.Description)
	}
	return m, nil
}

func (s *Service) parseScraperDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range scraperDateLayouts {
		if t, err := time.ParseInLocation(layout, value, s.loc); err == nil {
			return t, nil
		}
	}
	return common.ParseStatementDate(value, s.now().In(s.loc).Year(), s.loc)
}
