// Package cartola parses BancoEstado style account statements (cartolas)
// from their extracted PDF text.
package cartola

import (
	"context"
	"time"

	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/logger"
	"github.com/shopspring/decimal"
)

// Extract parses the statement text. now supplies the timezone, the year for
// abbreviated row dates and the defaults for missing metadata.
func Extract(ctx context.Context, text string, now time.Time) (*common.StatementDocument, error) {
	cfg := loadPatterns()
	log := logger.FromContext(ctx)
	startTime := time.Now()

	segment, err := Segment(text, cfg.SegmentHeaders)
	if err != nil {
		return nil, err
	}

	t, err := extractTitle(text, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("title", t.Raw).Str("account_number", t.AccountNumber).Msg("matched statement title")

	client, err := extractClient(ctx, text, cfg, now)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("client", client.Name).Bool("structured", client.Structured).Msg("matched client identity")

	meta := extractMetadata(ctx, text, cfg, now)

	var opening *decimal.Decimal
	if !meta.Defaulted.Balances {
		opening = &meta.OpeningBalance
	}
	items, err := extractItems(ctx, segment, cfg, now, opening)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("items", len(items)).
		Dur("elapsed", time.Since(startTime)).
		Msg("statement extracted")

	return &common.StatementDocument{
		Title:         t.Raw,
		AccountName:   t.AccountName,
		AccountNumber: t.AccountNumber,
		Client:        client,
		Metadata:      meta,
		Items:         items,
	}, nil
}
