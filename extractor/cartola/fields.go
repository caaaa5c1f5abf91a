package cartola

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/logger"
	"github.com/finantrack/cartola/rut"
)

var titlePrefix = regexp.MustCompile(`(?i)^CARTOLA\s*`)

type title struct {
	Raw           string
	AccountName   string
	AccountNumber string
}

func extractTitle(text string, cfg patterns) (title, error) {
	m, ok := firstMatch(text, submatchers(cfg.Title))
	if !ok {
		return title{}, common.NewExtractionError("title", "no title found")
	}
	return title{
		Raw:           strings.ToUpper(common.CollapseSpaces(m[0])),
		AccountName:   strings.ToUpper(titlePrefix.ReplaceAllString(common.CollapseSpaces(m[1]), "")),
		AccountNumber: m[2],
	}, nil
}

func extractClient(ctx context.Context, text string, cfg patterns, now time.Time) (common.ClientIdentity, error) {
	log := logger.FromContext(ctx)

	structured := make([]matcher[common.ClientIdentity], 0, len(cfg.Client))
	for _, sub := range submatchers(cfg.Client) {
		sub := sub
		structured = append(structured, func(text string) (common.ClientIdentity, bool) {
			m, ok := sub(text)
			if !ok {
				return common.ClientIdentity{}, false
			}
			queried, err := common.ParseDateTime(m[3], now.Location())
			if err != nil {
				return common.ClientIdentity{}, false
			}
			return common.ClientIdentity{
				Name:       cleanName(m[1]),
				RUT:        m[2],
				QueriedAt:  queried,
				Structured: true,
			}, true
		})
	}

	client, ok := firstMatch(text, structured)
	if !ok {
		log.Debug().Msg("no structured client block, using separate matchers")

		name, found := firstMatch(text, submatchers(cfg.ClientName))
		if !found || cleanName(name[1]) == "" {
			return common.ClientIdentity{}, common.NewExtractionError("client", "client name not found")
		}
		client = common.ClientIdentity{Name: cleanName(name[1]), QueriedAt: now}

		if m, found := firstMatch(text, submatchers(cfg.ClientRUT)); found {
			client.RUT = m[1]
		}
		if m, found := firstMatch(text, submatchers(cfg.ClientDateTime)); found {
			if queried, err := common.ParseDateTime(m[1], now.Location()); err == nil {
				client.QueriedAt = queried
			}
		}
	}

	if client.RUT != "" {
		client.RUTValid = rut.Valid(client.RUT)
		if !client.RUTValid {
			log.Warn().Str("rut", client.RUT).Msg("client RUT check digit mismatch")
		} else if formatted, err := rut.Format(client.RUT); err == nil {
			client.RUT = formatted
		}
	}
	return client, nil
}

func cleanName(name string) string {
	return strings.ToUpper(common.CollapseSpaces(name))
}

func extractMetadata(ctx context.Context, text string, cfg patterns, now time.Time) common.Metadata {
	meta := common.Metadata{}
	loc := now.Location()

	if m, ok := firstMatch(text, submatchers(cfg.Number)); ok {
		meta.Number = m[1]
	} else {
		meta.Number = strconv.FormatInt(now.UnixMilli(), 10)
		meta.Defaulted.Number = true
	}

	meta.IssueDate = now
	meta.Defaulted.IssueDate = true
	if m, ok := firstMatch(text, submatchers(cfg.IssueDate)); ok {
		if d, err := common.ParseStatementDate(m[1], now.Year(), loc); err == nil {
			meta.IssueDate = d
			meta.Defaulted.IssueDate = false
		}
	}

	meta.PeriodStart, meta.PeriodEnd = now, now
	meta.Defaulted.Period = true
	if m, ok := firstMatch(text, submatchers(cfg.Period)); ok {
		start, errStart := common.ParseStatementDate(m[1], now.Year(), loc)
		end, errEnd := common.ParseStatementDate(m[2], now.Year(), loc)
		if errStart == nil && errEnd == nil {
			meta.PeriodStart, meta.PeriodEnd = start, end
			meta.Defaulted.Period = false
		}
	}

	if m, ok := firstMatch(text, submatchers(cfg.Balances)); ok {
		meta.OpeningBalance = common.ParseAmount(m[1])
		meta.ClosingBalance = common.ParseAmount(m[2])
	} else {
		meta.Defaulted.Balances = true
	}

	if m, ok := firstMatch(text, submatchers(cfg.Totals)); ok {
		meta.TotalDebits = common.ParseAmount(m[1])
		meta.TotalCredits = common.ParseAmount(m[2])
	} else {
		meta.Defaulted.Totals = true
	}

	if meta.Defaulted.Any() {
		log := logger.FromContext(ctx)
		log.Debug().
			Interface("defaulted", meta.Defaulted).
			Msg("statement metadata filled with defaults")
	}
	return meta
}
