// Package ingest runs a cartola upload end to end: text extraction,
// parsing, classification, plan enforcement and atomic persistence.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/finantrack/cartola/categorize"
	"github.com/finantrack/cartola/config"
	"github.com/finantrack/cartola/extractor/cartola"
	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/logger"
	"github.com/google/uuid"
)

var titlePrefix = regexp.MustCompile(`(?i)^CARTOLA\s+`)

// Store is the relational store used by the pipeline.
type Store interface {
	categorize.CategoryStore

	StatementExists(ctx context.Context, userID int64, fileHash string) (bool, error)
	AccountTypes(ctx context.Context) ([]categorize.AccountType, error)
	BankIDByName(ctx context.Context, name string) (*int64, error)
	CartolaUsage(ctx context.Context, userID int64, since time.Time) (int, error)
	// SaveStatement resolves the card, records the file hash and inserts every
	// movement in one transaction. A hash already recorded for the user
	// yields ErrDuplicateStatement.
	SaveStatement(ctx context.Context, record StatementRecord) (SaveResult, error)
	CardOwnedBy(ctx context.Context, cardID, userID int64) (bool, error)
	InsertMovements(ctx context.Context, movements []Movement) error
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTextExtractor replaces the PDF text extraction.
func WithTextExtractor(fn func(io.Reader) (string, error)) Option {
	return func(s *Service) { s.extractText = fn }
}

type Service struct {
	store       Store
	limits      Limits
	resolver    *categorize.Resolver
	settings    config.Ingest
	loc         *time.Location
	now         func() time.Time
	extractText func(io.Reader) (string, error)
}

func NewService(store Store, limits Limits, settings config.Ingest, opts ...Option) *Service {
	s := &Service{
		store:       store,
		limits:      limits,
		resolver:    categorize.NewResolver(store, settings.FallbackCategory),
		settings:    settings,
		loc:         settings.Location(),
		now:         time.Now,
		extractText: common.ExtractTextFromPDFReader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileHash is the content hash recorded against each upload.
func FileHash(pdf []byte) string {
	sum := sha256.Sum256(pdf)
	return hex.EncodeToString(sum[:])
}

// IngestStatement parses pdf and stores its movements on the matching card
// of userID, creating the card if needed. Either every movement is stored or
// none is.
func (s *Service) IngestStatement(ctx context.Context, pdf []byte, userID, planID int64) (*Result, error) {
	log := logger.FromContext(ctx).With().
		Str("ingestion_id", uuid.NewString()).
		Int64("user_id", userID).
		Int64("plan_id", planID).
		Logger()
	ctx = logger.WithContext(ctx, log)

	hash := FileHash(pdf)
	exists, err := s.store.StatementExists(ctx, userID, hash)
	if err != nil {
		return nil, persistenceError("check duplicate", err)
	}
	if exists {
		log.Info().Str("file_hash", hash).Msg("statement already imported")
		return nil, ErrDuplicateStatement
	}

	text, err := s.extractText(bytes.NewReader(pdf))
	if err != nil {
		return nil, common.NewExtractionError("pdf", err.Error())
	}

	return s.ingestText(ctx, text, hash, userID, planID)
}

func (s *Service) ingestText(ctx context.Context, text, hash string, userID, planID int64) (*Result, error) {
	log := logger.FromContext(ctx)
	now := s.now().In(s.loc)

	doc, err := cartola.Extract(ctx, text, now)
	if err != nil {
		log.Warn().Err(err).Msg("statement extraction failed")
		return nil, err
	}

	types, err := s.store.AccountTypes(ctx)
	if err != nil {
		return nil, persistenceError("load account types", err)
	}
	accountType, ok := categorize.InferAccountType(doc.Title, types, s.settings.FallbackAccountType)
	if !ok {
		return nil, persistenceError("resolve account type", fmt.Errorf("%w: account type %q", ErrMissingReference, s.settings.FallbackAccountType))
	}

	bankID, err := s.store.BankIDByName(ctx, s.settings.BankName)
	if err != nil {
		return nil, persistenceError("resolve bank", err)
	}

	movements := buildMovements(ctx, doc, s.resolver.ForUser(userID))

	if err := s.checkQuota(ctx, userID, planID, len(movements), now); err != nil {
		return nil, err
	}

	record := StatementRecord{
		UserID:   userID,
		FileHash: hash,
		Card: CardSpec{
			UserID:         userID,
			Name:           cardName(doc.Title),
			Alias:          fmt.Sprintf("%s - %s", doc.Client.Name, doc.Client.QueriedAt.Format("2006-01-02")),
			OpeningBalance: doc.Metadata.OpeningBalance,
			CreatedAt:      doc.Client.QueriedAt,
			Source:         s.settings.CardSource,
			AccountTypeID:  accountType.ID,
			BankID:         bankID,
			Currency:       s.settings.Currency,
		},
		Number:      doc.Metadata.Number,
		IssueDate:   doc.Metadata.IssueDate,
		PeriodStart: doc.Metadata.PeriodStart,
		PeriodEnd:   doc.Metadata.PeriodEnd,
		Movements:   movements,
	}

	saved, err := s.store.SaveStatement(ctx, record)
	if err != nil {
		if errors.Is(err, ErrDuplicateStatement) {
			return nil, ErrDuplicateStatement
		}
		return nil, persistenceError("save statement", err)
	}

	log.Info().
		Int64("card_id", saved.CardID).
		Bool("card_created", saved.CardCreated).
		Str("account_type", accountType.Name).
		Int("movements", len(movements)).
		Msg("statement ingested")

	return &Result{
		CardID:         saved.CardID,
		MovementsCount: len(movements),
		CardCreated:    saved.CardCreated,
		StatementID:    saved.StatementID,
		Document:       doc,
	}, nil
}

// cardName is the statement title without its leading CARTOLA word.
func cardName(title string) string {
	return titlePrefix.ReplaceAllString(common.CollapseSpaces(title), "")
}
