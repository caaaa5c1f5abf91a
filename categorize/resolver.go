package categorize

import (
	"context"
	"strings"

	"github.com/finantrack/cartola/logger"
)

// Stripped in order from the start of the description before company matching.
var genericPrefixes = []string{
	"TEF",
	"COMPRA WEB",
	"COMPRA NACIONAL",
	"TRANSFERENCIA",
	"PAGO",
	"FACTU CL",
	"FACTURACION",
	"CARGO",
	"ABONO",
}

// UserKeywords is one user defined keyword list pointing at a category.
type UserKeywords struct {
	CategoryID int64
	Keywords   []string
}

// CategoryStore is the read side of the category tables.
type CategoryStore interface {
	// CategoryIDByName looks a category up by name, ignoring case.
	CategoryIDByName(ctx context.Context, name string) (int64, bool, error)
	UserKeywords(ctx context.Context, userID int64) ([]UserKeywords, error)
}

// CleanDescription uppercases description and strips generic transaction
// prefixes.
func CleanDescription(description string) string {
	cleaned := strings.TrimSpace(FoldAccents(strings.ToUpper(description)))
	for _, prefix := range genericPrefixes {
		if cleaned == prefix {
			return ""
		}
		if strings.HasPrefix(cleaned, prefix+" ") {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
		}
	}
	return cleaned
}

// Resolver maps descriptions to persisted category ids.
type Resolver struct {
	store    CategoryStore
	fallback string
}

func NewResolver(store CategoryStore, fallback string) *Resolver {
	return &Resolver{store: store, fallback: fallback}
}

// ForUser starts a resolution session for one ingestion. userID 0 means no
// user keywords are consulted.
func (r *Resolver) ForUser(userID int64) *Session {
	return &Session{resolver: r, userID: userID, ids: map[string]*int64{}}
}

// Resolve is a one-off resolution outside a session.
func (r *Resolver) Resolve(ctx context.Context, description string, userID int64) *int64 {
	return r.ForUser(userID).Resolve(ctx, description)
}

// Session caches category ids and the user's keywords. It is not safe for
// concurrent use.
type Session struct {
	resolver     *Resolver
	userID       int64
	ids          map[string]*int64
	userKeywords []UserKeywords
	loaded       bool
}

// Resolve returns the category id for description: curated companies first,
// then the user's keywords, then the fallback category. Store errors are
// logged and yield nil.
func (s *Session) Resolve(ctx context.Context, description string) *int64 {
	log := logger.FromContext(ctx)

	for _, company := range MatchCompanies(CleanDescription(description)) {
		id, err := s.categoryID(ctx, company.Category)
		if err != nil {
			log.Error().Err(err).Str("category", company.Category).Msg("category lookup failed")
			return nil
		}
		if id != nil {
			return id
		}
		log.Debug().Str("company", company.Name).Str("category", company.Category).Msg("company category missing from store")
	}

	if s.userID != 0 {
		keywords, err := s.keywords(ctx)
		if err != nil {
			log.Error().Err(err).Int64("user_id", s.userID).Msg("user keyword lookup failed")
			return nil
		}
		upper := strings.ToUpper(description)
		for _, uk := range keywords {
			for _, kw := range uk.Keywords {
				if kw = strings.ToUpper(strings.TrimSpace(kw)); kw != "" && strings.Contains(upper, kw) {
					id := uk.CategoryID
					return &id
				}
			}
		}
	}

	id, err := s.categoryID(ctx, s.resolver.fallback)
	if err != nil {
		log.Error().Err(err).Str("category", s.resolver.fallback).Msg("fallback category lookup failed")
		return nil
	}
	return id
}

func (s *Session) categoryID(ctx context.Context, name string) (*int64, error) {
	key := strings.ToLower(name)
	if id, ok := s.ids[key]; ok {
		return id, nil
	}
	id, found, err := s.resolver.store.CategoryIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	var result *int64
	if found {
		result = &id
	}
	s.ids[key] = result
	return result, nil
}

func (s *Session) keywords(ctx context.Context) ([]UserKeywords, error) {
	if s.loaded {
		return s.userKeywords, nil
	}
	keywords, err := s.resolver.store.UserKeywords(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	s.userKeywords, s.loaded = keywords, true
	return keywords, nil
}
