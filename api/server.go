// Package api exposes extraction and ingestion over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/finantrack/cartola/extractor"
	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/ingest"
	"github.com/finantrack/cartola/logger"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Config holds the API server configuration
type Config struct {
	Port           string
	AllowedOrigins []string
	// MaxUploadBytes caps multipart uploads
	MaxUploadBytes int64
	// Location is the statement timezone used by /extract
	Location *time.Location
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:           ":8080",
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: 32 << 20,
		Location:       time.Local,
	}
}

// Ingester is the part of ingest.Service the API drives.
type Ingester interface {
	IngestStatement(ctx context.Context, pdf []byte, userID, planID int64) (*ingest.Result, error)
	IngestScraperMovements(ctx context.Context, userID, cardID int64, input []ingest.ScraperMovement) (int, error)
}

// Server represents the HTTP API server
type Server struct {
	config   Config
	router   *mux.Router
	ingester Ingester
	log      zerolog.Logger
	now      func() time.Time
	textFn   extractor.TextFunc
}

// New creates a new API server. ingester may be nil, in which case only
// health and extraction routes are served.
func New(cfg Config, ingester Ingester, log zerolog.Logger) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	s := &Server{
		config:   cfg,
		router:   mux.NewRouter(),
		ingester: ingester,
		log:      log,
		now:      func() time.Time { return time.Now().In(cfg.Location) },
		textFn:   common.ExtractTextFromPDFReader,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(s.requestLogger, recoverer)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost)
	if s.ingester != nil {
		s.router.HandleFunc("/statements", s.handleStatement).Methods(http.MethodPost)
		s.router.HandleFunc("/cards/{cardID:[0-9]+}/scraper-movements", s.handleScraperMovements).Methods(http.MethodPost)
	}
}

// Handler returns the http.Handler for the server, CORS included
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader, userIDHeader},
	})
	return c.Handler(s.router)
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.config.Port).Msg("starting server")
	srv := &http.Server{
		Addr:              s.config.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExtract parses an uploaded cartola without storing anything
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	pdf, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	doc, err := extractor.ProcessReaderWith(r.Context(), bytesReader(pdf), s.now(), s.textFn)
	if err != nil {
		s.writeIngestError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	pdf, form, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(form("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}
	planID, err := strconv.ParseInt(form("plan_id"), 10, 64)
	if err != nil || planID <= 0 {
		writeError(w, http.StatusBadRequest, "plan_id must be a positive integer")
		return
	}

	result, err := s.ingester.IngestStatement(r.Context(), pdf, userID, planID)
	if err != nil {
		s.writeIngestError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, statementResponse{
		CardID:         result.CardID,
		MovementsCount: result.MovementsCount,
		CardCreated:    result.CardCreated,
		Summary:        summarize(result.Document),
	})
}

func (s *Server) handleScraperMovements(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.ParseInt(mux.Vars(r)["cardID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}
	userID, err := strconv.ParseInt(coalesce(r.Header.Get(userIDHeader), r.URL.Query().Get("user_id")), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}

	var payload scraperPayload
	body := http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	count, err := s.ingester.IngestScraperMovements(r.Context(), userID, cardID, payload.Movements)
	if err != nil {
		s.writeIngestError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"card_id":         cardID,
		"movements_count": count,
	})
}

// readUpload returns the multipart "file" content and a form value lookup.
// It writes the error response itself when ok is false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, func(string) string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse multipart form: "+err.Error())
		return nil, nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not get uploaded file: "+err.Error())
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file: "+err.Error())
		return nil, nil, false
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return nil, nil, false
	}

	form := func(key string) string {
		return coalesce(r.FormValue(key), r.URL.Query().Get(key))
	}
	return data, form, true
}

// writeIngestError maps pipeline failures onto status codes
func (s *Server) writeIngestError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var extractionErr *ingest.ExtractionError
	var limitErr *ingest.LimitExceededError
	var persistErr *ingest.PersistenceError

	switch {
	case errors.As(err, &extractionErr):
		writeErrorBody(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error(), Field: extractionErr.Field})
	case errors.As(err, &limitErr):
		writeErrorBody(w, http.StatusForbidden, errorBody{Error: err.Error(), Limit: limitErr.Key})
	case errors.Is(err, ingest.ErrDuplicateStatement):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ingest.ErrCardNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &persistErr):
		log.Error().Err(err).Msg("persistence failure")
		writeError(w, http.StatusInternalServerError, "could not store statement")
	default:
		log.Error().Err(err).Msg("unexpected failure")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
