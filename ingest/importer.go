package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/finantrack/cartola/logger"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Movements int      `json:"movements"`
	Errors    []string `json:"errors,omitempty"`
}

// ImportOptions configures a bulk import
type ImportOptions struct {
	UserID  int64
	PlanID  int64
	Verbose bool
}

func (r *ImportResult) add(other ImportResult) {
	r.Processed += other.Processed
	r.Skipped += other.Skipped
	r.Failed += other.Failed
	r.Movements += other.Movements
	r.Errors = append(r.Errors, other.Errors...)
}

// ImportFile ingests a single cartola PDF. Already imported files count as skipped.
func (s *Service) ImportFile(ctx context.Context, filePath string, opts ImportOptions) ImportResult {
	log := logger.FromContext(ctx)
	fileName := filepath.Base(filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return ImportResult{Failed: 1, Errors: []string{fmt.Sprintf("%s: failed to read file: %v", fileName, err)}}
	}

	res, err := s.IngestStatement(ctx, data, opts.UserID, opts.PlanID)
	switch {
	case errors.Is(err, ErrDuplicateStatement):
		if opts.Verbose {
			log.Info().Str("file", fileName).Msg("SKIP already imported")
		}
		return ImportResult{Skipped: 1}
	case err != nil:
		if opts.Verbose {
			log.Warn().Str("file", fileName).Err(err).Msg("FAIL")
		}
		return ImportResult{Failed: 1, Errors: []string{fmt.Sprintf("%s: %v", fileName, err)}}
	}

	if opts.Verbose {
		log.Info().
			Str("file", fileName).
			Int64("card_id", res.CardID).
			Int("movements", res.MovementsCount).
			Msg("OK")
	}
	return ImportResult{Processed: 1, Movements: res.MovementsCount}
}

// ImportDirectory ingests every PDF directly inside dirPath, in name order
func (s *Service) ImportDirectory(ctx context.Context, dirPath string, opts ImportOptions) (*ImportResult, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var pdfFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfFiles = append(pdfFiles, filepath.Join(dirPath, e.Name()))
		}
	}

	log.Info().Str("dir", dirPath).Int("files", len(pdfFiles)).Msg("scanning")

	result := &ImportResult{}
	for _, filePath := range pdfFiles {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.add(s.ImportFile(ctx, filePath, opts))
	}

	return result, nil
}

// Import handles both file and directory paths
func (s *Service) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return s.ImportDirectory(ctx, path, opts)
	}

	result := s.ImportFile(ctx, path, opts)
	return &result, nil
}
