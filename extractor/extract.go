// Package extractor turns cartola PDFs into structured statement documents.
package extractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/finantrack/cartola/extractor/cartola"
	"github.com/finantrack/cartola/extractor/common"
	"github.com/finantrack/cartola/logger"
)

// TextFunc reads the text layer of a PDF.
type TextFunc func(io.Reader) (string, error)

// ProcessReader extracts the statement document from a PDF stream.
func ProcessReader(ctx context.Context, reader io.Reader, now time.Time) (*common.StatementDocument, error) {
	return ProcessReaderWith(ctx, reader, now, common.ExtractTextFromPDFReader)
}

// ProcessReaderWith is ProcessReader with a custom text layer reader.
func ProcessReaderWith(ctx context.Context, reader io.Reader, now time.Time, textFn TextFunc) (*common.StatementDocument, error) {
	text, err := textFn(reader)
	if err != nil {
		return nil, common.NewExtractionError("pdf", err.Error())
	}

	log := logger.FromContext(ctx)
	log.Debug().Int("chars", len(text)).Msg("pdf text extracted")
	return cartola.Extract(ctx, text, now)
}

// ProcessPath opens path and extracts its statement document.
func ProcessPath(ctx context.Context, path string, now time.Time) (*common.StatementDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ProcessReader(ctx, f, now)
}
