package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// ErrNoText is returned when a PDF yields no text at all.
var ErrNoText = errors.New("no text found in PDF")

// ExtractRowsFromPDFReader returns the text rows of every page, in order.
func ExtractRowsFromPDFReader(reader io.Reader) ([]string, error) {
	rAt, size, err := readerAtWithSize(reader)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	extractedRows := make([]string, 0, numPages*100)

	for no := 1; no <= numPages; no++ {
		page := r.Page(no)
		// dslipak loops forever on a dangling /Contents reference
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			log.Warn().Int("page", no).Msg("page has no content stream")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Warn().Err(err).Int("page", no).Msg("error getting text from page")
			continue
		}

		for _, row := range rows {
			var builder strings.Builder
			for i, text := range row.Content {
				builder.WriteString(text.S)
				if i < len(row.Content)-1 {
					builder.WriteByte(' ')
				}
			}
			if builder.Len() > 0 {
				extractedRows = append(extractedRows, builder.String())
			}
		}
	}

	return extractedRows, nil
}

// ExtractTextFromPDFReader returns the document text with one row per line.
// When the row reader fails or yields nothing the plain text stream is used.
func ExtractTextFromPDFReader(reader io.Reader) (string, error) {
	rAt, size, err := readerAtWithSize(reader)
	if err != nil {
		return "", err
	}

	rows, rowErr := ExtractRowsFromPDFReader(io.NewSectionReader(rAt, 0, size))
	if rowErr == nil && len(rows) > 0 {
		return strings.Join(rows, "\n"), nil
	}
	if rowErr != nil {
		log.Debug().Err(rowErr).Msg("row extraction failed, trying plain text")
	}

	text, err := plainText(rAt, size)
	if err != nil {
		if rowErr != nil {
			return "", fmt.Errorf("%w; plain text: %v", rowErr, err)
		}
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func plainText(rAt io.ReaderAt, size int64) (string, error) {
	r, err := lpdf.NewReader(rAt, size)
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func readerAtWithSize(reader io.Reader) (io.ReaderAt, int64, error) {
	if v, ok := reader.(io.ReaderAt); ok {
		if seeker, ok := reader.(io.Seeker); ok {
			cur, _ := seeker.Seek(0, io.SeekCurrent)
			end, err := seeker.Seek(0, io.SeekEnd)
			if err != nil {
				return nil, 0, err
			}
			if _, err := seeker.Seek(cur, io.SeekStart); err != nil {
				return nil, 0, err
			}
			return v, end, nil
		}
		return nil, 0, errors.New("reader is io.ReaderAt but not io.Seeker, cannot determine size")
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, 0, err
	}
	b := buf.Bytes()
	return bytes.NewReader(b), int64(len(b)), nil
}
