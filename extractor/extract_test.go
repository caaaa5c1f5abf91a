package extractor

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/finantrack/cartola/config"
	"github.com/finantrack/cartola/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func passthrough(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	return string(b), err
}

func TestProcessReaderWith(t *testing.T) {
	require.NoError(t, config.UseDefaults())

	text := strings.Join([]string{
		"CARTOLA CUENTARUT N° 21737273",
		"Cliente Nombre RUT Fecha y Hora",
		"JUAN PEREZ SOTO 12.345.678-5 15/03/2024 10:30",
		"Detalle de movimientos:",
		"02/Feb 1234567 TEF DE MARIA LOPEZ $ 20.000 $ 0 $ 170.000",
	}, "\n")

	doc, err := ProcessReaderWith(context.Background(), strings.NewReader(text), testNow, passthrough)
	require.NoError(t, err)
	assert.Equal(t, "CUENTARUT", doc.AccountName)
	assert.Len(t, doc.Items, 1)
}

func TestProcessReaderWith_TextFailure(t *testing.T) {
	failing := func(io.Reader) (string, error) { return "", common.ErrNoText }

	_, err := ProcessReaderWith(context.Background(), strings.NewReader(""), testNow, failing)

	var extractionErr *common.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "pdf", extractionErr.Field)
}

func TestProcessPath_MissingFile(t *testing.T) {
	_, err := ProcessPath(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), testNow)
	assert.Error(t, err)
}
