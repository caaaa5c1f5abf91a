package common

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestExtractTextFromPDFReader_NotAPDF(t *testing.T) {
	_, err := ExtractTextFromPDFReader(strings.NewReader("this is not a pdf"))
	if err == nil {
		t.Error("Expected error for non-PDF input, got nil")
	}
}

func TestExtractRowsFromPDFReader_Empty(t *testing.T) {
	_, err := ExtractRowsFromPDFReader(bytes.NewReader(nil))
	if err == nil {
		t.Error("Expected error for empty input, got nil")
	}
}

func TestReaderAtWithSize_PlainReader(t *testing.T) {
	rAt, size, err := readerAtWithSize(strings.NewReader("abcdef"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if size != 6 {
		t.Errorf("Expected size 6, got %d", size)
	}
	buf := make([]byte, 3)
	if _, err := rAt.ReadAt(buf, 3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(buf) != "def" {
		t.Errorf("Expected 'def', got '%s'", string(buf))
	}
}

// danglingContentsPDF is a one page document whose /Contents points at an
// object missing from the xref table.
func danglingContentsPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 9 0 R >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractTextFromPDFReader_DanglingContents(t *testing.T) {
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := ExtractTextFromPDFReader(bytes.NewReader(danglingContentsPDF()))
		done <- outcome{text, err}
	}()

	select {
	case got := <-done:
		if !errors.Is(got.err, ErrNoText) {
			t.Errorf("Expected ErrNoText, got text %q err %v", got.text, got.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Extraction did not return for a page with a dangling content stream")
	}
}

func TestExtractRowsFromPDFReader_SkipsPageWithoutContent(t *testing.T) {
	done := make(chan []string, 1)
	go func() {
		rows, err := ExtractRowsFromPDFReader(bytes.NewReader(danglingContentsPDF()))
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		done <- rows
	}()

	select {
	case rows := <-done:
		if len(rows) != 0 {
			t.Errorf("Expected no rows, got %v", rows)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Row extraction did not return")
	}
}
