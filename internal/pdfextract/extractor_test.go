package pdfextract

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedrill/internal/models"
)

// Minimal payload that sniffs as application/pdf.
var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func pdfUpload() *models.Upload {
	return &models.Upload{Filename: "test.pdf", MimeType: "application/pdf", Content: pdfBytes}
}

func entries(t *testing.T, dir string) int {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(list)
}

func TestExtractRejectsNonPDFBeforeAnyWrite(t *testing.T) {
	dir := t.TempDir()
	e := New("pdftotext", dir, time.Second)

	_, err := e.Extract(context.Background(), &models.Upload{
		Filename: "notes.txt",
		MimeType: "text/plain",
		Content:  []byte("plain text"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, 0, entries(t, dir), "no temp file may be created for rejected uploads")
}

func TestExtractRejectsMislabeledContent(t *testing.T) {
	dir := t.TempDir()
	e := New("pdftotext", dir, time.Second)

	_, err := e.Extract(context.Background(), &models.Upload{
		Filename: "fake.pdf",
		MimeType: "application/pdf",
		Content:  []byte("this is not a pdf at all"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, 0, entries(t, dir))
}

func TestExtractNilUpload(t *testing.T) {
	e := New("pdftotext", t.TempDir(), time.Second)
	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractToolNotFound(t *testing.T) {
	dir := t.TempDir()
	e := New("typedrill-no-such-binary", dir, time.Second)

	_, err := e.Extract(context.Background(), pdfUpload())
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Equal(t, 0, entries(t, dir), "temp file must be removed even when the tool is missing")
}

func TestExtractEmptyResult(t *testing.T) {
	dir := t.TempDir()
	// "true" exits 0 with no output, which is exactly the
	// tool-succeeded-but-produced-nothing case.
	e := New("true", dir, time.Second)

	_, err := e.Extract(context.Background(), pdfUpload())
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Equal(t, 0, entries(t, dir))
}

func TestExtractSuccessCleansUpTempFile(t *testing.T) {
	dir := t.TempDir()
	// "echo" prints its arguments, standing in for a tool that writes
	// extracted text to stdout.
	e := New("echo", dir, time.Second)

	out, err := e.Extract(context.Background(), pdfUpload())
	require.NoError(t, err)
	assert.Contains(t, out, dir, "stdout should have been captured")
	assert.Equal(t, 0, entries(t, dir), "temp file must be removed after success")
}

func TestExtractFailureWrapsToolError(t *testing.T) {
	dir := t.TempDir()
	// "false" exits nonzero without output.
	e := New("false", dir, time.Second)

	_, err := e.Extract(context.Background(), pdfUpload())
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 0, entries(t, dir))
}
