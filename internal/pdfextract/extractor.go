// Package pdfextract turns an uploaded PDF into plain text by running
// the poppler pdftotext tool against a scoped temporary file.
package pdfextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"typedrill/internal/logger"
	"typedrill/internal/models"
)

// Error messages are user-facing; their wording is part of the UI
// contract, so handlers surface them verbatim.
var (
	ErrUnsupportedType  = errors.New("Only PDF files are allowed!")
	ErrToolNotFound     = errors.New("pdftotext command not found. Please install poppler-utils to enable PDF uploads.")
	ErrEmptyResult      = errors.New("Could not extract text from the PDF. It may be empty or image-based.")
	ErrExtractionFailed = errors.New("Error processing PDF with pdftotext.")
)

type Extractor struct {
	tool    string
	tempDir string
	timeout time.Duration
}

// New builds an Extractor. Empty tool falls back to "pdftotext" on
// PATH, empty tempDir to the OS default, non-positive timeout to 30s.
func New(tool, tempDir string, timeout time.Duration) *Extractor {
	if tool == "" {
		tool = "pdftotext"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{tool: tool, tempDir: tempDir, timeout: timeout}
}

// Extract writes the upload to a uniquely named temporary file, runs
// pdftotext over it requesting UTF-8 on stdout, and returns the raw
// extracted text. The caller is responsible for normalization.
//
// The temporary file is removed on every exit path. Type validation
// happens before any filesystem write.
func (e *Extractor) Extract(ctx context.Context, up *models.Upload) (string, error) {
	if up == nil || up.MimeType != "application/pdf" {
		return "", ErrUnsupportedType
	}
	// Declared type can lie; sniff the payload too.
	if mt := mimetype.Detect(up.Content); !mt.Is("application/pdf") {
		return "", ErrUnsupportedType
	}

	dir := e.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("typedrill-%s.pdf", uuid.NewString()))
	if err := os.WriteFile(path, up.Content, 0o600); err != nil {
		logger.WithCtx(ctx).Error("failed to write temp PDF", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("%w %v", ErrExtractionFailed, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.WithCtx(ctx).Error("failed to remove temp PDF", zap.String("path", path), zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.tool, "-enc", "UTF-8", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			logger.WithCtx(ctx).Error("pdftotext binary not found", zap.String("tool", e.tool))
			return "", ErrToolNotFound
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.WithCtx(ctx).Error("pdftotext timed out", zap.Duration("timeout", e.timeout))
			return "", fmt.Errorf("%w pdftotext timed out after %s", ErrExtractionFailed, e.timeout)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		logger.WithCtx(ctx).Error("pdftotext failed", zap.String("detail", detail))
		return "", fmt.Errorf("%w %s", ErrExtractionFailed, detail)
	}

	text := stdout.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResult
	}
	return text, nil
}
