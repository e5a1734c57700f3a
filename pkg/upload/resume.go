package upload

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// PDFContentType is the only content type accepted for resumes.
	PDFContentType = "application/pdf"

	// DefaultMaxResumeBytes is the 3 MiB upload cap.
	DefaultMaxResumeBytes int64 = 3 << 20
)

var pdfMagic = []byte("%PDF")

var (
	ErrEmptyFile       = errors.New("resume file is empty")
	ErrTooLarge        = errors.New("resume file size should not exceed 3MB")
	ErrNotPDF          = errors.New("only PDF files are allowed")
	ErrContentMismatch = errors.New("resume content is not a PDF document")
)

// Resume is an uploaded resume held in memory for the duration of a request.
type Resume struct {
	Filename    string
	ContentType string // as declared by the client
	Data        []byte
}

// Size returns the payload length in bytes.
func (r *Resume) Size() int64 {
	return int64(len(r.Data))
}

// ValidateResume checks a resume in three layers:
// 1. size cap
// 2. declared content type must be application/pdf
// 3. sniffed content must be a PDF (magic bytes + mimetype detection)
func ValidateResume(r *Resume, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResumeBytes
	}
	if r == nil || len(r.Data) == 0 {
		return ErrEmptyFile
	}
	if r.Size() > maxBytes {
		return ErrTooLarge
	}

	if !IsPDFContentType(r.ContentType) {
		return fmt.Errorf("%w (got %q)", ErrNotPDF, r.ContentType)
	}

	if !bytes.HasPrefix(r.Data, pdfMagic) {
		return ErrContentMismatch
	}
	if detected := mimetype.Detect(r.Data); !detected.Is(PDFContentType) {
		return fmt.Errorf("%w (detected %s)", ErrContentMismatch, detected.String())
	}

	return nil
}

// IsPDFContentType reports whether a declared Content-Type header names a PDF, ignoring parameters.
func IsPDFContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	return strings.EqualFold(mediaType, PDFContentType)
}
