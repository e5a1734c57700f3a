package upload_test

import (
	"bytes"
	"testing"

	"go-careers-backend/pkg/upload"

	"github.com/stretchr/testify/assert"
)

func pdfBytes(size int) []byte {
	head := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	if size <= len(head) {
		return head
	}
	return append(head, bytes.Repeat([]byte{' '}, size-len(head))...)
}

func TestValidateResume(t *testing.T) {
	t.Run("Should accept a small PDF", func(t *testing.T) {
		r := &upload.Resume{Filename: "cv.pdf", ContentType: "application/pdf", Data: pdfBytes(1024)}
		assert.NoError(t, upload.ValidateResume(r, 0))
	})

	t.Run("Should accept content type with parameters", func(t *testing.T) {
		r := &upload.Resume{ContentType: "application/pdf; charset=binary", Data: pdfBytes(64)}
		assert.NoError(t, upload.ValidateResume(r, 0))
	})

	t.Run("Should reject files over the cap", func(t *testing.T) {
		r := &upload.Resume{ContentType: "application/pdf", Data: pdfBytes(int(upload.DefaultMaxResumeBytes) + 1)}
		assert.ErrorIs(t, upload.ValidateResume(r, 0), upload.ErrTooLarge)
	})

	t.Run("Should accept a file exactly at the cap", func(t *testing.T) {
		r := &upload.Resume{ContentType: "application/pdf", Data: pdfBytes(int(upload.DefaultMaxResumeBytes))}
		assert.NoError(t, upload.ValidateResume(r, 0))
	})

	t.Run("Should reject non-PDF content type", func(t *testing.T) {
		r := &upload.Resume{ContentType: "image/png", Data: pdfBytes(64)}
		assert.ErrorIs(t, upload.ValidateResume(r, 0), upload.ErrNotPDF)
	})

	t.Run("Should reject spoofed PDF", func(t *testing.T) {
		r := &upload.Resume{ContentType: "application/pdf", Data: []byte("<html><body>hi</body></html>")}
		assert.ErrorIs(t, upload.ValidateResume(r, 0), upload.ErrContentMismatch)
	})

	t.Run("Should reject empty payload", func(t *testing.T) {
		assert.ErrorIs(t, upload.ValidateResume(&upload.Resume{ContentType: "application/pdf"}, 0), upload.ErrEmptyFile)
	})
}
