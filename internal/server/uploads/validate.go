package uploads

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize caps one uploaded file at 8 MiB.
const MaxFileSize = 8 << 20

var (
	ErrNotAnImage  = errors.New("only image files are allowed")
	ErrEmptyFile   = errors.New("file is empty")
	ErrFileTooBig  = fmt.Errorf("file exceeds %s", humanize.IBytes(MaxFileSize))
	ErrEmptyBatch  = errors.New("no files uploaded")
	ErrBatchTooBig = fmt.Errorf("too many files, max %d per request", MaxBatchSize)
)

// ValidateImage is the authoritative server-side check, performed before any
// object store call. The MIME type is sniffed from content; the declared
// Content-Type of the part is ignored. Returns the sniffed MIME type.
func ValidateImage(r io.Reader, size int64) (string, error) {
	if size <= 0 {
		return "", ErrEmptyFile
	}
	if size > MaxFileSize {
		return "", ErrFileTooBig
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w, got %s", ErrNotAnImage, mtype.String())
	}

	return mtype.String(), nil
}

// ValidateBatchSize rejects empty batches and batches over the cap.
func ValidateBatchSize(n int) error {
	if n == 0 {
		return ErrEmptyBatch
	}
	if n > MaxBatchSize {
		return ErrBatchTooBig
	}
	return nil
}
