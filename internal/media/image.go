package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxImageBytes caps a single product image.
const MaxImageBytes = 5 * 1024 * 1024

// Folder is the logical folder every hosted product image lives under.
const Folder = "products"

var (
	ErrInvalidImage = errors.New("invalid image")
	ErrUpload       = errors.New("image upload failed")
)

// Image is the set of image references carried by a product. When a hosted
// reference exists it is authoritative for display and deletion.
type Image struct {
	LocalPath string
	URL       string
	Key       string
}

func (i Image) Hosted() bool { return i.Key != "" || i.URL != "" }

func (i Image) IsZero() bool { return i == Image{} }

// Ref is what a hosted backend returns for a stored object.
type Ref struct {
	URL string
	Key string
}

// Upload is a validated image file taken from a request.
type Upload struct {
	Body        io.ReadSeeker
	Filename    string
	Size        int64
	ContentType string
}

// NewUpload checks the size and sniffs the first 512 bytes of body, which must
// be an image. The reader is rewound before returning.
func NewUpload(body io.ReadSeeker, filename string, size int64) (*Upload, error) {
	if size > MaxImageBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, MaxImageBytes)
	}

	contentType, err := sniff(body)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image files allowed, got %s", ErrInvalidImage, contentType)
	}

	return &Upload{
		Body:        body,
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func sniff(body io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(body, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek reset: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// Outcome of a best-effort image deletion.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeDeleted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}
