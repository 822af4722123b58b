package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var ErrLocalFileMissing = errors.New("local file not found")

// Disk is the local fallback store. Files are served back under /uploads.
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Dir() string { return d.dir }

// Save writes up into the uploads directory and returns the stored file name.
func (d *Disk) Save(up *Upload, name string) (string, error) {
	filename := name + extension(up)

	f, err := os.OpenFile(filepath.Join(d.dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, up.Body); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return filename, nil
}

// Remove unlinks a previously saved file. Only the base name is honoured so a
// stored path can never escape the uploads directory.
func (d *Disk) Remove(filename string) error {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return fmt.Errorf("invalid file name %q", filename)
	}

	if err := os.Remove(filepath.Join(d.dir, base)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrLocalFileMissing, base)
		}
		return err
	}
	return nil
}

func extension(up *Upload) string {
	if ext := strings.ToLower(filepath.Ext(up.Filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(up.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
