package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Host is a hosted media service that stores images under Folder.
type Host interface {
	Name() string
	Upload(ctx context.Context, up *Upload, name string) (Ref, error)
	Destroy(ctx context.Context, key string) error
}

// URLResolver is implemented by hosts able to recover a deletable key from a
// public URL, for records that only kept the URL.
type URLResolver interface {
	KeyFromURL(url string) (string, error)
}

// Manager ties stored images to the product lifecycle. Without a Host every
// image goes to the local disk.
type Manager struct {
	host    Host
	disk    *Disk
	logger  *zap.SugaredLogger
	metrics *Metrics
}

func NewManager(host Host, disk *Disk, logger *zap.SugaredLogger, metrics *Metrics) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		host:    host,
		disk:    disk,
		logger:  logger,
		metrics: metrics,
	}
}

// Backend names where new images are stored.
func (m *Manager) Backend() string {
	if m.host != nil {
		return m.host.Name()
	}
	return "local"
}

// Store persists up and returns the references to record on the product.
// The call blocks until the hosted service acknowledges the upload.
func (m *Manager) Store(ctx context.Context, up *Upload) (Image, error) {
	if up == nil {
		return Image{}, fmt.Errorf("%w: no file", ErrInvalidImage)
	}

	name := fmt.Sprintf("%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	start := time.Now()

	if m.host == nil {
		if m.disk == nil {
			return Image{}, fmt.Errorf("%w: no image storage configured", ErrUpload)
		}
		path, err := m.disk.Save(up, name)
		if err != nil {
			m.metrics.upload("local", false)
			m.logger.Errorw("local image save failed", "filename", up.Filename, "error", err)
			return Image{}, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		m.metrics.upload("local", true)
		return Image{LocalPath: path}, nil
	}

	ref, err := m.host.Upload(ctx, up, name)
	if err != nil {
		m.metrics.upload(m.host.Name(), false)
		m.logger.Errorw("hosted image upload failed", "host", m.host.Name(), "filename", up.Filename, "error", err)
		return Image{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	m.metrics.upload(m.host.Name(), true)
	m.logger.Infow("image uploaded", "host", m.host.Name(), "key", ref.Key, "took", time.Since(start))
	return Image{URL: ref.URL, Key: ref.Key}, nil
}

// Discard deletes the authoritative reference of img: the hosted object when
// one exists, otherwise the local file. Failures are logged and counted and
// never returned; callers continue regardless.
func (m *Manager) Discard(ctx context.Context, img Image) Outcome {
	switch {
	case img.Hosted():
		return m.discardHosted(ctx, img)
	case img.LocalPath != "":
		return m.discardLocal(img.LocalPath)
	default:
		return OutcomeSkipped
	}
}

func (m *Manager) discardHosted(ctx context.Context, img Image) Outcome {
	target := "hosted"
	if m.host == nil {
		m.logger.Warnw("image cleanup failed", "target", target, "key", img.Key, "url", img.URL, "error", "no hosted media service configured")
		m.metrics.cleanup(target, OutcomeFailed)
		return OutcomeFailed
	}

	key := img.Key
	if key == "" {
		resolver, ok := m.host.(URLResolver)
		if !ok {
			m.logger.Warnw("image cleanup failed", "target", target, "url", img.URL, "error", "hosted reference has no key")
			m.metrics.cleanup(target, OutcomeFailed)
			return OutcomeFailed
		}
		k, err := resolver.KeyFromURL(img.URL)
		if err != nil {
			m.logger.Warnw("image cleanup failed", "target", target, "url", img.URL, "error", err)
			m.metrics.cleanup(target, OutcomeFailed)
			return OutcomeFailed
		}
		key = k
	}

	if err := m.host.Destroy(ctx, key); err != nil {
		m.logger.Warnw("image cleanup failed", "target", target, "host", m.host.Name(), "key", key, "error", err)
		m.metrics.cleanup(target, OutcomeFailed)
		return OutcomeFailed
	}

	m.logger.Infow("image deleted", "target", target, "host", m.host.Name(), "key", key)
	m.metrics.cleanup(target, OutcomeDeleted)
	return OutcomeDeleted
}

func (m *Manager) discardLocal(path string) Outcome {
	target := "local"
	if m.disk == nil {
		m.logger.Warnw("image cleanup failed", "target", target, "path", path, "error", "no uploads directory configured")
		m.metrics.cleanup(target, OutcomeFailed)
		return OutcomeFailed
	}

	if err := m.disk.Remove(path); err != nil {
		if errors.Is(err, ErrLocalFileMissing) {
			m.logger.Warnw("local file not found", "path", path)
		} else {
			m.logger.Warnw("image cleanup failed", "target", target, "path", path, "error", err)
		}
		m.metrics.cleanup(target, OutcomeFailed)
		return OutcomeFailed
	}

	m.logger.Infow("image deleted", "target", target, "path", path)
	m.metrics.cleanup(target, OutcomeDeleted)
	return OutcomeDeleted
}
