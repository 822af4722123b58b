package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeHost struct {
	uploadErr  error
	destroyErr error
	uploaded   []string
	destroyed  []string
}

func (h *fakeHost) Name() string { return "fake" }

func (h *fakeHost) Upload(_ context.Context, _ *Upload, name string) (Ref, error) {
	if h.uploadErr != nil {
		return Ref{}, h.uploadErr
	}
	key := Folder + "/" + name
	h.uploaded = append(h.uploaded, key)
	return Ref{URL: "https://cdn.test/" + key + ".png", Key: key}, nil
}

func (h *fakeHost) Destroy(_ context.Context, key string) error {
	h.destroyed = append(h.destroyed, key)
	return h.destroyErr
}

// resolvingHost can recover keys from URLs.
type resolvingHost struct{ fakeHost }

func (h *resolvingHost) KeyFromURL(url string) (string, error) {
	return "from-url:" + url, nil
}

func newTestManager(t *testing.T, host Host) (*Manager, *Metrics, *Disk) {
	t.Helper()
	disk, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := NewMetrics(prometheus.NewRegistry())
	return NewManager(host, disk, nil, m), m, disk
}

func TestStoreHosted(t *testing.T) {
	host := &fakeHost{}
	mgr, metrics, _ := newTestManager(t, host)

	img, err := mgr.Store(context.Background(), pngUpload(t, "a.png"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if img.Key == "" || img.URL == "" || img.LocalPath != "" {
		t.Fatalf("unexpected image %+v", img)
	}
	if len(host.uploaded) != 1 {
		t.Fatalf("uploads = %d", len(host.uploaded))
	}
	if got := testutil.ToFloat64(metrics.uploads.WithLabelValues("fake", "ok")); got != 1 {
		t.Fatalf("upload ok counter = %v", got)
	}
	if mgr.Backend() != "fake" {
		t.Fatalf("backend = %q", mgr.Backend())
	}
}

func TestStoreHostedFailureDoesNotFallBack(t *testing.T) {
	host := &fakeHost{uploadErr: errors.New("503 from provider")}
	mgr, metrics, disk := newTestManager(t, host)

	_, err := mgr.Store(context.Background(), pngUpload(t, "a.png"))
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}

	entries, _ := os.ReadDir(disk.Dir())
	if len(entries) != 0 {
		t.Fatalf("hosted failure wrote %d local files", len(entries))
	}
	if got := testutil.ToFloat64(metrics.uploads.WithLabelValues("fake", "failed")); got != 1 {
		t.Fatalf("upload failed counter = %v", got)
	}
}

func TestStoreLocalWithoutHost(t *testing.T) {
	mgr, _, disk := newTestManager(t, nil)

	img, err := mgr.Store(context.Background(), pngUpload(t, "a.png"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if img.Hosted() || img.LocalPath == "" {
		t.Fatalf("unexpected image %+v", img)
	}
	if _, err := os.Stat(filepath.Join(disk.Dir(), img.LocalPath)); err != nil {
		t.Fatalf("local file missing: %v", err)
	}
	if mgr.Backend() != "local" {
		t.Fatalf("backend = %q", mgr.Backend())
	}
}

func TestStoreNilUpload(t *testing.T) {
	mgr, _, _ := newTestManager(t, &fakeHost{})

	if _, err := mgr.Store(context.Background(), nil); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("err = %v, want ErrInvalidImage", err)
	}
}

func TestDiscardPrefersHostedReference(t *testing.T) {
	host := &fakeHost{}
	mgr, metrics, disk := newTestManager(t, host)

	local := filepath.Join(disk.Dir(), "old.png")
	if err := os.WriteFile(local, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mgr.Discard(context.Background(), Image{LocalPath: "old.png", URL: "https://cdn.test/k.png", Key: "products/k"})
	if out != OutcomeDeleted {
		t.Fatalf("outcome = %v", out)
	}
	if len(host.destroyed) != 1 || host.destroyed[0] != "products/k" {
		t.Fatalf("destroyed = %v", host.destroyed)
	}
	if _, err := os.Stat(local); err != nil {
		t.Fatal("local file must be left alone when a hosted reference exists")
	}
	if got := testutil.ToFloat64(metrics.cleanups.WithLabelValues("hosted", "deleted")); got != 1 {
		t.Fatalf("cleanup counter = %v", got)
	}
}

func TestDiscardResolvesKeyFromURL(t *testing.T) {
	host := &resolvingHost{}
	mgr, _, _ := newTestManager(t, host)

	out := mgr.Discard(context.Background(), Image{URL: "https://cdn.test/x.png"})
	if out != OutcomeDeleted {
		t.Fatalf("outcome = %v", out)
	}
	if len(host.destroyed) != 1 || host.destroyed[0] != "from-url:https://cdn.test/x.png" {
		t.Fatalf("destroyed = %v", host.destroyed)
	}
}

func TestDiscardFailuresAreSwallowed(t *testing.T) {
	host := &fakeHost{destroyErr: errors.New("boom")}
	mgr, metrics, _ := newTestManager(t, host)

	if out := mgr.Discard(context.Background(), Image{Key: "products/k"}); out != OutcomeFailed {
		t.Fatalf("outcome = %v", out)
	}
	// URL without key and a host that cannot resolve it
	if out := mgr.Discard(context.Background(), Image{URL: "https://cdn.test/x.png"}); out != OutcomeFailed {
		t.Fatalf("outcome = %v", out)
	}
	if got := testutil.ToFloat64(metrics.cleanups.WithLabelValues("hosted", "failed")); got != 2 {
		t.Fatalf("failed cleanup counter = %v", got)
	}
}

func TestDiscardLocal(t *testing.T) {
	mgr, metrics, disk := newTestManager(t, nil)

	if err := os.WriteFile(filepath.Join(disk.Dir(), "p.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out := mgr.Discard(context.Background(), Image{LocalPath: "p.png"}); out != OutcomeDeleted {
		t.Fatalf("outcome = %v", out)
	}
	if out := mgr.Discard(context.Background(), Image{LocalPath: "p.png"}); out != OutcomeFailed {
		t.Fatalf("missing file outcome = %v", out)
	}
	if got := testutil.ToFloat64(metrics.cleanups.WithLabelValues("local", "deleted")); got != 1 {
		t.Fatalf("deleted counter = %v", got)
	}
	if got := testutil.ToFloat64(metrics.cleanups.WithLabelValues("local", "failed")); got != 1 {
		t.Fatalf("failed counter = %v", got)
	}
}

func TestDiscardNothing(t *testing.T) {
	host := &fakeHost{}
	mgr, _, _ := newTestManager(t, host)

	if out := mgr.Discard(context.Background(), Image{}); out != OutcomeSkipped {
		t.Fatalf("outcome = %v", out)
	}
	if len(host.destroyed) != 0 {
		t.Fatal("nothing should be destroyed")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(nil, disk, nil, nil)

	if _, err := mgr.Store(context.Background(), pngUpload(t, "a.png")); err != nil {
		t.Fatal(err)
	}
}
