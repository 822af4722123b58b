package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskSaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	d, err := NewDisk(dir)
	if err != nil {
		t.Fatal(err)
	}

	name, err := d.Save(pngUpload(t, "Photo.PNG"), "123_abc")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "123_abc.png" {
		t.Fatalf("saved name = %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	if _, err := d.Save(pngUpload(t, "again.png"), "123_abc"); err == nil {
		t.Fatal("expected error when the name is taken")
	}

	if err := d.Remove(name); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := d.Remove(name); !errors.Is(err, ErrLocalFileMissing) {
		t.Fatalf("second Remove err = %v, want ErrLocalFileMissing", err)
	}
}

func TestDiskExtensionFromContentType(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	name, err := d.Save(pngUpload(t, "blob"), "noext")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(name) != ".png" {
		t.Fatalf("saved name = %q, want a .png extension", name)
	}
}

func TestDiskRemoveStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := NewDisk(filepath.Join(root, "uploads"))
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Remove("../secret.txt"); !errors.Is(err, ErrLocalFileMissing) {
		t.Fatalf("err = %v, want ErrLocalFileMissing", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("file outside the uploads dir was removed")
	}
}
