package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	return storage
}

func TestSaveReturnsStoredName(t *testing.T) {
	storage := setupStorage(t)

	name, err := storage.Save(KindContent, "office shot.jpg", strings.NewReader("fake-jpeg"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(name, "office-shot.jpg") {
		t.Errorf("stored name %q should keep the sanitized original name", name)
	}

	data, err := os.ReadFile(filepath.Join(storage.Root(), name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "fake-jpeg" {
		t.Errorf("stored bytes = %q", data)
	}
}

func TestSaveKindsUseOwnDirectories(t *testing.T) {
	storage := setupStorage(t)

	thumb, err := storage.Save(KindThumbnail, "t.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save thumbnail failed: %v", err)
	}
	hero, err := storage.Save(KindHero, "h.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save hero failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(storage.Root(), "thumbnails", thumb)); err != nil {
		t.Errorf("thumbnail not under thumbnails/: %v", err)
	}
	if _, err := os.Stat(filepath.Join(storage.Root(), "heroImages", hero)); err != nil {
		t.Errorf("hero image not under heroImages/: %v", err)
	}
}

func TestSaveUnknownKind(t *testing.T) {
	storage := setupStorage(t)
	if _, err := storage.Save(Kind("video"), "v.mp4", strings.NewReader("x")); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
}

func TestSaveConcurrentUploadsGetDistinctNames(t *testing.T) {
	storage := setupStorage(t)
	names := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		name, err := storage.Save(KindContent, "same.jpg", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, ok := names[name]; ok {
			t.Fatalf("stored name %q repeated", name)
		}
		names[name] = struct{}{}
	}
}

func TestListStored(t *testing.T) {
	storage := setupStorage(t)
	want := make(map[string]struct{})
	for _, kind := range []Kind{KindContent, KindThumbnail, KindHero} {
		name, err := storage.Save(kind, "a.jpg", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		want[name] = struct{}{}
	}

	stored, err := storage.ListStored()
	if err != nil {
		t.Fatalf("ListStored failed: %v", err)
	}
	if len(stored) != len(want) {
		t.Fatalf("ListStored = %v, want %d names", stored, len(want))
	}
	for _, name := range stored {
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected stored name %q", name)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"plain.jpg":       "plain.jpg",
		"with space.png":  "with-space.png",
		"we?ird*name.gif": "weirdname.gif",
		"???":             "upload",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
