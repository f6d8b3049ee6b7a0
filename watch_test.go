package tilegrid

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsReloadable(t *testing.T) {
	tests := map[string]bool{
		"seed.tengo":       true,
		"conf/tiles.YAML":  true,
		"tiles.yml":        true,
		"sheet.png":        false,
		"seed.tengo.swp":   false,
		"no-extension":     false,
		"dir.yaml/readme":  false,
		"/abs/path/a.yaml": true,
	}
	for path, want := range tests {
		if got := isReloadable(path); got != want {
			t.Errorf("isReloadable(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherFiltersToWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "seed.tengo")
	if err := os.WriteFile(script, []byte(`kind = "grass"`), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(script)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if !w.wants(script) {
		t.Error("watched file rejected")
	}
	if w.wants(filepath.Join(dir, "other.tengo")) {
		t.Error("unwatched sibling accepted")
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "seed.tengo")
	if err := os.WriteFile(script, []byte(`kind = "grass"`), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(script)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(script, []byte(`kind = "water"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if abs, _ := filepath.Abs(script); name != abs && name != script {
			t.Errorf("event for %q, want %q", name, script)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after writing the script")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "cfg.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	_ = w.Close()
	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
	if got := w.Poll(); len(got) != 0 {
		t.Errorf("Poll after Close = %v", got)
	}
}
