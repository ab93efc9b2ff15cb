package ioutils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	if err := os.WriteFile(src, []byte("video data"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out", "nested", "dest.mkv")
	if err := AtomicCopy(src, dest); err != nil {
		t.Fatalf("AtomicCopy: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading dest: %v", err)
	}
	if string(got) != "video data" {
		t.Errorf("dest content = %q", got)
	}

	// Source must survive a copy.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}

	// No temp artifacts may remain.
	entries, _ := os.ReadDir(filepath.Dir(dest))
	for _, e := range entries {
		if IsTempArtifact(e.Name()) {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
}

func TestAtomicCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dest.mkv")
	if err := AtomicCopy(filepath.Join(dir, "nope.mkv"), dest); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dest should not exist after failed copy")
	}
}

func TestAtomicCopyOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	dest := filepath.Join(dir, "dest.mkv")
	os.WriteFile(src, []byte("new"), 0644)
	os.WriteFile(dest, []byte("old"), 0644)

	if err := AtomicCopy(src, dest); err != nil {
		t.Fatalf("AtomicCopy: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "new" {
		t.Errorf("dest content = %q, want %q", got, "new")
	}
}

func TestAtomicMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	if err := os.WriteFile(src, []byte("video data"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out", "dest.mkv")
	if err := AtomicMove(src, dest); err != nil {
		t.Fatalf("AtomicMove: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still exists after move")
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading dest: %v", err)
	}
	if string(got) != "video data" {
		t.Errorf("dest content = %q", got)
	}
}

func TestClassifyOverlap(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	other := t.TempDir()
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		src, dest string
		want      Overlap
	}{
		{"disjoint", dir, other, OverlapNone},
		{"same", dir, dir, OverlapSame},
		{"src inside dest", sub, dir, OverlapSrcWithinDest},
		{"dest inside src", dir, sub, OverlapDestWithinSrc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyOverlap(tt.src, tt.dest); got != tt.want {
				t.Errorf("ClassifyOverlap(%q, %q) = %v, want %v", tt.src, tt.dest, got, tt.want)
			}
		})
	}
}

func TestIsTempArtifact(t *testing.T) {
	if !IsTempArtifact("/out/.renamer-tmp.movie.mkv.1234") {
		t.Error("temp artifact not recognized")
	}
	if IsTempArtifact("/out/movie.mkv") {
		t.Error("regular file misclassified as temp artifact")
	}
}
