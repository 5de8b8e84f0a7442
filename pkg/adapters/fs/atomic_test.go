package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileExclusive(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "test.txt")
		content := []byte("hello exclusive")

		if err := writeFileExclusive(filename, content, 0644); err != nil {
			t.Fatalf("writeFileExclusive failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("Expected content %q, got %q", content, got)
		}
	})

	t.Run("Never Overwrites", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "test.txt")
		if err := os.WriteFile(filename, []byte("initial"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		err := writeFileExclusive(filename, []byte("second"), 0644)
		if !errors.Is(err, os.ErrExist) {
			t.Fatalf("Expected os.ErrExist, got %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "initial" {
			t.Errorf("Existing file was modified: %q", got)
		}
	})

	t.Run("Leaves No Staging Files", func(t *testing.T) {
		dir := t.TempDir()
		if err := writeFileExclusive(filepath.Join(dir, "a.txt"), []byte("a"), 0644); err != nil {
			t.Fatalf("writeFileExclusive failed: %v", err)
		}
		_ = writeFileExclusive(filepath.Join(dir, "a.txt"), []byte("b"), 0644)

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("Staging file left behind: %s", e.Name())
			}
		}
		if len(entries) != 1 {
			t.Errorf("Expected 1 file, got %d", len(entries))
		}
	})
}

func TestMoveFileExclusive(t *testing.T) {
	t.Run("Moves And Removes Source", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.jpg")
		dst := filepath.Join(dir, "dst.jpg")
		if err := os.WriteFile(src, []byte("jpeg"), 0600); err != nil {
			t.Fatal(err)
		}

		removed, err := moveFileExclusive(src, dst, 0644)
		if err != nil {
			t.Fatalf("moveFileExclusive failed: %v", err)
		}
		if !removed {
			t.Error("Expected source to be removed")
		}
		if _, err := os.Stat(src); !os.IsNotExist(err) {
			t.Error("Source still exists")
		}
		got, _ := os.ReadFile(dst)
		if string(got) != "jpeg" {
			t.Errorf("Unexpected destination content %q", got)
		}
	})

	t.Run("Refuses Existing Destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.jpg")
		dst := filepath.Join(dir, "dst.jpg")
		_ = os.WriteFile(src, []byte("new"), 0600)
		_ = os.WriteFile(dst, []byte("old"), 0600)

		_, err := moveFileExclusive(src, dst, 0644)
		if !errors.Is(err, os.ErrExist) {
			t.Fatalf("Expected os.ErrExist, got %v", err)
		}
		got, _ := os.ReadFile(dst)
		if string(got) != "old" {
			t.Errorf("Destination was modified: %q", got)
		}
		if _, err := os.Stat(src); err != nil {
			t.Error("Source must survive a refused move")
		}
	})
}
