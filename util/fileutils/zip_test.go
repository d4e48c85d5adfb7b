package fileutils

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func buildPackDir(t *testing.T, withIcon bool) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pack.mcmeta"), []byte(`{"pack": {"pack_format": 34, "description": "Test"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if withIcon {
		if err := os.WriteFile(filepath.Join(dir, "pack.png"), []byte("png"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets", "minecraft", "textures", "gui"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "minecraft", "textures", "gui", "title.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	// Must not end up in the archive.
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func TestCreateArchive(t *testing.T) {
	dir := buildPackDir(t, true)
	out := filepath.Join(t.TempDir(), "pack.zip")

	if err := CreateArchive(dir, out); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"assets/minecraft/textures/gui/title.png",
		"pack.mcmeta",
		"pack.png",
	}
	got := archiveNames(t, out)
	if len(got) != len(want) {
		t.Fatalf("archive entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCreateArchiveWithoutIcon(t *testing.T) {
	dir := buildPackDir(t, false)
	out := filepath.Join(t.TempDir(), "pack.zip")

	if err := CreateArchive(dir, out); err != nil {
		t.Fatal(err)
	}
	for _, name := range archiveNames(t, out) {
		if name == "pack.png" {
			t.Error("archive must not contain a pack.png that does not exist")
		}
	}
}

func TestCreateArchiveRequiresPackMeta(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pack.zip")
	if err := CreateArchive(t.TempDir(), out); err == nil {
		t.Error("expected an error without pack.mcmeta")
	}
}
