package fileutils

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Pack contents that go into every archive. pack.mcmeta must exist, the rest
// are included when present.
var archiveContents = []string{"pack.mcmeta", "pack.png", "assets"}

// CreateArchive zips the distributable pack contents of packDir into a zip
// at out. Entry names are rooted at the pack dir so Minecraft finds
// pack.mcmeta at the archive root.
func CreateArchive(packDir string, out string) error {
	if _, err := os.Stat(filepath.Join(packDir, "pack.mcmeta")); err != nil {
		return fmt.Errorf("pack.mcmeta not found in %s: %w", packDir, err)
	}

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := zip.NewWriter(file)
	for _, item := range archiveContents {
		path := filepath.Join(packDir, item)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err := addDir(writer, packDir, path); err != nil {
				return err
			}
		} else if err := addFile(writer, path, item); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}
	return file.Close()
}

func addDir(writer *zip.Writer, packDir string, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		rel, err := filepath.Rel(packDir, path)
		if err != nil {
			return err
		}
		return addFile(writer, path, filepath.ToSlash(rel))
	})
}

func addFile(writer *zip.Writer, path string, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := writer.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
