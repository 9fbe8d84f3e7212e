package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// readLocalPage materializes the raw bytes of a local-binary page source,
// reading either a plain file or an entry inside a chapter archive.
func readLocalPage(src PageSource) ([]byte, error) {
	if src.ArchivePath == "" {
		return os.ReadFile(src.Path)
	}

	ext := strings.ToLower(filepath.Ext(src.ArchivePath))
	switch ext {
	case ".zip", ".cbz":
		return readZipEntry(src.ArchivePath, src.EntryPath)
	case ".rar", ".cbr":
		return readRarEntry(src.ArchivePath, src.EntryPath)
	case ".7z":
		return read7zEntry(src.ArchivePath, src.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if matchesEntry(f.Name, entryPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if matchesEntry(header.Name, entryPath) {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if matchesEntry(f.Name, entryPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// matchesEntry compares an archive member against the wanted page name.
// Archives produced by the downloader may nest pages under a chapter
// directory, so a basename match is accepted.
func matchesEntry(member, want string) bool {
	if member == want {
		return true
	}
	return filepath.Base(filepath.ToSlash(member)) == want
}
