package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Manga is the library-owned value object the reader receives. The reader
// never mutates chapter/page content; read-count and last-read updates go
// back through host callbacks.
type Manga struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CoverURL      string    `json:"coverUrl"`
	Chapters      []Chapter `json:"chapters"`
	TotalPages    int       `json:"totalPages"`
	SourceID      string    `json:"sourceId"`
	IsFullDetails bool      `json:"isFullDetails"`
	Author        string    `json:"author"`
	Keywords      []string  `json:"keywords"`
	ReadCount     int       `json:"readCount"`
	IsPinned      bool      `json:"isPinned"`
	LastReadAt    float64   `json:"lastReadAt"`
	CollectionIDs []string  `json:"collectionIds"`
}

// Chapter is immutable once loaded into a reader session. Order is assigned
// after natural-sorting by title; the backend's insertion order is ignored.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"-"`
	Pages []Page `json:"pages"`
}

// Page carries exactly one sourcing strategy, resolved once at manga load
// and fixed for the lifetime of the session.
type Page struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Source PageSource
}

// PageSourceKind discriminates the two page sourcing strategies.
type PageSourceKind int

const (
	SourceRemoteURL PageSourceKind = iota
	SourceLocalBinary
)

// PageSource is a tagged variant: RemoteURL(URL) or LocalBinary(Path) where
// Path may point into a chapter archive (ArchivePath/EntryPath set).
type PageSource struct {
	Kind        PageSourceKind
	URL         string
	Path        string // Local file path, or archive:entry display form
	ArchivePath string // Empty for plain files
	EntryPath   string // Empty for plain files
}

// Key returns a stable cache key for the source.
func (s PageSource) Key() string {
	if s.Kind == SourceLocalBinary {
		return s.Path
	}
	return s.URL
}

// ChapterIndexByID returns the index of the chapter with the given id, or -1.
func (m *Manga) ChapterIndexByID(id string) int {
	for i := range m.Chapters {
		if m.Chapters[i].ID == id {
			return i
		}
	}
	return -1
}

// ChapterSortStrategy defines the interface for chapter ordering strategies.
type ChapterSortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(chapters []Chapter) []Chapter
	// Name returns the human-readable name of the strategy
	Name() string
}

// NaturalChapterSort orders chapters numeric-aware by title, so
// "Chapter 10" sorts after "Chapter 9" rather than before "Chapter 2".
type NaturalChapterSort struct{}

func (s *NaturalChapterSort) Sort(chapters []Chapter) []Chapter {
	result := make([]Chapter, len(chapters))
	copy(result, chapters)

	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(result[i].Title, result[j].Title)
	})

	return result
}

func (s *NaturalChapterSort) Name() string {
	return "Natural"
}

// EntryOrderChapterSort preserves the backend's order.
type EntryOrderChapterSort struct{}

func (s *EntryOrderChapterSort) Sort(chapters []Chapter) []Chapter {
	result := make([]Chapter, len(chapters))
	copy(result, chapters)
	return result
}

func (s *EntryOrderChapterSort) Name() string {
	return "Entry Order"
}

// NormalizeChapters natural-sorts chapters by title, natural-sorts each
// chapter's pages by name, and assigns Order. Called once when a manga is
// loaded; the session traverses the normalized slice only.
func NormalizeChapters(chapters []Chapter) []Chapter {
	strategy := &NaturalChapterSort{}
	result := strategy.Sort(chapters)

	for i := range result {
		result[i].Order = i
		pages := make([]Page, len(result[i].Pages))
		copy(pages, result[i].Pages)
		sort.SliceStable(pages, func(a, b int) bool {
			return natural.Less(pages[a].Name, pages[b].Name)
		})
		result[i].Pages = pages
	}

	return result
}

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func isArchiveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".cbz", ".rar", ".cbr", ".7z":
		return true
	default:
		return false
	}
}

// ResolvePageSources fixes a sourcing strategy for every page of the manga.
// When downloadsDir is set and the page exists on local disk (either as a
// plain file or inside a chapter archive), the page is served from there;
// everything else falls back to the backend URL. The decision is made once
// and never revisited during the session.
func ResolvePageSources(m *Manga, downloadsDir string) {
	if downloadsDir == "" {
		markAllRemote(m)
		return
	}

	mangaDir := filepath.Join(downloadsDir, m.SourceID)
	if _, err := os.Stat(mangaDir); err != nil {
		markAllRemote(m)
		return
	}

	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		chapterDir := filepath.Join(mangaDir, ch.Title)
		archivePath := findChapterArchive(mangaDir, ch.Title)

		for pi := range ch.Pages {
			p := &ch.Pages[pi]
			local := filepath.Join(chapterDir, p.Name)
			if _, err := os.Stat(local); err == nil {
				p.Source = PageSource{Kind: SourceLocalBinary, Path: local}
				continue
			}
			if archivePath != "" {
				p.Source = PageSource{
					Kind:        SourceLocalBinary,
					Path:        archivePath + ":" + p.Name,
					ArchivePath: archivePath,
					EntryPath:   p.Name,
				}
				continue
			}
			p.Source = PageSource{Kind: SourceRemoteURL, URL: p.URL}
		}
	}
}

func markAllRemote(m *Manga) {
	for ci := range m.Chapters {
		for pi := range m.Chapters[ci].Pages {
			p := &m.Chapters[ci].Pages[pi]
			p.Source = PageSource{Kind: SourceRemoteURL, URL: p.URL}
		}
	}
}

// findChapterArchive looks for <chapter>.zip/.cbz/.rar/.cbr/.7z next to the
// chapter directory.
func findChapterArchive(mangaDir, chapterTitle string) string {
	for _, ext := range []string{".zip", ".cbz", ".rar", ".cbr", ".7z"} {
		candidate := filepath.Join(mangaDir, chapterTitle+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
