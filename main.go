package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var debugEnabled bool

func debugLog(format string, args ...any) {
	if debugEnabled {
		log.Printf("Debug: "+format, args...)
	}
}

var (
	flagBackend string
	flagChapter int
	flagPage    int
)

var rootCmd = &cobra.Command{
	Use:           "mrv",
	Short:         "Manga reader for a local library backend",
	Long:          "mrv reads manga from a local library backend, serving pages from\ndownloaded files and archives when available and falling back to the\nbackend otherwise.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var readCmd = &cobra.Command{
	Use:   "read <manga-id>",
	Short: "Open a manga in the reader",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRead(args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for manga through the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "backend base URL (overrides config)")
	readCmd.Flags().IntVar(&flagChapter, "chapter", 0, "start at chapter number (1-based, overrides saved progress)")
	readCmd.Flags().IntVar(&flagPage, "page", 0, "start at page number (1-based, overrides saved progress)")
	rootCmd.AddCommand(readCmd, listCmd, searchCmd)
}

func setupClient() (*Client, ConfigLoadResult) {
	result := loadConfig()
	debugEnabled = result.Config.Debug
	url := result.Config.BackendURL
	if flagBackend != "" {
		url = flagBackend
	}
	return NewClient(url), result
}

func runRead(mangaID string) error {
	client, result := setupClient()
	cfg := result.Config

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manga, err := client.MangaDetail(ctx, mangaID)
	if err != nil {
		return err
	}
	if len(manga.Chapters) == 0 {
		return fmt.Errorf("manga %s has no chapters", mangaID)
	}
	ResolvePageSources(manga, cfg.DownloadsDir)

	settings, err := client.Settings(ctx)
	if err != nil {
		log.Printf("Warning: settings unavailable, using defaults: %v", err)
		settings = &AppSettings{
			ReaderBackgroundColor: "#0f172a",
			ToggleMenuKey:         "m",
		}
	}

	store := NewProgressStore(client)
	initial := resumePosition(ctx, store, manga)
	initial = initial.Clamp(manga.Chapters)

	if err := InitGraphics(); err != nil {
		return fmt.Errorf("initializing graphics: %w", err)
	}

	reader := NewReader(manga, initial, result, *settings, client, store)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("mrv - " + manga.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(reader); err != nil {
		return err
	}
	return nil
}

// resumePosition restores the saved reading position, unless overridden by
// the --chapter/--page flags. A missing or stale record starts from the top.
func resumePosition(ctx context.Context, store ProgressStore, manga *Manga) SessionState {
	initial := SessionState{}

	if flagChapter > 0 {
		initial.Chapter = flagChapter - 1
		if flagPage > 0 {
			initial.Page = flagPage - 1
		}
		return initial
	}

	progress, err := store.Load(ctx, manga.ID)
	if err != nil {
		log.Printf("Warning: could not load reading progress for %s: %v", manga.ID, err)
		return initial
	}
	if progress == nil {
		return initial
	}

	idx := manga.ChapterIndexByID(progress.ChapterID)
	if idx < 0 {
		debugLog("saved chapter %s no longer exists, starting over", progress.ChapterID)
		return initial
	}
	initial.Chapter = idx
	initial.Page = progress.PageIndex
	if flagPage > 0 {
		initial.Page = flagPage - 1
	}
	return initial
}

func runList() error {
	client, _ := setupClient()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mangas, err := client.Library(ctx)
	if err != nil {
		return err
	}
	if len(mangas) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	for _, m := range mangas {
		pin := " "
		if m.IsPinned {
			pin = "*"
		}
		fmt.Printf("%s %-24s  %s", pin, m.ID, m.Title)
		if m.Author != "" {
			fmt.Printf("  (%s)", m.Author)
		}
		fmt.Println()
	}
	return nil
}

func runSearch(query string) error {
	client, _ := setupClient()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := client.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("No results for %q.\n", query)
		return nil
	}

	for _, r := range results {
		fmt.Printf("%-24s  %s", r.ID, r.Title)
		if r.Author != "" {
			fmt.Printf("  (%s)", r.Author)
		}
		if r.Category != "" {
			fmt.Printf("  [%s]", r.Category)
		}
		fmt.Println()
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
