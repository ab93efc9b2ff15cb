package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/movietools/movie-renamer/internal/config"
	"github.com/movietools/movie-renamer/internal/renamer"
	"github.com/movietools/movie-renamer/internal/template"
)

func main() {
	// Command line flags
	var (
		srcFlag      = flag.String("src", "", "Source path(s) to scan (comma-separated; files, directories or globs)")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		templateFlag = flag.String("template", "", "Destination template or preset:<name> (overrides config)")
		langFlag     = flag.String("lang", "", "Preferred language, e.g. es, en-US, pt-BR (overrides config)")
		actionFlag   = flag.String("action", "", "File action: move, copy, test or skip (overrides config)")
		workersFlag  = flag.Int("workers", 0, "Number of concurrent workers (overrides config)")
		apiKeyFlag   = flag.String("api-key", "", "TMDB API read access token (overrides config)")
		posterFlag   = flag.Bool("poster", false, "Download movie posters next to renamed files")
		nfoFlag      = flag.Bool("nfo", false, "Write movie.nfo metadata next to renamed files")
		dryRunFlag   = flag.Bool("dry-run", false, "Resolve and render paths without touching files (same as -action test)")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		listPresets  = flag.Bool("list-presets", false, "List template presets and exit")
		listFilters  = flag.Bool("list-filters", false, "List template filters and exit")
	)

	flag.Parse()

	if *listPresets {
		for _, p := range template.Presets() {
			fmt.Printf("%-10s %s\n", p.Name, p.Template)
			fmt.Printf("%-10s %s\n", "", p.Description)
		}
		return
	}
	if *listFilters {
		for _, name := range template.FilterNames() {
			fmt.Printf("%-12s %s\n", name, template.FilterUsage(name))
		}
		return
	}

	// CLI mode - require a source path
	if *srcFlag == "" && flag.NArg() == 0 {
		fmt.Println("Movie Renamer - Organize your movie library")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  movie-renamer -src <path> [options]")
		fmt.Println("  movie-renamer <path> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: movie-renamer-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *templateFlag != "" {
		settings.Template = *templateFlag
	}
	if *langFlag != "" {
		settings.Language = *langFlag
	}
	if *actionFlag != "" {
		settings.Action = *actionFlag
	}
	if *workersFlag > 0 {
		settings.Workers = *workersFlag
	}
	if *apiKeyFlag != "" {
		settings.APIKey = *apiKeyFlag
	}
	if *posterFlag {
		settings.SavePoster = true
	}
	if *nfoFlag {
		settings.WriteNFO = true
	}
	if *dryRunFlag {
		settings.Action = config.ActionTest
	}
	if *verboseFlag {
		settings.Debug = true
	}

	// Get source paths
	sources := *srcFlag
	if sources == "" && flag.NArg() > 0 {
		sources = strings.Join(flag.Args(), ",")
	}
	settings.SourcePaths = settings.SourcePaths[:0]
	for _, src := range strings.Split(sources, ",") {
		if src = strings.TrimSpace(src); src != "" {
			settings.SourcePaths = append(settings.SourcePaths, src)
		}
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager, err := renamer.NewManager(settings, func(event renamer.ProgressEvent) {
		if event.Level == renamer.LevelVerbose && !settings.Debug {
			return
		}

		prefix := ""
		switch event.Level {
		case renamer.LevelError:
			prefix = "❌ "
		case renamer.LevelWarning:
			prefix = "⚠️  "
		case renamer.LevelSuccess:
			prefix = "✅ "
		case renamer.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize
	fmt.Println("🎬 Movie Renamer")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := manager.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	// Start processing
	fmt.Printf("\n📁 Processing %d file(s) [%s]...\n", len(manager.Files()), settings.Action)
	fmt.Println()

	if err := manager.Start(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nRun cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during processing: %v\n", err)
		os.Exit(1)
	}

	var renamed, skipped, failed int
	for _, outcome := range manager.Outcomes() {
		switch {
		case outcome.Err != nil:
			failed++
		case outcome.Action == config.ActionSkip:
			skipped++
		default:
			renamed++
		}
	}

	processed, total := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Processed %d/%d files (%d renamed, %d skipped, %d failed)\n", processed, total, renamed, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
