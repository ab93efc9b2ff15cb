package renamer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/movietools/movie-renamer/internal/config"
	"github.com/movietools/movie-renamer/internal/http"
	ioutils "github.com/movietools/movie-renamer/internal/io"
	"github.com/movietools/movie-renamer/internal/model"
	"github.com/movietools/movie-renamer/internal/probe"
	"github.com/movietools/movie-renamer/internal/scan"
	"github.com/movietools/movie-renamer/internal/sidecar"
	"github.com/movietools/movie-renamer/internal/template"
	"github.com/movietools/movie-renamer/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a processing progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Outcome records what happened to one source file.
type Outcome struct {
	// SourcePath is the file that was processed.
	SourcePath string

	// DestPath is the computed destination, empty when resolution
	// failed before a path could be built.
	DestPath string

	// Action is the action actually taken: one of the config.Action
	// constants, or "skip" when the destination already existed.
	Action string

	// Err is the failure that stopped this file, nil on success.
	Err error
}

// posterRetries bounds poster download attempts.
const (
	posterRetries       = 3
	posterRetryCooldown = 0.5
	posterRetryExponent = 3.0
)

// Manager coordinates the rename pipeline.
//
// For each discovered video file the Manager parses the filename,
// resolves catalog metadata, probes the media streams, renders the
// destination template and performs the configured file action. Files
// are processed concurrently up to the configured worker count.
//
// Example:
//
//	manager, err := renamer.NewManager(settings, func(e renamer.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, outcome := range manager.Outcomes() {
//	    ...
//	}
type Manager struct {
	settings     *config.Settings
	resolver     *tmdb.Resolver
	prober       *probe.Prober
	template     *template.Template
	httpClient   *http.Client
	imageService *ioutils.ImageService
	nfo          *sidecar.NFOCreator

	lang   string
	region string

	// posterBase overrides the catalog image host, for tests.
	posterBase string

	files          []string
	totalFiles     int32
	processedFiles int32

	mu       sync.Mutex
	outcomes []Outcome

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager from settings, compiling the
// destination template through a fresh cache.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	return NewManagerWithCache(settings, template.NewCache(), onProgress)
}

// NewManagerWithCache creates a Manager that compiles its destination
// template through the given cache. Callers that run several batches
// with recurring templates share one cache across managers.
func NewManagerWithCache(settings *config.Settings, cache *template.Cache, onProgress func(ProgressEvent)) (*Manager, error) {
	source, err := template.ResolveTemplate(settings.Template)
	if err != nil {
		return nil, err
	}
	tpl, err := cache.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compiling destination template: %w", err)
	}

	lang, region := tmdb.NormalizeLanguage(settings.Language)

	m := &Manager{
		settings:     settings,
		prober:       probe.NewProberWithBinary(settings.FFProbePath),
		template:     tpl,
		httpClient:   http.NewClient(),
		imageService: ioutils.NewImageService(),
		nfo:          sidecar.NewNFOCreator(),
		lang:         lang,
		region:       region,
		onProgress:   onProgress,
	}

	// Without an API key the manager still works, building paths from
	// filename metadata alone.
	if settings.APIKey != "" {
		client := tmdb.NewClient(settings.APIKey)
		client.SetMaxRetries(settings.MaxRetries)
		m.resolver = tmdb.NewResolver(client, lang, region)
	}

	return m, nil
}

// Initialize discovers the video files named by the source paths.
func (m *Manager) Initialize(ctx context.Context) error {
	files, err := scan.Discover(m.settings.SourcePaths, m.settings.VideoExtensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no video files found under %v", m.settings.SourcePaths)
	}

	// When the output directory sits inside a source tree, the file
	// list must be fixed before any file moves, or the walk could
	// chase freshly renamed files. Discover already snapshots, so a
	// notice is enough.
	for _, src := range m.settings.SourcePaths {
		if ioutils.ClassifyOverlap(src, m.settings.OutputDir) == ioutils.OverlapDestWithinSrc {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Output directory is inside source %s; files already in place will be skipped", src),
				Level:   LevelWarning,
			})
		}
	}

	m.files = files
	m.totalFiles = int32(len(files))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d video file(s)", len(files)), Level: LevelInfo})
	return nil
}

// Files returns the discovered source files.
func (m *Manager) Files() []string {
	return m.files
}

// Start processes all discovered files. The returned error reflects
// pipeline-level failures only; per-file failures are recorded in
// Outcomes and reported as progress events.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Workers)

	for _, file := range m.files {
		file := file
		g.Go(func() error {
			outcome := m.processFile(ctx, file)
			m.record(outcome)
			atomic.AddInt32(&m.processedFiles, 1)
			if outcome.Err != nil && errors.Is(outcome.Err, context.Canceled) {
				return outcome.Err
			}
			return nil
		})
	}

	return g.Wait()
}

// GetProgress returns the processed and total file counts.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedFiles), m.totalFiles
}

// Outcomes returns the per-file results recorded so far.
func (m *Manager) Outcomes() []Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Outcome, len(m.outcomes))
	copy(out, m.outcomes)
	return out
}

func (m *Manager) processFile(ctx context.Context, path string) Outcome {
	name := filepath.Base(path)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Processing %s", name), Level: LevelInfo})

	guess := scan.ParseFilename(path)

	movie, err := m.resolveMovie(ctx, guess)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v", name, err), Level: LevelError})
		return Outcome{SourcePath: path, Err: err}
	}

	media := m.probeMedia(ctx, path, name, guess)

	item := &model.Item{SourcePath: path, Movie: movie, Media: media}

	dest, err := m.destinationPath(item)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v", name, err), Level: LevelError})
		return Outcome{SourcePath: path, Err: err}
	}

	action := m.settings.Action
	if samePath(path, dest) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s is already in place", name), Level: LevelVerbose})
		action = config.ActionSkip
	} else if _, err := os.Stat(dest); err == nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Destination exists, skipping: %s", dest), Level: LevelWarning})
		action = config.ActionSkip
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("[%s] FROM: %s", action, path), Level: LevelInfo})
	m.progress(ProgressEvent{Message: fmt.Sprintf("[%s] TO:   %s", action, dest), Level: LevelInfo})

	switch action {
	case config.ActionMove:
		err = ioutils.AtomicMove(path, dest)
	case config.ActionCopy:
		err = ioutils.AtomicCopy(path, dest)
	case config.ActionTest, config.ActionSkip:
		// Nothing to do.
	}
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not %s %s: %v", action, name, err), Level: LevelError})
		return Outcome{SourcePath: path, DestPath: dest, Action: action, Err: err}
	}

	if action == config.ActionMove || action == config.ActionCopy {
		m.writeSidecars(ctx, item, filepath.Dir(dest))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Done: %s", filepath.Base(dest)), Level: LevelSuccess})
	}

	return Outcome{SourcePath: path, DestPath: dest, Action: action}
}

// resolveMovie turns a filename guess into metadata, via TMDB when an
// API key is configured and from the filename alone otherwise.
func (m *Manager) resolveMovie(ctx context.Context, guess scan.Guess) (*model.Movie, error) {
	if m.resolver == nil {
		if guess.Title == "" {
			return nil, fmt.Errorf("could not extract a title from the filename")
		}
		return &model.Movie{
			Title:       guess.Title,
			IMDBID:      guess.IMDBID,
			ReleaseDate: guess.Year,
			Language:    m.lang,
			Region:      m.region,
		}, nil
	}
	return m.resolver.Resolve(ctx, guess)
}

// probeMedia reads stream details, degrading to nil (all media fields
// absent in the template) when the probe fails. The source tag from
// the filename wins over the bitrate deduction.
func (m *Manager) probeMedia(ctx context.Context, path, name string, guess scan.Guess) *model.MediaInfo {
	result, err := m.prober.Probe(ctx, path)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not probe %s: %v", name, err), Level: LevelWarning})
		if guess.Source == "" {
			return nil
		}
		return &model.MediaInfo{Source: guess.Source}
	}

	media, err := probe.MediaInfo(result)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v", name, err), Level: LevelWarning})
		if guess.Source == "" {
			return nil
		}
		return &model.MediaInfo{Source: guess.Source}
	}

	if guess.Source != "" {
		media.Source = guess.Source
	} else {
		media.Source = probe.DeduceSource(media)
	}
	return media
}

// destinationPath renders the template for an item and anchors it
// under the output directory, reattaching the source extension.
func (m *Manager) destinationPath(item *model.Item) (string, error) {
	rendered, err := m.template.Render(item.TemplateContext())
	if err != nil {
		return "", fmt.Errorf("rendering destination: %w", err)
	}
	if rendered == "" {
		return "", fmt.Errorf("destination template rendered an empty path")
	}
	return filepath.Join(m.settings.OutputDir, filepath.FromSlash(rendered)) + item.Extension(), nil
}

// writeSidecars saves the poster and NFO next to the renamed file,
// best effort: sidecar failures never fail the rename.
func (m *Manager) writeSidecars(ctx context.Context, item *model.Item, destDir string) {
	if m.settings.WriteNFO {
		content := m.nfo.CreateNFO(item)
		if err := ioutils.WriteFile(filepath.Join(destDir, "movie.nfo"), []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not write NFO: %v", err), Level: LevelWarning})
		}
	}

	if m.settings.SavePoster && item.Movie.PosterPath != "" {
		if err := m.savePoster(ctx, item, destDir); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not save poster for %s: %v", item.Movie.Title, err), Level: LevelWarning})
		}
	}
}

// savePoster writes poster.jpg next to the renamed file. A configured
// maximum size downloads the poster into memory and scales it; a size
// of 0 keeps the catalog's original dimensions, streaming JPEG posters
// straight to disk and converting other formats to JPEG.
func (m *Manager) savePoster(ctx context.Context, item *model.Item, destDir string) error {
	url := tmdb.PosterURL(item.Movie.PosterPath, "original")
	if m.posterBase != "" {
		url = m.posterBase + item.Movie.PosterPath
	}
	dest := filepath.Join(destDir, "poster.jpg")

	fullSize := m.settings.PosterMaxWidth <= 0 && m.settings.PosterMaxHeight <= 0
	if fullSize && strings.EqualFold(path.Ext(item.Movie.PosterPath), ".jpg") {
		return m.withPosterRetry(ctx, func() error {
			return m.httpClient.DownloadFile(ctx, url, dest, nil)
		})
	}

	var data []byte
	err := m.withPosterRetry(ctx, func() error {
		var err error
		data, err = m.httpClient.DownloadBytes(ctx, url)
		return err
	})
	if err != nil {
		return err
	}

	// An undecodable poster is written as downloaded.
	out := data
	if fullSize {
		if converted, err := m.imageService.ConvertToJPEG(data); err == nil {
			out = converted
		}
	} else if resized, err := m.imageService.ResizeImage(data, m.settings.PosterMaxWidth, m.settings.PosterMaxHeight); err == nil {
		out = resized
	}
	return ioutils.WriteFile(dest, out)
}

func (m *Manager) withPosterRetry(ctx context.Context, fetch func() error) error {
	var err error
	for tries := 0; tries < posterRetries; tries++ {
		if err = fetch(); err == nil {
			return nil
		}
		if !http.IsRetryable(err) {
			return err
		}
		m.waitForRetry(ctx, tries)
	}
	return err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := posterRetryCooldown * math.Pow(posterRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) record(outcome Outcome) {
	m.mu.Lock()
	m.outcomes = append(m.outcomes, outcome)
	m.mu.Unlock()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// samePath reports whether two paths name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
