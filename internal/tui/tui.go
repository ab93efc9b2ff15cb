// Package tui provides a Bubble Tea terminal user interface for movie-renamer.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/movietools/movie-renamer/internal/config"
	"github.com/movietools/movie-renamer/internal/renamer"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateProcessing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   renamer.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	files     []string
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Rename manager reference
	manager *renamer.Manager

	// Run progress
	totalFiles     int32
	processedFiles int32
	renamed        int
	skipped        int
	failed         int

	// Options
	poster  bool
	nfo     bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/movies"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		settings = config.DefaultSettings()
	}

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		poster:    settings.SavePoster,
		nfo:       settings.WriteNFO,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when processing progress updates.
	ProgressMsg struct {
		Event renamer.ProgressEvent
	}

	// InitDoneMsg is sent when initialization completes.
	InitDoneMsg struct {
		Files   []string
		Manager *renamer.Manager
		Err     error
	}

	// RunDoneMsg is sent when all files have been processed.
	RunDoneMsg struct {
		Processed int32
		Total     int32
		Outcomes  []renamer.Outcome
		Err       error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateProcessing || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeRun(), m.spinner.Tick)
			}

		case "a":
			if m.state == StateInput {
				m.settings.Action = nextAction(m.settings.Action)
			}

		case "p":
			if m.state == StateInput {
				m.poster = !m.poster
			}

		case "n":
			if m.state == StateInput {
				m.nfo = !m.nfo
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.files = nil
				m.err = nil
				m.processedFiles = 0
				m.totalFiles = 0
				m.renamed = 0
				m.skipped = 0
				m.failed = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == renamer.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.files = msg.Files
			m.manager = msg.Manager
			m.state = StateProcessing
			// Start the actual run and tick for progress updates
			cmds = append(cmds, m.startRun(), m.tickProgress())
		}

	case RunDoneMsg:
		m.processedFiles = msg.Processed
		m.totalFiles = msg.Total
		m.renamed, m.skipped, m.failed = summarize(msg.Outcomes)
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateProcessing {
			processed, total := m.manager.GetProgress()
			m.processedFiles = processed
			m.totalFiles = total

			// Calculate percentage and animate progress bar
			var percent float64
			if total > 0 {
				percent = float64(processed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// nextAction cycles through the file actions offered by the input screen.
func nextAction(action string) string {
	switch action {
	case config.ActionTest:
		return config.ActionCopy
	case config.ActionCopy:
		return config.ActionMove
	default:
		return config.ActionTest
	}
}

// summarize counts outcomes by disposition.
func summarize(outcomes []renamer.Outcome) (renamed, skipped, failed int) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Action == config.ActionSkip:
			skipped++
		default:
			renamed++
		}
	}
	return renamed, skipped, failed
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎬 Movie Renamer"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Organize your movie library"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateProcessing:
		b.WriteString(m.viewProcessing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter source path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	posterCheck := "[ ]"
	if m.poster {
		posterCheck = "[×]"
	}
	nfoCheck := "[ ]"
	if m.nfo {
		nfoCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Action: %s (a)\n", m.settings.Action))
	b.WriteString(fmt.Sprintf("  %s Save poster (p)\n", posterCheck))
	b.WriteString(fmt.Sprintf("  %s Write NFO (n)\n", nfoCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning for video files..."))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewProcessing() string {
	var b strings.Builder

	// Files found
	if len(m.files) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d file(s):", len(m.files))))
		b.WriteString("\n")
		shown := m.files
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, file := range shown {
			b.WriteString(fileStyle.Render(fmt.Sprintf("  ▸ %s", filepath.Base(file))))
			b.WriteString("\n")
		}
		if len(m.files) > len(shown) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.files)-len(shown))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Progress bar
	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Action: %s",
		m.processedFiles,
		m.totalFiles,
		m.settings.Action,
	)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Run Complete!\n\n"+
			"Processed: %d\n"+
			"Renamed: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d",
		m.processedFiles,
		m.renamed,
		m.skipped,
		m.failed,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case renamer.LevelError:
			style = errorStyle
			prefix = "✗"
		case renamer.LevelWarning:
			style = warningStyle
			prefix = "!"
		case renamer.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case renamer.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • a: action • p: poster • n: nfo • v: verbose • esc: quit"
	case StateInitializing, StateProcessing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// initializeRun scans the entered path and creates the manager.
func (m *Model) initializeRun() tea.Cmd {
	return func() tea.Msg {
		// Apply options over the loaded settings
		settings := *m.settings
		settings.SourcePaths = []string{m.textInput.Value()}
		settings.SavePoster = m.poster
		settings.WriteNFO = m.nfo
		settings.Debug = m.verbose

		if err := settings.Validate(); err != nil {
			return InitDoneMsg{Err: err}
		}

		// Create manager with progress callback
		manager, err := renamer.NewManager(&settings, func(event renamer.ProgressEvent) {
			// Progress events are collected but not sent directly
			// The TUI polls for progress via TickMsg
		})
		if err != nil {
			return InitDoneMsg{Err: err}
		}

		// Initialize - this discovers the video files
		if err := manager.Initialize(m.ctx); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Files:   manager.Files(),
			Manager: manager,
			Err:     nil,
		}
	}
}

// startRun starts the actual processing in background.
func (m *Model) startRun() tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return RunDoneMsg{Err: fmt.Errorf("no manager")}
		}

		err := m.manager.Start(m.ctx)
		processed, total := m.manager.GetProgress()

		return RunDoneMsg{
			Processed: processed,
			Total:     total,
			Outcomes:  m.manager.Outcomes(),
			Err:       err,
		}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
