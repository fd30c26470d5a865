package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/raphaelgruber/vidqa/internal/service"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// ingestFunc runs an ingestion, reporting chunk progress.
type ingestFunc func(ctx context.Context, progress service.ProgressFunc) (*service.IngestResult, error)

// ingestProgressMsg carries the number of chunks embedded so far.
type ingestProgressMsg struct {
	done  int
	total int
}

// ingestDoneMsg carries the outcome of the ingestion.
type ingestDoneMsg struct {
	result *service.IngestResult
	err    error
}

// progressModel is the bubbletea model for ingestion progress.
type progressModel struct {
	videoID  string
	cancel   context.CancelFunc
	done     int
	total    int
	progress progress.Model
	theme    Theme
	result   *service.IngestResult
	finished bool
	quitting bool
	err      error
}

// newProgressModel creates a new progress model.
func newProgressModel(videoID string, cancel context.CancelFunc) progressModel {
	// Create progress bar with color blend
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		videoID:  videoID,
		cancel:   cancel,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command.
func (m progressModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case ingestProgressMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil

	case ingestDoneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m progressModel) renderContent() string {
	if m.finished || m.quitting {
		return m.finalView()
	}

	if m.total == 0 {
		return m.theme.statusStyle().Render("[chunking]") + " " + m.videoID + "\n"
	}

	pct := float64(m.done) / float64(m.total)
	status := m.theme.statusStyle().Render("[embedding]")
	counts := fmt.Sprintf("%d/%d chunks", m.done, m.total)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to abort")

	return fmt.Sprintf("%s %s %s\n%s\n", status, m.progress.ViewAs(pct), counts, hint)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nIngestion aborted.\n")
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Ingest failed: %s\n", m.err))
	}
	return ingestSummary(m.theme, m.result)
}

func ingestSummary(theme Theme, r *service.IngestResult) string {
	if r == nil {
		return theme.completedStyle().Render("✓ Completed") + "\n"
	}
	if r.Skipped {
		return theme.hintStyle().Render(fmt.Sprintf("Video %s already indexed (%d chunks). Use --force to re-index.", r.VideoID, r.Chunks)) + "\n"
	}
	return theme.completedStyle().Render("✓ Indexed") + fmt.Sprintf(" %s: %d chunks\n", r.VideoID, r.Chunks)
}

// runIngest runs fn with the interactive progress UI when stdout is a
// terminal, and with plain output otherwise.
func runIngest(ctx context.Context, w io.Writer, videoID string, fn ingestFunc) (*service.IngestResult, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		res, err := fn(ctx, nil)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(w, ingestSummary(defaultTheme, res))
		return res, nil
	}
	return runIngestProgress(ctx, videoID, fn)
}

// runIngestProgress runs the ingestion in the background and renders its
// progress until it completes or the user aborts.
func runIngestProgress(ctx context.Context, videoID string, fn ingestFunc) (*service.IngestResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(videoID, cancel))

	go func() {
		res, err := fn(ctx, func(done, total int) {
			p.Send(ingestProgressMsg{done: done, total: total})
		})
		p.Send(ingestDoneMsg{result: res, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	m, ok := finalModel.(progressModel)
	if !ok {
		return nil, nil
	}
	if m.quitting {
		return nil, context.Canceled
	}
	return m.result, m.err
}
