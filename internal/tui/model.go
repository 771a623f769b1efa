package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pyxsync/internal/domain"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseCopying
	PhaseDone
	PhaseError
)

// Messages for the TUI. Observer turns run events into these.
type (
	ScanStartMsg struct {
		Category domain.MediaCategory
		Root     string
	}
	ScanDoneMsg struct {
		Category domain.MediaCategory
		Root     string
		Count    int
	}
	ProgressMsg struct {
		Ratio float64
	}
	WarningMsg struct {
		Text string
	}
	ErrorMsg struct {
		Text string
	}
	CompleteMsg struct{}

	// RunFinishedMsg is sent once the transfer goroutine returns.
	RunFinishedMsg struct {
		Report domain.RunReport
		Err    error
	}
)

// Config for the TUI
type Config struct {
	Sources []string
	Target  string
	Verbose bool
	// Cancel stops the running transfer when the user quits early.
	Cancel func()
}

type scanLine struct {
	category domain.MediaCategory
	root     string
	count    int
	done     bool
}

const maxShownWarnings = 4

// Model is the main TUI model
type Model struct {
	config   Config
	Phase    Phase
	spinner  spinner.Model
	progress progress.Model
	scans    []scanLine
	ratio    float64
	Warnings []string
	Errors   []string
	Report   *domain.RunReport
	Err      error
	Quitting bool
	width    int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.running() && m.config.Cancel != nil {
				m.config.Cancel()
			}
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if !m.running() {
				return m, tea.Quit
			}
		}

	case ScanStartMsg:
		m.scans = append(m.scans, scanLine{category: msg.Category, root: msg.Root})
		return m, nil

	case ScanDoneMsg:
		for i := len(m.scans) - 1; i >= 0; i-- {
			if m.scans[i].category == msg.Category && m.scans[i].root == msg.Root && !m.scans[i].done {
				m.scans[i].count = msg.Count
				m.scans[i].done = true
				break
			}
		}
		return m, nil

	case ProgressMsg:
		if m.Phase == PhaseScanning {
			m.Phase = PhaseCopying
		}
		m.ratio = msg.Ratio
		return m, m.progress.SetPercent(msg.Ratio)

	case WarningMsg:
		m.Warnings = append(m.Warnings, msg.Text)
		return m, nil

	case ErrorMsg:
		m.Errors = append(m.Errors, msg.Text)
		return m, nil

	case RunFinishedMsg:
		report := msg.Report
		m.Report = &report
		if msg.Err != nil {
			m.Phase = PhaseError
			m.Err = msg.Err
		} else {
			m.Phase = PhaseDone
		}
		return m, nil

	case spinner.TickMsg:
		if m.running() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) running() bool {
	return m.Phase == PhaseScanning || m.Phase == PhaseCopying
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseCopying:
		b.WriteString(m.renderScanning())
		b.WriteString("\n")
		b.WriteString(m.renderCopying())
	case PhaseDone:
		b.WriteString(m.renderCompletion())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	if w := m.renderWarnings(); w != "" {
		b.WriteString("\n")
		b.WriteString(w)
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📷 pyxsync")
	subtitle := subtitleStyle.Render("Camera card to archive, sorted by camera and day")

	lines := []string{title, subtitle, ""}
	for _, src := range m.config.Sources {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(src))))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.Target))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderScanning() string {
	if len(m.scans) == 0 {
		return fmt.Sprintf("%s Scanning sources...", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Scanning"))
	b.WriteString("\n\n")
	for _, s := range m.scans {
		icon, style := categoryIcon(s.category)
		status := m.spinner.View()
		count := dimStyle.Render("...")
		if s.done {
			status = successStyle.Render(iconSuccess)
			count = countStyle.Render(fmt.Sprintf("%d", s.count))
		}
		b.WriteString(fmt.Sprintf("  %s %s %s in %s\n",
			status,
			style.Render(fmt.Sprintf("%s %-5s", icon, s.category)),
			count,
			dimStyle.Render(shortenPath(s.root)),
		))
	}
	return b.String()
}

func (m Model) renderCopying() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Copying Files"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s Copying...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(m.ratio)))
	b.WriteString(fmt.Sprintf("  %s\n", dimStyle.Render(fmt.Sprintf("(%.0f%%)", m.ratio*100))))

	return b.String()
}

func (m Model) renderCompletion() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Transfer Complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n", successStyle.Render(iconSuccess), successStyle.Render("Transfer completed successfully!")))

	if m.Report != nil {
		b.WriteString(m.renderReport(*m.Report))
	}
	for _, e := range m.Errors {
		b.WriteString(fmt.Sprintf("  %s %s\n", errorStyle.Render(iconError), e))
	}

	return b.String()
}

func (m Model) renderReport(report domain.RunReport) string {
	var b strings.Builder

	if report.Camera != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Camera:"), statValueStyle.Render(string(report.Camera))))
	}
	if !report.DateRange.Earliest.IsZero() {
		dates := report.DateRange.Earliest.Format("2006-01-02")
		if !report.DateRange.SingleDay() {
			dates = fmt.Sprintf("%s %s %s", dates, iconArrow, report.DateRange.Latest.Format("2006-01-02"))
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Date Range:"), dimStyle.Render(dates)))
	}
	if report.Destination != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Destination:"), pathStyle.Render(shortenPath(report.Destination))))
	}

	for _, c := range domain.CopyCategories {
		batch, ok := report.Batch(c)
		if !ok {
			continue
		}
		icon, style := categoryIcon(c)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			statLabelStyle.Render(fmt.Sprintf("%s copied:", c)),
			style.Render(fmt.Sprintf("%s %d", icon, len(batch.Copied))),
		))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Total copied:"), statValueStyle.Render(fmt.Sprintf("%d files", report.CopiedCount()))))

	return b.String()
}

func (m Model) renderError() string {
	text := "unknown error"
	if len(m.Errors) > 0 {
		text = m.Errors[len(m.Errors)-1]
	} else if m.Err != nil {
		text = m.Err.Error()
	}
	msg := errorStyle.Render(fmt.Sprintf("%s Error: %s", iconError, text))

	box := highlightBoxStyle.BorderForeground(errorColor).Render(msg)
	if m.Report != nil && m.Report.CopiedCount() > 0 {
		note := warningStyle.Render(fmt.Sprintf("%s %d files were copied before the failure.", iconWarning, m.Report.CopiedCount()))
		return lipgloss.JoinVertical(lipgloss.Left, box, "", note)
	}
	return box
}

func (m Model) renderWarnings() string {
	if len(m.Warnings) == 0 {
		return ""
	}
	shown := m.Warnings
	if !m.config.Verbose && len(shown) > maxShownWarnings {
		shown = shown[len(shown)-maxShownWarnings:]
	}

	var b strings.Builder
	b.WriteString(warningStyle.Render(fmt.Sprintf("Warnings (%d):", len(m.Warnings))))
	b.WriteString("\n")
	for _, w := range shown {
		b.WriteString(fmt.Sprintf("  %s %s\n", warningStyle.Render(iconWarning), w))
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning, PhaseCopying:
		help = "Press q to cancel"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func categoryIcon(c domain.MediaCategory) (string, lipgloss.Style) {
	switch c {
	case domain.RAW:
		return iconRAW, rawFileStyle
	case domain.JPEG:
		return iconJPEG, jpegFileStyle
	case domain.VIDEO:
		return iconVideo, videoFileStyle
	}
	return iconPending, dimStyle
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
