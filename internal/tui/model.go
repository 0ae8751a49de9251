package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// PackageState is the progress of one dependency's install pipeline.
type PackageState struct {
	ID     string
	Name   string
	Status string
	// Err holds the failure reported by the pipeline.
	Err string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	summary   lipgloss.Style
}

// Model is the Bubble Tea model listing every package being installed.
type Model struct {
	tape     TapeSource
	packages []PackageState
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new progress model reading from tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
			summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
		},
	}
}

// Init starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		for _, v := range msg.Update.Vertexes {
			m.apply(v)
		}
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(v *progrock.Vertex) {
	idx := -1
	for i := range m.packages {
		if m.packages[i].ID == v.Id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.packages = append(m.packages, PackageState{ID: v.Id, Name: v.Name, Status: statusRunning})
		idx = len(m.packages) - 1
	}

	if v.Completed == nil {
		return
	}
	if v.Error != nil {
		m.packages[idx].Status = statusFailed
		m.packages[idx].Err = *v.Error
		return
	}
	m.packages[idx].Status = statusCompleted
}

// View renders one line per package followed by a summary line.
func (m *Model) View() string {
	var s strings.Builder

	// Keep the newest rows when the terminal is too short.
	start := 0
	if m.height > 1 && len(m.packages) > m.height-1 {
		start = len(m.packages) - (m.height - 1)
	}

	var done, failed int
	for _, p := range m.packages {
		switch p.Status {
		case statusCompleted:
			done++
		case statusFailed:
			failed++
		}
	}

	for _, p := range m.packages[start:] {
		var line string
		switch p.Status {
		case statusCompleted:
			line = fmt.Sprintf("%s %s", m.styles.completed.Render("✓"), p.Name)
		case statusFailed:
			line = fmt.Sprintf("%s %s: %s", m.styles.failed.Render("✗"), p.Name, p.Err)
		default:
			line = fmt.Sprintf("%s %s", m.spinner.View(), m.styles.running.Render(p.Name))
		}
		s.WriteString(line + "\n")
	}

	s.WriteString(m.styles.summary.Render(
		fmt.Sprintf("%d/%d installed, %d failed", done, len(m.packages), failed),
	))
	s.WriteString("\n")
	return s.String()
}
