// Package ui renders interactive progress for lint runs on a TTY.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Event reports one file finishing during a parallel lint run.
type Event struct {
	Path     string
	Total    int
	Errors   int
	Warnings int
	Hints    int
	Failed   bool
}

// maxVisible bounds the per-file listing; larger runs show the most
// recently finished files plus a queued count.
const maxVisible = 12

type lintModel struct {
	title    string
	events   <-chan Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	order    []int
	errors   int
	warnings int
	hints    int
	failed   int
	total    int
	width    int
	done     bool
}

type fileItem struct {
	path   string
	status string
	tone   string
}

type eventMsg Event
type doneMsg struct{}

// NewLintModel returns a Bubble Tea model that renders lint progress
// over the given files, fed by events until the channel closes.
func NewLintModel(title string, files []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued", tone: "queued"})
		index[file] = i
	}
	return &lintModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		total:   len(files),
		width:   80,
	}
}

func (m *lintModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *lintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *lintModel) View() string {
	if m.total == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	if len(m.items) <= maxVisible {
		for _, item := range m.items {
			m.writeItem(&b, item, nameWidth)
		}
	} else {
		start := len(m.order) - maxVisible
		if start < 0 {
			start = 0
		}
		for _, idx := range m.order[start:] {
			m.writeItem(&b, m.items[idx], nameWidth)
		}
		if queued := len(m.items) - len(m.order); queued > 0 {
			status := styleStatus("queued").Render(fmt.Sprintf("%12s", "queued"))
			b.WriteString(fmt.Sprintf("  %s %d more files\n", status, queued))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	if line := m.totalsLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m *lintModel) writeItem(b *strings.Builder, item fileItem, nameWidth int) {
	name := truncate(item.path, nameWidth)
	status := styleStatus(item.tone).Render(fmt.Sprintf("%12s", item.status))
	fmt.Fprintf(b, "  %s %s\n", status, name)
}

func (m *lintModel) totalsLine() string {
	parts := make([]string, 0, 4)
	if m.failed > 0 {
		parts = append(parts, styleStatus("failed").Render(counted(m.failed, "failure")))
	}
	if m.errors > 0 {
		parts = append(parts, styleStatus("error").Render(counted(m.errors, "error")))
	}
	if m.warnings > 0 {
		parts = append(parts, styleStatus("warning").Render(counted(m.warnings, "warning")))
	}
	if m.hints > 0 {
		parts = append(parts, styleStatus("hint").Render(counted(m.hints, "hint")))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, ", ")
}

func (m *lintModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *lintModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	status, tone := outcomeStatus(ev)
	m.items[idx].status = status
	m.items[idx].tone = tone
	m.order = append(m.order, idx)
	m.errors += ev.Errors
	m.warnings += ev.Warnings
	m.hints += ev.Hints
	if ev.Failed {
		m.failed++
	}
	if ev.Total > 0 {
		m.total = ev.Total
	}
	if m.total == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(len(m.order)) / float64(m.total))
}

// outcomeStatus maps a finished file to its status column text and the
// tone that colors it, by worst finding.
func outcomeStatus(ev Event) (status, tone string) {
	n := ev.Errors + ev.Warnings + ev.Hints
	switch {
	case ev.Failed:
		return "failed", "failed"
	case n == 0:
		return "clean", "clean"
	case ev.Errors > 0:
		return fmt.Sprintf("%d found", n), "error"
	case ev.Warnings > 0:
		return fmt.Sprintf("%d found", n), "warning"
	default:
		return fmt.Sprintf("%d found", n), "hint"
	}
}

func styleStatus(tone string) lipgloss.Style {
	switch tone {
	case "clean":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "failed", "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "warning":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "hint":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func counted(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
