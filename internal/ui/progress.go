package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ngmigrate/internal/driver"
)

// Event is one progress update from a batch run.
type Event struct {
	Done   int
	Total  int
	Report *driver.FileReport
}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	done    int
	total   int
	width   int
	quit    bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders migration progress.
func NewProgressModel(title string, files []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
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

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.quit = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.quit {
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
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.done, m.total)
	if m.quit {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.quit {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	m.done = ev.Done
	if ev.Total > 0 {
		m.total = ev.Total
	}
	if ev.Report != nil {
		if idx, ok := m.index[ev.Report.Path]; ok {
			m.items[idx].status = statusLabel(ev.Report)
		}
	}
	if m.total == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.done) / float64(m.total))
}

func statusLabel(report *driver.FileReport) string {
	switch report.Status {
	case driver.StatusChanged:
		return "migrated"
	case driver.StatusCached:
		return "cached"
	case driver.StatusError:
		return "error"
	default:
		return "clean"
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "queued":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	case "clean", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}
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
