package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/glyphgrid/pkg/interpret"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

var (
	viewerDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	viewerHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// viewMode selects what the grid viewer shows.
type viewMode int

const (
	viewBordered viewMode = iota
	viewPlain
	viewSkips
)

// =============================================================================
// Key Bindings
// =============================================================================

type gridKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Toggle key.Binding
	Skips  key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func (k gridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Skips, k.Copy, k.Quit}
}

func (k gridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Top, k.Bottom}}
}

var gridKeys = gridKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Toggle: key.NewBinding(key.WithKeys("tab", "b"), key.WithHelp("tab", "bordered/plain")),
	Skips:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skipped rows")),
	Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// GridModel - Interactive grid viewer
// =============================================================================

// GridModel is the bubbletea model for browsing a rendered grid.
type GridModel struct {
	Result *pipeline.Result
	Mode   viewMode
	Offset int
	Height int
	Status string

	keys gridKeyMap
	help help.Model
	copy func(string) error
}

// NewGridModel creates a viewer for res, starting with the bordered grid.
func NewGridModel(res *pipeline.Result) GridModel {
	return GridModel{
		Result: res,
		Height: 20,
		keys:   gridKeys,
		help:   help.New(),
		copy:   clipboard.WriteAll,
	}
}

func (m GridModel) Init() tea.Cmd {
	return nil
}

func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.Mode == viewBordered {
				m.Mode = viewPlain
			} else {
				m.Mode = viewBordered
			}
			m.Offset = 0
		case key.Matches(msg, m.keys.Skips):
			if m.Mode == viewSkips {
				m.Mode = viewBordered
			} else {
				m.Mode = viewSkips
			}
			m.Offset = 0
		case key.Matches(msg, m.keys.Up):
			if m.Offset > 0 {
				m.Offset--
			}
		case key.Matches(msg, m.keys.Down):
			if m.Offset < m.maxOffset() {
				m.Offset++
			}
		case key.Matches(msg, m.keys.Top):
			m.Offset = 0
		case key.Matches(msg, m.keys.Bottom):
			m.Offset = m.maxOffset()
		case key.Matches(msg, m.keys.Copy):
			m.Status = m.copyRendering()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.Offset = min(m.Offset, m.maxOffset())
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m GridModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	if m.Mode == viewSkips {
		b.WriteString(m.skipTable())
	} else {
		lines := m.lines()
		end := min(m.Offset+m.Height, len(lines))
		for _, line := range lines[m.Offset:end] {
			b.WriteString(StyleValue.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	s := m.Result.Stats
	b.WriteString(viewerDimStyle.Render(fmt.Sprintf("  %dx%d · %d entries · %d skipped", s.Width, s.Height, s.Entries, s.Skipped)))
	if m.Status != "" {
		b.WriteString("  ")
		b.WriteString(m.Status)
	}
	return b.String()
}

// copyRendering puts the current rendering on the system clipboard and
// returns a status line.
func (m GridModel) copyRendering() string {
	text := m.Result.Bordered
	if m.Mode == viewPlain {
		text = m.Result.Plain
	}
	if m.copy == nil {
		return styleIconError.Render(iconError) + " clipboard unavailable"
	}
	if err := m.copy(text); err != nil {
		return styleIconError.Render(iconError) + " " + err.Error()
	}
	return styleIconSuccess.Render(iconSuccess) + " copied"
}

func (m GridModel) title() string {
	switch m.Mode {
	case viewPlain:
		return "Plain Grid"
	case viewSkips:
		return "Skipped Rows"
	default:
		return "Bordered Grid"
	}
}

// lines returns the rows of the current rendering.
func (m GridModel) lines() []string {
	text := m.Result.Bordered
	if m.Mode == viewPlain {
		text = m.Result.Plain
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func (m GridModel) skips() []interpret.Skip {
	if m.Result.Interpretation == nil {
		return nil
	}
	return m.Result.Interpretation.Skips
}

func (m GridModel) maxOffset() int {
	n := len(m.lines())
	if m.Mode == viewSkips {
		n = len(m.skips())
	}
	return max(n-m.Height, 0)
}

// skipTable renders the visible window of skipped rows.
func (m GridModel) skipTable() string {
	skips := m.skips()
	if len(skips) == 0 {
		return viewerDimStyle.Render("  no rows were skipped") + "\n"
	}

	end := min(m.Offset+m.Height, len(skips))
	rows := make([][]string, 0, end-m.Offset)
	for _, s := range skips[m.Offset:end] {
		cells := strings.Join(s.Cells, ", ")
		if cells == "" {
			cells = "—"
		}
		rows = append(rows, []string{strconv.Itoa(s.Table), strconv.Itoa(s.Row), s.Reason.String(), cells})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Table", "Row", "Reason", "Cells").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return viewerHeaderStyle
			}
			if col == 2 {
				return StyleWarning
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render() + "\n"
}

// runGridViewer shows res in the interactive viewer until the user quits.
func runGridViewer(ctx context.Context, res *pipeline.Result) error {
	_, err := tea.NewProgram(NewGridModel(res), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
