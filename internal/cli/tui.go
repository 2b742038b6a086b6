package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/treegrid/treegrid/pkg/grid"
)

var (
	tuiSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiCarriedStyle  = lipgloss.NewStyle().Foreground(colorDim)
	tuiDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// GridModel is the bubbletea model for browsing a leveled table. It holds
// both representations of the table: the expanded rows and the
// carry-forward encoding, toggled with "m". In the merged view, cells
// carried from the row above show as "·".
type GridModel struct {
	Title   string
	Logical *grid.Grid
	Encoded *grid.Grid

	Merged bool // show the carry-forward view
	Cursor int
	Offset int
	Height int
}

// NewGridModel creates a grid browser over the expanded rows.
func NewGridModel(title string, logical *grid.Grid) GridModel {
	enc, _ := grid.Encode(logical)
	return GridModel{
		Title:   title,
		Logical: logical,
		Encoded: enc,
		Merged:  true,
		Height:  15,
	}
}

func (m GridModel) Init() tea.Cmd {
	return nil
}

func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.Logical.RowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor, m.Offset = 0, 0
		case "G":
			if n := m.Logical.RowCount(); n > 0 {
				m.Cursor = n - 1
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "m":
			m.Merged = !m.Merged
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GridModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render("↑/↓ navigate  g/G first/last  m toggle merge  q quit"))
	b.WriteString("\n\n")

	shown := m.Logical
	if m.Merged {
		shown = m.Encoded
	}

	end := m.Offset + m.Height
	if end > shown.RowCount() {
		end = shown.RowCount()
	}

	all := shown.Rows()
	rows := make([][]string, 0, m.Height)
	for i := m.Offset; i < end; i++ {
		cells := make([]string, len(all[i]))
		for c, cell := range all[i] {
			switch {
			case cell.IsNull() && m.Merged:
				cells[c] = "·"
			case cell.IsNull():
				cells[c] = ""
			default:
				cells[c] = cell.String()
			}
		}
		rows = append(rows, cells)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(shown.Headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if m.Offset+row == m.Cursor {
				return tuiSelectedStyle
			}
			if rows[row][col] == "·" {
				return tuiCarriedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	mode := "expanded"
	if m.Merged {
		mode = "merged"
	}
	b.WriteString(tuiDimStyle.Render(fmt.Sprintf("  [%d/%d] · %s view", m.Cursor+1, shown.RowCount(), mode)))

	return b.String()
}
