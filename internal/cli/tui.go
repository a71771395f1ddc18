package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/motifscan/pkg/graph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InstanceListModel - Interactive occurrence browser
// =============================================================================

// InstanceListModel is the bubbletea model for browsing the instances of a
// search result. Enter selects the instance under the cursor.
type InstanceListModel struct {
	Occ      graph.Occurrences
	Cursor   int
	Selected int // index of the chosen instance, -1 if none
	Height   int
	Offset   int

	// links marks which used links touch the cursor instance.
	links map[[2]string]bool
}

// NewInstanceListModel creates a new instance browser.
func NewInstanceListModel(occ graph.Occurrences) InstanceListModel {
	links := make(map[[2]string]bool, len(occ.Links))
	for _, l := range occ.Links {
		links[l] = true
		links[[2]string{l[1], l[0]}] = true
	}
	return InstanceListModel{
		Occ:      occ,
		Selected: -1,
		Height:   15,
		links:    links,
	}
}

func (m InstanceListModel) Init() tea.Cmd {
	return nil
}

func (m InstanceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Occ.Instances)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "pgup":
			m.Cursor = max(m.Cursor-m.Height, 0)
		case "pgdown":
			m.Cursor = max(min(m.Cursor+m.Height, n-1), 0)
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		case "enter":
			if n == 0 {
				return m, nil
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m InstanceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s · %d instances", m.Occ.Motif, len(m.Occ.Instances))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Occ.Instances) == 0 {
		b.WriteString(listDimStyle.Render("  no instances"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Occ.Instances))

	headers := []string{"", "#"}
	for p := range m.Occ.Positions {
		headers = append(headers, "p"+strconv.Itoa(p))
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		row := append([]string{cursor, strconv.Itoa(i + 1)}, m.Occ.Instances[i]...)
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col <= 1 {
				return StyleDim
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Occ.Instances))))
	if len(m.links) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d used links inside", m.instanceLinks(m.Cursor))))
	}
	return b.String()
}

// instanceLinks counts the used links between nodes of instance i.
func (m InstanceListModel) instanceLinks(i int) int {
	in := m.Occ.Instances[i]
	count := 0
	for a := range in {
		for b := a + 1; b < len(in); b++ {
			if m.links[[2]string{in[a], in[b]}] {
				count++
			}
		}
	}
	return count
}

// runInstanceBrowser shows the interactive browser and returns the chosen
// instance index, or -1 if the user quit without choosing.
func runInstanceBrowser(occ graph.Occurrences) (int, error) {
	final, err := tea.NewProgram(NewInstanceListModel(occ)).Run()
	if err != nil {
		return -1, fmt.Errorf("instance browser: %w", err)
	}
	return final.(InstanceListModel).Selected, nil
}
