package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/motifscan/pkg/graph"
)

func testOccurrences(n int) graph.Occurrences {
	occ := graph.Occurrences{Motif: "edge", Pattern: "0-1:E", Positions: 2, GroupOrder: 2}
	for i := range n {
		a, b := "n"+string(rune('a'+i)), "n"+string(rune('b'+i))
		occ.Instances = append(occ.Instances, []string{a, b})
		occ.Links = append(occ.Links, [2]string{a, b})
	}
	return occ
}

func press(m tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down", "up", "enter", "esc", "end", "home":
			msg = tea.KeyMsg{Type: keyTypes[k]}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

var keyTypes = map[string]tea.KeyType{
	"down":  tea.KeyDown,
	"up":    tea.KeyUp,
	"enter": tea.KeyEnter,
	"esc":   tea.KeyEsc,
	"end":   tea.KeyEnd,
	"home":  tea.KeyHome,
}

func TestInstanceListNavigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantCursor int
	}{
		{"Down", []string{"down", "down"}, 2},
		{"VimKeys", []string{"j", "j", "k"}, 1},
		{"ClampTop", []string{"up", "up"}, 0},
		{"ClampBottom", []string{"end", "down"}, 4},
		{"Home", []string{"end", "home"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(NewInstanceListModel(testOccurrences(5)), tt.keys...)
			if got := m.(InstanceListModel).Cursor; got != tt.wantCursor {
				t.Errorf("Cursor = %d, want %d", got, tt.wantCursor)
			}
		})
	}
}

func TestInstanceListSelect(t *testing.T) {
	m, cmd := press(NewInstanceListModel(testOccurrences(3)), "down", "enter")
	if got := m.(InstanceListModel).Selected; got != 1 {
		t.Errorf("Selected = %d, want 1", got)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	m, _ = press(NewInstanceListModel(testOccurrences(3)), "q")
	if got := m.(InstanceListModel).Selected; got != -1 {
		t.Errorf("quitting should leave Selected = -1, got %d", got)
	}

	m, cmd = press(NewInstanceListModel(testOccurrences(0)), "enter")
	if m.(InstanceListModel).Selected != -1 || cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestInstanceListScrolls(t *testing.T) {
	m := NewInstanceListModel(testOccurrences(20))
	m.Height = 5
	next, _ := press(m, "down", "down", "down", "down", "down", "down")
	got := next.(InstanceListModel)
	if got.Cursor != 6 || got.Offset != 2 {
		t.Errorf("Cursor=%d Offset=%d, want 6 and 2", got.Cursor, got.Offset)
	}

	resized, _ := got.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if h := resized.(InstanceListModel).Height; h != 5 {
		t.Errorf("Height after resize = %d, want 5", h)
	}
}

func TestInstanceListView(t *testing.T) {
	view := NewInstanceListModel(testOccurrences(3)).View()
	for _, want := range []string{"edge · 3 instances", "p0", "p1", "na", "nb", "[1/3]", "1 used links inside"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	empty := NewInstanceListModel(testOccurrences(0)).View()
	if !strings.Contains(empty, "no instances") {
		t.Errorf("empty View() = %q", empty)
	}
}
