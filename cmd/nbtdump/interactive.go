package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/enkvadrat/nbt"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// frame is one level of the navigation stack: a container node and the
// cursor position within it.
type frame struct {
	label  string
	ref    nbt.Ref
	cursor int
}

// entry is one row of the current container's listing.
type entry struct {
	key string
	ref nbt.Ref
}

type browseModel struct {
	tree      *nbt.Tree
	filename  string
	stack     []frame
	filter    textinput.Model
	filtering bool
}

func newBrowseModel(tree *nbt.Tree, filename string) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "key substring"
	ti.Prompt = "/"
	ti.Width = 40

	root := tree.AsRef()
	label := tree.Name()
	if label == "" {
		label = "(root)"
	}
	return &browseModel{
		tree:     tree,
		filename: filename,
		stack:    []frame{{label: label, ref: root}},
		filter:   ti,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) top() *frame {
	return &m.stack[len(m.stack)-1]
}

// entries lists the current container's children, filtered when a filter is
// active. List frames ignore the filter since their rows have no keys.
func (m *browseModel) entries() []entry {
	f := m.top()
	var out []entry

	if c, ok := f.ref.AsCompound(); ok {
		needle := strings.ToLower(m.filter.Value())
		c.Each(func(key string, r nbt.Ref) bool {
			if needle == "" || strings.Contains(strings.ToLower(key), needle) {
				out = append(out, entry{key: key, ref: r})
			}
			return true
		})
		return out
	}

	if l, ok := f.ref.AsList(); ok {
		l.Each(func(index int, r nbt.Ref) bool {
			out = append(out, entry{key: fmt.Sprintf("[%d]", index), ref: r})
			return true
		})
	}
	return out
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch key.String() {
		case "enter", "esc":
			if key.String() == "esc" {
				m.filter.SetValue("")
			}
			m.filtering = false
			m.filter.Blur()
			m.top().cursor = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if f := m.top(); f.cursor > 0 {
			f.cursor--
		}

	case "down", "j":
		if f := m.top(); f.cursor < len(m.entries())-1 {
			f.cursor++
		}

	case "enter", "right", "l":
		ents := m.entries()
		f := m.top()
		if f.cursor >= len(ents) {
			break
		}
		e := ents[f.cursor]
		switch e.ref.Type() {
		case nbt.TypeCompound, nbt.TypeList:
			m.filter.SetValue("")
			m.stack = append(m.stack, frame{label: e.key, ref: e.ref})
		}

	case "esc", "left", "h", "backspace":
		if len(m.stack) > 1 {
			m.filter.SetValue("")
			m.stack = m.stack[:len(m.stack)-1]
		}

	case "/":
		if _, ok := m.top().ref.AsCompound(); ok {
			m.filtering = true
			m.filter.Focus()
		}
	}

	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("NBT Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	var crumbs []string
	for _, f := range m.stack {
		crumbs = append(crumbs, f.label)
	}
	b.WriteString(keyStyle.Render(strings.Join(crumbs, " > ")))
	b.WriteString("\n\n")

	if m.filtering {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	ents := m.entries()
	f := m.top()
	if f.cursor >= len(ents) && len(ents) > 0 {
		f.cursor = len(ents) - 1
	}
	if len(ents) == 0 {
		b.WriteString(helpStyle.Render("(empty)"))
		b.WriteString("\n")
	}
	for i, e := range ents {
		line := m.formatEntry(e)
		if i == f.cursor && !m.filtering {
			b.WriteString(selectedStyle.Render("> " + e.key))
			b.WriteString(" " + line)
		} else {
			b.WriteString("  " + keyStyle.Render(e.key) + " " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • enter descend • esc back • / filter • q quit"))
	}
	return b.String()
}

func (m *browseModel) formatEntry(e entry) string {
	t := e.ref.Type()
	switch t {
	case nbt.TypeCompound:
		c, _ := e.ref.AsCompound()
		return typeStyle.Render(t.String()) + fmt.Sprintf(" (%d entries)", c.Len())
	case nbt.TypeList:
		l, _ := e.ref.AsList()
		return typeStyle.Render(t.String()) + fmt.Sprintf(" (%d of %s)", l.Len(), l.ElementType())
	default:
		return typeStyle.Render(t.String()) + " " + valueStyle.Render(e.ref.String())
	}
}

func runInteractive(tree *nbt.Tree, filename string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newBrowseModel(tree, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
