package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PersonPickerModel - Interactive disambiguation
// =============================================================================

// PersonPickerModel is the bubbletea model for choosing between people who
// share a name.
type PersonPickerModel struct {
	Name     string
	People   []dataset.Person
	Cursor   int
	Selected *dataset.Person
	Height   int
	Offset   int
}

// NewPersonPickerModel creates a picker over candidates.
func NewPersonPickerModel(name string, candidates []dataset.Person) PersonPickerModel {
	return PersonPickerModel{Name: name, People: candidates, Height: 10}
}

func (m PersonPickerModel) Init() tea.Cmd {
	return nil
}

func (m PersonPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			p := m.People[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 3)
	}
	return m, nil
}

func (m PersonPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Which %q?", m.Name)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.People))
	for i := m.Offset; i < end; i++ {
		p := m.People[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, p.ID, p.Name)
		if p.Birth != 0 {
			line += listDimStyle.Render(fmt.Sprintf("  b. %d", p.Birth))
		}
		if n := len(p.Productions); n > 0 {
			line += listDimStyle.Render(fmt.Sprintf("  %d productions", n))
		}
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People))))
	return b.String()
}

// pickPerson is a [degrees.Chooser] backed by PersonPickerModel.
func pickPerson(name string, candidates []dataset.Person) (string, error) {
	final, err := tea.NewProgram(NewPersonPickerModel(name, candidates), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(PersonPickerModel); ok && m.Selected != nil {
		return m.Selected.ID, nil
	}
	return "", &degrees.AmbiguousError{Name: name, Candidates: candidates}
}

// prompter asks for input on a plain terminal or pipe.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// line prints label and reads one trimmed line. End of input yields
// io.ErrUnexpectedEOF.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// choose is a [degrees.Chooser] that lists the candidates and reads an ID.
// End of input leaves the name ambiguous.
func (p *prompter) choose(name string, candidates []dataset.Person) (string, error) {
	fmt.Fprintf(p.out, "Which %q?\n", name)
	fmt.Fprintln(p.out, peopleTable(candidates))
	id, err := p.line("Intended person ID: ")
	if err != nil {
		return "", &degrees.AmbiguousError{Name: name, Candidates: candidates}
	}
	return id, nil
}

// chooser picks the disambiguation strategy for this session.
func (c *CLI) chooser(p *prompter) degrees.Chooser {
	if c.Interactive {
		return pickPerson
	}
	return p.choose
}
