package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/game/tictactoe"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - O marks
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleMarkX  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleMarkO  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleCursor = lipgloss.NewStyle().Reverse(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints dataset statistics on a single line.
func printStats(w io.Writer, s dataset.LoadStats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d people", s.People),
		fmt.Sprintf("%d productions", s.Productions),
		fmt.Sprintf("%d stars", s.Stars),
	}
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// =============================================================================
// Tables and Boards
// =============================================================================

// peopleTable renders people as a bordered table.
func peopleTable(people []dataset.Person) string {
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		birth := "—"
		if p.Birth != 0 {
			birth = fmt.Sprint(p.Birth)
		}
		rows = append(rows, []string{p.ID, p.Name, birth})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "Name", "Born").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// renderBoard draws a board as a grid. A cursor outside the board draws none.
func renderBoard(b tictactoe.Board, cursor tictactoe.Move) string {
	var sb strings.Builder
	for r := range tictactoe.Size {
		if r > 0 {
			sb.WriteString(StyleDim.Render("───┼───┼───"))
			sb.WriteByte('\n')
		}
		for col := range tictactoe.Size {
			if col > 0 {
				sb.WriteString(StyleDim.Render("│"))
			}
			cell := " " + markGlyph(b[r][col]) + " "
			if cursor.Row == r && cursor.Col == col {
				cell = styleCursor.Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func markGlyph(m tictactoe.Mark) string {
	switch m {
	case tictactoe.X:
		return styleMarkX.Render("X")
	case tictactoe.O:
		return styleMarkO.Render("O")
	}
	return " "
}

// noCursor hides the cursor in renderBoard.
var noCursor = tictactoe.Move{Row: -1, Col: -1}
