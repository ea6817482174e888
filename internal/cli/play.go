package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/frontier/pkg/game/minimax"
	"github.com/matzehuels/frontier/pkg/game/tictactoe"
	"github.com/matzehuels/frontier/pkg/pipeline"
)

// =============================================================================
// gameModel - Interactive tic-tac-toe
// =============================================================================

// engineMoveMsg carries the engine's reply.
type engineMoveMsg struct {
	res minimax.Result[tictactoe.Move]
	err error
}

// gameModel is the bubbletea model for a game against the engine.
type gameModel struct {
	ctx    context.Context
	runner *pipeline.Runner

	board    tictactoe.Board
	human    tictactoe.Mark
	cursor   tictactoe.Move
	thinking bool
	last     string
	err      error
}

func newGameModel(ctx context.Context, r *pipeline.Runner, human tictactoe.Mark) gameModel {
	m := gameModel{ctx: ctx, runner: r, human: human, cursor: tictactoe.Move{Row: 1, Col: 1}}
	m.thinking = m.engineToMove()
	return m
}

func (m gameModel) Init() tea.Cmd {
	if m.thinking {
		return m.engineMove()
	}
	return nil
}

func (m gameModel) engineToMove() bool {
	return !(tictactoe.Rules{}).IsTerminal(m.board) && tictactoe.Player(m.board) != m.human
}

func (m gameModel) engineMove() tea.Cmd {
	board := m.board
	return func() tea.Msg {
		res, err := m.runner.BestMove(m.ctx, board, pipeline.Options{})
		return engineMoveMsg{res: res, err: err}
	}
}

func (m gameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		return m.place(msg.res.Move)

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.cursor.Row = (m.cursor.Row + tictactoe.Size - 1) % tictactoe.Size
		case "down", "j":
			m.cursor.Row = (m.cursor.Row + 1) % tictactoe.Size
		case "left", "h":
			m.cursor.Col = (m.cursor.Col + tictactoe.Size - 1) % tictactoe.Size
		case "right", "l":
			m.cursor.Col = (m.cursor.Col + 1) % tictactoe.Size
		case "n":
			if (tictactoe.Rules{}).IsTerminal(m.board) {
				next := newGameModel(m.ctx, m.runner, m.human)
				return next, next.Init()
			}
		case "enter", " ":
			return m.humanMove(m.cursor)
		default:
			if mv, err := tictactoe.ParseMove(key); err == nil && len(key) == 1 {
				m.cursor = mv
				return m.humanMove(mv)
			}
		}
	}
	return m, nil
}

func (m gameModel) humanMove(mv tictactoe.Move) (tea.Model, tea.Cmd) {
	if m.thinking || tictactoe.Player(m.board) != m.human || (tictactoe.Rules{}).IsTerminal(m.board) {
		return m, nil
	}
	return m.place(mv)
}

// place applies mv and, when the game goes on, asks the engine to reply.
func (m gameModel) place(mv tictactoe.Move) (tea.Model, tea.Cmd) {
	player := tictactoe.Player(m.board)
	next, err := tictactoe.Rules{}.Apply(m.board, mv)
	if err != nil {
		return m, nil // occupied cell
	}
	m.board = next
	m.last = player.String() + " played " + mv.String()
	if m.engineToMove() {
		m.thinking = true
		return m, m.engineMove()
	}
	return m, nil
}

func (m gameModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Tic-tac-toe"))
	b.WriteString(StyleDim.Render("  you are " + m.human.String()))
	b.WriteString("\n\n")

	cursor := m.cursor
	if (tictactoe.Rules{}).IsTerminal(m.board) {
		cursor = noCursor
	}
	b.WriteString(renderBoard(m.board, cursor))
	b.WriteString("\n")

	if m.last != "" {
		b.WriteString(StyleDim.Render(m.last))
		b.WriteString("\n")
	}
	switch outcome := tictactoe.OutcomeOf(m.board); {
	case outcome != tictactoe.InProgress:
		b.WriteString(StyleSuccess.Render(outcomeMessage(outcome)))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("n new game  q quit"))
	case m.thinking:
		b.WriteString(StyleWarning.Render("Thinking…"))
	default:
		b.WriteString(StyleValue.Render("Your move"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("arrows/hjkl move  ⏎ place  1-9 cell  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}
