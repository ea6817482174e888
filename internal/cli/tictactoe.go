package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/game/tictactoe"
	"github.com/matzehuels/frontier/pkg/pipeline"
)

// tictactoeCommand creates the tic-tac-toe command.
func (c *CLI) tictactoeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tictactoe",
		Aliases: []string{"ttt"},
		Short:   "Play tic-tac-toe against a perfect minimax engine",
		Long: `Boards are written row by row with "/" between rows and "_" for empty
cells, for example "XO_/_X_/__O". X always moves first.`,
	}

	cmd.AddCommand(c.tictactoeBestCommand())
	cmd.AddCommand(c.tictactoeSelfPlayCommand())
	cmd.AddCommand(c.tictactoePlayCommand())

	return cmd
}

// tictactoeBestCommand creates the "tictactoe best" subcommand.
func (c *CLI) tictactoeBestCommand() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:     "best <board>",
		Short:   "Print the optimal move for the player to move",
		Example: `  frontier tictactoe best XX_/OO_/___`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := tictactoe.Parse(args[0])
			if err != nil {
				return err
			}
			r := pipeline.NewRunner(nil, nil, c.Logger)
			res, err := r.BestMove(cmd.Context(), board, pipeline.Options{Timeout: timeout})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderBoard(board, noCursor))
			fmt.Fprintf(out, "Best move for %s: %s\n", tictactoe.Player(board), res.Move)
			fmt.Fprintf(out, "Value: %+d (%s)\n", res.Value, describeValue(res.Value))
			printDetail(out, "searched %d positions, %d cutoffs", res.Stats.Nodes, res.Stats.Cutoffs)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "search time limit (0 = none)")
	return cmd
}

// tictactoeSelfPlayCommand creates the "tictactoe selfplay" subcommand.
func (c *CLI) tictactoeSelfPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay [board]",
		Short: "Let the engine play both sides to the end",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var board tictactoe.Board
			if len(args) == 1 {
				var err error
				if board, err = tictactoe.Parse(args[0]); err != nil {
					return err
				}
			}
			r := pipeline.NewRunner(nil, nil, c.Logger)
			g, err := r.SelfPlay(cmd.Context(), board, pipeline.Options{})
			if err != nil {
				return err
			}
			printGame(cmd.OutOrStdout(), board, g.Moves)
			fmt.Fprint(cmd.OutOrStdout(), renderBoard(g.Final, noCursor))
			fmt.Fprintln(cmd.OutOrStdout(), outcomeMessage(tictactoe.OutcomeOf(g.Final)))
			printDetail(cmd.OutOrStdout(), "searched %d positions, %d cutoffs", g.Stats.Nodes, g.Stats.Cutoffs)
			return nil
		},
	}
	return cmd
}

// tictactoePlayCommand creates the "tictactoe play" subcommand.
func (c *CLI) tictactoePlayCommand() *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game against the engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			human, err := parseMark(as)
			if err != nil {
				return err
			}
			if !c.Interactive {
				return errors.New(errors.ErrCodeUnsupported, "play needs a terminal; try \"tictactoe best\"")
			}
			m := newGameModel(cmd.Context(), pipeline.NewRunner(nil, nil, c.Logger), human)
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}
			if g, ok := final.(gameModel); ok && g.err != nil {
				return g.err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "x", "your mark: x moves first, o moves second")
	return cmd
}

func parseMark(s string) (tictactoe.Mark, error) {
	switch strings.ToLower(s) {
	case "x":
		return tictactoe.X, nil
	case "o":
		return tictactoe.O, nil
	}
	return tictactoe.Empty, errors.New(errors.ErrCodeInvalidInput, "invalid mark %q (must be x or o)", s)
}

func describeValue(v int) string {
	switch {
	case v > 0:
		return "X wins with best play"
	case v < 0:
		return "O wins with best play"
	}
	return "draw with best play"
}

func outcomeMessage(o tictactoe.Outcome) string {
	switch o {
	case tictactoe.XWins:
		return "X wins."
	case tictactoe.OWins:
		return "O wins."
	case tictactoe.Draw:
		return "Draw."
	}
	return "Game in progress."
}

// printGame lists the moves of a game played from start.
func printGame(w io.Writer, start tictactoe.Board, moves []tictactoe.Move) {
	b := start
	for i, m := range moves {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, tictactoe.Player(b), m)
		b, _ = tictactoe.Rules{}.Apply(b, m)
	}
}
