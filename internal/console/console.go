// Package console is a line-oriented front end: it prints the board as text
// and reads one command per line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
)

const (
	prompt       = "Shift board (l/r/u/d) or do action (undo/exit): "
	invalidInput = "ERROR: Invalid action. Try again."
	cellWidth    = 6
)

// Result summarises a finished console game.
type Result struct {
	Status engine.Status
	Score  int
	Moves  int
	Exited bool // Player typed exit or input ended
}

// Console runs a session over a reader and a writer.
type Console struct {
	in      *bufio.Scanner
	out     *bufio.Writer
	session *game.Session
	logger  *log.Logger
}

// New creates a console. A nil logger discards log output.
func New(in io.Reader, out io.Writer, session *game.Session, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		in:      bufio.NewScanner(in),
		out:     bufio.NewWriter(out),
		session: session,
		logger:  logger,
	}
}

// Run plays until the board is won or lost, the player exits, the input
// ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) (Result, error) {
	board := c.session.Board()

	for {
		c.printBoard()

		switch board.Status() {
		case engine.StatusWon:
			c.println("You won!")
			return c.result(false), c.flush()
		case engine.StatusLost:
			c.println("You lost. Try again.")
			return c.result(false), c.flush()
		}

		action, ok, err := c.readAction(ctx)
		if err != nil {
			return c.result(true), err
		}
		if !ok {
			return c.result(true), c.flush()
		}

		out := c.session.Apply(action)
		c.logger.Debug("action", "action", action, "changed", out.Changed, "gained", out.Move.Gained)
		c.println("")
		board = c.session.Board()
	}
}

// readAction prompts until a valid command is entered. ok is false when the
// player exits or the input ends.
func (c *Console) readAction(ctx context.Context) (core.Action, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return core.ActionNone, false, err
		}

		fmt.Fprint(c.out, prompt)
		if err := c.flush(); err != nil {
			return core.ActionNone, false, err
		}

		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return core.ActionNone, false, fmt.Errorf("console: read: %w", err)
			}
			c.println("")
			return core.ActionNone, false, nil
		}

		switch action, known := ParseCommand(c.in.Text()); {
		case !known:
			c.println(invalidInput)
		case action == core.ActionQuit:
			return core.ActionNone, false, nil
		default:
			return action, true, nil
		}
	}
}

// ParseCommand maps a console command to an action. Directions accept their
// first letter or full name.
func ParseCommand(s string) (core.Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "undo":
		return core.ActionUndo, true
	case "exit":
		return core.ActionQuit, true
	}

	dir, ok := engine.ParseDirection(s)
	if !ok {
		return core.ActionNone, false
	}
	switch dir {
	case engine.Right:
		return core.ActionRight, true
	case engine.Up:
		return core.ActionUp, true
	case engine.Down:
		return core.ActionDown, true
	default:
		return core.ActionLeft, true
	}
}

func (c *Console) printBoard() {
	board := c.session.Board()

	fmt.Fprintf(c.out, "..:: %d GAME ::..\n", board.WinTarget())
	fmt.Fprintf(c.out, "Score: %s\n", game.FormatScore(board.Score()))
	fmt.Fprintf(c.out, "Moves: %d\n\n", board.Moves())
	c.out.WriteString(FormatGrid(board.Grid()))
	c.println("")
}

// FormatGrid renders a grid as rows of fixed-width cells framed by dashed
// separators.
func FormatGrid(g engine.Grid) string {
	sep := make([]string, g.Size())
	for i := range sep {
		sep[i] = strings.Repeat("-", cellWidth)
	}
	line := strings.Join(sep, "+") + "\n"

	var sb strings.Builder
	sb.WriteString(line)
	for _, row := range g {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == 0 {
				cells[i] = strings.Repeat(" ", cellWidth)
			} else {
				cells[i] = fmt.Sprintf(" %-4d ", v)
			}
		}
		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return sb.String()
}

func (c *Console) result(exited bool) Result {
	b := c.session.Board()
	return Result{Status: b.Status(), Score: b.Score(), Moves: b.Moves(), Exited: exited}
}

func (c *Console) println(s string) {
	c.out.WriteString(s)
	c.out.WriteByte('\n')
}

func (c *Console) flush() error {
	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("console: write: %w", err)
	}
	return nil
}
