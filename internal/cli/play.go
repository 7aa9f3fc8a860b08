package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/random"
	"github.com/tictacmatch/tictacmatch-go/internal/game"
	"github.com/tictacmatch/tictacmatch-go/internal/game/strategy"
	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Log in and play tic-tac-toe",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newPlaySession(cfg, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			defer sess.close()
			return sess.run()
		},
	}

	cmd.Flags().StringVar(&cfg.Name, "name", cfg.Name, "Player name (prompted if empty)")
	cmd.Flags().StringVar(&cfg.Code, "code", cfg.Code, "Player secret (prompted if empty)")
	return cmd
}

// playSession drives one websocket connection through login, games and
// the play-again loop. In a bot game the session plays the bot's moves
// itself; the server only learns the final result.
type playSession struct {
	conn  *websocket.Conn
	in    *bufio.Scanner
	out   io.Writer
	rnd   random.Random
	creds protocol.Login
}

func newPlaySession(cfg *Config, in io.Reader, out io.Writer) (*playSession, error) {
	conn, resp, err := websocket.DefaultDialer.Dial(cfg.WebsocketURL(), nil)
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.WebsocketURL(), err)
	}

	return &playSession{
		conn:  conn,
		in:    bufio.NewScanner(in),
		out:   out,
		rnd:   random.New(),
		creds: protocol.Login{Name: cfg.Name, Code: cfg.Code},
	}, nil
}

func (p *playSession) close() {
	_ = p.conn.Close()
}

func (p *playSession) run() error {
	if err := p.login(); err != nil {
		return err
	}

	for {
		fmt.Fprintln(p.out, "Waiting for an opponent...")

		msg, err := p.readMsg()
		if err != nil {
			return err
		}

		switch m := msg.(type) {
		case *protocol.Start:
			err = p.playHuman(m)
		case *protocol.StartVsBot:
			fmt.Fprintf(p.out, "No human showed up; you play %s.\n", m.Opponent)
			err = p.playBot(m)
		default:
			continue
		}
		if err != nil {
			return err
		}

		if !p.promptYesNo("Play again? [y/N] ") {
			return nil
		}
		// Logging in again with the same credentials re-enters the queue.
		if err := p.sendMsg(p.creds); err != nil {
			return err
		}
		if _, err := p.awaitKind(protocol.KindLoginSuccess); err != nil {
			return err
		}
	}
}

// login prompts for credentials until the server accepts them.
func (p *playSession) login() error {
	for {
		if p.creds.Name == "" {
			p.creds.Name = p.promptLine("Name: ")
		}
		if p.creds.Code == "" {
			p.creds.Code = p.promptLine("Secret: ")
		}

		if err := p.sendMsg(p.creds); err != nil {
			return err
		}
		msg, err := p.readMsg()
		if err != nil {
			return err
		}

		switch msg.(type) {
		case *protocol.LoginSuccess:
			fmt.Fprintf(p.out, "Logged in as %s.\n", p.creds.Name)
			return nil
		case *protocol.LoginFailed:
			fmt.Fprintln(p.out, "That name is taken and the secret does not match. Try again.")
			p.creds.Code = ""
		}
	}
}

// playHuman runs a game against the remote opponent. X moves first.
func (p *playSession) playHuman(start *protocol.Start) error {
	board := game.NewBoard()
	my := game.Mark(start.Symbol)
	opp := my.Other()
	turn := game.X

	fmt.Fprintf(p.out, "Matched against %s. You are %s.\n", start.Opponent, my)

	for {
		fmt.Fprintln(p.out, board)

		if turn == my {
			cell := p.promptMove(board)
			board[cell.Row][cell.Col] = my
			if err := p.sendMsg(protocol.Move{Row: cell.Row, Col: cell.Col}); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(p.out, "Waiting for %s to move...\n", start.Opponent)
			msg, err := p.awaitKind(protocol.KindMove)
			if err != nil {
				return err
			}
			mv := msg.(*protocol.Move)
			if err := applyRemoteMove(&board, mv, opp); err != nil {
				return err
			}
		}

		if over, result := terminalResult(board, my, p.creds.Name, start.Opponent); over {
			return p.finish(board, result)
		}
		turn = turn.Other()
	}
}

// playBot runs a game against a locally simulated bot.
func (p *playSession) playBot(start *protocol.StartVsBot) error {
	board := game.NewBoard()
	my := game.Mark(start.Symbol)
	opp := my.Other()
	bot := strategy.NewHeuristic(start.BotCompetence, p.rnd)
	turn := game.X

	for {
		fmt.Fprintln(p.out, board)

		if turn == my {
			cell := p.promptMove(board)
			board[cell.Row][cell.Col] = my
		} else {
			cell := bot.ChooseCell(board, opp)
			board[cell.Row][cell.Col] = opp
			fmt.Fprintf(p.out, "%s plays %d %d.\n", start.Opponent, cell.Row, cell.Col)
		}

		if over, result := terminalResult(board, my, p.creds.Name, start.Opponent); over {
			return p.finish(board, result)
		}
		turn = turn.Other()
	}
}

// finish reports the result and shows the leaderboard the server
// answers with.
func (p *playSession) finish(board game.Board, result protocol.GameOver) error {
	fmt.Fprintln(p.out, board)
	switch {
	case result.Draw:
		fmt.Fprintln(p.out, "It's a draw.")
	case string(result.Winner) == p.creds.Name:
		fmt.Fprintln(p.out, "You win!")
	default:
		fmt.Fprintf(p.out, "%s wins.\n", result.Winner)
	}

	if err := p.sendMsg(result); err != nil {
		return err
	}
	msg, err := p.awaitKind(protocol.KindLeaderboard)
	if err != nil {
		return err
	}
	lb := msg.(*protocol.Leaderboard)

	fmt.Fprintln(p.out, "Top 10:")
	NewOutput(cfg.Output).printLeaderboard(lb.Top10)
	return nil
}

// applyRemoteMove places the opponent's relayed move. The server
// relays moves verbatim, so anything off the board or onto a claimed
// cell is a protocol error, not a crash.
func applyRemoteMove(board *game.Board, mv *protocol.Move, m game.Mark) error {
	cell := game.Cell{Row: mv.Row, Col: mv.Col}
	if !board.Legal(cell) {
		return fmt.Errorf("opponent sent an illegal move %d %d", mv.Row, mv.Col)
	}
	board[cell.Row][cell.Col] = m
	return nil
}

// terminalResult inspects the board for a finished game from the local
// player's perspective.
func terminalResult(board game.Board, my game.Mark, myName, oppName string) (bool, protocol.GameOver) {
	switch {
	case board.HasWon(my):
		return true, protocol.GameOver{Winner: model.Identity(myName)}
	case board.HasWon(my.Other()):
		return true, protocol.GameOver{Winner: model.Identity(oppName)}
	case board.IsDraw():
		return true, protocol.GameOver{Draw: true}
	}
	return false, protocol.GameOver{}
}

func (p *playSession) sendMsg(msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *playSession) readMsg() (protocol.Message, error) {
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("connection lost: %w", err)
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			continue
		}
		return msg, nil
	}
}

// awaitKind reads until a message of the wanted kind arrives, dropping
// everything else.
func (p *playSession) awaitKind(kind protocol.Kind) (protocol.Message, error) {
	for {
		msg, err := p.readMsg()
		if err != nil {
			return nil, err
		}
		if msg.Kind() == kind {
			return msg, nil
		}
	}
}

func (p *playSession) promptLine(prompt string) string {
	for {
		fmt.Fprint(p.out, prompt)
		if !p.in.Scan() {
			return ""
		}
		if line := strings.TrimSpace(p.in.Text()); line != "" {
			return line
		}
	}
}

func (p *playSession) promptMove(board game.Board) game.Cell {
	for {
		line := p.promptLine("Your move (row col, 0-2): ")
		var cell game.Cell
		if _, err := fmt.Sscanf(line, "%d %d", &cell.Row, &cell.Col); err != nil {
			fmt.Fprintln(p.out, "Enter two numbers, e.g. \"1 2\".")
			continue
		}
		if !board.Legal(cell) {
			fmt.Fprintln(p.out, "That cell is taken or off the board.")
			continue
		}
		return cell
	}
}

func (p *playSession) promptYesNo(prompt string) bool {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return answer == "y" || answer == "yes"
}
