package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/klondike/game/engine"
)

func dealCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "deal",
		Usage: "print the opening table for a seed",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "shuffle seed, random when omitted",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "show face-down cards",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the state as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			seed := cmd.Int64("seed")
			if !cmd.IsSet("seed") {
				seed = time.Now().UnixNano()
			}

			state := engine.NewGame(rand.New(rand.NewSource(seed)))
			if err := engine.CheckInvariants(state); err != nil {
				return fmt.Errorf("deal %d: %w", seed, err)
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(state.Board())
			}

			fmt.Fprintf(w, "Seed: %d\n", seed)
			fmt.Fprint(w, renderBoard(state.Board(), cmd.Bool("open")))
			return nil
		},
	}
}

func renderPile(pile []engine.CardPlacement, open bool) string {
	if len(pile) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(pile))
	for i, p := range pile {
		if p.FaceUp || open {
			parts[i] = p.Card.Code()
		} else {
			parts[i] = "##"
		}
	}
	return strings.Join(parts, " ")
}

func renderBoard(board engine.Board, open bool) string {
	var b strings.Builder

	b.WriteString("Foundations:")
	for i, suit := range engine.Suits {
		top := "--"
		if n := len(board.Foundations[i]); n > 0 {
			top = board.Foundations[i][n-1].Card.Code()
		}
		fmt.Fprintf(&b, " %s %s", suit.Symbol(), top)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Stock: %d | Waste: %d\n", len(board.StockClosed), len(board.StockOpen))
	if open {
		fmt.Fprintf(&b, "  stock: %s\n", renderPile(board.StockClosed, true))
	}

	for col, pile := range board.Tableau {
		fmt.Fprintf(&b, "T%d: %s\n", col, renderPile(pile, open))
	}
	return b.String()
}
