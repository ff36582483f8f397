package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/klondike/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Notes holds informational lines for valid files and errors otherwise.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

func validateCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate every *.json config in a directory",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "configs"
			}

			files, err := filepath.Glob(filepath.Join(dir, "*.json"))
			if err != nil {
				return fmt.Errorf("finding config files: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no config files in %s", dir)
			}

			allValid := true
			for _, file := range files {
				result := validateConfig(file)
				fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

				if result.Valid {
					fmt.Fprintln(w, "✅ VALID")
				} else {
					fmt.Fprintln(w, "❌ INVALID")
					allValid = false
				}
				for _, note := range result.Notes {
					fmt.Fprintln(w, "  "+note)
				}
			}

			fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
			if !allValid {
				return fmt.Errorf("some configurations have errors")
			}
			fmt.Fprintln(w, "✅ All configurations are valid!")
			return nil
		},
	}
}

// validateConfig loads a config file through the engine's own validation and
// deals one game with it.
func validateConfig(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path), Valid: true}

	config, err := engine.LoadGameConfig(path)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, err.Error())
		return result
	}

	undo := "unlimited"
	if config.UndoLimit > 0 {
		undo = fmt.Sprintf("%d", config.UndoLimit)
	}
	result.Notes = append(result.Notes,
		fmt.Sprintf("Name: %s", config.Name),
		fmt.Sprintf("Undo limit: %s", undo),
		fmt.Sprintf("Double press window: %s", config.DoublePressWindow()),
	)

	eng, err := engine.NewEngine(config, rand.New(rand.NewSource(1)))
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Engine rejected config: %v", err))
		return result
	}
	if err := engine.CheckInvariants(eng.GetState()); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Opening deal broken: %v", err))
		return result
	}

	if config.Seed != nil {
		result.Notes = append(result.Notes, fmt.Sprintf("Fixed deal: seed %d", *config.Seed))
	}
	return result
}
