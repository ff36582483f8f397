// Package engine provides the core game logic for Klondike solitaire.
//
// The engine package implements:
//   - Card model, deck construction and seeded shuffling
//   - The initial deal into seven tableau piles and the stock
//   - A legality oracle answering whether an intent may be applied
//   - A pure reducer producing the next state from a state and an intent
//   - Win detection, invariant checking and an undo history
//   - Keyboard double-press detection and auto-foundation targeting
//   - Configuration loading and validation
//
// Core Types:
//
// GameState is an immutable snapshot: a flat list of CardPlacement values,
// one per card, plus the hovered tableau pile. Intents describe requested
// changes. Legal decides whether an intent is allowed; Apply performs it
// without checking. GameEngine couples the two, keeps the undo history and
// the move log, and is what the session layer drives.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(42))
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig(), rng)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Apply(engine.DrawStockCard{})
//	board := gameEngine.Board()
//
// Game Rules:
//
// Tableau piles build down in alternating colors and only a King may fill an
// empty pile. Foundations build up by suit from the Ace. The stock is drawn
// one card at a time and may be turned over without limit. The game is won
// when all 52 cards sit on the foundations.
package engine
