// Package game implements the Blokus turn state machine on top of the
// precomputed move catalog.
package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blokus-rl/blokus-engine/internal/game/core"
	"github.com/blokus-rl/blokus-engine/internal/game/events"
	"github.com/blokus-rl/blokus-engine/internal/game/rules"
)

// Engine drives one play-through: legality filtering, action application,
// terminal detection and outcome computation. It is single-threaded; parallel
// exploration clones the engine and works on the copy.
type Engine struct {
	catalog *rules.Catalog
	gs      *GameState
	starts  [core.NumPlayers]core.Coordinate
	logger  zerolog.Logger

	// Optional event publishing
	gameID string
	bus    *events.EventBus
}

// NewEngine creates a fresh game over a shared, immutable move catalog
func NewEngine(cat *rules.Catalog, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog: cat,
		gs:      newGameState(cat),
		starts:  rules.StartCorners(cat.Rows, cat.Cols),
		logger:  logger.With().Str("component", "engine").Logger(),
	}
}

// AttachBus wires an event bus; the engine publishes lifecycle events for
// this game ID from now on.
func (e *Engine) AttachBus(gameID string, bus *events.EventBus) {
	e.gameID = gameID
	e.bus = bus
	bus.Publish(events.NewGameStartedEvent(gameID, e.catalog.Rows, e.catalog.Cols))
}

// Catalog returns the shared move catalog
func (e *Engine) Catalog() *rules.Catalog { return e.catalog }

// GameState exposes the current state for inspection. Callers must treat it
// as read-only; all mutation goes through ApplyAction.
func (e *Engine) GameState() *GameState { return e.gs }

// IsTerminal reports whether all four players have finished
func (e *Engine) IsTerminal() bool { return e.gs.IsTerminal() }

// CurrentPlayer returns the player to act, or NoWinner(-1) once the game is
// terminal.
func (e *Engine) CurrentPlayer() int {
	if e.gs.IsTerminal() {
		return NoWinner
	}
	return e.gs.Current
}

// StartCorner returns the reserved first-move cell for a player
func (e *Engine) StartCorner(player int) (core.Coordinate, error) {
	if !core.ValidPlayer(player) {
		return core.Coordinate{}, fmt.Errorf("player %d: %w", player, core.ErrInvalidPlayer)
	}
	return e.starts[player], nil
}

// isLegal checks one catalog move for the given player against the current
// grid. Finished players have no legal placements left.
func (e *Engine) isLegal(player int, mv *rules.Move) bool {
	ps := &e.gs.Players[player]
	if ps.Finished {
		return false
	}
	if ps.FirstMove {
		return mv.IsLegalFirst(e.starts[player])
	}
	return ps.PiecesAvailable[mv.Piece] && mv.IsLegal(e.gs.Board, core.Cell(player))
}

// LegalActions enumerates the legal action indices for the current player in
// increasing order. When no placement is legal the single pass action is
// returned; a terminal game has no legal actions.
func (e *Engine) LegalActions() []int {
	if e.gs.IsTerminal() {
		return nil
	}

	player := e.gs.Current
	var legal []int
	for i := range e.catalog.Moves {
		if e.isLegal(player, &e.catalog.Moves[i]) {
			legal = append(legal, i)
		}
	}
	if len(legal) == 0 {
		legal = append(legal, e.catalog.PassAction())
	}
	return legal
}

// ApplyAction applies one action for the current player and advances the
// turn. Out-of-range indices, terminal games and moves that fail legality are
// caller-contract violations: callers must choose from LegalActions.
func (e *Engine) ApplyAction(action int) error {
	if action < 0 || action > e.catalog.PassAction() {
		return fmt.Errorf("action %d: %w", action, core.ErrInvalidAction)
	}
	if e.gs.IsTerminal() {
		return fmt.Errorf("action %d: %w", action, core.ErrGameOver)
	}

	player := e.gs.Current
	ps := &e.gs.Players[player]

	if action < e.catalog.PassAction() {
		mv := &e.catalog.Moves[action]
		if !e.isLegal(player, mv) {
			return fmt.Errorf("player %d action %d: %w", player, action, core.ErrIllegalMove)
		}

		for _, c := range mv.Cells {
			e.gs.Board.Cells[e.gs.Board.Idx(c.Row, c.Col)] = core.Cell(player)
		}
		pc := e.catalog.Pieces[mv.Piece]
		ps.PiecesAvailable[mv.Piece] = false
		ps.PiecesLeft--
		ps.FirstMove = false
		ps.Score -= pc.Size()

		e.logger.Debug().
			Int("player", player).
			Str("piece", pc.Name).
			Int("action", action).
			Int("score", ps.Score).
			Msg("Piece placed")
		if e.bus != nil {
			e.bus.Publish(events.NewPiecePlacedEvent(e.gameID, player, pc.Name, action, mv.Cells))
		}
	} else if e.bus != nil && !ps.Finished {
		e.bus.Publish(events.NewPlayerPassedEvent(e.gameID, player))
	}

	// Passing or running out of pieces finishes the player; later turns for
	// a finished player fall through here without re-counting.
	if !ps.Finished && (ps.PiecesLeft == 0 || action == e.catalog.PassAction()) {
		ps.Finished = true
		e.gs.NumFinished++
		e.logger.Debug().Int("player", player).Int("score", ps.Score).Msg("Player finished")
		if e.bus != nil {
			e.bus.Publish(events.NewPlayerFinishedEvent(e.gameID, player, ps.Score))
		}
		if e.gs.IsTerminal() {
			e.updateOutcome()
		}
	}

	// A finished player keeps receiving nominal turns; the turn pointer
	// always advances.
	e.gs.Current = (e.gs.Current + 1) % core.NumPlayers
	return nil
}

// updateOutcome resolves the winner once all players have finished: strictly
// lowest score wins, and any multi-way tie at the minimum is a draw.
func (e *Engine) updateOutcome() {
	minScore := e.gs.Players[0].Score
	winner := 0
	ties := 1
	for i := 1; i < core.NumPlayers; i++ {
		score := e.gs.Players[i].Score
		switch {
		case score < minScore:
			minScore = score
			winner = i
			ties = 1
		case score == minScore:
			ties++
		}
	}
	if ties > 1 {
		winner = NoWinner
	}
	e.gs.Winner = winner

	var scores [core.NumPlayers]int
	for i := range e.gs.Players {
		scores[i] = e.gs.Players[i].Score
	}
	e.logger.Info().
		Int("winner", winner).
		Interface("scores", scores).
		Msg("Game over")
	if e.bus != nil {
		e.bus.Publish(events.NewGameEndedEvent(e.gameID, winner, scores))
	}
}

// UndoAction is not supported; reversing an applied action fails explicitly
// rather than silently doing nothing. Callers that need to branch clone the
// engine before applying.
func (e *Engine) UndoAction(player, action int) error {
	return fmt.Errorf("player %d action %d: %w", player, action, core.ErrUndoUnsupported)
}

// Returns is the per-player outcome vector: all zeros before terminal and on
// a draw, otherwise +1 for the winner and -1 for everyone else.
func (e *Engine) Returns() []float64 {
	out := make([]float64, core.NumPlayers)
	if !e.gs.IsTerminal() || e.gs.Winner == NoWinner {
		return out
	}
	for i := range out {
		out[i] = -1
	}
	out[e.gs.Winner] = 1
	return out
}

// Clone duplicates the play-through: grid and player records are deep-copied
// while the catalog stays shared. The clone does not inherit the event bus.
func (e *Engine) Clone() *Engine {
	return &Engine{
		catalog: e.catalog,
		gs:      e.gs.Clone(),
		starts:  e.starts,
		logger:  e.logger,
	}
}
