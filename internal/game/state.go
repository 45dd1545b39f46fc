package game

import (
	"github.com/blokus-rl/blokus-engine/internal/game/core"
	"github.com/blokus-rl/blokus-engine/internal/game/piece"
	"github.com/blokus-rl/blokus-engine/internal/game/rules"
)

// NoWinner marks a game with no single winner: either not yet terminal, or a
// draw where two or more players share the minimum score.
const NoWinner = -1

// PlayerState is the per-player bookkeeping attached to a game
type PlayerState struct {
	// PiecesAvailable[i] is true while piece i of the catalog set is unplayed
	PiecesAvailable []bool
	PiecesLeft      int
	// FirstMove is true until the player's first placement is applied
	FirstMove bool
	// Finished is set when the player passes or runs out of pieces; a
	// finished player still takes nominal turns and only ever passes
	Finished bool
	// Score is the summed cell count of unplayed pieces; lower is better
	Score int
}

func (p *PlayerState) clone() PlayerState {
	out := *p
	out.PiecesAvailable = make([]bool, len(p.PiecesAvailable))
	copy(out.PiecesAvailable, p.PiecesAvailable)
	return out
}

// GameState holds everything that is mutable during a play-through. The move
// catalog is not part of it; catalogs are shared read-only across states.
type GameState struct {
	Board       *core.Board
	Players     [core.NumPlayers]PlayerState
	Current     int
	NumFinished int
	// Winner is NoWinner until the game is terminal; it stays NoWinner on a
	// draw
	Winner int
}

func newGameState(cat *rules.Catalog) *GameState {
	gs := &GameState{
		Board:  core.NewBoard(cat.Rows, cat.Cols),
		Winner: NoWinner,
	}
	startScore := piece.TotalCells(cat.Pieces)
	for i := range gs.Players {
		available := make([]bool, len(cat.Pieces))
		for j := range available {
			available[j] = true
		}
		gs.Players[i] = PlayerState{
			PiecesAvailable: available,
			PiecesLeft:      len(cat.Pieces),
			FirstMove:       true,
			Score:           startScore,
		}
	}
	return gs
}

// IsTerminal reports whether all four players have finished
func (gs *GameState) IsTerminal() bool {
	return gs.NumFinished == core.NumPlayers
}

// Clone returns a deep copy of the grid and player records
func (gs *GameState) Clone() *GameState {
	out := &GameState{
		Board:       gs.Board.Clone(),
		Current:     gs.Current,
		NumFinished: gs.NumFinished,
		Winner:      gs.Winner,
	}
	for i := range gs.Players {
		out.Players[i] = gs.Players[i].clone()
	}
	return out
}
