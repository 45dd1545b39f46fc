package events

import (
	"time"

	"github.com/blokus-rl/blokus-engine/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted    = "game.started"
	TypePiecePlaced    = "piece.placed"
	TypePlayerPassed   = "player.passed"
	TypePlayerFinished = "player.finished"
	TypeGameEnded      = "game.ended"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Rows       int
	Cols       int
	NumPlayers int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, rows, cols int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  BaseEvent{EventType: TypeGameStarted, Time: time.Now(), Game: gameID},
		Rows:       rows,
		Cols:       cols,
		NumPlayers: core.NumPlayers,
	}
}

// PiecePlacedEvent is published after a placement is applied to the board
type PiecePlacedEvent struct {
	BaseEvent
	Player    int
	PieceName string
	Action    int
	Cells     []core.Coordinate
}

// NewPiecePlacedEvent creates a new PiecePlacedEvent
func NewPiecePlacedEvent(gameID string, player int, pieceName string, action int, cells []core.Coordinate) *PiecePlacedEvent {
	return &PiecePlacedEvent{
		BaseEvent: BaseEvent{EventType: TypePiecePlaced, Time: time.Now(), Game: gameID},
		Player:    player,
		PieceName: pieceName,
		Action:    action,
		Cells:     cells,
	}
}

// PlayerPassedEvent is published when a player takes the pass action
type PlayerPassedEvent struct {
	BaseEvent
	Player int
}

// NewPlayerPassedEvent creates a new PlayerPassedEvent
func NewPlayerPassedEvent(gameID string, player int) *PlayerPassedEvent {
	return &PlayerPassedEvent{
		BaseEvent: BaseEvent{EventType: TypePlayerPassed, Time: time.Now(), Game: gameID},
		Player:    player,
	}
}

// PlayerFinishedEvent is published when a player finishes, either by placing
// their last piece or by passing
type PlayerFinishedEvent struct {
	BaseEvent
	Player int
	Score  int
}

// NewPlayerFinishedEvent creates a new PlayerFinishedEvent
func NewPlayerFinishedEvent(gameID string, player, score int) *PlayerFinishedEvent {
	return &PlayerFinishedEvent{
		BaseEvent: BaseEvent{EventType: TypePlayerFinished, Time: time.Now(), Game: gameID},
		Player:    player,
		Score:     score,
	}
}

// GameEndedEvent is published when all players have finished.
// Winner is -1 on a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner int
	Scores [core.NumPlayers]int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner int, scores [core.NumPlayers]int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeGameEnded, Time: time.Now(), Game: gameID},
		Winner:    winner,
		Scores:    scores,
	}
}
