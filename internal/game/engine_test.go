package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blokus-rl/blokus-engine/internal/game/core"
	"github.com/blokus-rl/blokus-engine/internal/game/events"
	"github.com/blokus-rl/blokus-engine/internal/game/piece"
	"github.com/blokus-rl/blokus-engine/internal/game/rules"
)

var (
	catalogOnce   sync.Once
	sharedCatalog *rules.Catalog
)

func testCatalog() *rules.Catalog {
	catalogOnce.Do(func() {
		sharedCatalog = rules.NewCatalog(20, 20, piece.StandardSet(), zerolog.Nop())
	})
	return sharedCatalog
}

func newTestEngine() *Engine {
	return NewEngine(testCatalog(), zerolog.Nop())
}

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

// findCornerMove returns a catalog move index for the given piece that
// covers the given cell
func findCornerMove(t *testing.T, cat *rules.Catalog, pieceIdx int, cell core.Coordinate) int {
	t.Helper()
	for i := range cat.Moves {
		if cat.Moves[i].Piece == pieceIdx && cat.Moves[i].Covers(cell) {
			return i
		}
	}
	t.Fatalf("no move for piece %d covering %v", pieceIdx, cell)
	return -1
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine()

	require.NotNil(t, e.gs)
	require.NotNil(t, e.gs.Board)
	assert.Equal(t, 20, e.gs.Board.Rows)
	assert.Equal(t, 20, e.gs.Board.Cols)
	assert.False(t, e.IsTerminal())
	assert.Equal(t, 0, e.CurrentPlayer())
	assert.Equal(t, NoWinner, e.gs.Winner)

	for i, p := range e.gs.Players {
		assert.Equal(t, 89, p.Score, "player %d starting score", i)
		assert.Equal(t, piece.NumPieces, p.PiecesLeft, "player %d pieces", i)
		assert.True(t, p.FirstMove, "player %d first-move flag", i)
		assert.False(t, p.Finished, "player %d finished flag", i)
		for j, available := range p.PiecesAvailable {
			assert.True(t, available, "player %d piece %d availability", i, j)
		}
	}

	for _, cell := range e.gs.Board.Cells {
		assert.Equal(t, core.CellEmpty, cell)
	}
}

func TestEngine_StartCorner(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		player   int
		expected core.Coordinate
	}{
		{0, core.NewCoordinate(19, 19)},
		{1, core.NewCoordinate(19, 0)},
		{2, core.NewCoordinate(0, 0)},
		{3, core.NewCoordinate(0, 19)},
	}
	for _, tt := range tests {
		c, err := e.StartCorner(tt.player)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, c)
	}

	_, err := e.StartCorner(4)
	assert.ErrorIs(t, err, core.ErrInvalidPlayer)
	_, err = e.StartCorner(-1)
	assert.ErrorIs(t, err, core.ErrInvalidPlayer)
}

func TestEngine_LegalActions_FirstMove(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()
	start, err := e.StartCorner(0)
	require.NoError(t, err)

	legal := e.LegalActions()
	require.NotEmpty(t, legal, "first player must have legal opening placements")

	legalSet := make(map[int]bool, len(legal))
	prev := -1
	for _, a := range legal {
		assert.Greater(t, a, prev, "legal actions must be strictly increasing")
		prev = a
		legalSet[a] = true

		require.Less(t, a, cat.PassAction(), "pass must not be offered while placements exist")
		mv, err := cat.Move(a)
		require.NoError(t, err)
		assert.True(t, mv.Covers(start), "first move %d must cover the start corner", a)
	}

	// The legal set is exactly the catalog moves covering the start corner
	for i := range cat.Moves {
		if cat.Moves[i].Covers(start) {
			assert.True(t, legalSet[i], "move %d covers the corner but is not offered", i)
		}
	}
}

func TestEngine_ApplyAction_Placement(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	// Open with the i5 pentomino (piece 4) on player 0's corner
	action := findCornerMove(t, cat, 4, core.NewCoordinate(19, 19))
	mv, err := cat.Move(action)
	require.NoError(t, err)

	require.NoError(t, e.ApplyAction(action))

	ps := &e.gs.Players[0]
	assert.Equal(t, 89-5, ps.Score, "score drops by the piece's cell count")
	assert.Equal(t, piece.NumPieces-1, ps.PiecesLeft)
	assert.False(t, ps.PiecesAvailable[4])
	assert.False(t, ps.FirstMove)
	assert.False(t, ps.Finished)

	for _, c := range mv.Cells {
		assert.Equal(t, core.Cell(0), e.gs.Board.Owner(c))
	}
	assert.Equal(t, 1, e.CurrentPlayer(), "turn must advance to the next player")
}

func TestEngine_ApplyAction_Preconditions(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	t.Run("negative action", func(t *testing.T) {
		assert.ErrorIs(t, e.ApplyAction(-1), core.ErrInvalidAction)
	})

	t.Run("action above pass", func(t *testing.T) {
		assert.ErrorIs(t, e.ApplyAction(cat.PassAction()+1), core.ErrInvalidAction)
	})

	t.Run("illegal first move", func(t *testing.T) {
		// Move 0 is the monomino at (0, 0): player 2's corner, not player 0's
		assert.ErrorIs(t, e.ApplyAction(0), core.ErrIllegalMove)
	})

	t.Run("terminal game", func(t *testing.T) {
		finished := newTestEngine()
		for i := 0; i < core.NumPlayers; i++ {
			require.NoError(t, finished.ApplyAction(cat.PassAction()))
		}
		require.True(t, finished.IsTerminal())
		assert.ErrorIs(t, finished.ApplyAction(cat.PassAction()), core.ErrGameOver)
	})
}

func TestEngine_ApplyAction_ReusedPieceIsIllegal(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	// Player 0 opens with the monomino in the corner
	first := findCornerMove(t, cat, 0, core.NewCoordinate(19, 19))
	require.NoError(t, e.ApplyAction(first))
	for p := 1; p < core.NumPlayers; p++ {
		require.NoError(t, e.ApplyAction(cat.PassAction()))
	}

	// Back to player 0: the monomino diagonally off the corner would be
	// placeable, but the piece is spent
	again := findCornerMove(t, cat, 0, core.NewCoordinate(18, 18))
	assert.ErrorIs(t, e.ApplyAction(again), core.ErrIllegalMove)

	// No monomino action may appear in the legal list either
	for _, a := range e.LegalActions() {
		if a == cat.PassAction() {
			continue
		}
		mv, err := cat.Move(a)
		require.NoError(t, err)
		assert.NotEqual(t, 0, mv.Piece, "spent piece offered as legal")
	}
}

func TestEngine_PassFinishesPlayer(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	require.NoError(t, e.ApplyAction(cat.PassAction()))

	ps := &e.gs.Players[0]
	assert.True(t, ps.Finished)
	assert.Equal(t, 89, ps.Score, "passing does not change the score")
	assert.Equal(t, 1, e.gs.NumFinished)
	assert.Equal(t, 1, e.CurrentPlayer())
	assert.False(t, e.IsTerminal())

	// A finished player keeps taking nominal turns: only pass is offered
	for p := 1; p < core.NumPlayers; p++ {
		legal := e.LegalActions()
		require.NotEmpty(t, legal)
		require.NoError(t, e.ApplyAction(legal[0]))
	}
	assert.Equal(t, 0, e.CurrentPlayer(), "turn pointer must come back around to the finished player")
	assert.Equal(t, []int{cat.PassAction()}, e.LegalActions())

	// Passing again does not double-count the finished player
	require.NoError(t, e.ApplyAction(cat.PassAction()))
	assert.Equal(t, e.gs.NumFinished, countFinished(e))
}

func countFinished(e *Engine) int {
	n := 0
	for i := range e.gs.Players {
		if e.gs.Players[i].Finished {
			n++
		}
	}
	return n
}

func TestEngine_AllPassIsDraw(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	for i := 0; i < core.NumPlayers; i++ {
		require.False(t, e.IsTerminal())
		assert.Equal(t, []float64{0, 0, 0, 0}, e.Returns(), "returns must be zero before terminal")
		require.NoError(t, e.ApplyAction(cat.PassAction()))
	}

	assert.True(t, e.IsTerminal())
	assert.Equal(t, NoWinner, e.CurrentPlayer())
	assert.Equal(t, NoWinner, e.gs.Winner, "four-way tie is a draw")
	assert.Equal(t, []float64{0, 0, 0, 0}, e.Returns())
	assert.Nil(t, e.LegalActions())
}

func TestEngine_SinglePlacementWins(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	// Player 0 places the monomino, everyone else passes, then player 0
	// passes out
	require.NoError(t, e.ApplyAction(findCornerMove(t, cat, 0, core.NewCoordinate(19, 19))))
	for p := 1; p < core.NumPlayers; p++ {
		require.NoError(t, e.ApplyAction(cat.PassAction()))
	}
	require.NoError(t, e.ApplyAction(cat.PassAction()))

	require.True(t, e.IsTerminal())
	assert.Equal(t, 0, e.gs.Winner)
	assert.Equal(t, []float64{1, -1, -1, -1}, e.Returns())
	assert.Equal(t, 88, e.gs.Players[0].Score)
}

func TestEngine_TwoWayTieIsDraw(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	// Players 0 and 1 both place their monomino; 2 and 3 pass
	require.NoError(t, e.ApplyAction(findCornerMove(t, cat, 0, core.NewCoordinate(19, 19))))
	require.NoError(t, e.ApplyAction(findCornerMove(t, cat, 0, core.NewCoordinate(19, 0))))
	require.NoError(t, e.ApplyAction(cat.PassAction()))
	require.NoError(t, e.ApplyAction(cat.PassAction()))
	require.NoError(t, e.ApplyAction(cat.PassAction()))
	require.NoError(t, e.ApplyAction(cat.PassAction()))

	require.True(t, e.IsTerminal())
	assert.Equal(t, 88, e.gs.Players[0].Score)
	assert.Equal(t, 88, e.gs.Players[1].Score)
	assert.Equal(t, NoWinner, e.gs.Winner, "shared minimum must be a draw, never a shared win")
	assert.Equal(t, []float64{0, 0, 0, 0}, e.Returns())
}

func TestEngine_UpdateOutcome(t *testing.T) {
	tests := []struct {
		name     string
		scores   [core.NumPlayers]int
		expected int
	}{
		{"strict minimum first", [core.NumPlayers]int{10, 20, 30, 40}, 0},
		{"strict minimum last", [core.NumPlayers]int{40, 30, 20, 10}, 3},
		{"strict minimum middle", [core.NumPlayers]int{15, 5, 25, 35}, 1},
		{"two-way tie", [core.NumPlayers]int{5, 5, 10, 20}, NoWinner},
		{"three-way tie", [core.NumPlayers]int{5, 5, 5, 20}, NoWinner},
		{"four-way tie", [core.NumPlayers]int{5, 5, 5, 5}, NoWinner},
		{"tie above the minimum is fine", [core.NumPlayers]int{3, 9, 9, 9}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			for i := range e.gs.Players {
				e.gs.Players[i].Score = tt.scores[i]
			}
			e.updateOutcome()
			assert.Equal(t, tt.expected, e.gs.Winner)
		})
	}
}

func TestEngine_UndoAction(t *testing.T) {
	e := newTestEngine()
	assert.ErrorIs(t, e.UndoAction(0, 0), core.ErrUndoUnsupported)
}

func TestEngine_ObservationTensor(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	obs := e.ObservationTensor()
	require.Len(t, obs, 400)
	for _, v := range obs {
		assert.Equal(t, float32(0), v)
	}

	action := findCornerMove(t, cat, 0, core.NewCoordinate(19, 19))
	require.NoError(t, e.ApplyAction(action))

	obs = e.ObservationTensor()
	assert.Equal(t, float32(1), obs[19*20+19], "player 0 exports as marker 1")

	marked := 0
	for _, v := range obs {
		if v != 0 {
			marked++
		}
	}
	assert.Equal(t, 1, marked)
}

func TestEngine_ActionString(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	s, err := e.ActionString(0)
	require.NoError(t, err)
	assert.Equal(t, "i1 at (0, 0)", s)

	s, err = e.ActionString(cat.PassAction())
	require.NoError(t, err)
	assert.Equal(t, "pass", s)

	_, err = e.ActionString(cat.PassAction() + 1)
	assert.ErrorIs(t, err, core.ErrInvalidAction)
	_, err = e.ActionString(-1)
	assert.ErrorIs(t, err, core.ErrInvalidAction)
}

func TestEngine_String(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()
	require.NoError(t, e.ApplyAction(findCornerMove(t, cat, 0, core.NewCoordinate(19, 19))))

	rendered := e.String()
	assert.Contains(t, rendered, "·", "empty cells render as dots")
	assert.Contains(t, rendered, "1", "player 0 renders as 1")
}

func TestEngine_Clone(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()
	rng := newTestRNG()

	// Advance a few turns
	for i := 0; i < 8; i++ {
		legal := e.LegalActions()
		require.NoError(t, e.ApplyAction(legal[rng.Intn(len(legal))]))
	}

	clone := e.Clone()
	assert.Same(t, cat, clone.Catalog(), "catalog must be shared, not copied")
	assert.Equal(t, e.gs.Board.Cells, clone.gs.Board.Cells)
	assert.Equal(t, e.gs.Players, clone.gs.Players)
	assert.Equal(t, e.gs.Current, clone.gs.Current)

	// Applying the same actions to both keeps them in lockstep
	for i := 0; i < 12; i++ {
		legal := e.LegalActions()
		require.Equal(t, legal, clone.LegalActions(), "step %d legal sets diverged", i)
		if len(legal) == 0 {
			break
		}
		action := legal[rng.Intn(len(legal))]
		require.NoError(t, e.ApplyAction(action))
		require.NoError(t, clone.ApplyAction(action))
	}
	assert.Equal(t, e.gs.Board.Cells, clone.gs.Board.Cells)
	assert.Equal(t, e.gs.Players, clone.gs.Players)

	// Divergence on the clone must not leak into the original
	snapshot := make([]core.Cell, len(e.gs.Board.Cells))
	copy(snapshot, e.gs.Board.Cells)
	legal := clone.LegalActions()
	if len(legal) > 0 {
		require.NoError(t, clone.ApplyAction(legal[0]))
	}
	assert.Equal(t, snapshot, e.gs.Board.Cells)
}

func TestEngine_PublishesLifecycleEvents(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()

	bus := events.NewEventBus()
	var published []string
	record := func(ev events.Event) { published = append(published, ev.Type()) }
	bus.SubscribeFunc(events.TypeGameStarted, record)
	bus.SubscribeFunc(events.TypePiecePlaced, record)
	bus.SubscribeFunc(events.TypePlayerPassed, record)
	bus.SubscribeFunc(events.TypePlayerFinished, record)
	bus.SubscribeFunc(events.TypeGameEnded, record)

	e.AttachBus("test-game", bus)
	require.NoError(t, e.ApplyAction(findCornerMove(t, cat, 0, core.NewCoordinate(19, 19))))
	for i := 0; i < core.NumPlayers; i++ {
		require.NoError(t, e.ApplyAction(cat.PassAction()))
	}
	require.True(t, e.IsTerminal())

	assert.Equal(t, []string{
		events.TypeGameStarted,
		events.TypePiecePlaced,
		events.TypePlayerPassed, events.TypePlayerFinished,
		events.TypePlayerPassed, events.TypePlayerFinished,
		events.TypePlayerPassed, events.TypePlayerFinished,
		events.TypePlayerPassed, events.TypePlayerFinished,
		events.TypeGameEnded,
	}, published)
}

func TestEngine_RandomFullGame(t *testing.T) {
	e := newTestEngine()
	cat := e.Catalog()
	rng := newTestRNG()

	type placement struct {
		player int
		cells  []core.Coordinate
	}
	var placements []placement

	turns := 0
	for !e.IsTerminal() {
		require.LessOrEqual(t, turns, 200, "game must terminate")
		player := e.CurrentPlayer()
		legal := e.LegalActions()
		require.NotEmpty(t, legal)

		if legal[len(legal)-1] == cat.PassAction() {
			require.Len(t, legal, 1, "pass must be the only action when offered")
		}

		action := legal[rng.Intn(len(legal))]
		if action != cat.PassAction() {
			mv, err := cat.Move(action)
			require.NoError(t, err)
			placements = append(placements, placement{player: player, cells: mv.Cells})
		}
		require.NoError(t, e.ApplyAction(action))
		turns++
	}

	assert.LessOrEqual(t, len(placements), 84, "at most 21 placements per player")
	assert.Equal(t, core.NumPlayers, e.gs.NumFinished)

	// Returns are zero-sum
	sum := 0.0
	for _, r := range e.Returns() {
		sum += r
	}
	assert.Equal(t, 0.0, sum)

	// Scores match the board contents
	cellCount := [core.NumPlayers]int{}
	for _, cell := range e.gs.Board.Cells {
		if cell != core.CellEmpty {
			cellCount[cell]++
		}
	}
	for i, p := range e.gs.Players {
		assert.Equal(t, 89-cellCount[i], p.Score, "player %d score vs board", i)
	}

	// First placements covered the assigned corners
	firstSeen := [core.NumPlayers]bool{}
	for _, pl := range placements {
		if firstSeen[pl.player] {
			continue
		}
		firstSeen[pl.player] = true
		start, err := e.StartCorner(pl.player)
		require.NoError(t, err)
		covered := false
		for _, c := range pl.cells {
			if c.Equal(start) {
				covered = true
			}
		}
		assert.True(t, covered, "player %d first placement missed the corner", pl.player)
	}

	// Board-scan invariant: no two same-owner placements touch edge-to-edge
	for i, a := range placements {
		for _, b := range placements[i+1:] {
			if a.player != b.player {
				continue
			}
			for _, ca := range a.cells {
				for _, cb := range b.cells {
					assert.False(t, ca.IsOrthogonalTo(cb),
						"player %d placements touch edge-to-edge at %v/%v", a.player, ca, cb)
				}
			}
		}
	}
}
