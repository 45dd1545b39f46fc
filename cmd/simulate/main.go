package main

import (
	"flag"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blokus-rl/blokus-engine/internal/config"
	"github.com/blokus-rl/blokus-engine/internal/game"
	"github.com/blokus-rl/blokus-engine/internal/game/piece"
	"github.com/blokus-rl/blokus-engine/internal/game/rules"
	"github.com/blokus-rl/blokus-engine/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	games := flag.Int("games", -1, "Number of games to simulate (-1 to use config default)")
	parallelism := flag.Int("parallelism", -1, "Concurrent workers (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Base RNG seed (0 to seed from the clock)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()
	if *games == -1 {
		*games = cfg.Sim.Games
	}
	if *parallelism == -1 {
		*parallelism = cfg.Sim.Parallelism
	}
	if *seed == 0 {
		*seed = cfg.Sim.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().
		Int("games", *games).
		Int("parallelism", *parallelism).
		Int64("seed", *seed).
		Msg("Starting batch self-play")

	// One catalog shared read-only by every worker
	catalog := rules.NewCatalog(game.BoardRows(), game.BoardCols(), piece.StandardSet(), log.Logger)
	manager := sim.NewManager(catalog, nil, log.Logger)

	type tally struct {
		wins   [5]int // index 4 counts draws
		turns  int
		placed int
	}

	results := make(chan sim.Result, *games)
	jobs := make(chan int64, *games)
	for i := 0; i < *games; i++ {
		jobs <- *seed + int64(i)
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gameSeed := range jobs {
				instance := manager.CreateGame()
				rng := rand.New(rand.NewSource(gameSeed))
				res, err := sim.RandomPlayout(instance.Engine, rng)
				manager.Remove(instance.ID)
				if err != nil {
					log.Error().Err(err).Str("game_id", instance.ID).Msg("Playout failed")
					continue
				}
				results <- res
			}
		}()
	}
	wg.Wait()
	close(results)

	var t tally
	completed := 0
	for res := range results {
		if res.Winner == game.NoWinner {
			t.wins[4]++
		} else {
			t.wins[res.Winner]++
		}
		t.turns += res.Turns
		t.placed += res.Placements
		completed++
	}

	if completed == 0 {
		log.Fatal().Msg("No games completed")
	}
	log.Info().
		Ints("wins", t.wins[:4]).
		Int("draws", t.wins[4]).
		Int("avg_turns", t.turns/completed).
		Int("avg_placements", t.placed/completed).
		Dur("elapsed", time.Since(start)).
		Msg("Batch finished")
}
