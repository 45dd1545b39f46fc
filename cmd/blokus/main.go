package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blokus-rl/blokus-engine/internal/config"
	"github.com/blokus-rl/blokus-engine/internal/game"
	"github.com/blokus-rl/blokus-engine/internal/game/events"
	"github.com/blokus-rl/blokus-engine/internal/game/events/subscribers"
	"github.com/blokus-rl/blokus-engine/internal/game/piece"
	"github.com/blokus-rl/blokus-engine/internal/game/rules"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 to seed from the clock)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()
	if *logLevel == "" {
		*logLevel = cfg.Log.Level
	}
	if *seed == 0 {
		*seed = cfg.Sim.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	setupLogging(*logLevel, cfg.Log.Format)

	log.Info().
		Int("rows", game.BoardRows()).
		Int("cols", game.BoardCols()).
		Int64("seed", *seed).
		Msg("Starting random self-play demo")

	catalog := rules.NewCatalog(game.BoardRows(), game.BoardCols(), piece.StandardSet(), log.Logger)

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("demo", log.Logger))

	engine := game.NewEngine(catalog, log.Logger)
	engine.AttachBus("demo-game", bus)

	rng := rand.New(rand.NewSource(*seed))
	placements := 0
	for !engine.IsTerminal() {
		legal := engine.LegalActions()
		action := legal[rng.Intn(len(legal))]
		if action != catalog.PassAction() {
			placements++
		}
		if err := engine.ApplyAction(action); err != nil {
			log.Fatal().Err(err).Int("action", action).Msg("Failed to apply action")
		}
	}

	fmt.Println(engine)

	gs := engine.GameState()
	for i, p := range gs.Players {
		fmt.Printf("Player %d: score %d (%d pieces unplayed)\n", i+1, p.Score, p.PiecesLeft)
	}
	if gs.Winner == game.NoWinner {
		fmt.Println("Result: draw")
	} else {
		fmt.Printf("Result: player %d wins\n", gs.Winner+1)
	}
	fmt.Printf("Placements: %d\n", placements)
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
