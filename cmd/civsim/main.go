package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/CivSim/internal/game/processor"
	"github.com/mitchelldurbincs/CivSim/internal/game/scenario"
	"github.com/mitchelldurbincs/CivSim/internal/journal"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	turns := flag.Int("turns", -1, "Rounds to play (-1 to use config default)")
	seed := flag.Int64("seed", -1, "RNG seed, 0 for time based (-1 to use config default)")
	scriptPath := flag.String("script", "", "YAML command script for human players (empty to use config default)")
	journalPath := flag.String("journal", "", "SQLite journal path (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	showMap := flag.Bool("show-map", false, "Print the map after every round")
	logEvents := flag.Bool("log-events", false, "Log every game event")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *turns == -1 {
		*turns = cfg.Runner.Turns
	}
	if *seed == -1 {
		*seed = cfg.Runner.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *scriptPath == "" {
		*scriptPath = cfg.Runner.Script
	}
	if *journalPath == "" {
		*journalPath = cfg.Journal.Path
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if !*showMap {
		*showMap = cfg.Runner.ShowMap
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func() {
			log.Info().Str("file", path).Msg("Config changed; new values apply to the next game")
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, runOptions{
		turns:     *turns,
		seed:      *seed,
		script:    *scriptPath,
		journal:   *journalPath,
		showMap:   *showMap,
		logEvents: *logEvents,
	}); err != nil {
		log.Fatal().Err(err).Msg("Game failed")
	}
}

type runOptions struct {
	turns     int
	seed      int64
	script    string
	journal   string
	showMap   bool
	logEvents bool
}

func run(ctx context.Context, cfg *config.Config, opts runOptions) error {
	log.Info().
		Int64("seed", opts.seed).
		Int("turns", opts.turns).
		Strs("players", cfg.Runner.Players).
		Int("humans", cfg.Runner.Humans).
		Str("scenario", cfg.Game.Start.Scenario).
		Msg("Starting game")

	bus := events.NewEventBusWithLogger(log.Logger)
	if opts.logEvents {
		bus.Subscribe(subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.DebugLevel))
	}

	if opts.journal != "" {
		j, err := journal.Open(opts.journal, log.Logger)
		if err != nil {
			return err
		}
		defer func() {
			if n := j.Failures(); n > 0 {
				log.Warn().Int("failures", n).Msg("Some events were not journaled")
			}
			j.Close()
		}()
		bus.Subscribe(j)
	}

	e := game.NewEngine(game.Config{
		Game:     cfg.Game,
		Rng:      rand.New(rand.NewSource(opts.seed)),
		Logger:   log.Logger,
		EventBus: bus,
	})

	sc := scenario.FromConfig(cfg.Game.Start, opts.seed, cfg.Runner.Humans)
	if err := e.InitializeGame(cfg.Runner.Players, sc); err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}

	if opts.script != "" {
		s, err := processor.LoadFile(opts.script)
		if err != nil {
			return err
		}
		res, err := processor.NewCommandProcessor(e, log.Logger).Run(ctx, s)
		if err != nil {
			return err
		}
		log.Info().Int("applied", res.Applied).Int("rejected", res.Rejected).Msg("Script finished")
	}

	for e.State().Turn <= opts.turns && !e.IsGameOver() {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("turn", e.State().Turn).Msg("Interrupted")
			break
		}
		round := e.State().Turn
		if !e.EndTurn() {
			return fmt.Errorf("end turn %d rejected in phase %s", round, e.Phase())
		}
		if opts.showMap && e.State().Turn != round {
			fmt.Printf("Turn %d:\n%s\n", round, e.Board(true))
		}
	}

	printSummary(e)
	return nil
}

func printSummary(e *game.Engine) {
	if e.IsGameOver() {
		if w := e.Winner(); w >= 0 {
			fmt.Printf("Game over! %s wins.\n", e.Player(w).Name)
		} else {
			fmt.Println("Game over! No winner.")
		}
	} else {
		fmt.Printf("Stopped after turn %d\n", e.State().Turn-1)
	}

	fmt.Printf("\nFinal map:\n%s\n", e.Board(false))
	fmt.Printf("%-12s %-12s %-10s %5s %5s %5s %5s %6s %6s\n",
		"player", "civ", "gov", "units", "cities", "pop", "techs", "gold", "score")
	for _, s := range e.PlayerStats() {
		name := s.Name
		if s.Eliminated {
			name += " (out)"
		}
		fmt.Printf("%-12s %-12s %-10s %5d %5d %5d %5d %6d %6d\n",
			name, s.Civilization, s.Government, s.Units, s.Cities, s.Population, s.Technologies, s.Gold, s.Score())
	}
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
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

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
