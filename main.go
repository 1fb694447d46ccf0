package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"metro/experiments"
	"metro/game"
	"metro/meta"
	"metro/player"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	var (
		profile       string
		mapName       string
		cardsName     string
		numGames      int
		workers       int
		seed          uint64
		deterministic bool
		logTurns      bool
		analyze       bool
		outDir        string
		name          string
		logLevel      string
	)

	flag.StringVar(&profile, "profile", envOrDefault("METRO_PROFILE", meta.DEFAULT_PROFILE), fmt.Sprintf("Strategy profile %v", player.Profiles()))
	flag.StringVar(&mapName, "map", envOrDefault("METRO_MAP", meta.DEFAULT_MAP), "Built-in map (metro-city, tube-town) or path to a YAML map")
	flag.StringVar(&cardsName, "cards", envOrDefault("METRO_CARDS", meta.DEFAULT_CARDS), "Built-in card set (gamewright, ozaku) or path to a YAML card supply")
	flag.IntVar(&numGames, "n", envIntOrDefault("METRO_GAMES", meta.ITERATIONS), "Number of games to run")
	flag.IntVar(&workers, "workers", envIntOrDefault("METRO_WORKERS", meta.WORKERS), "Concurrency (parallel games)")
	flag.Uint64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.BoolVar(&deterministic, "deterministic", false, "Deal cards in supply order without shuffling")
	flag.BoolVar(&logTurns, "log-turns", false, "Log every turn (needs -log-level debug)")
	flag.BoolVar(&analyze, "analyze", false, "Print map statistics and exit")
	flag.StringVar(&outDir, "out", "", "Directory for CSV game records (empty = none)")
	flag.StringVar(&name, "name", "batch", "Experiment name")
	flag.StringVar(&logLevel, "log-level", envOrDefault("LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	initLogger(logLevel)

	gameCfg := game.DefaultConfig()
	gameCfg.Deterministic = deterministic
	gameCfg.LogTurns = logTurns

	m, err := loadMap(mapName, gameCfg.Map)
	if err != nil {
		log.Fatal().Err(err).Str("map", mapName).Msg("failed to load map")
	}
	gameCfg.Map = m

	if analyze {
		stats, err := game.Analyze(gameCfg.Map)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to analyze map")
		}
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to encode map statistics")
		}
		fmt.Println(string(out))
		return
	}

	cards, err := loadCards(cardsName, gameCfg.Cards)
	if err != nil {
		log.Fatal().Err(err).Str("cards", cardsName).Msg("failed to load card supply")
	}
	gameCfg.Cards = cards

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutting down...")
		cancel()
	}()

	_, summary, err := experiments.Run(ctx, experiments.Config{
		Name:          name,
		Profile:       profile,
		MapName:       mapName,
		Map:           gameCfg.Map,
		Cards:         gameCfg.Cards,
		Games:         numGames,
		Workers:       workers,
		Seed:          seed,
		Deterministic: gameCfg.Deterministic,
		LogTurns:      gameCfg.LogTurns,
		OutDir:        outDir,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func initLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// loadMap resolves a built-in map or a YAML file; an empty name keeps fallback.
func loadMap(name string, fallback game.Map) (game.Map, error) {
	if name == "" {
		return fallback, nil
	}
	if m, ok := game.BuiltinMap(name); ok {
		return m, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return game.LoadMap(f)
}

func loadCards(name string, fallback game.CardSupply) (game.CardSupply, error) {
	if name == "" {
		return fallback, nil
	}
	if s, ok := game.BuiltinCardSupply(name); ok {
		return s, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return game.LoadCardSupply(f)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
