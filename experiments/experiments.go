package experiments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"metro/engine"
	"metro/experiments/metrics"
	"metro/game"
	"metro/player"
	"metro/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Config describes a batch of independent games played by one profile.
type Config struct {
	Name          string
	Profile       string
	MapName       string
	Map           game.Map
	Cards         game.CardSupply
	Games         int
	Workers       int
	Seed          uint64 // 0 picks a seed from the clock
	Deterministic bool
	LogTurns      bool
	OutDir        string // empty skips writing records
}

// Summary aggregates the scores of the games that completed.
type Summary struct {
	Games    int
	Failed   int
	Min      int
	Max      int
	Mean     float64
	Median   int
	Duration time.Duration
}

// Run plays cfg.Games games on up to cfg.Workers goroutines. Records are
// returned in game order whatever order the games finish in. Cancelling ctx
// stops new games from starting; games already running play to the end.
func Run(ctx context.Context, cfg Config) ([]metrics.GameRecord, Summary, error) {
	if cfg.Games <= 0 {
		return nil, Summary{}, fmt.Errorf("need at least one game, got %d", cfg.Games)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if _, err := player.ForProfile(cfg.Profile, nil); err != nil {
		return nil, Summary{}, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment with profile=%s map=%s games=%d workers=%d seed=%d...",
		cfg.Name, cfg.Profile, cfg.MapName, cfg.Games, cfg.Workers, cfg.Seed)

	// Seeds are drawn up front so a batch is reproducible for any worker count
	base := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]uint64, cfg.Games)
	for i := range seeds {
		seeds[i] = base.Uint64()
	}

	start := time.Now()
	records := make([]metrics.GameRecord, 0, cfg.Games)
	results := make([]*metrics.GameRecord, cfg.Games)
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)

dispatch:
	for i := 0; i < cfg.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			record := RunGame(cfg, idx+1, seeds[idx])
			results[idx] = &record
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	summary := summarize(records, time.Since(start))

	log.Info().Msgf("completed %s experiment: games=%d failed=%d min=%d max=%d avg=%.1f median=%d duration=%s",
		cfg.Name, summary.Games, summary.Failed, summary.Min, summary.Max, summary.Mean, summary.Median, summary.Duration)

	if cfg.OutDir != "" {
		if err := store(cfg, records); err != nil {
			return records, summary, err
		}
	}
	return records, summary, ctx.Err()
}

// RunGame plays a single game and never fails; a failed game is reported in
// the record's Err.
func RunGame(cfg Config, index int, seed uint64) metrics.GameRecord {
	record := metrics.GameRecord{
		ID:      uuid.New(),
		Index:   index,
		Profile: cfg.Profile,
		Map:     cfg.MapName,
		Seed:    seed,
	}

	gameCfg := game.Config{
		Map:           cfg.Map,
		Cards:         cfg.Cards,
		Deterministic: cfg.Deterministic,
		Seed:          seed,
		LogTurns:      cfg.LogTurns,
	}
	rng := gameCfg.NewRand()
	p, err := player.ForProfile(cfg.Profile, rng)
	if err != nil {
		record.Err = err
		return record
	}

	var runner engine.Runner
	runner, err = engine.LocalEngine(gameCfg, p, rng, engine.WithMetrics())
	if err != nil {
		record.Err = err
		return record
	}

	score, gameMetric, err := runner.Run()
	record.Score = score
	record.GameMetric = gameMetric
	record.Resolvers = p.Statistics()
	record.Err = err

	if err != nil {
		log.Error().Err(err).Int("game", index).Str("id", record.ID.String()).Msg("game failed")
	} else {
		log.Debug().Int("game", index).Str("id", record.ID.String()).Int("score", score.Total).Int("turns", gameMetric.Turns).Msg("game completed")
	}
	return record
}

func summarize(records []metrics.GameRecord, elapsed time.Duration) Summary {
	var scores []int
	failed := 0
	for _, r := range records {
		if r.Err != nil {
			failed++
			continue
		}
		scores = append(scores, r.Score.Total)
	}
	return Summary{
		Games:    len(scores),
		Failed:   failed,
		Min:      utils.Min(scores),
		Max:      utils.Max(scores),
		Mean:     utils.Mean(scores),
		Median:   utils.Median(scores),
		Duration: elapsed,
	}
}

func store(cfg Config, records []metrics.GameRecord) error {
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteGameRecords(records); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored game records")

	if err := writer.WriteResolverStats(records); err != nil {
		return fmt.Errorf("failed to write resolver stats: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored resolver stats")
	return nil
}
