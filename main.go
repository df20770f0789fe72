package main

import (
	"os"
	"time"

	"gambit/agent"
	"gambit/engine"
	"gambit/experiments/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pairing struct {
	white string
	black string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	runDifficultyExperiment()
}

// runDifficultyExperiment pits every difficulty tier against every other and
// dumps per-game and per-move metrics as CSV.
func runDifficultyExperiment() {
	numGames := 4
	tiers := []string{"easy", "medium", "hard"}
	var pairings []pairing
	for _, w := range tiers {
		for _, b := range tiers {
			pairings = append(pairings, pairing{white: w, black: b})
		}
	}

	writer, err := metrics.NewWriter("experiments/selfplay")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	log.Info().Str("dir", writer.BaseDir()).Msg("writing experiment results")

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	gameID := 0
	for _, p := range pairings {
		for i := 0; i < numGames; i++ {
			gameID++
			seed := uint64(gameID)
			white := agent.New(agent.WithSeed(seed))
			black := agent.New(agent.WithSeed(seed + 1))
			collector := metrics.NewCollector()
			e := engine.NewLocal(white, black, p.white, p.black,
				engine.WithCollector(collector),
				engine.WithThinkDelay(10*time.Millisecond),
			)

			outcome, moves := e.Run()
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         gameID,
				GameMetric: collector.Complete(outcome),
			})
			for _, m := range moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: gameID, MoveMetric: m})
			}
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write move records")
	}
	log.Info().Int("games", len(gameRecords)).Int("moves", len(moveRecords)).Msg("experiment finished")
}
