package engine

import (
	"time"

	"gambit/agent"
	"gambit/experiments/metrics"
	"gambit/game"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// MaxPlies caps runaway games that stay clear of every draw rule.
const MaxPlies = 300

type Option func(e *Local)

// WithState starts the game from a prepared position instead of the
// standard initial one.
func WithState(state *game.GameState) Option {
	return func(e *Local) {
		if state != nil {
			e.state = state
		}
	}
}

func WithMaxPlies(n int) Option {
	return func(e *Local) {
		if n > 0 {
			e.maxPlies = n
		}
	}
}

// WithThinkDelay pauses before each engine move to simulate thinking time.
// Pacing belongs to the host loop, never to the search itself.
func WithThinkDelay(d time.Duration) Option {
	return func(e *Local) {
		if d > 0 {
			e.thinkDelay = d
		}
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Local) {
		if c != nil {
			e.collector = c
		}
	}
}

// Local plays one synchronous game between two agents on the caller's
// goroutine. Exactly one search is ever in flight against the shared
// position.
type Local struct {
	state      *game.GameState
	white      *agent.Agent
	black      *agent.Agent
	whiteLevel string
	blackLevel string
	maxPlies   int
	thinkDelay time.Duration
	collector  metrics.Collector
}

func NewLocal(white, black *agent.Agent, whiteLevel, blackLevel string, options ...Option) *Local {
	if white == nil || black == nil {
		panic("need two agents")
	}
	e := &Local{
		state:      game.NewGameState(),
		white:      white,
		black:      black,
		whiteLevel: whiteLevel,
		blackLevel: blackLevel,
		maxPlies:   MaxPlies,
		collector:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays the game to its end and returns the outcome with the collected
// per-move metrics.
func (e *Local) Run() (string, []metrics.MoveMetric) {
	e.collector.Start(e.whiteLevel, e.blackLevel)
	log.Info().Str("white", e.whiteLevel).Str("black", e.blackLevel).Msg("game started")

	for ply := 1; ply <= e.maxPlies; ply++ {
		if e.state.GameOver() {
			break
		}
		player, level, ag := "white", e.whiteLevel, e.white
		if e.state.Turn() == chess.Black {
			player, level, ag = "black", e.blackLevel, e.black
		}

		if e.thinkDelay > 0 {
			time.Sleep(e.thinkDelay)
		}

		move, result := ag.Decide(e.state, level)
		if move == nil {
			break
		}
		if !e.state.Apply(*move) {
			log.Error().Str("move", move.String()).Msg("agent produced a move the rules engine rejected")
			break
		}

		log.Info().
			Int("ply", ply).
			Str("player", player).
			Str("move", move.Notation).
			Int("score", result.Score).
			Int("depth", result.Depth).
			Int("nodes", result.Nodes).
			Dur("took", result.Elapsed).
			Msg("move played")

		e.collector.AddMove(metrics.MoveMetric{
			Ply:    ply,
			Player: player,
			SearchMetric: metrics.SearchMetric{
				Difficulty: level,
				Move:       move.Notation,
				Score:      result.Score,
				Depth:      result.Depth,
				Nodes:      result.Nodes,
				Duration:   result.Elapsed,
			},
		})
	}

	outcome := e.state.Outcome()
	log.Info().Str("outcome", outcome).Msg("game over")
	return outcome, e.collector.Moves()
}

// State exposes the game position, mainly for inspection after Run.
func (e *Local) State() *game.GameState {
	return e.state
}
