package agent

import (
	"time"

	"gambit/game"
	"gambit/searcher"

	"golang.org/x/exp/rand"
)

type Option func(a *Agent)

// WithSeed fixes the pseudo-random source so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a pseudo-random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithProfiles replaces the built-in difficulty presets.
func WithProfiles(profiles map[string]searcher.Profile) Option {
	return func(a *Agent) {
		if len(profiles) > 0 {
			a.profiles = profiles
		}
	}
}

// Agent is the public surface of the engine: given a position and a
// difficulty name it returns a move, or nil when the game is already decided.
// Each call owns its own search budget, so an agent may be reused across
// calls and difficulty names.
type Agent struct {
	driver   *searcher.Driver
	profiles map[string]searcher.Profile
	rng      *rand.Rand
}

func New(options ...Option) *Agent {
	a := &Agent{
		driver: searcher.NewDriver(),
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// FindBestMove selects a move for the side to move under the named
// difficulty tier. Nil means checkmate, draw, or no legal move.
func (a *Agent) FindBestMove(pos game.Position, difficulty string) *game.Move {
	move, _ := a.Decide(pos, difficulty)
	return move
}

// Decide is FindBestMove plus the full search result, for hosts that record
// search metrics.
func (a *Agent) Decide(pos game.Position, difficulty string) (*game.Move, searcher.Result) {
	profile := a.profile(difficulty)
	result := a.driver.Search(pos, profile)
	if result.Move == nil {
		return nil, result
	}
	if pick := profile.Pick(result.Ranked, a.rng); pick != nil {
		return pick, result
	}
	return result.Move, result
}

func (a *Agent) profile(name string) searcher.Profile {
	if a.profiles != nil {
		if p, ok := a.profiles[name]; ok {
			return p
		}
	}
	return searcher.LookupProfile(name)
}
