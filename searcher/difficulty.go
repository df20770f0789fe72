package searcher

import (
	"math"

	"gambit/game"

	"golang.org/x/exp/rand"
)

// Profile is an immutable difficulty tier: how deep and how long the search
// may run, and how much controlled randomness flavors the final pick.
type Profile struct {
	Depth      int     // ply ceiling for iterative deepening
	NodeLimit  int     // nodes per depth iteration, 0 for unlimited
	Randomness float64 // fraction in [0,1] of top candidates to pick among
	TimeMs     int     // per-call time budget in milliseconds, 0 for unlimited
}

// DefaultDifficulty is the tier used when a difficulty name is unrecognized.
const DefaultDifficulty = "medium"

var profiles = map[string]Profile{
	"easy":   {Depth: 1, NodeLimit: 2000, Randomness: 0.5, TimeMs: 0},
	"medium": {Depth: 2, NodeLimit: 50000, Randomness: 0.1, TimeMs: 3000},
	"hard":   {Depth: 3, NodeLimit: 500000, Randomness: 0, TimeMs: 8000},
}

// LookupProfile returns the named difficulty tier, falling back to the
// default tier for unknown names.
func LookupProfile(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return profiles[DefaultDifficulty]
}

// Profiles returns a copy of the named presets.
func Profiles() map[string]Profile {
	out := make(map[string]Profile, len(profiles))
	for name, p := range profiles {
		out[name] = p
	}
	return out
}

// Pick selects the final move among the ranked root candidates: uniformly at
// random within the top K = max(1, round(n*randomness)), deterministically
// the best when randomness is zero, only one candidate exists, or no random
// source is supplied. A nil result means no candidates were ranked.
func (p Profile) Pick(ranked []ScoredMove, rng *rand.Rand) *game.Move {
	if len(ranked) == 0 {
		return nil
	}
	if p.Randomness <= 0 || len(ranked) == 1 || rng == nil {
		mv := ranked[0].Move
		return &mv
	}
	k := int(math.Round(float64(len(ranked)) * p.Randomness))
	if k < 1 {
		k = 1
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	mv := ranked[rng.Intn(k)].Move
	return &mv
}
