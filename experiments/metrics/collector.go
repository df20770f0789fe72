package metrics

import "time"

// SearchMetric summarizes one root search.
type SearchMetric struct {
	Difficulty string
	Move       string
	Score      int
	Depth      int
	Nodes      int
	Duration   time.Duration
}

// MoveMetric is a SearchMetric tagged with its place in a game.
type MoveMetric struct {
	Ply    int
	Player string // "white" or "black"
	SearchMetric
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	White      string // difficulty tier
	Black      string
	Outcome    string
	TotalPlies int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

type Collector interface {
	Start(white, black string)
	AddMove(m MoveMetric)
	Moves() []MoveMetric
	Complete(outcome string) GameMetric
}

type collector struct {
	white, black string
	startTime    time.Time
	moves        []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(white, black string) {
	c.startTime = time.Now()
	c.white = white
	c.black = black
	c.moves = nil
}

func (c *collector) AddMove(m MoveMetric) {
	c.moves = append(c.moves, m)
}

func (c *collector) Moves() []MoveMetric {
	out := make([]MoveMetric, len(c.moves))
	copy(out, c.moves)
	return out
}

func (c *collector) Complete(outcome string) GameMetric {
	end := time.Now()
	return GameMetric{
		White:      c.white,
		Black:      c.black,
		Outcome:    outcome,
		TotalPlies: len(c.moves),
		StartTime:  c.startTime,
		EndTime:    end,
		Duration:   end.Sub(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(white, black string) {}

func (dummyCollector) AddMove(m MoveMetric) {}

func (dummyCollector) Moves() []MoveMetric { return nil }

func (dummyCollector) Complete(outcome string) GameMetric { return GameMetric{} }
