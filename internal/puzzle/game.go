package puzzle

import (
	"math"

	"github.com/abhisek/dongwha/internal/corpus"
)

// Next returns the level one step harder. Past hard the age goes up and
// the difficulty restarts at easy; the hardest level is kept.
func (l Level) Next() Level {
	if idx := l.Difficulty.index(); idx >= 0 && idx < len(Difficulties)-1 {
		return Level{Age: l.Age, Difficulty: Difficulties[idx+1]}
	}
	if l.Age >= corpus.MaxAge {
		return Level{Age: corpus.MaxAge, Difficulty: Hard}
	}
	return Level{Age: l.Age + 1, Difficulty: Easy}
}

// Lower returns the level one step easier, stopping at the easiest level.
func (l Level) Lower() Level {
	if idx := l.Difficulty.index(); idx > 0 {
		return Level{Age: l.Age, Difficulty: Difficulties[idx-1]}
	}
	if l.Age <= corpus.MinAge {
		return Level{Age: corpus.MinAge, Difficulty: Easy}
	}
	return Level{Age: l.Age - 1, Difficulty: Hard}
}

// GameConfig controls a round-based puzzle game.
type GameConfig struct {
	Rounds int `yaml:"rounds"`
	// Tries is the number of answers allowed per puzzle before the game
	// moves on.
	Tries  int   `yaml:"tries"`
	Points int   `yaml:"points"`
	Start  Level `yaml:"start"`
}

// DefaultGameConfig plays ten puzzles, two tries each, from 4세 쉬움.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Rounds: 10,
		Tries:  2,
		Points: 10,
		Start:  Level{Age: corpus.MinAge, Difficulty: Easy},
	}
}

// Game tracks the level, tries and score of a puzzle game. After each
// puzzle the level steps up on a pass and down on a fail.
type Game struct {
	config  GameConfig
	level   Level
	round   int
	tries   int
	correct int
	score   int
	history []Attempt
}

// NewGame starts a game at cfg.Start.
func NewGame(cfg GameConfig) *Game {
	if cfg.Rounds <= 0 {
		cfg.Rounds = 1
	}
	if cfg.Tries <= 0 {
		cfg.Tries = 1
	}
	start := cfg.Start
	if start.Difficulty.index() < 0 {
		start.Difficulty = Easy
	}
	start.Age = max(corpus.MinAge, min(corpus.MaxAge, start.Age))
	return &Game{config: cfg, level: start}
}

// Level is the level of the current puzzle.
func (g *Game) Level() Level { return g.level }

// Round is the 1-based number of the current puzzle.
func (g *Game) Round() int { return min(g.round+1, g.config.Rounds) }

// Rounds is the total number of puzzles.
func (g *Game) Rounds() int { return g.config.Rounds }

// TriesLeft is the number of answers still allowed on the current puzzle.
func (g *Game) TriesLeft() int { return g.config.Tries - g.tries }

// Finished reports whether every round has been played.
func (g *Game) Finished() bool { return g.round >= g.config.Rounds }

// History lists the finished puzzles in order.
func (g *Game) History() []Attempt { return g.history }

// Answer records one checked answer and reports whether the puzzle is
// over. A pass always ends it; a fail ends it once the tries run out.
func (g *Game) Answer(passed bool) (done bool) {
	if g.Finished() {
		return true
	}
	g.tries++
	if passed {
		g.correct++
		g.score += g.config.Points
	}
	if !passed && g.tries < g.config.Tries {
		return false
	}
	g.advance(passed)
	return true
}

// Skip gives up on the current puzzle.
func (g *Game) Skip() {
	if !g.Finished() {
		g.advance(false)
	}
}

func (g *Game) advance(passed bool) {
	g.history = append(g.history, Attempt{Age: g.level.Age, Difficulty: g.level.Difficulty, Passed: passed})
	g.round++
	g.tries = 0
	if g.Finished() {
		return
	}
	if passed {
		g.level = g.level.Next()
	} else {
		g.level = g.level.Lower()
	}
}

// GameSummary is the end-of-game report.
type GameSummary struct {
	Rounds     int     `json:"total_questions"`
	Correct    int     `json:"correct_count"`
	Accuracy   float64 `json:"accuracy"`
	Score      int     `json:"score"`
	FinalLevel Level   `json:"final_level"`
	Message    string  `json:"message"`
}

// Summary reports the game so far.
func (g *Game) Summary() GameSummary {
	s := GameSummary{
		Rounds:     g.config.Rounds,
		Correct:    g.correct,
		Score:      g.score,
		FinalLevel: FinalLevel(g.history),
	}
	s.Accuracy = math.Round(float64(g.correct)/float64(g.config.Rounds)*1000) / 10
	s.Message = Encouragement(g.correct, g.config.Rounds)
	return s
}

// Encouragement picks the closing message for correct out of total.
func Encouragement(correct, total int) string {
	switch {
	case total > 0 && correct >= total:
		return "완벽해요! 모든 문제를 맞혔어요!"
	case float64(correct) >= float64(total)*0.8:
		return "훌륭해요! 정말 잘했어요!"
	case float64(correct) >= float64(total)*0.6:
		return "잘했어요! 조금만 더 노력하면 완벽해요!"
	}
	return "괜찮아요! 다시 도전해봐요!"
}
