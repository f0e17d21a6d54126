package bee

import (
	"github.com/vovakirdan/clappy-bee/internal/config"
	"github.com/vovakirdan/clappy-bee/internal/core"
)

// GameID identifies the game in score storage.
const GameID = "bee"

// Game adapts a Simulation to the terminal platform: it maps input actions
// to simulation operations, terminal cells to world units, and applies
// difficulty scaling to the pipe speed.
type Game struct {
	cfg        config.BeeConfig
	store      ScoreStore
	listeners  []Listener
	difficulty *config.DifficultyManager
	sim        *Simulation
	runtime    core.RuntimeConfig
	paused     bool
}

// New creates a game. The store and listeners are handed to the simulation
// built on the first Reset; store may be nil.
func New(cfg config.BeeConfig, store ScoreStore, listeners ...Listener) *Game {
	return &Game{
		cfg:        cfg,
		store:      store,
		listeners:  listeners,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Clappy Bee"
}

// Reset initializes the game on the first call, leaving it idle until the
// player starts. Later calls restart the run.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.paused = false

	if g.sim == nil {
		opts := []Option{
			WithParams(ParamsFromConfig(g.cfg)),
			WithRand(NewRandomSource(rt.Seed)),
		}
		if g.store != nil {
			opts = append(opts, WithScoreStore(g.store))
		}
		for _, l := range g.listeners {
			opts = append(opts, WithListener(l))
		}
		g.sim = NewSimulation(opts...)
		g.Resize(rt.ScreenW, rt.ScreenH)
		return
	}

	g.Resize(rt.ScreenW, rt.ScreenH)
	g.sim.Restart()
}

// Resize forwards a new terminal size to the simulation in world units.
// The bottom row is reserved for the ground.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
	if g.sim == nil {
		return
	}
	w, h := g.worldSize(cols, rows)
	g.sim.Resize(w, h)
}

func (g *Game) worldSize(cols, rows int) (float64, float64) {
	playRows := core.Max(rows-1, 1)
	return float64(core.Max(cols, 1)) * g.cfg.Viewport.CellWidth,
		float64(playRows) * g.cfg.Viewport.CellHeight
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{}
	}

	switch g.sim.Status() {
	case StatusIdle:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.sim.Start()
		}

	case StatusOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.paused = false
			g.sim.Restart()
		}

	case StatusStarted:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if g.paused {
			break
		}
		if in.Has(core.ActionJump) {
			g.sim.Jump()
		}
		g.sim.SetPipeVelocity(g.difficulty.Speed(g.cfg.Physics.PipeVelocity, g.sim.Score(), g.sim.Ticks()))
		g.sim.Tick()
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sim.Score(),
		Best:     g.sim.Best(),
		Started:  g.sim.Status() == StatusStarted,
		GameOver: g.sim.Status() == StatusOver,
		Paused:   g.paused,
	}
}

// Simulation exposes the underlying engine, nil before the first Reset.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Close releases the simulation's store subscription.
func (g *Game) Close() {
	if g.sim != nil {
		g.sim.Close()
	}
}
