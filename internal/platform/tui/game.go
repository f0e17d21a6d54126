package tui

import "github.com/vovakirdan/clappy-bee/internal/core"

// Game is what the terminal platform drives: a frame-stepped game that
// renders into a character screen.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Resize(cols, rows int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// ScoreRecorder stores finished games. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}
