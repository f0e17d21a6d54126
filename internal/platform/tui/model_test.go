package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clappy-bee/internal/config"
	"github.com/vovakirdan/clappy-bee/internal/core"
)

// stubGame records what the platform asks of it.
type stubGame struct {
	resets  int
	resizes [][2]int
	inputs  []core.InputFrame
	state   core.GameState
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Resize(cols, rows int)    { g.resizes = append(g.resizes, [2]int{cols, rows}) }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(0, 0, "stub", core.ColorDefault)
}
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			frame.Set(a)
		}
	}
	g.inputs = append(g.inputs, frame)
	return core.StepResult{State: g.state}
}

// memRecorder is an in-memory ScoreRecorder.
type memRecorder struct {
	saved []int
	err   error
}

func (r *memRecorder) SaveScore(_ string, score int) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.saved = append(r.saved, score)
	return int64(len(r.saved)), nil
}

func newTestModel(g Game, opts ...ModelOption) Model {
	opts = append([]ModelOption{WithLogger(log.New(io.Discard))}, opts...)
	return NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, opts...)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelDefaults(t *testing.T) {
	m := newTestModel(&stubGame{})
	if m.config.TickRate != DefaultTickRate {
		t.Errorf("TickRate = %d, expected default %d", m.config.TickRate, DefaultTickRate)
	}
	if m.config.Seed == 0 {
		t.Error("Seed should be filled in")
	}
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should start the tick loop")
	}
	if g.resets != 1 {
		t.Errorf("Init should reset the game once, got %d", g.resets)
	}
}

func TestModelKeysReachNextStep(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, runeKey('p'))
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.inputs) != 1 {
		t.Fatalf("expected one step, got %d", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionJump) || !g.inputs[0].Has(core.ActionPause) {
		t.Errorf("step input = %v, expected jump and pause", g.inputs[0].Actions)
	}

	update(t, m, TickMsg{})
	if len(g.inputs[1].Actions) != 0 {
		t.Errorf("input should be cleared after a step, got %v", g.inputs[1].Actions)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&stubGame{})
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 1 {
		t.Error("resize should not reset the game")
	}
	if len(g.resizes) != 1 || g.resizes[0] != [2]int{100, 30} {
		t.Errorf("resizes = %v, expected [[100 30]]", g.resizes)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelRecordsScoreOnce(t *testing.T) {
	g := &stubGame{}
	rec := &memRecorder{}
	m := newTestModel(g, WithRecorder(rec))

	g.state = core.GameState{Started: true, Score: 3}
	m, _ = update(t, m, TickMsg{})

	g.state = core.GameState{GameOver: true, Score: 3}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if len(rec.saved) != 1 || rec.saved[0] != 3 {
		t.Fatalf("saved = %v, expected [3]", rec.saved)
	}

	// A new run ending with a zero score is not recorded.
	g.state = core.GameState{Started: true}
	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{GameOver: true}
	m, _ = update(t, m, TickMsg{})

	// The next scoring run is recorded again.
	g.state = core.GameState{Started: true, Score: 5}
	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{GameOver: true, Score: 5}
	update(t, m, TickMsg{})

	if len(rec.saved) != 2 || rec.saved[1] != 5 {
		t.Errorf("saved = %v, expected [3 5]", rec.saved)
	}
}

func TestModelRecorderFailureIsNotFatal(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true, Score: 2}}
	m := newTestModel(g, WithRecorder(&memRecorder{err: errors.New("read-only")}))

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil || m.IsQuitting() {
		t.Error("a failing recorder should not stop the game loop")
	}
}

func TestModelBackOnlyWhenEmbedded(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}

	standalone := newTestModel(g)
	standalone, _ = update(t, standalone, TickMsg{})
	standalone, _ = update(t, standalone, runeKey('b'))
	if standalone.BackToMenu() {
		t.Error("standalone model has no menu to go back to")
	}

	embedded := newTestModel(g, embeddedInSession())
	embedded, _ = update(t, embedded, TickMsg{})
	embedded, _ = update(t, embedded, runeKey('b'))
	if !embedded.BackToMenu() {
		t.Error("b after game over should go back to the menu")
	}
}

func TestModelBackIgnoredMidRun(t *testing.T) {
	g := &stubGame{state: core.GameState{Started: true}}
	m := newTestModel(g, embeddedInSession())
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("b during a run should be ignored")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&stubGame{})
	if !strings.Contains(m.View(), "stub") {
		t.Error("View should render the game")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorDefault)
	s.SetColored(3, 1, 'x', core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[1], "x") {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestModelScreenshotTrimsRows(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m := newTestModel(&stubGame{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(config.UserDir(), "screenshots", "stub_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one screenshot, got %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("screenshot has %d lines, expected 10", len(lines))
	}
	if lines[0] != "stub" || lines[1] != "" {
		t.Errorf("rows should lose trailing blanks, got %q and %q", lines[0], lines[1])
	}
}
