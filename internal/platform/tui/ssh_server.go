package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/clappy-bee/internal/config"
	"github.com/vovakirdan/clappy-bee/internal/core"
	"github.com/vovakirdan/clappy-bee/internal/games/bee"
	"github.com/vovakirdan/clappy-bee/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.clappybee/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    DefaultTickRate,
	}
}

// SSHServer serves Clappy Bee over SSH. All sessions share one score
// store, so a new best set in one session shows up in the others.
type SSHServer struct {
	config  SSHServerConfig
	gameCfg config.BeeConfig
	server  *ssh.Server
	store   *storage.Store
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// sessions keep their scores in memory only.
func NewSSHServer(cfg SSHServerConfig, gameCfg config.BeeConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "clappybee-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		gameCfg: gameCfg,
		store:   store,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir := config.UserDir()
		if dir == "" {
			return nil, errors.New("tui: cannot locate home directory for host key")
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("No PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "Clappy Bee needs an interactive terminal (ssh -t).")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.newSessionDeps(logger), cfg)

	// A session can also end without q or b, for instance on a dropped
	// connection. The game must still let go of the shared store.
	go func() {
		<-sshSession.Context().Done()
		model.Close()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// newSessionDeps wires one session's collaborators over the shared store.
func (s *SSHServer) newSessionDeps(logger *log.Logger) SessionDeps {
	deps := SessionDeps{
		GameConfig: s.gameCfg,
		Logger:     logger,
	}
	if s.store != nil {
		deps.Best = storage.NewBestScore(s.store, logger)
		deps.Recorder = s.store
		deps.Scores = s.store
	}
	return deps
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("Session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("Session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt or
// until ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("Starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("tui: SSH server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps are the collaborators of one player session.
type SessionDeps struct {
	GameConfig config.BeeConfig
	Best       *storage.BestScore // nil keeps the best in memory
	Recorder   ScoreRecorder      // nil skips score history
	Scores     ScoreSource        // nil shows an empty scoreboard
	Logger     *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// activeGame is the game a session is running, shared by every copy of
// the session model and by the goroutine watching the connection.
type activeGame struct {
	mu     sync.Mutex
	game   *bee.Game
	closed bool
}

// set replaces the running game. After close the game is released at once.
func (a *activeGame) set(g *bee.Game) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game != nil {
		a.game.Close()
	}
	a.game = g
	if a.closed && g != nil {
		g.Close()
	}
}

// release closes the running game, if any.
func (a *activeGame) release() {
	a.set(nil)
}

// close releases the game and every game set afterwards.
func (a *activeGame) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.game != nil {
		a.game.Close()
		a.game = nil
	}
}

// SessionModel manages the session flow: menu -> game or scores -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	active     *activeGame
	game       *bee.Game
	gameModel  Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	m := SessionModel{
		deps:   deps,
		config: cfg,
		active: &activeGame{},
	}
	m.menu = NewMenuModel(cfg, m.best())
	return m
}

// Close releases the session's game. It is safe to call from any
// goroutine and more than once.
func (m SessionModel) Close() {
	m.active.close()
}

func (m SessionModel) best() int {
	if m.deps.Best == nil {
		return 0
	}
	return m.deps.Best.Best()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoicePlay:
		return m.startGame()

	case MenuChoiceScores:
		m.scoreboard = NewScoreboardModel(m.deps.Scores, bee.GameID, "Clappy Bee", m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

// startGame builds a fresh game for this session.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	var store bee.ScoreStore
	if m.deps.Best != nil {
		store = m.deps.Best
	}
	m.game = bee.New(m.deps.GameConfig, store)

	opts := []ModelOption{WithLogger(m.deps.Logger), embeddedInSession()}
	if m.deps.Recorder != nil {
		opts = append(opts, WithRecorder(m.deps.Recorder))
	}
	m.config.Seed = time.Now().UnixNano()
	m.gameModel = NewModel(m.game, m.config, opts...)
	m.screen = screenGame

	// Init builds the simulation and its store subscription.
	cmd := m.gameModel.Init()
	m.active.set(m.game)
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = gm
	}

	if m.gameModel.IsQuitting() {
		m.active.close()
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.active.release()
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		// Drop the scoreboard's own tea.Quit.
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config, m.best())
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
