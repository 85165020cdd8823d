package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/FilipeBHenriques/AlgoVizualizer/maze"
	"github.com/FilipeBHenriques/AlgoVizualizer/search"
	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
	"github.com/google/uuid"
)

const (
	maxMazeWidth  = 99
	maxMazeHeight = 99
	maxMazeLayers = 8
	maxSessions   = 64
	maxStepDelay  = 2 * time.Second

	scoreRecordTimeout = 2 * time.Second
)

var (
	ErrSessionNotFound = errors.New("maze session not found")
	ErrTooManySessions = errors.New("maze session limit reached")
	ErrMazeTooLarge    = errors.New("maze dimensions exceed the limit")
	ErrTooManyLayers   = errors.New("maze layer count exceeds the limit")
	ErrInvalidDensity  = errors.New("wall density must be within [0, 1]")
	ErrDelayTooLong    = errors.New("step delay exceeds the limit")
)

// searchRun is one strategy animation in flight. done closes only
// after the run goroutine has published its final event.
type searchRun struct {
	id       uuid.UUID
	strategy search.Strategy
	cancel   context.CancelFunc
	done     chan struct{}
}

// mazeSession owns one generated maze, its event hub, and at most one
// active run.
type mazeSession struct {
	id    uuid.UUID
	board board
	hub   *eventHub

	// startMu serializes run replacement so a new run never begins
	// before its predecessor has fully stopped.
	startMu sync.Mutex

	mu  sync.RWMutex
	run *searchRun
}

// MazeSessionManager implements i.VisualizerService on top of the maze
// generators and the search engine.
type MazeSessionManager struct {
	sessions       map[uuid.UUID]*mazeSession
	flatFactory    func(maze.Config) (*maze.Grid, error)
	layeredFactory func(maze.LayeredConfig) (*maze.LayeredGrid, error)
	scoreboard     i.Scoreboard
	logger         i.Logger
	sync.RWMutex
}

type Config struct {
	FlatFactory    func(maze.Config) (*maze.Grid, error)
	LayeredFactory func(maze.LayeredConfig) (*maze.LayeredGrid, error)
	Scoreboard     i.Scoreboard
	Logger         i.Logger
}

func NewMazeSessionManager(c *Config) (*MazeSessionManager, error) {
	if c.FlatFactory == nil || c.LayeredFactory == nil {
		return nil, errors.New("session manager requires both maze factories")
	}
	if c.Scoreboard == nil {
		return nil, errors.New("session manager requires a scoreboard")
	}
	if c.Logger == nil {
		return nil, errors.New("session manager requires a logger")
	}

	return &MazeSessionManager{
		sessions:       make(map[uuid.UUID]*mazeSession),
		flatFactory:    c.FlatFactory,
		layeredFactory: c.LayeredFactory,
		scoreboard:     c.Scoreboard,
		logger:         c.Logger,
	}, nil
}

// CreateMaze generates a maze per params and registers a session for it.
func (m *MazeSessionManager) CreateMaze(params i.MazeParams) (uuid.UUID, i.BoardSnapshot, error) {
	if err := validateMazeParams(params); err != nil {
		return uuid.Nil, i.BoardSnapshot{}, err
	}

	b, err := m.buildBoard(params)
	if err != nil {
		m.logger.Error(fmt.Sprintf("generating maze: %s", err))
		return uuid.Nil, i.BoardSnapshot{}, err
	}

	m.Lock()
	if len(m.sessions) >= maxSessions {
		m.Unlock()
		return uuid.Nil, i.BoardSnapshot{}, ErrTooManySessions
	}
	s := &mazeSession{
		id:    m.newSessionID(),
		board: b,
		hub:   newEventHub(),
	}
	m.sessions[s.id] = s
	m.Unlock()

	m.logger.Info(fmt.Sprintf("created maze session: %s", s.id))
	return s.id, b.snapshot(), nil
}

// Snapshot returns the session's board.
func (m *MazeSessionManager) Snapshot(sessionID uuid.UUID) (i.BoardSnapshot, error) {
	s, err := m.sessionByID(sessionID)
	if err != nil {
		return i.BoardSnapshot{}, err
	}
	return s.board.snapshot(), nil
}

// ActiveRun reports the session's run in flight, if any.
func (m *MazeSessionManager) ActiveRun(sessionID uuid.UUID) (i.RunStatus, error) {
	s, err := m.sessionByID(sessionID)
	if err != nil {
		return i.RunStatus{}, err
	}

	s.mu.RLock()
	run := s.run
	s.mu.RUnlock()
	if run == nil {
		return i.RunStatus{}, nil
	}
	return i.RunStatus{Active: true, RunID: run.id, Strategy: run.strategy}, nil
}

// StartSearch cancels any run still in flight on the session, waits for
// it to stop, and launches a fresh one.
func (m *MazeSessionManager) StartSearch(sessionID uuid.UUID, params i.SearchParams) (uuid.UUID, error) {
	if params.StepDelay > maxStepDelay {
		return uuid.Nil, ErrDelayTooLong
	}
	s, err := m.sessionByID(sessionID)
	if err != nil {
		return uuid.Nil, err
	}

	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.mu.RLock()
	old := s.run
	s.mu.RUnlock()
	if old != nil {
		old.cancel()
		<-old.done
	}

	runCtx, cancel := context.WithCancel(context.Background())
	run := &searchRun{
		id:       uuid.New(),
		strategy: params.Strategy,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.mu.Lock()
	s.run = run
	s.mu.Unlock()

	// Subscribers drop paint state from the superseded run before the
	// first event of this one arrives.
	s.hub.publish(i.RunEvent{Kind: i.EventReset, RunID: run.id, Strategy: run.strategy})
	go m.animate(runCtx, s, run, params)

	m.logger.Info(fmt.Sprintf("started %s run %s on session %s", run.strategy, run.id, s.id))
	return run.id, nil
}

// CancelSearch stops the session's active run and waits for it to
// finish. Idle sessions are a no-op.
func (m *MazeSessionManager) CancelSearch(sessionID uuid.UUID) error {
	s, err := m.sessionByID(sessionID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	run := s.run
	s.mu.RUnlock()
	if run == nil {
		return nil
	}

	run.cancel()
	<-run.done
	return nil
}

// RemoveMaze cancels any active run, closes the event hub, and drops
// the session.
func (m *MazeSessionManager) RemoveMaze(sessionID uuid.UUID) error {
	m.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.RLock()
	run := s.run
	s.mu.RUnlock()
	if run != nil {
		run.cancel()
		<-run.done
	}

	s.hub.close()
	m.logger.Info(fmt.Sprintf("removed maze session: %s", sessionID))
	return nil
}

// Subscribe attaches to the session's event feed.
func (m *MazeSessionManager) Subscribe(sessionID uuid.UUID) (<-chan i.RunEvent, func(), error) {
	s, err := m.sessionByID(sessionID)
	if err != nil {
		return nil, nil, err
	}
	events, unsub := s.hub.subscribe()
	return events, unsub, nil
}

// RenderImage rasterizes the session's maze.
func (m *MazeSessionManager) RenderImage(sessionID uuid.UUID, cellSize int) (image.Image, error) {
	s, err := m.sessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	return s.board.image(cellSize)
}

// StopAll cancels every active run. Sessions stay registered.
func (m *MazeSessionManager) StopAll() {
	m.RLock()
	sessions := make([]*mazeSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.RUnlock()

	for _, s := range sessions {
		s.mu.RLock()
		run := s.run
		s.mu.RUnlock()
		if run != nil {
			run.cancel()
			<-run.done
		}
	}
}

// animate drives one run to completion and publishes its event feed.
func (m *MazeSessionManager) animate(ctx context.Context, s *mazeSession, run *searchRun, params i.SearchParams) {
	defer func() {
		run.cancel()
		s.mu.Lock()
		if s.run == run {
			s.run = nil
		}
		s.mu.Unlock()
		close(run.done)
	}()

	onNode := func(node i.Coordinate, tag search.Tag) {
		s.hub.publish(i.RunEvent{Kind: i.EventNode, RunID: run.id, Strategy: run.strategy, Node: node, Tag: tag})
	}
	onEdge := func(from, to i.Coordinate, tag search.Tag) {
		s.hub.publish(i.RunEvent{Kind: i.EventEdge, RunID: run.id, Strategy: run.strategy, From: from, To: to, Tag: tag})
	}

	summary, err := s.board.run(ctx, params, onNode, onEdge)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			m.logger.Error(fmt.Sprintf("search run %s failed: %s", run.id, err))
		}
		s.hub.publish(i.RunEvent{Kind: i.EventCancelled, RunID: run.id, Strategy: run.strategy})
		return
	}

	s.hub.publish(i.RunEvent{
		Kind:       i.EventDone,
		RunID:      run.id,
		Strategy:   run.strategy,
		Found:      summary.found,
		Visited:    summary.visited,
		PathLength: summary.pathLength,
	})
	m.logger.Info(fmt.Sprintf("search run %s finished: found=%t visited=%d", run.id, summary.found, summary.visited))

	if summary.found {
		recordCtx, cancelRecord := context.WithTimeout(context.Background(), scoreRecordTimeout)
		defer cancelRecord()
		if err := m.scoreboard.Record(recordCtx, run.strategy.String(), float64(summary.visited), run.id.String()); err != nil {
			m.logger.Error(fmt.Sprintf("recording score for run %s: %s", run.id, err))
		}
	}
}

// sessionByID looks a session up under the read lock.
func (m *MazeSessionManager) sessionByID(sessionID uuid.UUID) (*mazeSession, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// newSessionID must be called with the manager lock held.
func (m *MazeSessionManager) newSessionID() uuid.UUID {
	sessionID := uuid.New()
	for {
		if _, ok := m.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}
	return sessionID
}

func (m *MazeSessionManager) buildBoard(params i.MazeParams) (board, error) {
	if params.Layers >= 2 {
		lg, err := m.layeredFactory(maze.LayeredConfig{
			Width:       params.Width,
			Height:      params.Height,
			Layers:      params.Layers,
			WallDensity: params.WallDensity,
			Seed:        params.Seed,
		})
		if err != nil {
			return nil, err
		}
		return &layeredBoard{grid: lg}, nil
	}

	g, err := m.flatFactory(maze.Config{
		Width:       params.Width,
		Height:      params.Height,
		WallDensity: params.WallDensity,
		Seed:        params.Seed,
	})
	if err != nil {
		return nil, err
	}
	return &flatBoard{grid: g}, nil
}

func validateMazeParams(p i.MazeParams) error {
	if p.Width > maxMazeWidth || p.Height > maxMazeHeight {
		return ErrMazeTooLarge
	}
	if p.Layers > maxMazeLayers {
		return ErrTooManyLayers
	}
	if p.WallDensity < 0 || p.WallDensity > 1 {
		return ErrInvalidDensity
	}
	return nil
}
