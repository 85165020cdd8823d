package i

import (
	"image"
	"time"

	"github.com/FilipeBHenriques/AlgoVizualizer/search"
	"github.com/google/uuid"
)

// Coordinate locates a cell in a maze. Z is always 0 on flat boards.
type Coordinate struct {
	X int
	Y int
	Z int
}

// BoardSnapshot is a render-ready copy of a maze. Cells is indexed
// [layer][row][column] and holds cell kind names; flat boards have
// exactly one layer.
type BoardSnapshot struct {
	Width      int
	Height     int
	LayerCount int
	Start      Coordinate
	Goal       Coordinate
	Cells      [][][]string
}

// EventKind discriminates the events of a run feed.
type EventKind uint8

const (
	// EventNode paints a single cell.
	EventNode EventKind = iota

	// EventEdge highlights a transition between two cells, currently
	// only emitted for layer-crossing path edges.
	EventEdge

	// EventReset tells subscribers to drop paint state from earlier runs.
	EventReset

	// EventDone closes a run that ran to completion.
	EventDone

	// EventCancelled closes a run that was interrupted.
	EventCancelled
)

// RunEvent is one frame of a search run feed. Fields beyond Kind and
// RunID are populated per kind: Node and Tag for EventNode, From/To
// and Tag for EventEdge, Found/Visited/PathLength for EventDone.
type RunEvent struct {
	Kind       EventKind
	RunID      uuid.UUID
	Strategy   search.Strategy
	Node       Coordinate
	From       Coordinate
	To         Coordinate
	Tag        search.Tag
	Found      bool
	Visited    int
	PathLength int
}

// MazeParams controls maze creation. Layers below 2 build a flat maze.
type MazeParams struct {
	Width       int
	Height      int
	Layers      int
	WallDensity float64
	Seed        int64
}

// SearchParams controls one search run.
type SearchParams struct {
	Strategy  search.Strategy
	StepDelay time.Duration
}

// RunStatus describes the run currently animating a session. Active is
// false on idle sessions, leaving the other fields zeroed.
type RunStatus struct {
	Active   bool
	RunID    uuid.UUID
	Strategy search.Strategy
}

// VisualizerService manages maze sessions and the search runs animated
// on top of them.
type VisualizerService interface {
	// CreateMaze generates a maze and registers a session around it.
	CreateMaze(params MazeParams) (uuid.UUID, BoardSnapshot, error)

	// Snapshot returns the session's board.
	Snapshot(sessionID uuid.UUID) (BoardSnapshot, error)

	// ActiveRun reports the session's run in flight, if any.
	ActiveRun(sessionID uuid.UUID) (RunStatus, error)

	// StartSearch launches a run on the session, superseding any run
	// still in flight, and returns the new run's ID.
	StartSearch(sessionID uuid.UUID, params SearchParams) (uuid.UUID, error)

	// CancelSearch stops the session's active run. Idle sessions are
	// left untouched.
	CancelSearch(sessionID uuid.UUID) error

	// RemoveMaze cancels any active run and drops the session.
	RemoveMaze(sessionID uuid.UUID) error

	// Subscribe attaches to the session's event feed. The returned
	// function detaches the subscriber and closes the channel.
	Subscribe(sessionID uuid.UUID) (<-chan RunEvent, func(), error)

	// RenderImage rasterizes the session's maze with the given cell
	// size in pixels.
	RenderImage(sessionID uuid.UUID, cellSize int) (image.Image, error)
}
