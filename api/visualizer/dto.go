// Package vizapi provides structures and utilities for managing maze
// sessions and streaming search run events.
package vizapi

import (
	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
	"github.com/google/uuid"
)

// CreateMazeRequest represents a request to generate a new maze.
type CreateMazeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
	// Layers below 2 build a flat maze.
	Layers int `json:"layers"`
	// WallDensity defaults to 1 when omitted, keeping the maze perfect.
	WallDensity *float64 `json:"wall_density"`
	// Seed at or below 0 draws from the clock.
	Seed int64 `json:"seed"`
}

// SearchRequest represents a request to run a strategy on a maze.
type SearchRequest struct {
	Strategy    string `json:"strategy" binding:"required"`
	StepDelayMs int64  `json:"step_delay_ms"`
}

// CoordinateResponse locates a cell in a maze. Z is always 0 on flat
// mazes.
type CoordinateResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// MazeResponse represents a maze session. Cells is indexed
// [layer][row][column] and holds cell kind names. ActiveRun is omitted
// while the session is idle.
type MazeResponse struct {
	ID        uuid.UUID          `json:"id"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Layers    int                `json:"layers"`
	Start     CoordinateResponse `json:"start"`
	Goal      CoordinateResponse `json:"goal"`
	Cells     [][][]string       `json:"cells"`
	ActiveRun *RunStatusResponse `json:"active_run,omitempty"`
}

// RunStatusResponse identifies the run currently animating a maze.
type RunStatusResponse struct {
	RunID    uuid.UUID `json:"run_id"`
	Strategy string    `json:"strategy"`
}

// SearchStartedResponse acknowledges a launched run.
type SearchStartedResponse struct {
	RunID    uuid.UUID `json:"run_id"`
	Strategy string    `json:"strategy"`
}

// RunEventResponse represents one frame of a run feed. Node carries
// paint frames, From/To carry edge frames, and Found, Visited and
// PathLength are populated on completion frames.
type RunEventResponse struct {
	Type       string              `json:"type"`
	RunID      uuid.UUID           `json:"run_id"`
	Strategy   string              `json:"strategy"`
	Node       *CoordinateResponse `json:"node,omitempty"`
	From       *CoordinateResponse `json:"from,omitempty"`
	To         *CoordinateResponse `json:"to,omitempty"`
	Tag        string              `json:"tag,omitempty"`
	Found      bool                `json:"found"`
	Visited    int                 `json:"visited"`
	PathLength int                 `json:"path_length"`
}

// ScoreEntryResponse represents one ranked run on a strategy board.
type ScoreEntryResponse struct {
	RunID   string  `json:"run_id"`
	Visited float64 `json:"visited"`
}

// ScoreboardResponse represents the best runs of one strategy, fewest
// visited cells first.
type ScoreboardResponse struct {
	Strategy string               `json:"strategy"`
	Total    int64                `json:"total"`
	Entries  []ScoreEntryResponse `json:"entries"`
}

func newCoordinateResponse(c i.Coordinate) CoordinateResponse {
	return CoordinateResponse{X: c.X, Y: c.Y, Z: c.Z}
}

func newMazeResponse(id uuid.UUID, snapshot i.BoardSnapshot, status i.RunStatus) *MazeResponse {
	response := &MazeResponse{
		ID:     id,
		Width:  snapshot.Width,
		Height: snapshot.Height,
		Layers: snapshot.LayerCount,
		Start:  newCoordinateResponse(snapshot.Start),
		Goal:   newCoordinateResponse(snapshot.Goal),
		Cells:  snapshot.Cells,
	}
	if status.Active {
		response.ActiveRun = &RunStatusResponse{
			RunID:    status.RunID,
			Strategy: status.Strategy.String(),
		}
	}
	return response
}

func newRunEventResponse(event i.RunEvent) RunEventResponse {
	response := RunEventResponse{
		Type:     eventTypeName(event.Kind),
		RunID:    event.RunID,
		Strategy: event.Strategy.String(),
	}

	switch event.Kind {
	case i.EventNode:
		node := newCoordinateResponse(event.Node)
		response.Node = &node
		response.Tag = event.Tag.String()
	case i.EventEdge:
		from := newCoordinateResponse(event.From)
		to := newCoordinateResponse(event.To)
		response.From = &from
		response.To = &to
		response.Tag = event.Tag.String()
	case i.EventDone:
		response.Found = event.Found
		response.Visited = event.Visited
		response.PathLength = event.PathLength
	}

	return response
}

func eventTypeName(kind i.EventKind) string {
	switch kind {
	case i.EventNode:
		return "node"
	case i.EventEdge:
		return "edge"
	case i.EventReset:
		return "reset"
	case i.EventDone:
		return "done"
	case i.EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
