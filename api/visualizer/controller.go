package vizapi

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/FilipeBHenriques/AlgoVizualizer/maze"
	"github.com/FilipeBHenriques/AlgoVizualizer/search"
	"github.com/FilipeBHenriques/AlgoVizualizer/service"
	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultCellSizePx = 10
	maxCellSizePx     = 64

	defaultScoreAmount = 10
)

// VisualizerController manages maze sessions and their search runs.
type VisualizerController struct {
	visualizer i.VisualizerService
	scoreboard i.Scoreboard
}

// NewVisualizerController initializes a VisualizerController.
func NewVisualizerController(vs i.VisualizerService, sb i.Scoreboard) (*VisualizerController, error) {
	return &VisualizerController{
		visualizer: vs,
		scoreboard: sb,
	}, nil
}

// RegisterPublic registers public routes.
func (vc *VisualizerController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", vc.snapshot)
		mazes.GET("/:ID/image", vc.image)
		mazes.GET("/:ID/events", vc.events)
	}

	boards := route.Group("/boards")
	{
		boards.GET("/:strategy", vc.topScores)
	}
}

// RegisterProtected registers protected routes.
func (vc *VisualizerController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/", vc.create)
		mazes.POST("/:ID/search", vc.startSearch)
		mazes.POST("/:ID/cancel", vc.cancelSearch)
		mazes.DELETE("/:ID", vc.remove)
	}
}

// create handles maze generation requests.
func (vc *VisualizerController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	density := 1.0
	if request.WallDensity != nil {
		density = *request.WallDensity
	}

	id, snapshot, err := vc.visualizer.CreateMaze(i.MazeParams{
		Width:       request.Width,
		Height:      request.Height,
		Layers:      request.Layers,
		WallDensity: density,
		Seed:        request.Seed,
	})
	if err != nil {
		ctx.JSON(creationStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(id, snapshot, i.RunStatus{}))
}

// snapshot retrieves the current board of a maze session along with
// the run animating it, if one is in flight.
func (vc *VisualizerController) snapshot(ctx *gin.Context) {
	id, ok := vc.sessionID(ctx)
	if !ok {
		return
	}

	snapshot, err := vc.visualizer.Snapshot(id)
	if err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	status, err := vc.visualizer.ActiveRun(id)
	if err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(id, snapshot, status))
}

// startSearch launches a strategy run on a maze session.
func (vc *VisualizerController) startSearch(ctx *gin.Context) {
	id, ok := vc.sessionID(ctx)
	if !ok {
		return
	}

	var request SearchRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := search.ParseStrategy(request.Strategy)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID, err := vc.visualizer.StartSearch(id, i.SearchParams{
		Strategy:  strategy,
		StepDelay: time.Duration(request.StepDelayMs) * time.Millisecond,
	})
	if err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, &SearchStartedResponse{
		RunID:    runID,
		Strategy: strategy.String(),
	})
}

// cancelSearch stops the active run of a maze session.
func (vc *VisualizerController) cancelSearch(ctx *gin.Context) {
	id, ok := vc.sessionID(ctx)
	if !ok {
		return
	}

	if err := vc.visualizer.CancelSearch(id); err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusAccepted)
}

// remove drops a maze session.
func (vc *VisualizerController) remove(ctx *gin.Context) {
	id, ok := vc.sessionID(ctx)
	if !ok {
		return
	}

	if err := vc.visualizer.RemoveMaze(id); err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// image renders a maze session as a PNG.
func (vc *VisualizerController) image(ctx *gin.Context) {
	id, ok := vc.sessionID(ctx)
	if !ok {
		return
	}

	cellSize := defaultCellSizePx
	if raw := ctx.Query("cell_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxCellSizePx {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid cell_size"})
			return
		}
		cellSize = parsed
	}

	img, err := vc.visualizer.RenderImage(id, cellSize)
	if err != nil {
		ctx.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding image"})
		return
	}

	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

// topScores lists the best runs of a strategy, fewest visited cells
// first.
func (vc *VisualizerController) topScores(ctx *gin.Context) {
	strategy, err := search.ParseStrategy(ctx.Params.ByName("strategy"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount := int64(defaultScoreAmount)
	if raw := ctx.Query("amount"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		amount = parsed
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	scores, err := vc.scoreboard.Top(timeoutCtx, strategy.String(), amount)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading scores"})
		return
	}

	response := &ScoreboardResponse{
		Strategy: strategy.String(),
		Total:    vc.scoreboard.Count(timeoutCtx, strategy.String()),
		Entries:  make([]ScoreEntryResponse, 0, len(scores)),
	}
	for _, score := range scores {
		response.Entries = append(response.Entries, ScoreEntryResponse{
			RunID:   score.Member,
			Visited: score.Score,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// sessionID parses the ID route parameter, responding with a 400 when
// it is not a UUID.
func (vc *VisualizerController) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return uuid.Nil, false
	}
	return id, true
}

func creationStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrMazeTooLarge),
		errors.Is(err, service.ErrTooManyLayers),
		errors.Is(err, service.ErrInvalidDensity),
		errors.Is(err, maze.ErrDimensionTooSmall):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTooManySessions):
		return http.StatusConflict
	case errors.Is(err, maze.ErrTooFewOpenCells),
		errors.Is(err, maze.ErrNoCrossLayerPair):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func sessionStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDelayTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
