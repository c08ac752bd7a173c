package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/sudoku-backend/internal/apperror"
	"github.com/rocketscienceinc/sudoku-backend/internal/entity"
	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
)

const playerIDContextKey = "playerID"

const recentPuzzlesLimit = 20

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	Token  string         `json:"token"`
	Player *entity.Player `json:"player"`
}

type newGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type cellRequest struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Value uint8 `json:"value"`
}

// gameResponse is the player-facing view of a game. The solution never
// leaves the server.
type gameResponse struct {
	ID         string       `json:"id"`
	Difficulty string       `json:"difficulty"`
	Puzzle     sudoku.Grid  `json:"puzzle"`
	Board      sudoku.Grid  `json:"board"`
	Notes      entity.Notes `json:"notes"`
	Status     string       `json:"status"`
}

func newGameResponse(game *entity.Game) *gameResponse {
	return &gameResponse{
		ID:         game.ID,
		Difficulty: game.Difficulty,
		Puzzle:     game.Puzzle,
		Board:      game.Board,
		Notes:      game.Notes,
		Status:     game.Status,
	}
}

// handleCreateSession registers a new player and returns a session token
// for it.
func (that *Server) handleCreateSession(ctx echo.Context) error {
	player, err := that.game.GetOrCreatePlayer(ctx.Request().Context(), "")
	if err != nil {
		that.logger.Error("failed to create player", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create session"})
	}

	token, err := that.auth.GenerateToken(player.ID)
	if err != nil {
		that.logger.Error("failed to generate token", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create session"})
	}

	return ctx.JSON(http.StatusCreated, sessionResponse{Token: token, Player: player})
}

func (that *Server) handleNewGame(ctx echo.Context) error {
	var req newGameRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	game, err := that.game.NewGame(ctx.Request().Context(), that.playerID(ctx), req.Difficulty)
	if errors.Is(err, sudoku.ErrGenerationExhausted) {
		that.logger.Error("puzzle generation exhausted", "difficulty", req.Difficulty)
		return ctx.JSON(http.StatusServiceUnavailable, errorResponse{Error: "failed to generate a puzzle, try again"})
	}

	if err != nil {
		that.logger.Error("failed to create game", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create game"})
	}

	return ctx.JSON(http.StatusCreated, newGameResponse(game))
}

func (that *Server) handleGetGame(ctx echo.Context) error {
	game, err := that.game.GetGame(ctx.Request().Context(), that.playerID(ctx))
	if err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleSetCell(ctx echo.Context) error {
	var req cellRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	game, err := that.game.SetCell(ctx.Request().Context(), that.playerID(ctx), req.Row, req.Col, req.Value)
	if err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleClearCell(ctx echo.Context) error {
	row, err := strconv.Atoi(ctx.Param("row"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid row"})
	}

	col, err := strconv.Atoi(ctx.Param("col"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid col"})
	}

	game, err := that.game.ClearCell(ctx.Request().Context(), that.playerID(ctx), row, col)
	if err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleToggleNote(ctx echo.Context) error {
	var req cellRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	game, err := that.game.ToggleNote(ctx.Request().Context(), that.playerID(ctx), req.Row, req.Col, req.Value)
	if err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleHint(ctx echo.Context) error {
	hint, err := that.game.Hint(ctx.Request().Context(), that.playerID(ctx))
	if err != nil {
		return that.gameError(ctx, err)
	}

	if hint == nil {
		return ctx.JSON(http.StatusOK, map[string]any{"hint": nil})
	}

	return ctx.JSON(http.StatusOK, map[string]any{"hint": hint})
}

func (that *Server) handleConflicts(ctx echo.Context) error {
	conflicts, err := that.game.Conflicts(ctx.Request().Context(), that.playerID(ctx))
	if err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"conflicts": conflicts})
}

func (that *Server) handleReset(ctx echo.Context) error {
	game, err := that.game.Reset(ctx.Request().Context(), that.playerID(ctx))
	if err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *Server) handleAbandonGame(ctx echo.Context) error {
	if err := that.game.AbandonGame(ctx.Request().Context(), that.playerID(ctx)); err != nil {
		return that.gameError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *Server) handleRecentPuzzles(ctx echo.Context) error {
	records, err := that.archive.ListRecent(ctx.Request().Context(), recentPuzzlesLimit)
	if err != nil {
		that.logger.Error("failed to list recent puzzles", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list puzzles"})
	}

	return ctx.JSON(http.StatusOK, map[string]any{"puzzles": records})
}

func (that *Server) playerID(ctx echo.Context) string {
	playerID, _ := ctx.Get(playerIDContextKey).(string)
	return playerID
}

// gameError maps usecase errors to HTTP responses.
func (that *Server) gameError(ctx echo.Context, err error) error {
	if errors.Is(err, apperror.ErrNoActiveGame) {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "no active game"})
	}

	that.logger.Error("game request failed", "error", err)

	return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
