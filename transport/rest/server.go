package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/sudoku-backend/internal/entity"
	"github.com/rocketscienceinc/sudoku-backend/internal/repository"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)
	NewGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	GetGame(ctx context.Context, playerID string) (*entity.Game, error)
	SetCell(ctx context.Context, playerID string, row, col int, value uint8) (*entity.Game, error)
	ClearCell(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	ToggleNote(ctx context.Context, playerID string, row, col int, value uint8) (*entity.Game, error)
	Hint(ctx context.Context, playerID string) (*entity.Hint, error)
	Conflicts(ctx context.Context, playerID string) ([]entity.CellCoord, error)
	Reset(ctx context.Context, playerID string) (*entity.Game, error)
	AbandonGame(ctx context.Context, playerID string) error
}

type authService interface {
	GenerateToken(playerID string) (string, error)
	ParseToken(tokenString string) (string, error)
}

type archiveReader interface {
	ListRecent(ctx context.Context, limit int) ([]repository.PuzzleRecord, error)
}

type Server struct {
	logger *slog.Logger

	game    gameUseCase
	auth    authService
	archive archiveReader
}

func New(logger *slog.Logger, game gameUseCase, auth authService, archive archiveReader) *Server {
	return &Server{
		logger: logger,

		game:    game,
		auth:    auth,
		archive: archive,
	}
}

// Start - runs the REST API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.GET("/ping", that.handlePing)
	router.POST("/api/session", that.handleCreateSession)

	api := router.Group("/api", that.requireSession)
	api.POST("/games", that.handleNewGame)
	api.GET("/games/current", that.handleGetGame)
	api.PUT("/games/current/cells", that.handleSetCell)
	api.DELETE("/games/current/cells/:row/:col", that.handleClearCell)
	api.POST("/games/current/notes", that.handleToggleNote)
	api.GET("/games/current/hint", that.handleHint)
	api.GET("/games/current/conflicts", that.handleConflicts)
	api.POST("/games/current/reset", that.handleReset)
	api.DELETE("/games/current", that.handleAbandonGame)
	api.GET("/puzzles/recent", that.handleRecentPuzzles)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// requireSession resolves the player from the Authorization header and
// stores the ID in the request context.
func (that *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		const prefix = "Bearer "

		header := ctx.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			return ctx.JSON(http.StatusUnauthorized, errorResponse{Error: "missing session token"})
		}

		playerID, err := that.auth.ParseToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid session token"})
		}

		ctx.Set(playerIDContextKey, playerID)

		return next(ctx)
	}
}
