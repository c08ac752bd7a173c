package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/sudoku-backend/internal/apperror"
	"github.com/rocketscienceinc/sudoku-backend/internal/entity"
	"github.com/rocketscienceinc/sudoku-backend/internal/pkg"
	"github.com/rocketscienceinc/sudoku-backend/internal/repository"
	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepo interface {
	Save(ctx context.Context, record *repository.PuzzleRecord) error
}

type puzzleGenerator interface {
	Generate(difficulty string) (sudoku.Grid, sudoku.Grid, error)
}

// GameManager orchestrates puzzle generation and play state on top of
// the repositories. Each player has at most one active game.
type GameManager struct {
	logger *slog.Logger

	generator  puzzleGenerator
	playerRepo playerRepo
	gameRepo   gameRepo
	archive    archiveRepo

	autoClearNotes bool
}

func NewGameManager(logger *slog.Logger, generator puzzleGenerator, playerRepo playerRepo, gameRepo gameRepo, archive archiveRepo, autoClearNotes bool) *GameManager {
	return &GameManager{
		logger: logger,

		generator:  generator,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		archive:    archive,

		autoClearNotes: autoClearNotes,
	}
}

// GetOrCreatePlayer resolves an existing player or registers a new one
// when the ID is empty or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID != "" {
		player, err := that.playerRepo.GetByID(ctx, playerID)
		if err == nil {
			return player, nil
		}

		if !errors.Is(err, repository.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to get player by id: %w", err)
		}
	}

	player := &entity.Player{ID: pkg.NewSessionID()}
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	that.logger.Info("registered new player", "playerID", player.ID)

	return player, nil
}

// NewGame generates a fresh puzzle at the given difficulty and makes it
// the player's active game, replacing any previous one. The generated
// pair is also archived; a failed archive insert is logged but never
// loses the game.
func (that *GameManager) NewGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error) {
	player, err := that.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	difficulty = sudoku.NormalizeDifficulty(difficulty)

	puzzle, solution, err := that.generator.Generate(difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to generate puzzle: %w", err)
	}

	game := entity.NewGame(pkg.NewGameID(), player.ID, difficulty, puzzle, solution)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	player.GameID = game.ID
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if that.archive != nil {
		record := &repository.PuzzleRecord{
			Difficulty: difficulty,
			Puzzle:     puzzle,
			Solution:   solution,
		}
		if err = that.archive.Save(ctx, record); err != nil {
			that.logger.Error("failed to archive puzzle", "error", err)
		}
	}

	that.logger.Info("created new game", "gameID", game.ID, "playerID", player.ID, "difficulty", difficulty)

	return game, nil
}

// GetGame returns the player's active game.
func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGame
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, apperror.ErrNoActiveGame
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// SetCell places a digit on the player's board. Illegal placements
// (givens, out-of-range cells) are silent no-ops by design, so the
// returned game always reflects the current state. Auto-clean of peer
// notes is applied when enabled and the placement actually happened.
func (that *GameManager) SetCell(ctx context.Context, playerID string, row, col int, value uint8) (*entity.Game, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.SetValue(row, col, value)

	if that.autoClearNotes && value >= 1 && value <= 9 && sudoku.InBounds(row, col) && game.Board[row][col] == value {
		game.ClearNotesInPeers(row, col, value)
	}

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	if game.Status == entity.StatusSolved {
		that.logger.Info("game solved", "gameID", game.ID, "playerID", playerID)
	}

	return game, nil
}

// ClearCell empties a non-given cell.
func (that *GameManager) ClearCell(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.ClearValue(row, col)

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// ToggleNote flips a pencil mark on an empty cell.
func (that *GameManager) ToggleNote(ctx context.Context, playerID string, row, col int, value uint8) (*entity.Game, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.ToggleNote(row, col, value)

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Hint returns the first naked single of the player's board, or nil when
// no cell can be deduced with that technique.
func (that *GameManager) Hint(ctx context.Context, playerID string) (*entity.Hint, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	hint, ok := game.FindHint()
	if !ok {
		return nil, nil
	}

	return hint, nil
}

// Conflicts returns the cells of the player's board that currently break
// a Sudoku rule.
func (that *GameManager) Conflicts(ctx context.Context, playerID string) ([]entity.CellCoord, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game.Conflicts(), nil
}

// Reset restores the player's board to the original givens.
func (that *GameManager) Reset(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.ResetToPuzzle()

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// AbandonGame deletes the player's active game.
func (that *GameManager) AbandonGame(ctx context.Context, playerID string) error {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return err
	}

	if err = that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player by id: %w", err)
	}

	player.GameID = ""
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) saveGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}
