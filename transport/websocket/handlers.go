package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/sudoku-backend/internal/apperror"
	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	player, err := that.game.GetOrCreatePlayer(ctx, payload.Player.ID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	if player.ID == payload.Player.ID {
		that.logger.Info("player connected", "playerID", player.ID)
	} else {
		that.logger.Info("registered new player", "playerID", player.ID)
	}

	response := ResponsePayload{Player: player}

	// A returning player gets their active game back right away.
	if game, gameErr := that.game.GetGame(ctx, player.ID); gameErr == nil {
		response.Game = newGameState(game)
	}

	return that.sendMessage(*bufrw, msg.Action, response)
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	game, err := that.game.NewGame(ctx, payload.Player.ID, payload.Difficulty)
	if errors.Is(err, sudoku.ErrGenerationExhausted) {
		return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Error: "failed to generate a puzzle, try again"})
	}

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Game: newGameState(game)})
}

func (that *Server) handleSetCell(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Error: "missing cell"})
	}

	game, err := that.game.SetCell(ctx, payload.Player.ID, payload.Cell.Row, payload.Cell.Col, payload.Cell.Value)
	if err != nil {
		return that.sendGameError(msg.Action, bufrw, err)
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Game: newGameState(game)})
}

func (that *Server) handleClearCell(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Error: "missing cell"})
	}

	game, err := that.game.ClearCell(ctx, payload.Player.ID, payload.Cell.Row, payload.Cell.Col)
	if err != nil {
		return that.sendGameError(msg.Action, bufrw, err)
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Game: newGameState(game)})
}

func (that *Server) handleToggleNote(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Error: "missing cell"})
	}

	game, err := that.game.ToggleNote(ctx, payload.Player.ID, payload.Cell.Row, payload.Cell.Col, payload.Cell.Value)
	if err != nil {
		return that.sendGameError(msg.Action, bufrw, err)
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Game: newGameState(game)})
}

func (that *Server) handleHint(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	hint, err := that.game.Hint(ctx, payload.Player.ID)
	if err != nil {
		return that.sendGameError(msg.Action, bufrw, err)
	}

	if hint == nil {
		return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Error: "no hint available"})
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Hint: hint})
}

func (that *Server) handleConflicts(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	conflicts, err := that.game.Conflicts(ctx, payload.Player.ID)
	if err != nil {
		return that.sendGameError(msg.Action, bufrw, err)
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Conflicts: conflicts})
}

func (that *Server) handleReset(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return err
	}

	game, err := that.game.Reset(ctx, payload.Player.ID)
	if err != nil {
		return that.sendGameError(msg.Action, bufrw, err)
	}

	return that.sendMessage(*bufrw, msg.Action, ResponsePayload{Game: newGameState(game)})
}

func (that *Server) sendGameError(action string, bufrw *bufio.ReadWriter, err error) error {
	if errors.Is(err, apperror.ErrNoActiveGame) {
		return that.sendMessage(*bufrw, action, ResponsePayload{Error: "no active game"})
	}

	return fmt.Errorf("game request failed: %w", err)
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var payload RequestPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}
