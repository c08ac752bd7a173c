package entity

// Player is a connected user, identified by a session-scoped ID.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}
