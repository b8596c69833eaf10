package storage

// HighScoreKeeper reads and raises one game's best score.
// It satisfies the engine's high score collaborator.
type HighScoreKeeper struct {
	store  *Store
	gameID string
}

// Keeper returns the high score keeper for a game.
func (s *Store) Keeper(gameID string) *HighScoreKeeper {
	return &HighScoreKeeper{store: s, gameID: gameID}
}

// HighScore returns the game's best score.
func (k *HighScoreKeeper) HighScore() (int, error) {
	return k.store.HighScore(k.gameID)
}

// SaveIfHigher stores score when it beats the current best.
func (k *HighScoreKeeper) SaveIfHigher(score int) (bool, error) {
	return k.store.SaveHighScoreIfHigher(k.gameID, score)
}
