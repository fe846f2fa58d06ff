package models

// RoundScore records how one player fared in one round. Created once per
// player per round, either by a verified guess or by round-timeout backfill,
// and immutable afterwards.
type RoundScore struct {
	// Accuracy is the fuzzy-match similarity of the guess, in [0, 1]
	Accuracy float64

	// ElapsedSeconds is how long after round start the guess landed. A
	// backfilled score carries the full round duration.
	ElapsedSeconds float64

	// Correct reports whether the guess met the game's threshold
	Correct bool
}
