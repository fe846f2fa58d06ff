package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilChannel       GameError = "channel cannot be nil"
	ErrNilDispatcher    GameError = "dispatcher cannot be nil"
	ErrNilSessions      GameError = "session store cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilRules         GameError = "rules cannot be nil"
	ErrNilOwner         GameError = "owner cannot be nil"
	ErrNilProvider      GameError = "lyrics provider cannot be nil"
	ErrInvalidRounds    GameError = "rounds must be between 1 and 20"
	ErrGameInChannel    GameError = "a game is already running in this channel"
	ErrPlayerInGame     GameError = "player is already in an active game"
	ErrSampleExhausted  GameError = "could not sample enough playable prompts"
	ErrInvalidGuessType GameError = "guess type must be title or artist"
)
