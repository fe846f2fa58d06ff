package game

import (
	"context"
	"time"

	"github.com/jingles/moosic/internal/common/clock"
	"github.com/jingles/moosic/internal/common/uuid"
	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/models"
	"github.com/jingles/moosic/internal/services/sessions"
	"github.com/rs/zerolog"
)

// State is the lifecycle phase of a game session.
type State string

const (
	// StateLobby accepts joins until someone starts the game
	StateLobby State = "lobby"

	// StateActive runs the round loop
	StateActive State = "active"

	// StateEnded is terminal; the session has published its results
	StateEnded State = "ended"
)

// Prompt is the challenge data for one round. Discarded when the round
// advances.
type Prompt struct {
	// Display is shown at round start; nil for audio-only prompts
	Display *gateway.Content

	// Answer is the canonical answer, revealed when the round ends
	Answer string

	// Stripped is the normalized form guesses are graded against
	Stripped string
}

// Rules is the game-specific half of a session: prompt construction, round
// side effects, guess normalization, and results rendering. The session
// owns everything else.
type Rules interface {
	// Name is the human-readable game name used in announcements
	Name() string

	// RoundDuration is how long players have to guess each round
	RoundDuration() time.Duration

	// Threshold is the minimum similarity for a guess to score
	Threshold() float64

	// Prepare samples prompt material for the given number of rounds.
	// Called once, on game start.
	Prepare(ctx context.Context, rounds int) error

	// BeginRound produces the round's prompt and performs its side
	// effects (e.g. starting playback on every player's session)
	BeginRound(ctx context.Context, round int, players []*models.Player) (*Prompt, error)

	// Normalize maps a raw guess into the form graded against
	// Prompt.Stripped
	Normalize(raw string) string

	// Results renders the final standings
	Results(standings []Standing, aux *Auxiliary) *gateway.Content
}

// CommandHandler processes one registered in-channel command. The player is
// nil when the author has not joined the game. The return value reports
// whether the message should continue into guess processing.
type CommandHandler func(ev gateway.MessageEvent, player *models.Player) bool

// Config holds dependencies for a game session
type Config struct {
	// Channel is the chat channel the game is bound to
	Channel gateway.Channel

	// Dispatcher delivers the channel's message events
	Dispatcher *gateway.Dispatcher

	// Sessions resolves joining users to their music sessions
	Sessions sessions.Service

	// Clock measures guess times
	Clock clock.Clock

	// UUIDGen mints the session ID; defaults to the real generator
	UUIDGen uuid.UUID

	// Rules is the game variant
	Rules Rules

	// Rounds is how many rounds will be played, 1-20
	Rounds int

	// Owner created the game and is auto-joined
	Owner *models.Player

	// OnJoin, when set, may veto a player joining (e.g. already in
	// another game). A nil error admits the player.
	OnJoin func(playerID string) error

	// OnEnd, when set, is called once after the session reaches Ended
	OnEnd func()

	Logger zerolog.Logger
}

// MaxRounds bounds the rounds argument of the game commands.
const MaxRounds = 20
