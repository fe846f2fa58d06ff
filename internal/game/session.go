package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jingles/moosic/internal/common/clock"
	"github.com/jingles/moosic/internal/common/uuid"
	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/models"
	"github.com/jingles/moosic/internal/services/sessions"
	"github.com/jingles/moosic/internal/similarity"
	"github.com/rs/zerolog"
)

// Command triggers, matched case-insensitively against the whole message.
const (
	CommandJoin  = ">join"
	CommandStart = ">start"
	CommandStop  = ">stop"
)

// actionTimeout bounds the platform calls made from inside the event loop.
const actionTimeout = 10 * time.Second

type eventKind int

const (
	messageEvent eventKind = iota
	timerEvent
)

type event struct {
	kind    eventKind
	message gateway.MessageEvent

	// round stamps timer events so a stale fire is detectable
	round int
}

// Session is one turn-based game bound to a channel. All state transitions
// happen on a single event-loop goroutine fed by the dispatcher and the
// round timer, so the session holds no locks around its game state.
type Session struct {
	id         string
	channel    gateway.Channel
	dispatcher *gateway.Dispatcher
	sessions   sessions.Service
	clock      clock.Clock
	rules      Rules
	rounds     int
	onJoin     func(playerID string) error
	onEnd      func()
	log        zerolog.Logger

	events chan event
	done   chan struct{}
	stop   sync.Once
	sub    gateway.Subscription

	// Event-loop state. Touched only by the loop goroutine after Open.
	state      State
	players    map[string]*models.Player
	order      []string // player IDs in join order
	scores     map[string][]models.RoundScore
	commands   map[string]CommandHandler
	round      int
	prompt     *Prompt
	roundStart time.Time
	timer      *time.Timer
}

// New validates the config and builds a session in the lobby state with the
// owner already joined. Call Open to announce it and start accepting events.
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Channel == nil {
		return nil, ErrNilChannel
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cfg.Sessions == nil {
		return nil, ErrNilSessions
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.Rules == nil {
		return nil, ErrNilRules
	}
	if cfg.Owner == nil {
		return nil, ErrNilOwner
	}
	if cfg.Rounds < 1 || cfg.Rounds > MaxRounds {
		return nil, ErrInvalidRounds
	}

	uuidGen := cfg.UUIDGen
	if uuidGen == nil {
		uuidGen = uuid.New()
	}
	sessionID := uuidGen.NewUUID()

	s := &Session{
		id:         sessionID,
		channel:    cfg.Channel,
		dispatcher: cfg.Dispatcher,
		sessions:   cfg.Sessions,
		clock:      cfg.Clock,
		rules:      cfg.Rules,
		rounds:     cfg.Rounds,
		onJoin:     cfg.OnJoin,
		onEnd:      cfg.OnEnd,
		log: cfg.Logger.With().
			Str("component", "game_session").
			Str("session_id", sessionID).
			Str("game", cfg.Rules.Name()).
			Str("channel_id", cfg.Channel.ID()).
			Logger(),
		events:   make(chan event, 16),
		done:     make(chan struct{}),
		state:    StateLobby,
		players:  make(map[string]*models.Player),
		scores:   make(map[string][]models.RoundScore),
		commands: make(map[string]CommandHandler),
	}

	s.players[cfg.Owner.ID] = cfg.Owner
	s.order = append(s.order, cfg.Owner.ID)
	s.scores[cfg.Owner.ID] = nil

	s.commands[CommandJoin] = s.handleJoin
	s.commands[CommandStart] = s.handleStart
	s.commands[CommandStop] = s.handleStop

	return s, nil
}

// Open announces the lobby, subscribes to the channel's messages, and starts
// the event loop.
func (s *Session) Open(ctx context.Context) error {
	_, err := s.channel.Send(ctx, &gateway.Content{
		Text: fmt.Sprintf("A game of **%s** has been created! Send `%s` to play.", s.rules.Name(), CommandJoin),
	})
	if err != nil {
		return fmt.Errorf("failed to announce game: %w", err)
	}

	s.sub = s.dispatcher.SubscribeMessages(s.channel.ID(), func(ev gateway.MessageEvent) {
		select {
		case s.events <- event{kind: messageEvent, message: ev}:
		case <-s.done:
		}
	})

	go s.loop()
	return nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Done is closed once the session has been torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// State returns the current lifecycle phase. Only meaningful between events
// from the caller's point of view; tests poll it.
func (s *Session) State() State {
	select {
	case <-s.done:
		return StateEnded
	default:
	}
	// Racy by nature for an open session; the loop owns the real state.
	return s.state
}

// Scores returns a copy of the per-player round scores.
func (s *Session) Scores() map[string][]models.RoundScore {
	out := make(map[string][]models.RoundScore, len(s.scores))
	for id, scores := range s.scores {
		out[id] = append([]models.RoundScore(nil), scores...)
	}
	return out
}

func (s *Session) loop() {
	for {
		select {
		case ev := <-s.events:
			switch ev.kind {
			case messageEvent:
				s.onMessage(ev.message)
			case timerEvent:
				s.onTimer(ev.round)
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) onMessage(ev gateway.MessageEvent) {
	if ev.AuthorIsBot {
		return
	}

	player := s.players[ev.AuthorID]
	text := strings.TrimSpace(ev.Content)

	proceed := true
	if handler, ok := s.commands[strings.ToLower(text)]; ok {
		proceed = handler(ev, player)
	}

	if proceed && s.state == StateActive && player != nil {
		s.handleGuess(ev, player)
	}
}

func (s *Session) handleJoin(ev gateway.MessageEvent, player *models.Player) bool {
	if s.state != StateLobby || player != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if s.onJoin != nil {
		if err := s.onJoin(ev.AuthorID); err != nil {
			s.announce(fmt.Sprintf("%s, you are already in a game elsewhere.", ev.AuthorName))
			return false
		}
	}

	session, err := s.sessions.Get(ctx, ev.AuthorID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotLinked) {
			s.announce(fmt.Sprintf("%s, you need to link your Spotify account before you can play.", ev.AuthorName))
		} else {
			s.log.Error().Err(err).Str("user_id", ev.AuthorID).Msg("failed to resolve session for join")
			s.announce(fmt.Sprintf("%s, something went wrong fetching your account. Try again.", ev.AuthorName))
		}
		return false
	}

	s.players[ev.AuthorID] = &models.Player{
		ID:      ev.AuthorID,
		Name:    ev.AuthorName,
		Session: session,
	}
	s.order = append(s.order, ev.AuthorID)
	s.scores[ev.AuthorID] = nil

	s.announce(fmt.Sprintf("**%s** has joined the game!", ev.AuthorName))
	return false
}

func (s *Session) handleStart(_ gateway.MessageEvent, player *models.Player) bool {
	if s.state != StateLobby || player == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	s.state = StateActive

	if err := s.rules.Prepare(ctx, s.rounds); err != nil {
		s.log.Error().Err(err).Msg("failed to prepare game")
		s.announce("The game could not be started: not enough playable material was found.")
		s.teardown()
		return false
	}

	s.announce(fmt.Sprintf(
		"The game has started! %d rounds, %d seconds each. Good luck!",
		s.rounds, int(s.rules.RoundDuration().Seconds()),
	))

	s.beginRound(0)
	return false
}

func (s *Session) handleStop(_ gateway.MessageEvent, player *models.Player) bool {
	if player == nil {
		return false
	}

	switch s.state {
	case StateLobby:
		s.announce("The game has been cancelled.")
		s.teardown()
	case StateActive:
		s.end()
	}
	return false
}

// handleGuess grades a player's first qualifying guess of the round. Later
// guesses in the same round are ignored because the score slice already has
// an entry for it.
func (s *Session) handleGuess(ev gateway.MessageEvent, player *models.Player) {
	if len(s.scores[player.ID]) > s.round {
		return
	}

	guess := s.rules.Normalize(ev.Content)
	if guess == "" {
		return
	}

	accuracy := similarity.PercentMatch(guess, s.prompt.Stripped)
	if accuracy < s.rules.Threshold() {
		return
	}

	roundSeconds := s.rules.RoundDuration().Seconds()
	elapsed := s.clock.Now().Sub(s.roundStart).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > roundSeconds {
		elapsed = roundSeconds
	}

	s.scores[player.ID] = append(s.scores[player.ID], models.RoundScore{
		Accuracy:       accuracy,
		ElapsedSeconds: elapsed,
		Correct:        true,
	})

	// Keep the answer hidden from slower players
	if s.channel.Kind() != gateway.ChannelKindPrivate {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		if err := s.channel.Delete(ctx, ev.MessageID); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete guess message")
		}
		cancel()
	}

	s.announce(fmt.Sprintf(
		"**%s** guessed it with %.0f%% accuracy in %.1f seconds!",
		player.Name, accuracy*100, elapsed,
	))
}

func (s *Session) beginRound(round int) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	s.round = round

	prompt, err := s.rules.BeginRound(ctx, round, s.playerList())
	if err != nil {
		s.log.Error().Err(err).Int("round", round).Msg("failed to begin round")
		s.announce("The game hit a problem and cannot continue.")
		s.end()
		return
	}
	s.prompt = prompt
	s.roundStart = s.clock.Now()

	if prompt.Display != nil {
		if _, err := s.channel.Send(ctx, prompt.Display); err != nil {
			s.log.Error().Err(err).Int("round", round).Msg("failed to send round prompt")
		}
	}

	s.armTimer(round)
}

func (s *Session) armTimer(round int) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.rules.RoundDuration(), func() {
		select {
		case s.events <- event{kind: timerEvent, round: round}:
		case <-s.done:
		}
	})
}

// onTimer closes out a round. A fire stamped with an old round number is a
// leftover from a timer that lost the race with its Stop and is dropped.
func (s *Session) onTimer(round int) {
	if s.state != StateActive || round != s.round {
		return
	}

	roundSeconds := s.rules.RoundDuration().Seconds()
	for _, id := range s.order {
		if len(s.scores[id]) <= s.round {
			s.scores[id] = append(s.scores[id], models.RoundScore{
				ElapsedSeconds: roundSeconds,
			})
		}
	}

	s.announce(fmt.Sprintf("Time's up! The answer was **%s**.", s.prompt.Answer))

	next := s.round + 1
	if next >= s.rounds {
		s.end()
		return
	}
	s.beginRound(next)
}

// end publishes the results and tears the session down.
func (s *Session) end() {
	if s.state == StateEnded {
		return
	}
	s.state = StateEnded

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	players := s.playerList()
	standings := ComputeStandings(players, s.scores, s.rules.RoundDuration().Seconds())
	aux := ComputeAuxiliary(players, s.scores)

	if _, err := s.channel.Send(ctx, s.rules.Results(standings, aux)); err != nil {
		s.log.Error().Err(err).Msg("failed to send results")
	}

	s.teardown()
}

// teardown cancels the subscription before stopping the timer so no new
// event can arm anything afterwards, then releases waiters.
func (s *Session) teardown() {
	s.stop.Do(func() {
		s.state = StateEnded
		if s.sub != nil {
			s.sub.Cancel()
		}
		if s.timer != nil {
			s.timer.Stop()
		}
		close(s.done)
		if s.onEnd != nil {
			s.onEnd()
		}
	})
}

func (s *Session) playerList() []*models.Player {
	players := make([]*models.Player, 0, len(s.order))
	for _, id := range s.order {
		players = append(players, s.players[id])
	}
	return players
}

func (s *Session) announce(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if _, err := s.channel.Send(ctx, &gateway.Content{Text: text}); err != nil {
		s.log.Warn().Err(err).Msg("failed to send announcement")
	}
}
