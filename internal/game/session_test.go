package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jingles/moosic/internal/gateway"
	"github.com/jingles/moosic/internal/gateway/gatewaytest"
	"github.com/jingles/moosic/internal/models"
	"github.com/jingles/moosic/internal/services/sessions"
	sessionMocks "github.com/jingles/moosic/internal/services/sessions/mocks"
	spotifyMocks "github.com/jingles/moosic/internal/spotify/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const waitFor = 5 * time.Second

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeRules answers "answer-<round>" every round and renders a fixed results
// marker, so tests control timing and grading without any platform calls.
type fakeRules struct {
	duration   time.Duration
	threshold  float64
	prepareErr error
	beginErr   error

	mu    sync.Mutex
	begun []int
}

func (r *fakeRules) Name() string { return "Fake Guess" }

func (r *fakeRules) RoundDuration() time.Duration { return r.duration }

func (r *fakeRules) Threshold() float64 { return r.threshold }

func (r *fakeRules) Prepare(_ context.Context, _ int) error {
	return r.prepareErr
}

func (r *fakeRules) BeginRound(_ context.Context, round int, _ []*models.Player) (*Prompt, error) {
	if r.beginErr != nil {
		return nil, r.beginErr
	}
	r.mu.Lock()
	r.begun = append(r.begun, round)
	r.mu.Unlock()

	answer := fmt.Sprintf("answer-%d", round)
	return &Prompt{
		Display:  &gateway.Content{Text: fmt.Sprintf("round %d begins", round)},
		Answer:   answer,
		Stripped: answer,
	}, nil
}

func (r *fakeRules) Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (r *fakeRules) Results(_ []Standing, _ *Auxiliary) *gateway.Content {
	return &gateway.Content{Text: "final results"}
}

func (r *fakeRules) beganRounds() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.begun...)
}

type GameSessionTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockSessions *sessionMocks.MockService
	mockSpotify  *spotifyMocks.MockSession
	channel      *gatewaytest.Channel
	dispatcher   *gateway.Dispatcher
	clock        *fakeClock
	rules        *fakeRules
	owner        *models.Player

	nextMessageID int
}

func (s *GameSessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = sessionMocks.NewMockService(s.mockCtrl)
	s.mockSpotify = spotifyMocks.NewMockSession(s.mockCtrl)
	s.channel = gatewaytest.NewChannel("channel-1")
	s.dispatcher = gateway.NewDispatcher()
	s.clock = newFakeClock()
	s.rules = &fakeRules{duration: time.Second, threshold: 0.70}
	s.owner = &models.Player{ID: "owner", Name: "Alice", Session: s.mockSpotify}
	s.nextMessageID = 0
}

func (s *GameSessionTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameSessionTestSuite(t *testing.T) {
	suite.Run(t, new(GameSessionTestSuite))
}

func (s *GameSessionTestSuite) newSession(rounds int) *Session {
	session, err := New(&Config{
		Channel:    s.channel,
		Dispatcher: s.dispatcher,
		Sessions:   s.mockSessions,
		Clock:      s.clock,
		Rules:      s.rules,
		Rounds:     rounds,
		Owner:      s.owner,
		Logger:     zerolog.Nop(),
	})
	s.Require().NoError(err)
	s.Require().NoError(session.Open(context.Background()))
	s.T().Cleanup(session.teardown)
	return session
}

func (s *GameSessionTestSuite) message(authorID, authorName, content string) string {
	s.nextMessageID++
	messageID := fmt.Sprintf("user-msg-%d", s.nextMessageID)
	s.dispatcher.DispatchMessage(gateway.MessageEvent{
		ChannelID:  "channel-1",
		MessageID:  messageID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	})
	return messageID
}

func (s *GameSessionTestSuite) waitForText(substring string) {
	s.Require().Eventually(func() bool {
		for _, text := range s.channel.SentTexts() {
			if strings.Contains(text, substring) {
				return true
			}
		}
		return false
	}, waitFor, 5*time.Millisecond, "expected a message containing %q", substring)
}

func (s *GameSessionTestSuite) waitDone(session *Session) {
	select {
	case <-session.Done():
	case <-time.After(waitFor):
		s.FailNow("session did not end")
	}
}

func (s *GameSessionTestSuite) joinBob() {
	s.mockSessions.EXPECT().
		Get(gomock.Any(), "bob").
		Return(s.mockSpotify, nil)

	s.message("bob", "Bob", ">join")
	s.waitForText("**Bob** has joined")
}

func (s *GameSessionTestSuite) TestOpenAnnouncesLobby() {
	s.newSession(3)
	s.waitForText(">join")
}

func (s *GameSessionTestSuite) TestJoinAddsLinkedPlayer() {
	s.newSession(3)
	s.joinBob()
}

func (s *GameSessionTestSuite) TestJoinRejectsUnlinkedUser() {
	s.newSession(3)

	s.mockSessions.EXPECT().
		Get(gomock.Any(), "bob").
		Return(nil, sessions.ErrNotLinked)

	s.message("bob", "Bob", ">join")
	s.waitForText("link your Spotify account")
}

func (s *GameSessionTestSuite) TestStartIgnoredFromNonPlayer() {
	session := s.newSession(1)
	s.waitForText(">join")

	s.message("stranger", "Stranger", ">start")

	// The session stays in the lobby: no round ever begins
	time.Sleep(50 * time.Millisecond)
	s.Empty(s.rules.beganRounds())
	s.Equal(StateLobby, session.State())
}

func (s *GameSessionTestSuite) TestRoundTimeoutBackfillsEveryPlayer() {
	s.rules.duration = 30 * time.Millisecond
	session := s.newSession(3)
	s.joinBob()

	s.message("owner", "Alice", ">start")
	s.waitDone(session)

	scores := session.Scores()
	s.Len(scores, 2)
	for _, playerScores := range scores {
		s.Require().Len(playerScores, 3)
		for _, score := range playerScores {
			s.False(score.Correct)
			s.Zero(score.Accuracy)
			s.InDelta(0.03, score.ElapsedSeconds, 0.001)
		}
	}
	s.Equal([]int{0, 1, 2}, s.rules.beganRounds())
	s.waitForText("final results")
}

func (s *GameSessionTestSuite) TestCorrectGuessScoresOnce() {
	s.rules.duration = 300 * time.Millisecond
	session := s.newSession(1)

	s.message("owner", "Alice", ">start")
	s.waitForText("round 0 begins")

	s.clock.Advance(100 * time.Millisecond)
	s.message("owner", "Alice", "Answer-0")
	s.waitForText("guessed it")

	// A second qualifying guess in the same round changes nothing
	s.message("owner", "Alice", "answer-0")
	s.waitDone(session)

	scores := session.Scores()["owner"]
	s.Require().Len(scores, 1)
	s.True(scores[0].Correct)
	s.InDelta(1.0, scores[0].Accuracy, 0.0001)
	s.InDelta(0.1, scores[0].ElapsedSeconds, 0.0001)
}

func (s *GameSessionTestSuite) TestGuessBelowThresholdIgnored() {
	s.rules.duration = 60 * time.Millisecond
	session := s.newSession(1)

	s.message("owner", "Alice", ">start")
	s.waitForText("round 0 begins")

	s.message("owner", "Alice", "zzzzzzzz")
	s.waitDone(session)

	scores := session.Scores()["owner"]
	s.Require().Len(scores, 1)
	s.False(scores[0].Correct)
}

func (s *GameSessionTestSuite) TestGuessMessageDeletedInTextChannel() {
	s.rules.duration = 300 * time.Millisecond
	session := s.newSession(1)

	s.message("owner", "Alice", ">start")
	s.waitForText("round 0 begins")

	guessID := s.message("owner", "Alice", "answer-0")
	s.waitForText("guessed it")

	s.Contains(s.channel.Deleted(), guessID)
	s.waitDone(session)
}

func (s *GameSessionTestSuite) TestGuessMessageKeptInPrivateChannel() {
	s.channel.ChannelKind = gateway.ChannelKindPrivate
	s.rules.duration = 300 * time.Millisecond
	session := s.newSession(1)

	s.message("owner", "Alice", ">start")
	s.waitForText("round 0 begins")

	guessID := s.message("owner", "Alice", "answer-0")
	s.waitForText("guessed it")

	s.NotContains(s.channel.Deleted(), guessID)
	s.waitDone(session)
}

func (s *GameSessionTestSuite) TestStopInLobbyCancels() {
	session := s.newSession(3)
	s.waitForText(">join")

	s.message("owner", "Alice", ">stop")
	s.waitDone(session)

	s.waitForText("cancelled")
	for _, text := range s.channel.SentTexts() {
		s.NotContains(text, "final results")
	}
}

func (s *GameSessionTestSuite) TestStopMidGamePublishesResults() {
	s.rules.duration = 5 * time.Second
	session := s.newSession(10)

	s.message("owner", "Alice", ">start")
	s.waitForText("round 0 begins")

	s.message("owner", "Alice", ">stop")
	s.waitDone(session)
	s.waitForText("final results")
}

func (s *GameSessionTestSuite) TestPrepareFailureEndsGame() {
	s.rules.prepareErr = ErrSampleExhausted
	session := s.newSession(3)

	s.message("owner", "Alice", ">start")
	s.waitDone(session)
	s.waitForText("could not be started")
}

func (s *GameSessionTestSuite) TestRevealAnnouncedOnTimeout() {
	s.rules.duration = 30 * time.Millisecond
	session := s.newSession(1)

	s.message("owner", "Alice", ">start")
	s.waitDone(session)
	s.waitForText("answer-0")
}

func (s *GameSessionTestSuite) TestBotMessagesIgnored() {
	s.newSession(3)
	s.waitForText(">join")

	s.dispatcher.DispatchMessage(gateway.MessageEvent{
		ChannelID:   "channel-1",
		AuthorID:    "owner",
		AuthorName:  "Alice",
		AuthorIsBot: true,
		Content:     ">stop",
	})

	time.Sleep(50 * time.Millisecond)
	s.Empty(s.rules.beganRounds())
}

func (s *GameSessionTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{
		Channel:    s.channel,
		Dispatcher: s.dispatcher,
		Sessions:   s.mockSessions,
		Clock:      s.clock,
		Rules:      s.rules,
		Rounds:     MaxRounds + 1,
		Owner:      s.owner,
		Logger:     zerolog.Nop(),
	})
	s.ErrorIs(err, ErrInvalidRounds)
}
