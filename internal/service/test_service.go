package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/config"
	"github.com/avtomaktab/avtotest-backend/internal/exam"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNoActiveTest is returned for test operations without a running attempt.
var ErrNoActiveTest = errors.New("no active test session")

// EventKind enumerates events pushed to test stream subscribers.
type EventKind string

const (
	EventTick     EventKind = "tick"
	EventFinished EventKind = "finished"
)

// Event is one message on a test stream subscription.
type Event struct {
	Kind     EventKind    `json:"kind"`
	TimeLeft int          `json:"time_left"`
	Result   *exam.Result `json:"result,omitempty"`
}

// resultPayload is the queue message handed to the result worker.
type resultPayload struct {
	UserID     int       `json:"user_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Passed     bool      `json:"passed"`
	FinishedAt time.Time `json:"finished_at"`
}

type activeSession struct {
	session *exam.Session
	ticker  *exam.Ticker

	// finishOnce guards the finish side effects: a double submit, or a
	// submit racing timer expiry, must queue and announce the result
	// exactly once.
	finishOnce sync.Once

	mu        sync.Mutex
	listeners map[chan Event]struct{}
}

func (a *activeSession) broadcast(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for ch := range a.listeners {
		select {
		case ch <- ev:
		default: // slow subscriber, drop
		}
	}
}

func (a *activeSession) closeListeners() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for ch := range a.listeners {
		close(ch)
	}
	a.listeners = map[chan Event]struct{}{}
}

// bankLoader yields the current question bank. Satisfied by QuestionService.
type bankLoader interface {
	LoadBank(ctx context.Context) (*exam.Bank, error)
}

// resultQueue is the slice of the Redis API the service pushes results
// through. Satisfied by *redis.Client.
type resultQueue interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// TestService orchestrates exam attempts: it owns the live sessions, their
// countdown tickers, the Redis snapshots that make attempts resumable, and
// the hand-off of finished results to the persistence queue.
type TestService struct {
	questions bankLoader
	snapshots exam.SnapshotStore
	queue     resultQueue
	log       zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	active map[int]*activeSession
}

// NewTestService creates a new TestService.
func NewTestService(questions bankLoader, snapshots exam.SnapshotStore, queue resultQueue, log zerolog.Logger) *TestService {
	return &TestService{
		questions: questions,
		snapshots: snapshots,
		queue:     queue,
		log:       log.With().Str("component", "test_service").Logger(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		active:    make(map[int]*activeSession),
	}
}

// Start begins a fresh attempt for the user, discarding any running session
// and stored snapshot. Returns the opening view of the new attempt.
func (s *TestService) Start(ctx context.Context, userID int) (*exam.View, error) {
	s.dropActive(userID)
	if err := s.snapshots.Clear(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("clear snapshot failed")
	}

	sess, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}
	sess.Start()

	as := s.register(userID, sess)
	s.saveSnapshot(ctx, userID, sess)
	s.startTicker(userID, as)

	return sess.View(), nil
}

// State returns the user's current test view. A live session is reported
// as-is; otherwise a stored snapshot is rehydrated into a new session over
// a fresh question sample, resuming the countdown where it left off. With
// neither, the view simply reports that no test is running.
func (s *TestService) State(ctx context.Context, userID int) (*exam.View, error) {
	s.mu.Lock()
	as, ok := s.active[userID]
	s.mu.Unlock()
	if ok {
		return as.session.View(), nil
	}

	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil || !snap.TestStarted {
		return &exam.View{}, nil
	}

	sess, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}
	sess.Start()
	sess.Restore(snap)

	if sess.Finished() {
		// Finished snapshots keep showing the result until a restart;
		// no ticker and no re-queue of an already persisted score.
		return sess.View(), nil
	}

	as = s.register(userID, sess)
	s.startTicker(userID, as)

	return sess.View(), nil
}

// Select records a choice for a question in the user's running attempt.
func (s *TestService) Select(ctx context.Context, userID int, questionID, choiceID uuid.UUID) (*exam.View, error) {
	as, err := s.resume(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := as.session.Select(questionID, choiceID); err != nil {
		return nil, err
	}
	s.saveSnapshot(ctx, userID, as.session)

	return as.session.View(), nil
}

// Check locks in the answer for a question and returns whether it was correct.
func (s *TestService) Check(ctx context.Context, userID int, questionID uuid.UUID) (bool, *exam.View, error) {
	as, err := s.resume(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	correct, err := as.session.Check(questionID)
	if err != nil {
		return false, nil, err
	}
	s.saveSnapshot(ctx, userID, as.session)

	return correct, as.session.View(), nil
}

// Navigate moves the current question pointer. Action is "next", "prev"
// or "jump" (with index).
func (s *TestService) Navigate(ctx context.Context, userID int, action string, index int) (*exam.View, error) {
	as, err := s.resume(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "next":
		as.session.Next()
	case "prev":
		as.session.Prev()
	case "jump":
		as.session.JumpTo(index)
	default:
		return nil, fmt.Errorf("unknown navigation action %q", action)
	}
	s.saveSnapshot(ctx, userID, as.session)

	return as.session.View(), nil
}

// Finish submits the user's attempt, scores it and queues the result.
func (s *TestService) Finish(ctx context.Context, userID int) (*exam.View, error) {
	as, err := s.resume(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := as.session.Finish()
	as.ticker.Stop()
	s.finalize(ctx, userID, as, result)

	return as.session.View(), nil
}

// Subscribe attaches a listener to the user's running attempt; events carry
// countdown ticks and the final result. The returned func detaches it.
func (s *TestService) Subscribe(ctx context.Context, userID int) (<-chan Event, func(), error) {
	as, err := s.resume(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan Event, 8)
	as.mu.Lock()
	as.listeners[ch] = struct{}{}
	as.mu.Unlock()

	cancel := func() {
		as.mu.Lock()
		if _, ok := as.listeners[ch]; ok {
			delete(as.listeners, ch)
			close(ch)
		}
		as.mu.Unlock()
	}
	return ch, cancel, nil
}

// Suspend parks the user's running attempt: the snapshot is saved, the
// countdown stops, and the session leaves memory until the next State call.
func (s *TestService) Suspend(ctx context.Context, userID int) {
	s.mu.Lock()
	as, ok := s.active[userID]
	if ok {
		delete(s.active, userID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	as.ticker.Stop()
	s.saveSnapshot(ctx, userID, as.session)
	as.closeListeners()
}

// Close suspends every running attempt. Called on server shutdown so that
// in-flight tests survive a restart.
func (s *TestService) Close() {
	s.mu.Lock()
	active := s.active
	s.active = make(map[int]*activeSession)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for userID, as := range active {
		as.ticker.Stop()
		s.saveSnapshot(ctx, userID, as.session)
		as.closeListeners()
	}
}

func (s *TestService) newSession(ctx context.Context) (*exam.Session, error) {
	bank, err := s.questions.LoadBank(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	s.rngMu.Lock()
	sample, err := bank.Sample(s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	return exam.NewSession(sample, bank.Choices), nil
}

func (s *TestService) register(userID int, sess *exam.Session) *activeSession {
	as := &activeSession{
		session:   sess,
		ticker:    exam.NewTicker(),
		listeners: make(map[chan Event]struct{}),
	}
	s.mu.Lock()
	s.active[userID] = as
	s.mu.Unlock()
	return as
}

// resume returns the user's live session, rehydrating it from a snapshot
// when the server restarted mid-attempt.
func (s *TestService) resume(ctx context.Context, userID int) (*activeSession, error) {
	s.mu.Lock()
	as, ok := s.active[userID]
	s.mu.Unlock()
	if ok {
		return as, nil
	}

	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil || !snap.TestStarted || snap.ShowResult {
		return nil, ErrNoActiveTest
	}

	sess, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}
	sess.Start()
	sess.Restore(snap)

	as = s.register(userID, sess)
	s.startTicker(userID, as)
	return as, nil
}

func (s *TestService) startTicker(userID int, as *activeSession) {
	as.ticker.Start(func() bool {
		if expired := as.session.Tick(); expired {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.finalize(ctx, userID, as, as.session.Result())
			return false
		}
		if as.session.Finished() {
			return false
		}

		as.broadcast(Event{Kind: EventTick, TimeLeft: as.session.TimeLeft()})

		// Persisting every second keeps the stored countdown honest
		// across a crash, same as the attempt's other mutations.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.saveSnapshot(ctx, userID, as.session)
		return true
	})
}

// finalize runs exactly the cleanup that must follow a finished session:
// queue the score for persistence, keep the finished snapshot for the
// result view, notify subscribers and drop the session from memory.
func (s *TestService) finalize(ctx context.Context, userID int, as *activeSession, result *exam.Result) {
	s.mu.Lock()
	if s.active[userID] == as {
		delete(s.active, userID)
	}
	s.mu.Unlock()

	as.finishOnce.Do(func() {
		s.saveSnapshot(ctx, userID, as.session)
		s.enqueueResult(ctx, userID, result)
		as.broadcast(Event{Kind: EventFinished, TimeLeft: as.session.TimeLeft(), Result: result})
		as.closeListeners()
	})
}

func (s *TestService) enqueueResult(ctx context.Context, userID int, result *exam.Result) {
	payload := resultPayload{
		UserID:     userID,
		Score:      result.Correct,
		Total:      result.Total,
		Passed:     result.Passed,
		FinishedAt: time.Now(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("marshal result payload")
		return
	}
	if err := s.queue.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("queue result failed")
	}
}

func (s *TestService) saveSnapshot(ctx context.Context, userID int, sess *exam.Session) {
	snap := sess.Snapshot()
	if err := s.snapshots.Save(ctx, userID, snap); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("save snapshot failed")
	}
}

func (s *TestService) dropActive(userID int) {
	s.mu.Lock()
	as, ok := s.active[userID]
	if ok {
		delete(s.active, userID)
	}
	s.mu.Unlock()
	if ok {
		as.ticker.Stop()
		as.closeListeners()
	}
}
