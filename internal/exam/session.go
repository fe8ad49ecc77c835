package exam

import (
	"errors"
	"sync"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
)

// Domain errors for session operations.
var (
	ErrNotStarted      = errors.New("test has not been started")
	ErrFinished        = errors.New("test is already finished")
	ErrUnknownQuestion = errors.New("question is not part of this session")
	ErrAlreadyChecked  = errors.New("question has already been checked")
	ErrNoAnswer        = errors.New("no answer selected for this question")
)

// Result is the outcome of a finished attempt.
type Result struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}

// Session is one timed exam attempt. All mutations happen under the
// session's own mutex: HTTP handlers and the countdown ticker are the
// only writers, and Finish is a no-op once the session is finished, so
// a user submit racing a timer expiry cannot double-score.
type Session struct {
	mu sync.Mutex

	questions []model.Question
	choices   map[uuid.UUID][]model.Choice
	correct   map[uuid.UUID]uuid.UUID

	answers  map[uuid.UUID]uuid.UUID
	checked  map[uuid.UUID]bool
	current  int
	timeLeft int
	started  bool
	finished bool
	result   *Result
}

// NewSession builds a session over an already-sampled question list.
// Choices are indexed by question; the correct-choice map assumes exactly
// one correct choice per question (data-entry invariant, not verified).
func NewSession(questions []model.Question, choices []model.Choice) *Session {
	s := &Session{
		questions: questions,
		choices:   make(map[uuid.UUID][]model.Choice, len(questions)),
		correct:   make(map[uuid.UUID]uuid.UUID, len(questions)),
		answers:   make(map[uuid.UUID]uuid.UUID),
		checked:   make(map[uuid.UUID]bool),
		timeLeft:  DurationSeconds,
	}

	inSession := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		inSession[q.ID] = true
	}
	for _, c := range choices {
		if !inSession[c.QuestionID] {
			continue
		}
		s.choices[c.QuestionID] = append(s.choices[c.QuestionID], c)
		if c.IsCorrect {
			s.correct[c.QuestionID] = c.ID
		}
	}
	return s
}

// Start marks the session as running with a full time budget.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	s.timeLeft = DurationSeconds
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Select records the chosen option for a question, overwriting any prior
// selection. A checked question's answer is immutable for the rest of
// the session.
func (s *Session) Select(questionID, choiceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutableLocked(); err != nil {
		return err
	}
	if _, ok := s.choices[questionID]; !ok {
		return ErrUnknownQuestion
	}
	if s.checked[questionID] {
		return ErrAlreadyChecked
	}
	s.answers[questionID] = choiceID
	return nil
}

// Check marks the question as checked and returns whether the recorded
// answer is correct. The feedback is transient UI state; only the checked
// flag itself is part of the session.
func (s *Session) Check(questionID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutableLocked(); err != nil {
		return false, err
	}
	if _, ok := s.choices[questionID]; !ok {
		return false, ErrUnknownQuestion
	}
	if s.checked[questionID] {
		return false, ErrAlreadyChecked
	}
	answer, ok := s.answers[questionID]
	if !ok {
		return false, ErrNoAnswer
	}

	s.checked[questionID] = true
	return answer == s.correct[questionID], nil
}

// Next advances the current question pointer, clamped to the last question.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < len(s.questions)-1 {
		s.current++
	}
}

// Prev moves the current question pointer back, clamped to the first question.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current > 0 {
		s.current--
	}
}

// JumpTo sets the current question pointer to an arbitrary index.
// Out-of-range indexes are clamped, never an error.
func (s *Session) JumpTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(s.questions)-1 {
		index = len(s.questions) - 1
	}
	s.current = index
}

// Tick decrements the remaining time by one second. When the clock
// reaches zero the session finishes exactly once; time never goes
// negative. Returns true when this tick finished the session.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.finished {
		return false
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.finishLocked()
		return true
	}
	return false
}

// Finish scores the attempt and marks the session finished. Idempotent:
// a second call (user submit racing timer expiry) returns the already
// computed result without re-mutating anything.
func (s *Session) Finish() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished {
		s.finishLocked()
	}
	return s.result
}

func (s *Session) finishLocked() {
	correct := 0
	for _, q := range s.questions {
		// Missing answers simply do not match and count as incorrect.
		if answer, ok := s.answers[q.ID]; ok && answer == s.correct[q.ID] {
			correct++
		}
	}

	total := len(s.questions)
	var pct float64
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}

	s.result = &Result{
		Correct:    correct,
		Total:      total,
		Percentage: pct,
		Passed:     correct >= PassThreshold,
	}
	s.finished = true
}

// Result returns the computed result, or nil while the session is running.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Started reports whether the user has explicitly begun the attempt.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Finished reports whether scoring has been computed.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// TimeLeft returns the remaining seconds.
func (s *Session) TimeLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeLeft
}

// Current returns the current question index.
func (s *Session) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) mutableLocked() error {
	if !s.started {
		return ErrNotStarted
	}
	if s.finished {
		return ErrFinished
	}
	return nil
}
