package exam

import (
	"errors"
	"math/rand"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
)

const (
	// QuestionCount is the number of questions in one exam attempt.
	// Fewer are used when the bank is smaller.
	QuestionCount = 25

	// DurationSeconds is the full time budget of one attempt (30 minutes).
	DurationSeconds = 1800

	// PassThreshold is the minimum correct-answer count required to pass.
	// It is a fixed constant and does NOT scale down when the bank holds
	// fewer than QuestionCount questions; the product has always behaved
	// this way.
	PassThreshold = 18
)

// ErrEmptyBank is returned when the question bank holds no questions.
// A session can never start from an empty bank; the client's only
// recourse is a manual reload after the bank is populated.
var ErrEmptyBank = errors.New("question bank is empty")

// Bank holds the full set of questions and choices fetched once at
// session start. No further fetches occur during a session.
type Bank struct {
	Questions []model.Question
	Choices   []model.Choice
}

// Sample selects the questions for one attempt: a uniform random shuffle
// of the whole bank truncated to QuestionCount (or fewer when the bank is
// smaller). The returned slice is a copy; the bank is not mutated.
func (b *Bank) Sample(rng *rand.Rand) ([]model.Question, error) {
	if len(b.Questions) == 0 {
		return nil, ErrEmptyBank
	}

	shuffled := make([]model.Question, len(b.Questions))
	copy(shuffled, b.Questions)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := QuestionCount
	if len(shuffled) < n {
		n = len(shuffled)
	}
	return shuffled[:n], nil
}

// ChoicesByQuestion groups the bank's choices by owning question.
func (b *Bank) ChoicesByQuestion() map[uuid.UUID][]model.Choice {
	grouped := make(map[uuid.UUID][]model.Choice, len(b.Questions))
	for _, c := range b.Choices {
		grouped[c.QuestionID] = append(grouped[c.QuestionID], c)
	}
	return grouped
}
