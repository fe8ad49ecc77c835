package exam

import (
	"math"
	"testing"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
)

// testSession builds a session of n questions with two choices each and
// returns it together with the per-question correct and wrong choice ids.
func testSession(t *testing.T, n int) (*Session, []uuid.UUID, []uuid.UUID, []uuid.UUID) {
	t.Helper()

	var questions []model.Question
	var choices []model.Choice
	var qids, correct, wrong []uuid.UUID

	for i := 0; i < n; i++ {
		q := model.Question{ID: uuid.New(), QuestionText: "q"}
		questions = append(questions, q)
		qids = append(qids, q.ID)

		c := model.Choice{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true}
		w := model.Choice{ID: uuid.New(), QuestionID: q.ID}
		choices = append(choices, c, w)
		correct = append(correct, c.ID)
		wrong = append(wrong, w.ID)
	}

	return NewSession(questions, choices), qids, correct, wrong
}

func TestSelectBeforeStart(t *testing.T) {
	s, qids, correct, _ := testSession(t, 3)
	if err := s.Select(qids[0], correct[0]); err != ErrNotStarted {
		t.Fatalf("err = %v, want ErrNotStarted", err)
	}
}

func TestSelectOverwritesUntilChecked(t *testing.T) {
	s, qids, correct, wrong := testSession(t, 3)
	s.Start()

	if err := s.Select(qids[0], wrong[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.Select(qids[0], correct[0]); err != nil {
		t.Fatalf("re-Select: %v", err)
	}

	ok, err := s.Check(qids[0])
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Fatal("latest selection should win and be correct")
	}

	// Once checked, the answer is immutable for the rest of the session.
	if err := s.Select(qids[0], wrong[0]); err != ErrAlreadyChecked {
		t.Fatalf("Select after Check err = %v, want ErrAlreadyChecked", err)
	}
	res := s.Finish()
	if res.Correct != 1 {
		t.Fatalf("correct = %d, want 1 (checked answer must not change)", res.Correct)
	}
}

func TestCheckRequiresAnswer(t *testing.T) {
	s, qids, _, _ := testSession(t, 2)
	s.Start()

	if _, err := s.Check(qids[0]); err != ErrNoAnswer {
		t.Fatalf("err = %v, want ErrNoAnswer", err)
	}
}

func TestCheckTwice(t *testing.T) {
	s, qids, correct, _ := testSession(t, 2)
	s.Start()

	if err := s.Select(qids[0], correct[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, err := s.Check(qids[0]); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if _, err := s.Check(qids[0]); err != ErrAlreadyChecked {
		t.Fatalf("second Check err = %v, want ErrAlreadyChecked", err)
	}
}

func TestSelectUnknownQuestion(t *testing.T) {
	s, _, _, _ := testSession(t, 2)
	s.Start()

	if err := s.Select(uuid.New(), uuid.New()); err != ErrUnknownQuestion {
		t.Fatalf("err = %v, want ErrUnknownQuestion", err)
	}
}

func TestNavigationClamped(t *testing.T) {
	s, _, _, _ := testSession(t, 3)
	s.Start()

	s.Prev()
	if got := s.Current(); got != 0 {
		t.Fatalf("Prev at 0: current = %d, want 0", got)
	}

	s.Next()
	s.Next()
	s.Next() // clamped at last question
	if got := s.Current(); got != 2 {
		t.Fatalf("current = %d, want 2", got)
	}

	s.JumpTo(-5)
	if got := s.Current(); got != 0 {
		t.Fatalf("JumpTo(-5): current = %d, want 0", got)
	}
	s.JumpTo(99)
	if got := s.Current(); got != 2 {
		t.Fatalf("JumpTo(99): current = %d, want 2", got)
	}
	s.JumpTo(1)
	if got := s.Current(); got != 1 {
		t.Fatalf("JumpTo(1): current = %d, want 1", got)
	}
}

func TestTickCountsDownAndFinishesOnce(t *testing.T) {
	s, _, _, _ := testSession(t, 2)
	s.Start()

	prev := s.TimeLeft()
	for i := 0; i < 5; i++ {
		s.Tick()
		if got := s.TimeLeft(); got != prev-1 {
			t.Fatalf("tick %d: timeLeft = %d, want %d", i, got, prev-1)
		}
		prev--
	}

	// Burn down to the final second, then verify the 1→0 transition
	// finishes the session exactly once and time never goes negative.
	finishes := 0
	for s.TimeLeft() > 0 {
		if s.Tick() {
			finishes++
		}
	}
	if finishes != 1 {
		t.Fatalf("finishes = %d, want exactly 1", finishes)
	}
	if got := s.TimeLeft(); got != 0 {
		t.Fatalf("timeLeft = %d, want 0", got)
	}
	if !s.Finished() {
		t.Fatal("session should be finished at zero")
	}

	// Further ticks are inert.
	if s.Tick() {
		t.Fatal("tick after finish must not fire finish again")
	}
	if got := s.TimeLeft(); got != 0 {
		t.Fatalf("timeLeft after finish = %d, want 0", got)
	}
}

func TestFinishScoring(t *testing.T) {
	// 3 questions, answers {1: correct, 2: wrong, 3: unset}.
	s, qids, correct, wrong := testSession(t, 3)
	s.Start()

	if err := s.Select(qids[0], correct[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.Select(qids[1], wrong[1]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	// qids[2] intentionally unanswered — must count as incorrect, not error.

	res := s.Finish()
	if res.Correct != 1 {
		t.Fatalf("correct = %d, want 1", res.Correct)
	}
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
	if math.Abs(res.Percentage-100.0/3) > 0.01 {
		t.Fatalf("percentage = %f, want ≈33.33", res.Percentage)
	}
	if res.Passed {
		t.Fatal("passed = true, want false")
	}
}

func TestFinishIdempotent(t *testing.T) {
	s, qids, correct, _ := testSession(t, 2)
	s.Start()
	if err := s.Select(qids[0], correct[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}

	first := s.Finish()
	second := s.Finish()
	if first != second {
		t.Fatal("second Finish must return the already computed result")
	}
	if second.Correct != 1 || second.Total != 2 {
		t.Fatalf("result = %+v, want Correct=1 Total=2", second)
	}
}

// The pass threshold is a fixed constant: even a perfect score on a bank
// smaller than the threshold does not pass. Known product quirk.
func TestPassThresholdDoesNotScaleWithSmallBank(t *testing.T) {
	s, qids, correct, _ := testSession(t, 3)
	s.Start()
	for i := range qids {
		if err := s.Select(qids[i], correct[i]); err != nil {
			t.Fatalf("Select: %v", err)
		}
	}

	res := s.Finish()
	if res.Correct != 3 {
		t.Fatalf("correct = %d, want 3", res.Correct)
	}
	if res.Passed {
		t.Fatal("3/3 must still fail the fixed threshold of 18")
	}
}

func TestViewProjectsCurrentQuestion(t *testing.T) {
	s, qids, correct, _ := testSession(t, 3)
	s.Start()
	if err := s.Select(qids[0], correct[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}

	v := s.View()
	if v.Question == nil {
		t.Fatal("view has no current question")
	}
	if v.Question.ID != qids[0] {
		t.Fatalf("question = %s, want %s", v.Question.ID, qids[0])
	}
	if len(v.Question.Choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(v.Question.Choices))
	}
	if v.Question.SelectedChoice == nil || *v.Question.SelectedChoice != correct[0] {
		t.Fatal("selected choice not projected")
	}
	if v.Statuses[0] != StatusAnswered {
		t.Fatalf("status[0] = %s, want %s", v.Statuses[0], StatusAnswered)
	}
	if v.Statuses[1] != StatusUnanswered {
		t.Fatalf("status[1] = %s, want %s", v.Statuses[1], StatusUnanswered)
	}

	if _, err := s.Check(qids[0]); err != nil {
		t.Fatalf("Check: %v", err)
	}
	v = s.View()
	if v.Statuses[0] != StatusCorrect {
		t.Fatalf("status[0] = %s, want %s", v.Statuses[0], StatusCorrect)
	}
}
