package exam

import (
	"testing"

	"github.com/google/uuid"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s, qids, correct, wrong := testSession(t, 3)
	s.Start()

	if err := s.Select(qids[0], correct[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, err := s.Check(qids[0]); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if err := s.Select(qids[1], wrong[1]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	s.Next()
	for i := 0; i < 10; i++ {
		s.Tick()
	}

	snap := s.Snapshot()

	// Simulate a page reload: same question bank, fresh session.
	restored, _, _, _ := testSession(t, 3)
	restored.questions = s.questions
	restored.choices = s.choices
	restored.correct = s.correct
	restored.Restore(snap)

	if !restored.Started() {
		t.Fatal("started not restored")
	}
	if got := restored.Current(); got != 1 {
		t.Fatalf("current = %d, want 1", got)
	}
	if got := restored.TimeLeft(); got != DurationSeconds-10 {
		t.Fatalf("timeLeft = %d, want %d", got, DurationSeconds-10)
	}

	// Answers and checked flags survive verbatim.
	if err := restored.Select(qids[0], wrong[0]); err != ErrAlreadyChecked {
		t.Fatalf("checked flag lost: err = %v, want ErrAlreadyChecked", err)
	}
	res := restored.Finish()
	if res.Correct != 1 {
		t.Fatalf("correct = %d, want 1", res.Correct)
	}
}

func TestRestoreStaleQuestionIDs(t *testing.T) {
	s, qids, correct, _ := testSession(t, 2)

	snap := &Snapshot{
		TestStarted: true,
		Current:     0,
		Answers: map[string]string{
			qids[0].String():    correct[0].String(),
			uuid.New().String(): uuid.New().String(), // bank changed between sessions
			"not-a-uuid":        "junk",
		},
		Checked: map[string]bool{
			uuid.New().String(): true,
			"also-junk":         true,
		},
		TimeLeft: 900,
	}

	s.Restore(snap)

	// The stale and malformed entries must not affect lookups against the
	// fresh question list: qids[1] is simply unanswered.
	v := s.View()
	if v.Statuses[0] != StatusAnswered {
		t.Fatalf("status[0] = %s, want %s", v.Statuses[0], StatusAnswered)
	}
	if v.Statuses[1] != StatusUnanswered {
		t.Fatalf("status[1] = %s, want %s", v.Statuses[1], StatusUnanswered)
	}

	res := s.Finish()
	if res.Correct != 1 {
		t.Fatalf("correct = %d, want 1", res.Correct)
	}
}

func TestRestoreClampsOutOfRangeValues(t *testing.T) {
	s, _, _, _ := testSession(t, 3)
	s.Restore(&Snapshot{TestStarted: true, Current: 42, TimeLeft: -5})

	if got := s.Current(); got != 2 {
		t.Fatalf("current = %d, want 2", got)
	}
	if got := s.TimeLeft(); got != 0 {
		t.Fatalf("timeLeft = %d, want 0", got)
	}
}

func TestRestoreFinishedSnapshot(t *testing.T) {
	s, qids, correct, wrong := testSession(t, 3)
	s.Restore(&Snapshot{
		TestStarted: true,
		ShowResult:  true,
		TimeLeft:    0,
		Answers: map[string]string{
			qids[0].String(): correct[0].String(),
			qids[1].String(): correct[1].String(),
			qids[2].String(): wrong[2].String(),
		},
	})

	if !s.Finished() {
		t.Fatal("finished not restored")
	}
	if err := s.Select(uuid.New(), uuid.New()); err != ErrFinished {
		t.Fatalf("err = %v, want ErrFinished", err)
	}

	// The score must be recomputed from the restored answers, not left
	// empty: the result view depends on it after a reload.
	view := s.View()
	if view.Result == nil {
		t.Fatal("restored finished session has no result")
	}
	if view.Result.Correct != 2 || view.Result.Total != 3 {
		t.Fatalf("restored result = %+v, want 2/3", view.Result)
	}
}
