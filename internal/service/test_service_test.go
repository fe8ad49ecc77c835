package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/exam"
	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type fakeBankLoader struct {
	bank *exam.Bank
}

func (f *fakeBankLoader) LoadBank(ctx context.Context) (*exam.Bank, error) {
	return f.bank, nil
}

type fakeSnapshotStore struct {
	mu    sync.Mutex
	snaps map[int]*exam.Snapshot
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snaps: make(map[int]*exam.Snapshot)}
}

func (f *fakeSnapshotStore) Load(ctx context.Context, userID int) (*exam.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snaps[userID], nil
}

func (f *fakeSnapshotStore) Save(ctx context.Context, userID int, snap *exam.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snaps[userID] = snap
	return nil
}

func (f *fakeSnapshotStore) Clear(ctx context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.snaps, userID)
	return nil
}

func (f *fakeSnapshotStore) get(userID int) *exam.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snaps[userID]
}

type fakeResultQueue struct {
	mu     sync.Mutex
	pushed [][]byte
}

func (f *fakeResultQueue) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range values {
		if raw, ok := v.([]byte); ok {
			f.pushed = append(f.pushed, raw)
		}
	}
	cmd := redis.NewIntCmd(ctx, "rpush")
	cmd.SetVal(int64(len(values)))
	return cmd
}

func (f *fakeResultQueue) payloads(t *testing.T) []resultPayload {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]resultPayload, 0, len(f.pushed))
	for _, raw := range f.pushed {
		var p resultPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			t.Fatalf("queued payload is not valid JSON: %v", err)
		}
		out = append(out, p)
	}
	return out
}

// buildBank returns an n-question bank where the first choice of every
// question is the correct one.
func buildBank(n int) (*exam.Bank, []uuid.UUID, map[uuid.UUID]uuid.UUID, map[uuid.UUID]uuid.UUID) {
	bank := &exam.Bank{}
	ids := make([]uuid.UUID, 0, n)
	correct := make(map[uuid.UUID]uuid.UUID, n)
	wrong := make(map[uuid.UUID]uuid.UUID, n)

	for i := 0; i < n; i++ {
		q := model.Question{ID: uuid.New(), QuestionText: "savol"}
		bank.Questions = append(bank.Questions, q)
		ids = append(ids, q.ID)

		good := model.Choice{ID: uuid.New(), QuestionID: q.ID, ChoiceText: "a", IsCorrect: true}
		bad := model.Choice{ID: uuid.New(), QuestionID: q.ID, ChoiceText: "b"}
		bank.Choices = append(bank.Choices, good, bad)
		correct[q.ID] = good.ID
		wrong[q.ID] = bad.ID
	}
	return bank, ids, correct, wrong
}

func newTestService(bank *exam.Bank) (*TestService, *fakeSnapshotStore, *fakeResultQueue) {
	store := newFakeSnapshotStore()
	queue := &fakeResultQueue{}
	svc := NewTestService(&fakeBankLoader{bank: bank}, store, queue, zerolog.Nop())
	return svc, store, queue
}

func TestStartBeginsFreshAttempt(t *testing.T) {
	bank, _, _, _ := buildBank(40)
	svc, store, _ := newTestService(bank)
	defer svc.Close()

	view, err := svc.Start(context.Background(), 7)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !view.Started || view.Finished {
		t.Fatalf("view = started %v finished %v, want running", view.Started, view.Finished)
	}
	if view.Total != exam.QuestionCount {
		t.Errorf("Total = %d, want %d", view.Total, exam.QuestionCount)
	}
	if view.TimeLeft > exam.DurationSeconds || view.TimeLeft < exam.DurationSeconds-2 {
		t.Errorf("TimeLeft = %d, want about %d", view.TimeLeft, exam.DurationSeconds)
	}

	snap := store.get(7)
	if snap == nil || !snap.TestStarted {
		t.Fatal("snapshot not persisted on start")
	}
}

func TestStateWithoutAttempt(t *testing.T) {
	bank, _, _, _ := buildBank(3)
	svc, _, _ := newTestService(bank)
	defer svc.Close()

	view, err := svc.State(context.Background(), 1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if view.Started {
		t.Fatal("State with no attempt must report an idle view")
	}
}

func TestAnswerCheckFinishFlow(t *testing.T) {
	bank, ids, correct, wrong := buildBank(3)
	svc, store, queue := newTestService(bank)
	defer svc.Close()

	ctx := context.Background()
	userID := 11

	if _, err := svc.Start(ctx, userID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Select(ctx, userID, ids[0], correct[ids[0]]); err != nil {
		t.Fatalf("Select correct: %v", err)
	}
	ok, _, err := svc.Check(ctx, userID, ids[0])
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Error("Check on the correct choice reported incorrect")
	}

	if _, err := svc.Select(ctx, userID, ids[1], wrong[ids[1]]); err != nil {
		t.Fatalf("Select wrong: %v", err)
	}

	view, err := svc.Finish(ctx, userID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !view.Finished || view.Result == nil {
		t.Fatal("Finish did not produce a scored view")
	}
	if view.Result.Correct != 1 || view.Result.Total != 3 || view.Result.Passed {
		t.Errorf("Result = %+v, want 1/3 not passed", view.Result)
	}

	payloads := queue.payloads(t)
	if len(payloads) != 1 {
		t.Fatalf("queued %d results, want 1", len(payloads))
	}
	p := payloads[0]
	if p.UserID != userID || p.Score != 1 || p.Total != 3 || p.Passed {
		t.Errorf("payload = %+v, want user %d score 1/3 not passed", p, userID)
	}

	snap := store.get(userID)
	if snap == nil || !snap.ShowResult {
		t.Error("finished attempt must keep a result snapshot")
	}

	if _, err := svc.Finish(ctx, userID); err != ErrNoActiveTest {
		t.Errorf("second Finish err = %v, want ErrNoActiveTest", err)
	}
	if got := len(queue.payloads(t)); got != 1 {
		t.Errorf("queued %d results after double finish, want 1", got)
	}
}

func TestConcurrentFinishQueuesOnce(t *testing.T) {
	bank, _, _, _ := buildBank(3)

	for i := 0; i < 50; i++ {
		svc, _, queue := newTestService(bank)
		ctx := context.Background()
		userID := 9

		if _, err := svc.Start(ctx, userID); err != nil {
			t.Fatalf("Start: %v", err)
		}

		// A double submit races itself; each call may win or lose the
		// attempt, but the result must be queued exactly once.
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Finish(ctx, userID)
			}()
		}
		wg.Wait()
		svc.Close()

		if got := len(queue.payloads(t)); got != 1 {
			t.Fatalf("result queued %d times for one attempt, want 1", got)
		}
	}
}

func TestSuspendAndResume(t *testing.T) {
	bank, ids, correct, _ := buildBank(3)
	svc, store, _ := newTestService(bank)
	defer svc.Close()

	ctx := context.Background()
	userID := 3

	if _, err := svc.Start(ctx, userID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Select(ctx, userID, ids[0], correct[ids[0]]); err != nil {
		t.Fatalf("Select: %v", err)
	}

	svc.Suspend(ctx, userID)
	if snap := store.get(userID); snap == nil || !snap.TestStarted {
		t.Fatal("Suspend must persist the snapshot")
	}

	view, err := svc.State(ctx, userID)
	if err != nil {
		t.Fatalf("State after suspend: %v", err)
	}
	if !view.Started || view.Finished {
		t.Fatal("resumed attempt must be running")
	}

	answered := 0
	for _, st := range view.Statuses {
		if st == exam.StatusAnswered {
			answered++
		}
	}
	if answered != 1 {
		t.Errorf("resumed view has %d answered questions, want 1", answered)
	}
}

func TestSubscribeDeliversFinish(t *testing.T) {
	bank, _, _, _ := buildBank(3)
	svc, _, _ := newTestService(bank)
	defer svc.Close()

	ctx := context.Background()
	userID := 5

	if _, err := svc.Start(ctx, userID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	events, cancel, err := svc.Subscribe(ctx, userID)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	if _, err := svc.Finish(ctx, userID); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("stream closed before delivering the finished event")
			}
			if ev.Kind == EventFinished {
				if ev.Result == nil || ev.Result.Total != 3 {
					t.Fatalf("finished event result = %+v", ev.Result)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for finished event")
		}
	}
}
