package exam

import (
	"context"

	"github.com/google/uuid"
)

// Snapshot is the durable mirror of a running session, written on every
// relevant state change so a reload can resume an in-progress attempt.
// The field names preserve the application's historical wire format.
// The question payload itself is never snapshotted: a resume re-fetches
// the bank fresh and the maps are applied on top of the new sample.
type Snapshot struct {
	TestStarted bool              `json:"testStarted"`
	Current     int               `json:"current"`
	Answers     map[string]string `json:"answers"`
	Checked     map[string]bool   `json:"checked"`
	TimeLeft    int               `json:"timeLeft"`
	ShowResult  bool              `json:"showResult"`
}

// SnapshotStore persists session snapshots keyed by user. Implementations
// are injected into the session controller so tests can fake them.
// Saves are best-effort: a failed write is tolerated and the session
// continues in memory only.
type SnapshotStore interface {
	// Load returns the stored snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context, userID int) (*Snapshot, error)
	Save(ctx context.Context, userID int, snap *Snapshot) error
	Clear(ctx context.Context, userID int) error
}

// Snapshot captures the session's durable state.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		TestStarted: s.started,
		Current:     s.current,
		Answers:     make(map[string]string, len(s.answers)),
		Checked:     make(map[string]bool, len(s.checked)),
		TimeLeft:    s.timeLeft,
		ShowResult:  s.finished,
	}
	for qid, cid := range s.answers {
		snap.Answers[qid.String()] = cid.String()
	}
	for qid, ok := range s.checked {
		snap.Checked[qid.String()] = ok
	}
	return snap
}

// Restore applies a stored snapshot onto a freshly built session.
// Entries referencing question ids absent from the new sample are kept
// in the maps but resolve to "unanswered"/"not checked" everywhere,
// since all lookups go through the session's own question list.
// Malformed ids are dropped. The current index is clamped into range
// and the clock never restores below zero. A finished snapshot re-scores
// the restored answers so the result view has numbers to show.
func (s *Session) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = snap.TestStarted
	s.finished = false

	s.current = snap.Current
	if s.current < 0 {
		s.current = 0
	}
	if s.current > len(s.questions)-1 {
		s.current = len(s.questions) - 1
	}

	s.timeLeft = snap.TimeLeft
	if s.timeLeft < 0 {
		s.timeLeft = 0
	}

	s.answers = make(map[uuid.UUID]uuid.UUID, len(snap.Answers))
	for qs, cs := range snap.Answers {
		qid, err := uuid.Parse(qs)
		if err != nil {
			continue
		}
		cid, err := uuid.Parse(cs)
		if err != nil {
			continue
		}
		s.answers[qid] = cid
	}

	s.checked = make(map[uuid.UUID]bool, len(snap.Checked))
	for qs, ok := range snap.Checked {
		qid, err := uuid.Parse(qs)
		if err != nil {
			continue
		}
		s.checked[qid] = ok
	}

	// The result is never snapshotted; recompute it over the restored
	// answers so a reloaded result screen still has its scores.
	if snap.ShowResult {
		s.finishLocked()
	}
}
