package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains finished test scores from the Redis queue and
// persists them to PostgreSQL in batches. Keeps the finish endpoint fast
// even when many attempts end at once.
type ResultWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewResultWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "result_worker").Logger(),
	}
}

type resultPayload struct {
	UserID     int       `json:"user_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Passed     bool      `json:"passed"`
	FinishedAt time.Time `json:"finished_at"`
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*resultPayload, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p resultPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper
// ----------------------------------------------------------------

func (w *ResultWorker) flushSafe(ctx context.Context, batch []*resultPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsertResults(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk result insert failed, using fallback")

		for _, p := range batch {
			if err := w.persistSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Int("user_id", p.UserID).Msg("persistSingle failed, requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
	}
}

// ----------------------------------------------------------------
// BULK PostgreSQL INSERT using UNNEST
// ----------------------------------------------------------------

func (w *ResultWorker) bulkInsertResults(ctx context.Context, batch []*resultPayload) error {
	n := len(batch)

	userIDs := make([]int, 0, n)
	scores := make([]int, 0, n)
	totals := make([]int, 0, n)
	passed := make([]bool, 0, n)
	finishedAts := make([]time.Time, 0, n)

	for _, p := range batch {
		userIDs = append(userIDs, p.UserID)
		scores = append(scores, p.Score)
		totals = append(totals, p.Total)
		passed = append(passed, p.Passed)
		finishedAts = append(finishedAts, p.FinishedAt)
	}

	query := `
		INSERT INTO test_results (user_id, score, total, passed, created_at)
		SELECT u.user_id, u.score, u.total, u.passed, u.finished_at
		FROM UNNEST(
			$1::int[],
			$2::int[],
			$3::int[],
			$4::bool[],
			$5::timestamptz[]
		) AS u (user_id, score, total, passed, finished_at)
	`

	_, err := w.pool.Exec(ctx, query, userIDs, scores, totals, passed, finishedAts)
	return err
}

// ----------------------------------------------------------------
// FALLBACK single insert
// ----------------------------------------------------------------

func (w *ResultWorker) persistSingle(ctx context.Context, p *resultPayload) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO test_results (user_id, score, total, passed, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.UserID, p.Score, p.Total, p.Passed, p.FinishedAt,
	)
	return err
}
