package model

import "time"

// TestResult is a persisted record of one finished exam attempt.
// Written asynchronously by the result worker; read by the stats service.
type TestResult struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Passed    bool      `json:"passed"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats aggregates a user's stored test results for the dashboard.
type UserStats struct {
	TotalTests   int                    `json:"total_tests"`
	AverageScore int                    `json:"average_score"`
	BestScore    int                    `json:"best_score"`
	PassedTests  int                    `json:"passed_tests"`
	PassRate     int                    `json:"pass_rate"`
	RecentTests  []TestResult           `json:"recent_tests"`
	MonthlyStats map[string]MonthlyStat `json:"monthly_stats"`
}

// MonthlyStat is one month's bucket inside UserStats, keyed "YYYY-MM".
type MonthlyStat struct {
	Count      int `json:"count"`
	TotalScore int `json:"total_score"`
}
