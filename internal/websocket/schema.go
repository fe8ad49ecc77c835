package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer Action = "answer"
	ActionCheck  Action = "check"
	ActionFinish Action = "finish"
	ActionPing   Action = "ping"
)

// RequestPayload is the single client message shape; fields irrelevant to
// the action stay empty.
type RequestPayload struct {
	Action     Action `json:"action"`
	QuestionID string `json:"question_id,omitempty"`
	ChoiceID   string `json:"choice_id,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventTick     Event = "tick"
	EventChecked  Event = "checked"
	EventFinished Event = "finished"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// TickResponse carries one second of countdown.
type TickResponse struct {
	Event    Event `json:"event"`
	TimeLeft int   `json:"time_left"`
}

// CheckedResponse is the transient feedback after locking in an answer.
type CheckedResponse struct {
	Event   Event  `json:"event"`
	Correct bool   `json:"correct"`
	QID     string `json:"question_id"`
}

// FinishedResponse carries the scored attempt.
type FinishedResponse struct {
	Event      Event   `json:"event"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
