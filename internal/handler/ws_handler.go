package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/avtomaktab/avtotest-backend/internal/middleware"
	"github.com/avtomaktab/avtotest-backend/internal/service"
	ws "github.com/avtomaktab/avtotest-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a running test attempt over WebSocket: countdown ticks
// and the final result go out, answers and checks come in.
type WSHandler struct {
	testService *service.TestService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(testService *service.TestService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		testService: testService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// TestStream godoc
// WS /ws/v1/test/stream?token=...
// Upgrades to WebSocket for the duration of one test attempt. When the
// socket drops mid-attempt the session is suspended, to be resumed from
// its snapshot on the next connection.
func (h *WSHandler) TestStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID := claims.UserID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel, err := h.testService.Subscribe(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveTest) {
			ws.WriteError(conn, "no running test to stream")
		} else {
			ws.WriteError(conn, "subscribe failed")
		}
		return
	}
	defer cancel()

	wsLog := h.log.With().Int("user_id", userID).Logger()
	wsLog.Info().Msg("Test taker connected")

	// gorilla/websocket permits one concurrent writer; the event
	// forwarder and the action reader share this mutex.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	readerDone := make(chan struct{})
	go h.readActions(conn, wsLog, userID, write, readerDone)

	finished := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				// Session finished or was dropped elsewhere.
				finished = true
				goto done
			}
			switch ev.Kind {
			case service.EventTick:
				if err := write(ws.TickResponse{Event: ws.EventTick, TimeLeft: ev.TimeLeft}); err != nil {
					goto done
				}
			case service.EventFinished:
				finished = true
				if ev.Result != nil {
					_ = write(ws.FinishedResponse{
						Event:      ws.EventFinished,
						Correct:    ev.Result.Correct,
						Total:      ev.Result.Total,
						Percentage: ev.Result.Percentage,
						Passed:     ev.Result.Passed,
					})
				}
				goto done
			}
		case <-readerDone:
			goto done
		}
	}

done:
	if !finished {
		// Closing the page pauses the countdown, like putting a paper
		// test back in the envelope.
		h.testService.Suspend(context.Background(), userID)
	}
	wsLog.Info().Msg("Test taker disconnected")
}

// readActions consumes client messages until the connection drops.
func (h *WSHandler) readActions(conn *websocket.Conn, wsLog zerolog.Logger, userID int, write func(interface{}) error, done chan<- struct{}) {
	defer close(done)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		ctx := context.Background()
		switch msg.Action {
		case ws.ActionPing:
			_ = write(ws.PongResponse{Event: ws.EventPong})

		case ws.ActionAnswer:
			questionID, err1 := uuid.Parse(msg.QuestionID)
			choiceID, err2 := uuid.Parse(msg.ChoiceID)
			if err1 != nil || err2 != nil {
				_ = write(ws.ErrorResponse{Event: ws.EventError, Error: "question_id and choice_id must be UUIDs"})
				continue
			}
			if _, err := h.testService.Select(ctx, userID, questionID, choiceID); err != nil {
				_ = write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
			}

		case ws.ActionCheck:
			questionID, err := uuid.Parse(msg.QuestionID)
			if err != nil {
				_ = write(ws.ErrorResponse{Event: ws.EventError, Error: "question_id must be a UUID"})
				continue
			}
			correct, _, err := h.testService.Check(ctx, userID, questionID)
			if err != nil {
				_ = write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
				continue
			}
			_ = write(ws.CheckedResponse{Event: ws.EventChecked, Correct: correct, QID: msg.QuestionID})

		case ws.ActionFinish:
			if _, err := h.testService.Finish(ctx, userID); err != nil {
				_ = write(ws.ErrorResponse{Event: ws.EventError, Error: err.Error()})
			}
			// The finished event arrives through the subscription.

		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			_ = write(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)})
		}
	}
}
