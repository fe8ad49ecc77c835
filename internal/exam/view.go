package exam

import (
	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
)

// QuestionStatus is the display status of one question in the grid.
type QuestionStatus string

const (
	StatusUnanswered QuestionStatus = "unanswered"
	StatusAnswered   QuestionStatus = "answered"
	StatusCorrect    QuestionStatus = "correct"
	StatusIncorrect  QuestionStatus = "incorrect"
)

// QuestionView is the current question as shown to the test taker:
// choices carry no correctness flag, feedback only comes from Check.
type QuestionView struct {
	Index          int                   `json:"index"`
	ID             uuid.UUID             `json:"id"`
	QuestionText   string                `json:"question_text"`
	ImageURL       *string               `json:"image_url,omitempty"`
	Choices        []model.ChoiceForUser `json:"choices"`
	SelectedChoice *uuid.UUID            `json:"selected_choice,omitempty"`
	Checked        bool                  `json:"checked"`
}

// View is the full display model of a session: a pure projection of
// (questions, answers, checked, current) rebuilt on every request.
type View struct {
	Started    bool             `json:"started"`
	Finished   bool             `json:"finished"`
	Current    int              `json:"current"`
	Total      int              `json:"total"`
	TimeLeft   int              `json:"time_left"`
	Question   *QuestionView    `json:"question,omitempty"`
	Pagination []Marker         `json:"pagination"`
	Statuses   []QuestionStatus `json:"statuses"`
	Result     *Result          `json:"result,omitempty"`
}

// View builds the display model for the session's current state.
func (s *Session) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &View{
		Started:    s.started,
		Finished:   s.finished,
		Current:    s.current,
		Total:      len(s.questions),
		TimeLeft:   s.timeLeft,
		Pagination: PageMarkers(s.current, len(s.questions)),
		Statuses:   s.statusesLocked(),
		Result:     s.result,
	}

	if s.started && !s.finished && s.current < len(s.questions) {
		q := s.questions[s.current]
		qv := &QuestionView{
			Index:        s.current,
			ID:           q.ID,
			QuestionText: q.QuestionText,
			ImageURL:     q.ImageURL,
			Checked:      s.checked[q.ID],
		}
		for _, c := range s.choices[q.ID] {
			qv.Choices = append(qv.Choices, model.ChoiceForUser{
				ID:         c.ID,
				QuestionID: c.QuestionID,
				ChoiceText: c.ChoiceText,
			})
		}
		if cid, ok := s.answers[q.ID]; ok {
			qv.SelectedChoice = &cid
		}
		v.Question = qv
	}

	return v
}

func (s *Session) statusesLocked() []QuestionStatus {
	statuses := make([]QuestionStatus, len(s.questions))
	for i, q := range s.questions {
		answer, answered := s.answers[q.ID]
		switch {
		case s.checked[q.ID] && answered:
			if answer == s.correct[q.ID] {
				statuses[i] = StatusCorrect
			} else {
				statuses[i] = StatusIncorrect
			}
		case answered:
			statuses[i] = StatusAnswered
		default:
			statuses[i] = StatusUnanswered
		}
	}
	return statuses
}
