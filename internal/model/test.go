package model

// AnswerRequest selects a choice for a question in a running test.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	ChoiceID   string `json:"choice_id" binding:"required,uuid"`
}

// CheckRequest locks in the answer for a question.
type CheckRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
}

// NavigateRequest moves the current question pointer.
type NavigateRequest struct {
	Action string `json:"action" binding:"required,oneof=next prev jump"`
	Index  int    `json:"index" binding:"min=0"`
}
