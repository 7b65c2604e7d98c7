package voting

// AcceptanceState is the per-question state: no accepted answer, or exactly one.
type AcceptanceState struct {
	AnswerID *uint
}

// AcceptOutcome describes what an accept request changed.
type AcceptOutcome struct {
	// Previous is the answer that lost acceptance, if any.
	Previous *uint
	// Changed is false when the answer was already accepted. No bonus is
	// granted in that case.
	Changed bool
}

func (s AcceptanceState) Accepted() bool {
	return s.AnswerID != nil
}

// Accept moves the question to AcceptedAnswer(answerID).
func (s AcceptanceState) Accept(answerID uint) (AcceptanceState, AcceptOutcome) {
	if s.AnswerID != nil && *s.AnswerID == answerID {
		return s, AcceptOutcome{}
	}
	id := answerID
	return AcceptanceState{AnswerID: &id}, AcceptOutcome{Previous: s.AnswerID, Changed: true}
}

// AcceptRequest carries the facts the acceptance checks need.
type AcceptRequest struct {
	QuestionID       uint
	QuestionAuthorID uint
	QuestionActive   bool
	AnswerQuestionID uint
	AnswerActive     bool
	RequesterID      uint
}

// CheckAcceptance validates an accept request. Only the asker may accept,
// and only an active answer that belongs to the active question.
func CheckAcceptance(r AcceptRequest) error {
	if !r.QuestionActive || !r.AnswerActive {
		return ErrNotFound
	}
	if r.AnswerQuestionID != r.QuestionID {
		return ErrInvalidTarget
	}
	if r.RequesterID != r.QuestionAuthorID {
		return ErrPermission
	}
	return nil
}
