package triage

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"symptom-triage-agent/internal/catalog"
)

// Failure kinds surfaced by the dialog state machine. Every failure is
// terminal for the current turn and never partially mutates stored state.
var (
	ErrEmptyInput                = errors.New("empty input")
	ErrClassificationUnavailable = errors.New("classification unavailable")
	ErrIndexOutOfRange           = errors.New("question index out of range")
	ErrStaleIndex                = errors.New("question index does not match session cursor")
	ErrNoCandidateAnswers        = errors.New("no candidate answers for symptom class")
	ErrNoMatchFound              = errors.New("no matching answer found")
	ErrNoDiagnosisRecord         = errors.New("no diagnosis record for matched answer")
	ErrNotFound                  = errors.New("interaction not found")
)

// Interaction is the aggregate root: one row per dialog session, with the
// question/answer history appended turn by turn.
//
// Invariants: AskedQuestions and CollectedAnswers stay parallel and their
// length equals QuestionIndex; SymptomClass never changes after creation;
// Diagnosis is nil until the session completes.
type Interaction struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserInput     string    `json:"user_input" db:"user_input"`
	SymptomClass  string    `json:"symptom_class" db:"symptom_class"`
	QuestionIndex int       `json:"question_index" db:"question_index"`

	AskedQuestions   []string `json:"followup_questions" db:"followup_questions"`
	CollectedAnswers []string `json:"followup_answers" db:"followup_answers"`

	Diagnosis *catalog.Diagnosis `json:"diagnosis,omitempty"`

	Complete  bool      `json:"is_complete" db:"is_complete"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StartResult is returned when a dialog session begins: the resolved class
// and its full ordered follow-up question list.
type StartResult struct {
	InteractionID uuid.UUID `json:"interaction_id"`
	SymptomClass  string    `json:"predicted_symptom"`
	Questions     []string  `json:"followup_questions"`
}

// TurnResult is returned by a follow-up turn: either the next question to
// ask or, on the last turn, the resolved diagnosis.
type TurnResult struct {
	Complete          bool               `json:"is_complete"`
	NextQuestion      string             `json:"next_question,omitempty"`
	NextQuestionIndex int                `json:"next_question_index,omitempty"`
	Diagnosis         *catalog.Diagnosis `json:"details,omitempty"`
}
