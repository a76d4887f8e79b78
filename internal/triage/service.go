package triage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"symptom-triage-agent/internal/catalog"
)

// Oracle classifies free text against a finite candidate set. Its reply is
// unconstrained text; resolving it to a canonical candidate is this
// package's job. We declare the interface here to decouple from the concrete
// oracle implementation.
type Oracle interface {
	Classify(ctx context.Context, text string, candidates []string) (string, error)
}

// Reporter ships a completed interaction to a clinician.
type Reporter interface {
	SendClinicianReport(ctx context.Context, it Interaction) error
}

// Catalog is the read-only reference dataset as consumed by the state
// machine. *catalog.Catalog satisfies it.
type Catalog interface {
	Classes() []string
	QuestionsFor(class string) []string
	AnswersFor(class string) []string
	Diagnosis(class, answer string) (catalog.Diagnosis, bool)
}

// Service is the dialog state machine: it turns free text into a symptom
// class, walks the caller through the class's follow-up questions and
// resolves the aggregated answers to one diagnosis.
//
// Precondition: at most one in-flight turn per interaction ID. Turns for
// different interactions are independent. A violating concurrent turn loses
// the repository's cursor compare-and-swap and fails with ErrStaleIndex
// rather than corrupting history.
type Service interface {
	StartSession(ctx context.Context, rawText string) (*StartResult, error)
	SubmitFollowup(ctx context.Context, id uuid.UUID, questionIndex int, responses []string) (*TurnResult, error)
	ListInteractions(ctx context.Context) ([]Interaction, error)
}

type service struct {
	repo     Repository
	catalog  Catalog
	oracle   Oracle
	reporter Reporter // optional; nil disables clinician reports
}

func NewService(repo Repository, cat Catalog, oracle Oracle, reporter Reporter) Service {
	return &service{
		repo:     repo,
		catalog:  cat,
		oracle:   oracle,
		reporter: reporter,
	}
}

// StartSession classifies raw symptom text into a catalog class, creates the
// session and returns the class's full ordered follow-up question list.
func (s *service) StartSession(ctx context.Context, rawText string) (*StartResult, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil, ErrEmptyInput
	}

	classes := s.catalog.Classes()
	guess, err := s.oracle.Classify(ctx, rawText, classes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationUnavailable, err)
	}
	if strings.TrimSpace(guess) == "" {
		return nil, ErrClassificationUnavailable
	}

	// The oracle's reply is resolved against the known class set instead of
	// being trusted verbatim; an unrecognised class would otherwise produce
	// a session whose catalog lookups all come back empty.
	class, ok := MatchAnswer(guess, classes)
	if !ok {
		return nil, fmt.Errorf("%w: symptom class %q", ErrNoMatchFound, guess)
	}

	it := &Interaction{
		ID:               uuid.New(),
		UserInput:        rawText,
		SymptomClass:     class,
		AskedQuestions:   []string{},
		CollectedAnswers: []string{},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return &StartResult{
		InteractionID: it.ID,
		SymptomClass:  class,
		Questions:     s.catalog.QuestionsFor(class),
	}, nil
}

// SubmitFollowup records the answer to the question at questionIndex and
// either returns the next question or, on the last question, finalizes the
// session. questionIndex must match the stored cursor; it is an optimistic
// check, not the operation's driving parameter.
func (s *service) SubmitFollowup(ctx context.Context, id uuid.UUID, questionIndex int, responses []string) (*TurnResult, error) {
	if len(responses) == 0 || strings.TrimSpace(responses[len(responses)-1]) == "" {
		return nil, ErrEmptyInput
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions := s.catalog.QuestionsFor(it.SymptomClass)
	if questionIndex < 0 || questionIndex >= len(questions) {
		return nil, fmt.Errorf("%w: index %d of %d questions", ErrIndexOutOfRange, questionIndex, len(questions))
	}
	if questionIndex != it.QuestionIndex {
		return nil, fmt.Errorf("%w: request index %d, session cursor %d", ErrStaleIndex, questionIndex, it.QuestionIndex)
	}

	question := questions[questionIndex]
	answer := responses[len(responses)-1]

	if questionIndex == len(questions)-1 {
		return s.finalize(ctx, it, questionIndex, question, answer, responses)
	}

	if err := s.repo.AppendFollowup(ctx, id, questionIndex, question, answer); err != nil {
		return nil, err
	}
	return &TurnResult{
		NextQuestion:      questions[questionIndex+1],
		NextQuestionIndex: questionIndex + 1,
	}, nil
}

// finalize classifies the aggregated answers against the class's candidate
// answer set, resolves the diagnosis record and commits the terminal turn.
// All resolution happens before the write, so a failure here leaves the
// session untouched.
func (s *service) finalize(ctx context.Context, it *Interaction, questionIndex int, question, answer string, responses []string) (*TurnResult, error) {
	candidates := s.catalog.AnswersFor(it.SymptomClass)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: class %q", ErrNoCandidateAnswers, it.SymptomClass)
	}

	aggregated := strings.Join(responses, " ")
	guess, err := s.oracle.Classify(ctx, aggregated, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationUnavailable, err)
	}
	if strings.TrimSpace(guess) == "" {
		return nil, ErrClassificationUnavailable
	}

	matched, ok := MatchAnswer(guess, candidates)
	if !ok {
		return nil, fmt.Errorf("%w: answer %q", ErrNoMatchFound, guess)
	}

	record, ok := s.catalog.Diagnosis(it.SymptomClass, matched)
	if !ok {
		return nil, fmt.Errorf("%w: (%q, %q)", ErrNoDiagnosisRecord, it.SymptomClass, matched)
	}

	if err := s.repo.Complete(ctx, it.ID, questionIndex, question, answer, record); err != nil {
		return nil, err
	}

	if s.reporter != nil {
		completed := *it
		completed.AskedQuestions = append(append([]string(nil), it.AskedQuestions...), question)
		completed.CollectedAnswers = append(append([]string(nil), it.CollectedAnswers...), answer)
		completed.QuestionIndex = questionIndex + 1
		completed.Diagnosis = &record
		completed.Complete = true
		go func(it Interaction) {
			if err := s.reporter.SendClinicianReport(context.Background(), it); err != nil {
				log.Printf("failed to send clinician report for %s: %v", it.ID, err)
			}
		}(completed)
	}

	return &TurnResult{Complete: true, Diagnosis: &record}, nil
}

// ListInteractions returns every session snapshot, most recent first.
func (s *service) ListInteractions(ctx context.Context) ([]Interaction, error) {
	return s.repo.ListAll(ctx)
}
