package triage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"symptom-triage-agent/internal/catalog"
)

// Repository persists dialog sessions. Append operations are
// compare-and-swap on the session cursor: they commit only when the caller's
// index still matches the stored question_index, so a concurrent duplicate
// turn fails with ErrStaleIndex instead of appending twice.
type Repository interface {
	Create(ctx context.Context, it *Interaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Interaction, error)
	AppendFollowup(ctx context.Context, id uuid.UUID, index int, question, answer string) error
	Complete(ctx context.Context, id uuid.UUID, index int, question, answer string, d catalog.Diagnosis) error
	ListAll(ctx context.Context) ([]Interaction, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, it *Interaction) error {
	questionsJSON, err := json.Marshal(it.AskedQuestions)
	if err != nil {
		return err
	}
	answersJSON, err := json.Marshal(it.CollectedAnswers)
	if err != nil {
		return err
	}

	now := time.Now()
	if it.CreatedAt.IsZero() {
		it.CreatedAt = now
	}
	it.UpdatedAt = now

	query := `
		INSERT INTO interactions (id, user_input, symptom_class, question_index, followup_questions, followup_answers, is_complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		it.ID, it.UserInput, it.SymptomClass, it.QuestionIndex, questionsJSON, answersJSON, it.Complete, it.CreatedAt, it.UpdatedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Interaction, error) {
	query := `
		SELECT id, user_input, symptom_class, question_index, followup_questions, followup_answers,
		       probable_condition, remedies, suggestions, common_tablets, is_complete, created_at, updated_at
		FROM interactions WHERE id = $1
	`
	it, err := scanInteraction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

// AppendFollowup appends one question/answer pair and advances the cursor in
// a single statement. The WHERE clause on question_index is the optimistic
// check; zero rows affected means the cursor moved under the caller.
func (r *postgresRepo) AppendFollowup(ctx context.Context, id uuid.UUID, index int, question, answer string) error {
	questionJSON, answerJSON, err := marshalPair(question, answer)
	if err != nil {
		return err
	}
	query := `
		UPDATE interactions
		SET followup_questions = followup_questions || $3::jsonb,
		    followup_answers = followup_answers || $4::jsonb,
		    question_index = question_index + 1,
		    updated_at = $5
		WHERE id = $1 AND question_index = $2 AND NOT is_complete
	`
	res, err := r.db.ExecContext(ctx, query, id, index, questionJSON, answerJSON, time.Now())
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Complete commits the final turn: history append, cursor advance and
// diagnosis fields in one statement, under the same cursor check as
// AppendFollowup.
func (r *postgresRepo) Complete(ctx context.Context, id uuid.UUID, index int, question, answer string, d catalog.Diagnosis) error {
	questionJSON, answerJSON, err := marshalPair(question, answer)
	if err != nil {
		return err
	}
	query := `
		UPDATE interactions
		SET followup_questions = followup_questions || $3::jsonb,
		    followup_answers = followup_answers || $4::jsonb,
		    question_index = question_index + 1,
		    probable_condition = $5,
		    remedies = $6,
		    suggestions = $7,
		    common_tablets = $8,
		    is_complete = TRUE,
		    updated_at = $9
		WHERE id = $1 AND question_index = $2 AND NOT is_complete
	`
	res, err := r.db.ExecContext(ctx, query, id, index, questionJSON, answerJSON,
		d.Condition, d.Remedies, d.Suggestions, d.CommonTablets, time.Now())
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]Interaction, error) {
	query := `
		SELECT id, user_input, symptom_class, question_index, followup_questions, followup_answers,
		       probable_condition, remedies, suggestions, common_tablets, is_complete, created_at, updated_at
		FROM interactions ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		it, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *it)
	}
	return interactions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInteraction(row rowScanner) (*Interaction, error) {
	var it Interaction
	var questionsJSON, answersJSON []byte
	var condition, remedies, suggestions, tablets sql.NullString

	err := row.Scan(
		&it.ID,
		&it.UserInput,
		&it.SymptomClass,
		&it.QuestionIndex,
		&questionsJSON,
		&answersJSON,
		&condition,
		&remedies,
		&suggestions,
		&tablets,
		&it.Complete,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &it.AskedQuestions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal followup questions: %w", err)
		}
	}
	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &it.CollectedAnswers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal followup answers: %w", err)
		}
	}
	if it.Complete {
		it.Diagnosis = &catalog.Diagnosis{
			Condition:     condition.String,
			Remedies:      remedies.String,
			Suggestions:   suggestions.String,
			CommonTablets: tablets.String,
		}
	}
	return &it, nil
}

func marshalPair(question, answer string) ([]byte, []byte, error) {
	questionJSON, err := json.Marshal([]string{question})
	if err != nil {
		return nil, nil, err
	}
	answerJSON, err := json.Marshal([]string{answer})
	if err != nil {
		return nil, nil, err
	}
	return questionJSON, answerJSON, nil
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleIndex
	}
	return nil
}
