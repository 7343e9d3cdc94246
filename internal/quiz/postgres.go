package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads quiz definitions from Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// NewPGStore creates a Postgres-backed quiz store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// GetQuizByID assembles a quiz with its questions and answers.
func (s *PGStore) GetQuizByID(ctx context.Context, quizID string) (Definition, error) {
	var def Definition
	err := s.pool.QueryRow(ctx,
		`SELECT quiz_id, owner_id, title FROM quizzes WHERE quiz_id = $1`,
		quizID,
	).Scan(&def.ID, &def.OwnerID, &def.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return Definition{}, fmt.Errorf("quiz %s: %w", quizID, ErrNotFound)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("select quiz: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT question_id, prompt, question_type, duration_seconds, base_points
		 FROM questions WHERE quiz_id = $1 ORDER BY position`,
		quizID,
	)
	if err != nil {
		return Definition{}, fmt.Errorf("select questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &q.DurationSeconds, &q.BasePoints); err != nil {
			return Definition{}, fmt.Errorf("scan question: %w", err)
		}
		def.Questions = append(def.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return Definition{}, fmt.Errorf("iterate questions: %w", err)
	}

	for i := range def.Questions {
		answers, err := s.loadAnswers(ctx, def.Questions[i].ID)
		if err != nil {
			return Definition{}, err
		}
		def.Questions[i].Answers = answers
	}

	return def, nil
}

func (s *PGStore) loadAnswers(ctx context.Context, questionID string) ([]Answer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT answer_id, text, is_correct FROM answers WHERE question_id = $1 ORDER BY position`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.Text, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
