package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siddhant230/draftclaim"
)

// Compile-time interface verification.
var _ draftclaim.AnswerService = (*AnswerService)(nil)

// AnswerService implements draftclaim.AnswerService using SQLite.
type AnswerService struct {
	db *DB
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(db *DB) *AnswerService {
	return &AnswerService{db: db}
}

// CreateAnswer archives a single answer.
func (s *AnswerService) CreateAnswer(ctx context.Context, answer *draftclaim.AnswerRecord) error {
	if err := answer.Validate(); err != nil {
		return err
	}

	answer.ID = uuid.New().String()
	answer.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, run_id, question_index, question, answer, context, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, answer.ID, answer.RunID, answer.QuestionIndex, answer.Question, answer.Answer,
		answer.Context, answer.CreatedAt.Format(time.RFC3339))

	return err
}

// CreateAnswers archives a batch of answers atomically. Validation
// failures abort the batch before anything is written.
func (s *AnswerService) CreateAnswers(ctx context.Context, answers []*draftclaim.AnswerRecord) error {
	for _, answer := range answers {
		if err := answer.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, answer := range answers {
		answer.ID = uuid.New().String()
		answer.CreatedAt = now

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO answers (id, run_id, question_index, question, answer, context, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, answer.ID, answer.RunID, answer.QuestionIndex, answer.Question, answer.Answer,
			answer.Context, answer.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindAnswers retrieves archived answers matching the filter, ordered by
// question index.
func (s *AnswerService) FindAnswers(ctx context.Context, filter draftclaim.AnswerFilter) ([]*draftclaim.AnswerRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, question_index, question, answer, context, created_at FROM answers WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}

	query.WriteString(" ORDER BY question_index ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*draftclaim.AnswerRecord
	for rows.Next() {
		var answer draftclaim.AnswerRecord
		var createdAt string

		if err := rows.Scan(&answer.ID, &answer.RunID, &answer.QuestionIndex, &answer.Question,
			&answer.Answer, &answer.Context, &createdAt); err != nil {
			return nil, err
		}

		answer.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		answers = append(answers, &answer)
	}

	return answers, rows.Err()
}
