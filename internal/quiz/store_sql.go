package quiz

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLStore runs against sqlite and postgres alike: both drivers accept
// the $1 placeholder style and INSERT ... RETURNING.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) InsertQuiz(ctx context.Context, userID, subjectID int64, totalQuestions int) (Quiz, error) {
	q := Quiz{
		UserID:         userID,
		SubjectID:      subjectID,
		TotalQuestions: totalQuestions,
		Status:         StatusCreating,
		CreatedAt:      time.Now().Unix(),
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quizzes (user_id, subject_id, total_questions, status, created_at)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		q.UserID, q.SubjectID, q.TotalQuestions, q.Status, q.CreatedAt).Scan(&q.ID)
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, subject_id, total_questions, status, created_at FROM quizzes WHERE id=$1`, id)
	var q Quiz
	if err := row.Scan(&q.ID, &q.UserID, &q.SubjectID, &q.TotalQuestions, &q.Status, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuizzesByUser(ctx context.Context, userID int64) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, subject_id, total_questions, status, created_at
		 FROM quizzes WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Quiz
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.UserID, &q.SubjectID, &q.TotalQuestions, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE quizzes SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	return err
}

func (s *SQLStore) InsertQuestion(ctx context.Context, quizID int64, description string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO questions (quiz_id, description) VALUES ($1,$2) RETURNING id`,
		quizID, description).Scan(&id)
	return id, err
}

func (s *SQLStore) InsertOption(ctx context.Context, questionID int64, description string, referenceNumber int, isCorrect bool) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO question_options (question_id, description, reference_number, is_correct)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		questionID, description, referenceNumber, isCorrect).Scan(&id)
	return id, err
}

func (s *SQLStore) QuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, description FROM questions WHERE quiz_id=$1 ORDER BY id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Description); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		opts, err := s.optionsByQuestion(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = opts

		last, err := s.lastAttempt(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].LastAttempt = last
	}
	return questions, nil
}

func (s *SQLStore) optionsByQuestion(ctx context.Context, questionID int64) ([]Option, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_id, description, reference_number, is_correct
		 FROM question_options WHERE question_id=$1 ORDER BY reference_number`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Description, &o.ReferenceNumber, &o.IsCorrect); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (s *SQLStore) lastAttempt(ctx context.Context, questionID int64) (*AttemptRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT question_id, selected_option_id, is_correct FROM question_attempts
		 WHERE question_id=$1 ORDER BY id DESC LIMIT 1`, questionID)
	var a AttemptRecord
	if err := row.Scan(&a.QuestionID, &a.SelectedOptionID, &a.IsCorrect); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *SQLStore) InsertAttempt(ctx context.Context, questionID, selectedOptionID int64, isCorrect bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO question_attempts (question_id, selected_option_id, is_correct, created_at)
		 VALUES ($1,$2,$3,$4)`,
		questionID, selectedOptionID, isCorrect, time.Now().Unix())
	return err
}

func (s *SQLStore) DeleteStaleCreating(ctx context.Context, cutoff time.Time) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM quizzes WHERE status=$1 AND created_at < $2`, StatusCreating, cutoff.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := s.DeleteQuiz(ctx, id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
