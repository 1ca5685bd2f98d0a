// Package subject exposes the subject/language catalog quizzes are
// generated against.
package subject

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("subject not found")

type Subject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, id int64) (Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.name, s.description, l.name
		 FROM subjects s JOIN languages l ON l.id = s.language_id
		 WHERE s.id=$1`, id)
	var sub Subject
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Description, &sub.Language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subject{}, fmt.Errorf("%w: id=%d", ErrNotFound, id)
		}
		return Subject{}, err
	}
	return sub, nil
}

// Subject satisfies the quiz service's lookup contract.
func (s *SQLStore) Subject(ctx context.Context, subjectID int64) (string, string, error) {
	sub, err := s.Get(ctx, subjectID)
	if err != nil {
		return "", "", err
	}
	return sub.Name, sub.Language, nil
}

func (s *SQLStore) List(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.name, s.description, l.name
		 FROM subjects s JOIN languages l ON l.id = s.language_id
		 ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subject
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Description, &sub.Language); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM languages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Language
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
