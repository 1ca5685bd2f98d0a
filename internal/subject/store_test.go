package subject

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/quizforge/quizforge/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "subject.db") + "?_pragma=foreign_keys(1)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return dbh
}

func seed(t *testing.T, dbh *sql.DB) (langID, subjID int64) {
	t.Helper()
	ctx := context.Background()
	if err := dbh.QueryRowContext(ctx,
		`INSERT INTO languages (name) VALUES ($1) RETURNING id`, "English").Scan(&langID); err != nil {
		t.Fatal(err)
	}
	if err := dbh.QueryRowContext(ctx,
		`INSERT INTO subjects (name, description, language_id) VALUES ($1,$2,$3) RETURNING id`,
		"Go Basics", "syntax and types", langID).Scan(&subjID); err != nil {
		t.Fatal(err)
	}
	return langID, subjID
}

func TestGetSubject(t *testing.T) {
	dbh := openTestDB(t)
	_, subjID := seed(t, dbh)
	store := NewSQLStore(dbh)

	sub, err := store.Get(context.Background(), subjID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.Name != "Go Basics" || sub.Language != "English" {
		t.Fatalf("got %+v", sub)
	}

	if _, err := store.Get(context.Background(), subjID+1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown subject: got %v, want ErrNotFound", err)
	}
}

func TestSubjectLookupAdapter(t *testing.T) {
	dbh := openTestDB(t)
	_, subjID := seed(t, dbh)
	store := NewSQLStore(dbh)

	name, language, err := store.Subject(context.Background(), subjID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if name != "Go Basics" || language != "English" {
		t.Fatalf("got %q/%q", name, language)
	}
}

func TestListSubjectsAndLanguages(t *testing.T) {
	dbh := openTestDB(t)
	langID, _ := seed(t, dbh)
	var other int64
	if err := dbh.QueryRowContext(context.Background(),
		`INSERT INTO subjects (name, description, language_id) VALUES ($1,$2,$3) RETURNING id`,
		"Algebra", "", langID).Scan(&other); err != nil {
		t.Fatal(err)
	}
	store := NewSQLStore(dbh)

	subjects, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("got %d subjects", len(subjects))
	}
	// Alphabetical.
	if subjects[0].Name != "Algebra" || subjects[1].Name != "Go Basics" {
		t.Fatalf("order: %q, %q", subjects[0].Name, subjects[1].Name)
	}

	languages, err := store.ListLanguages(context.Background())
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if len(languages) != 1 || languages[0].Name != "English" {
		t.Fatalf("got %+v", languages)
	}
}
