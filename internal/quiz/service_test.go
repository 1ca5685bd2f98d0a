package quiz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge/internal/event"
	"github.com/quizforge/quizforge/internal/prompt"
)

type fakeSubjects struct{}

func (fakeSubjects) Subject(_ context.Context, subjectID int64) (string, string, error) {
	if subjectID != 1 {
		return "", "", ErrSubjectNotFound
	}
	return "Go Basics", "English", nil
}

type fakeThemes struct{}

func (fakeThemes) CurrentTheme(context.Context, int64) (string, error) {
	return "space exploration", nil
}

type fakeClient struct {
	response string
	err      error
	prompts  chan string
}

func (f *fakeClient) Complete(_ context.Context, p string) (string, error) {
	if f.prompts != nil {
		f.prompts <- p
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testPromptBuilder(t *testing.T) *prompt.Builder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz_prompt.tmpl")
	tmpl := "Generate {{.TotalQuestions}} questions about {{.Subject}} in {{.Language}}, themed around {{.Theme}}."
	if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := prompt.Load(path)
	if err != nil {
		t.Fatalf("load prompt template: %v", err)
	}
	return b
}

func newTestService(t *testing.T, store Store, client *fakeClient) (*Service, *event.Bus) {
	t.Helper()
	bus := event.NewBus(10)
	svc := NewService(store, fakeSubjects{}, fakeThemes{}, client, testPromptBuilder(t), bus, zerolog.Nop(), time.Second)
	return svc, bus
}

func TestCreateQuizReturnsPlaceholderImmediately(t *testing.T) {
	store := NewInMemoryStore()
	client := &fakeClient{response: generatedTwo, prompts: make(chan string, 1)}
	svc, bus := newTestService(t, store, client)

	q, err := svc.CreateQuiz(context.Background(), 7, 1, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.Status != StatusCreating {
		t.Fatalf("status = %q, want %q", q.Status, StatusCreating)
	}
	if q.UserID != 7 || q.TotalQuestions != 2 {
		t.Fatalf("unexpected quiz: %+v", q)
	}

	// Prompt carries the resolved subject, language and theme.
	select {
	case p := <-client.prompts:
		for _, want := range []string{"2 questions", "Go Basics", "English", "space exploration"} {
			if !strings.Contains(p, want) {
				t.Errorf("prompt missing %q: %s", want, p)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("completion call never dispatched")
	}

	// The generation result lands on the bus.
	select {
	case ev := <-bus.Events():
		if ev.QuizID != q.ID {
			t.Fatalf("event for quiz %d, want %d", ev.QuizID, q.ID)
		}
		if ev.ID == "" {
			t.Error("event missing correlation id")
		}
	case <-time.After(time.Second):
		t.Fatal("generation event never published")
	}
}

func TestCreateQuizStripsFences(t *testing.T) {
	store := NewInMemoryStore()
	client := &fakeClient{response: "```json\n" + generatedTwo + "\n```"}
	svc, bus := newTestService(t, store, client)

	if _, err := svc.CreateQuiz(context.Background(), 1, 1, 2); err != nil {
		t.Fatalf("create: %v", err)
	}
	select {
	case ev := <-bus.Events():
		if strings.Contains(ev.Response, "```") {
			t.Fatalf("fences survived: %s", ev.Response)
		}
	case <-time.After(time.Second):
		t.Fatal("generation event never published")
	}
}

func TestCreateQuizRejectsNonPositiveCount(t *testing.T) {
	store := NewInMemoryStore()
	svc, _ := newTestService(t, store, &fakeClient{response: generatedTwo})

	for _, n := range []int{0, -3} {
		if _, err := svc.CreateQuiz(context.Background(), 1, 1, n); !errors.Is(err, ErrInvalidQuestionCount) {
			t.Errorf("count %d: got %v, want ErrInvalidQuestionCount", n, err)
		}
	}
	if quizzes, _ := store.ListQuizzesByUser(context.Background(), 1); len(quizzes) != 0 {
		t.Fatalf("rejected create left %d quizzes behind", len(quizzes))
	}
}

func TestCreateQuizUnknownSubjectLeavesNoRow(t *testing.T) {
	store := NewInMemoryStore()
	svc, _ := newTestService(t, store, &fakeClient{response: generatedTwo})

	if _, err := svc.CreateQuiz(context.Background(), 1, 99, 2); !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("got %v, want ErrSubjectNotFound", err)
	}
	if quizzes, _ := store.ListQuizzesByUser(context.Background(), 1); len(quizzes) != 0 {
		t.Fatalf("failed create left %d quizzes behind", len(quizzes))
	}
}

func TestFailedCompletionLeavesQuizCreating(t *testing.T) {
	store := NewInMemoryStore()
	client := &fakeClient{err: errors.New("provider unavailable"), prompts: make(chan string, 1)}
	svc, bus := newTestService(t, store, client)

	q, err := svc.CreateQuiz(context.Background(), 1, 1, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	<-client.prompts

	select {
	case ev := <-bus.Events():
		t.Fatalf("unexpected event after failed completion: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
	got, err := store.GetQuiz(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusCreating {
		t.Fatalf("status = %q, want %q", got.Status, StatusCreating)
	}
}

func TestQuestionsByQuizUnknownQuiz(t *testing.T) {
	svc, _ := newTestService(t, NewInMemoryStore(), &fakeClient{response: generatedTwo})
	if _, err := svc.QuestionsByQuiz(context.Background(), 42); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("got %v, want ErrQuizNotFound", err)
	}
}

// TestGenerationPipelineEndToEnd drives the full flow: create, generate,
// process, poll to ready, then grade.
func TestGenerationPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewInMemoryStore()
	client := &fakeClient{response: generatedTwo}
	bus := event.NewBus(event.DefaultBuffer)
	svc := NewService(store, fakeSubjects{}, fakeThemes{}, client, testPromptBuilder(t), bus, zerolog.Nop(), time.Second)
	go NewProcessor(store, bus, zerolog.Nop()).Run(ctx)

	q, err := svc.CreateQuiz(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		got, err := svc.GetQuiz(ctx, q.ID)
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		if got.Status == StatusReady {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("quiz never became ready, status %q", got.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	questions, err := svc.QuestionsByQuiz(ctx, q.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}

	answers := make([]AnswerInput, 0, len(questions))
	for _, qu := range questions {
		for _, o := range qu.Options {
			if o.IsCorrect {
				answers = append(answers, AnswerInput{QuestionID: qu.ID, SelectedOptionID: o.ID})
			}
		}
	}
	grades, err := svc.GradeAttempt(ctx, q.ID, answers)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	for _, g := range grades {
		if !g.IsCorrect {
			t.Errorf("question %d graded incorrect for the correct option", g.QuestionID)
		}
	}

	got, _ := svc.GetQuiz(ctx, q.ID)
	if got.Status != StatusCompleted {
		t.Fatalf("status = %q, want %q", got.Status, StatusCompleted)
	}
}
