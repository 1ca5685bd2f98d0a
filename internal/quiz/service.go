package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge/internal/ai"
	"github.com/quizforge/quizforge/internal/event"
	"github.com/quizforge/quizforge/internal/prompt"
)

// SubjectLookup resolves a subject to the name and language used in the
// generation prompt.
type SubjectLookup interface {
	Subject(ctx context.Context, subjectID int64) (name, language string, err error)
}

// ThemeLookup resolves a user's currently selected theme description.
type ThemeLookup interface {
	CurrentTheme(ctx context.Context, userID int64) (string, error)
}

type Service struct {
	store    Store
	subjects SubjectLookup
	themes   ThemeLookup
	client   ai.CompletionClient
	prompts  *prompt.Builder
	bus      *event.Bus
	log      zerolog.Logger

	completionTimeout time.Duration
}

func NewService(
	store Store,
	subjects SubjectLookup,
	themes ThemeLookup,
	client ai.CompletionClient,
	prompts *prompt.Builder,
	bus *event.Bus,
	log zerolog.Logger,
	completionTimeout time.Duration,
) *Service {
	if completionTimeout <= 0 {
		completionTimeout = 90 * time.Second
	}
	return &Service{
		store:             store,
		subjects:          subjects,
		themes:            themes,
		client:            client,
		prompts:           prompts,
		bus:               bus,
		log:               log,
		completionTimeout: completionTimeout,
	}
}

// CreateQuiz inserts a placeholder quiz and returns it immediately; the
// completion call runs in a dispatched goroutine whose result reaches the
// processor through the event bus. The prompt is fully resolved before
// the insert so a lookup or template failure never leaves an orphan row.
func (s *Service) CreateQuiz(ctx context.Context, userID, subjectID int64, totalQuestions int) (Quiz, error) {
	if totalQuestions <= 0 {
		return Quiz{}, fmt.Errorf("%w: got %d", ErrInvalidQuestionCount, totalQuestions)
	}

	subjectName, language, err := s.subjects.Subject(ctx, subjectID)
	if err != nil {
		return Quiz{}, err
	}
	theme, err := s.themes.CurrentTheme(ctx, userID)
	if err != nil {
		return Quiz{}, err
	}
	p, err := s.prompts.Render(prompt.Data{
		TotalQuestions: totalQuestions,
		Subject:        subjectName,
		Language:       language,
		Theme:          theme,
	})
	if err != nil {
		return Quiz{}, err
	}

	q, err := s.store.InsertQuiz(ctx, userID, subjectID, totalQuestions)
	if err != nil {
		return Quiz{}, err
	}

	go s.dispatch(q.ID, p)
	return q, nil
}

// dispatch runs the completion call and publishes the result. It is
// fire-and-forget: failures are logged, never reported to the creator.
// A quiz whose event never arrives stays "creating" until the reaper
// removes it.
func (s *Service) dispatch(quizID int64, promptText string) {
	eventID := uuid.NewString()
	log := s.log.With().Int64("quiz_id", quizID).Str("event_id", eventID).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), s.completionTimeout)
	defer cancel()

	response, err := s.client.Complete(ctx, promptText)
	if err != nil {
		log.Error().Err(err).Msg("completion call failed; quiz left for reaper")
		return
	}

	ev := event.GenerationEvent{
		ID:       eventID,
		QuizID:   quizID,
		Response: CleanResponse(response),
	}
	// Publish intentionally blocks under backpressure; only process
	// shutdown (not the completion timeout) should abandon it.
	if err := s.bus.Publish(context.Background(), ev); err != nil {
		log.Error().Err(err).Msg("publish generation event failed")
		return
	}
	log.Debug().Msg("generation event published")
}

func (s *Service) GetQuiz(ctx context.Context, quizID int64) (Quiz, error) {
	return s.store.GetQuiz(ctx, quizID)
}

func (s *Service) QuizzesByUser(ctx context.Context, userID int64) ([]Quiz, error) {
	return s.store.ListQuizzesByUser(ctx, userID)
}

func (s *Service) QuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error) {
	if _, err := s.store.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	return s.store.QuestionsByQuiz(ctx, quizID)
}
